package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/fireworks/internal/audio"
	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/loop"
)

const (
	defaultBackend  = "tcell"
	defaultLogLevel = "info"
)

// terminal bundles the renderer and quit source of one backend.
type terminal struct {
	renderer draw.Renderer
	quit     input.QuitPoller
	close    func()
}

type opener func() (*terminal, error)

var backends = map[string]opener{
	"tcell": openTcell,
	"ansi":  openANSI,
}

// options are the command-line settings; each flag defaults to its
// FIREWORKS_* environment variable.
type options struct {
	backend  string
	seed     int64 // 0 picks a time-based seed
	mute     bool
	volume   int // Percent of full level
	logPath  string
	logLevel string
}

func main() {
	if err := newRootCommand(runShow).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fireworks error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(run func(options) error) *cobra.Command {
	opts := options{
		backend:  config.GetEnv("FIREWORKS_BACKEND", defaultBackend),
		seed:     config.GetEnvInt64("FIREWORKS_SEED", 0),
		mute:     config.GetEnvBool("FIREWORKS_MUTE", false),
		volume:   int(config.GetEnvInt64("FIREWORKS_VOLUME", audio.MaxVolume)),
		logPath:  config.GetEnv("FIREWORKS_LOG", ""),
		logLevel: config.GetEnv("FIREWORKS_LOG_LEVEL", defaultLogLevel),
	}

	cmd := &cobra.Command{
		Use:           "fireworks",
		Short:         "Play a fireworks show in the terminal",
		Long:          "Launches rockets for twenty seconds, bursts a finale and spells out a message. Press q, Esc or Ctrl-C to skip to the finale.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.backend, "backend", "b", opts.backend, "terminal backend (tcell, ansi)")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "random seed (0 for time-based)")
	cmd.Flags().BoolVarP(&opts.mute, "mute", "m", opts.mute, "disable sound")
	cmd.Flags().IntVar(&opts.volume, "volume", opts.volume, "sound volume in percent (0-100)")
	cmd.Flags().StringVar(&opts.logPath, "log", opts.logPath, "write logs to this file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (debug, info, warn, error)")
	_ = cmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions([]string{"tcell", "ansi"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func runShow(opts options) error {
	open, err := selectBackend(opts.backend)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(opts.logPath, opts.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := uint64(opts.seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info("starting", "backend", opts.backend, "seed", seed, "mute", opts.mute, "volume", opts.volume)

	var sound audio.Player = audio.Nop{}
	if !opts.mute {
		sm := audio.NewSoundManager(logger.WithPrefix("audio"), rand.New(rand.NewPCG(seed, seed^0x5eed)))
		sm.SetVolume(opts.volume)
		if err := sm.Initialize(); err == nil {
			sound = sm
		}
		defer sm.Cleanup()
	}

	tty, err := open()
	if err != nil {
		return err
	}
	defer tty.close()

	director, err := loop.NewDirector(loop.Options{
		Renderer: tty.renderer,
		Sound:    sound,
		Quit:     tty.quit,
		Rand:     rand.New(rand.NewPCG(seed, seed>>1)),
		Logger:   logger.WithPrefix("show"),
	})
	if err != nil {
		return err
	}
	if err := director.Run(); err != nil {
		logger.Error("show failed", "err", err)
		return err
	}
	return nil
}

func selectBackend(name string) (opener, error) {
	open, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (want tcell or ansi)", name)
	}
	return open, nil
}

// newLogger writes to path, or discards everything when path is empty.
// The show owns the terminal, so logs never go to stdout or stderr.
func newLogger(path, level string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", path, err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "fireworks",
	})
	return logger, closeFn, nil
}

func openTcell() (*terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	return &terminal{
		renderer: draw.NewTcellRenderer(screen),
		quit:     input.StartTcellPoller(screen),
		close:    screen.Fini,
	}, nil
}

func openANSI() (*terminal, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}

	grid, err := draw.NewTerminalGrid(os.Stdout, draw.DefaultTermSizeFunc)
	if err != nil {
		_ = term.Restore(fd, oldState)
		return nil, fmt.Errorf("terminal size: %w", err)
	}

	draw.HideCursor(os.Stdout)
	draw.ClearScreen(os.Stdout)

	return &terminal{
		renderer: grid,
		quit:     input.StartStream(bufio.NewReader(os.Stdin)),
		close: func() {
			draw.ClearScreen(os.Stdout)
			draw.ShowCursor(os.Stdout)
			_ = term.Restore(fd, oldState)
		},
	}, nil
}
