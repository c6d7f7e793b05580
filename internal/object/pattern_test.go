package object

import (
	"testing"

	"github.com/tomz197/fireworks/internal/draw"
)

func TestPatternNames(t *testing.T) {
	names := map[Pattern]string{
		PatternBurst:         "burst",
		PatternRing:          "ring",
		PatternWillow:        "willow",
		PatternPalm:          "palm",
		PatternChrysanthemum: "chrysanthemum",
		PatternPeony:         "peony",
	}
	for p, name := range names {
		if p.String() != name {
			t.Errorf("String() = %q, want %q", p.String(), name)
		}
	}
	if Pattern(17).String() != "unknown" {
		t.Errorf("out-of-range pattern should print as unknown")
	}
}

func TestUnknownPatternFallsBackToBurst(t *testing.T) {
	burst := PatternBurst.Shape()
	for _, p := range []Pattern{-1, 6, 100} {
		if got := p.Shape(); got != burst {
			t.Errorf("Pattern(%d).Shape() = %+v, want burst", p, got)
		}
	}
}

func TestRandomPatternCoversAll(t *testing.T) {
	r := newTestRand(50)
	seen := map[Pattern]bool{}
	for i := 0; i < 600; i++ {
		seen[RandomPattern(r)] = true
	}
	if len(seen) != len(Patterns) {
		t.Errorf("saw %d patterns, want %d", len(seen), len(Patterns))
	}
}

func TestCenteredText(t *testing.T) {
	screen := NewScreen(24, 80)
	txt := CenteredText(screen, 12, "HAPPY NEW YEAR")
	if txt.Col != 33 || txt.Row != 12 {
		t.Errorf("text at (%d,%d), want (12,33)", txt.Row, txt.Col)
	}

	narrow := CenteredText(NewScreen(5, 6), 2, "HAPPY NEW YEAR")
	if narrow.Col != 0 {
		t.Errorf("narrow grid column %d, want 0", narrow.Col)
	}

	rec := draw.NewRecorder(5, 6)
	narrow.Draw(rec)
	if len(rec.Calls) != 6 || rec.Dropped != narrow.Len()-6 {
		t.Errorf("drew %d glyphs, dropped %d", len(rec.Calls), rec.Dropped)
	}
	if rec.Calls[0].Emphasis != draw.Bold {
		t.Errorf("overlay should be bold")
	}
}
