package images

import (
	"testing"
)

func TestTimelineStrip_SplitsWidthAcrossSamples(t *testing.T) {
	img := TimelineStrip([]bool{true, false}, 10, 4)
	if got := img.RGBAAt(2, 1); got != focusedColor {
		t.Fatalf("left half must be focused color, got %v", got)
	}
	if got := img.RGBAAt(7, 2); got != unfocusedColor {
		t.Fatalf("right half must be unfocused color, got %v", got)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 4 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestTimelineStrip_EmptyTimelineIsNeutral(t *testing.T) {
	img := TimelineStrip(nil, 8, 3)
	for x := 0; x < 8; x++ {
		if got := img.RGBAAt(x, 1); got != emptyColor {
			t.Fatalf("empty timeline must render neutral, got %v at x=%d", got, x)
		}
	}
}

func TestWeeklyBars_ScalesAgainstBusiestDay(t *testing.T) {
	totals := [7]int64{3600, 0, 1800, 0, 0, 0, 0}
	img := WeeklyBars(totals, 70, 11) // 10px columns, 10 usable rows

	// Monday is the busiest day: full-height bar.
	if got := img.RGBAAt(4, 0); got != barColor {
		t.Fatalf("monday bar must reach the top, got %v", got)
	}
	// Wednesday at half: filled low, background high.
	if got := img.RGBAAt(24, 7); got != barColor {
		t.Fatalf("wednesday bar lower half must be filled, got %v", got)
	}
	if got := img.RGBAAt(24, 2); got != chartBgColor {
		t.Fatalf("wednesday bar upper half must be background, got %v", got)
	}
	// An idle day stays background down to the baseline.
	if got := img.RGBAAt(44, 9); got != chartBgColor {
		t.Fatalf("idle day must have no bar, got %v", got)
	}
	// Baseline row.
	if got := img.RGBAAt(30, 10); got != axisColor {
		t.Fatalf("bottom row must be the axis, got %v", got)
	}
}

func TestWeeklyBars_EmptyWeekIsBaselineOnly(t *testing.T) {
	img := WeeklyBars([7]int64{}, 70, 11)
	for y := 0; y < 10; y++ {
		for x := 0; x < 70; x++ {
			if got := img.RGBAAt(x, y); got == barColor {
				t.Fatalf("empty week must render no bars, found bar pixel at (%d,%d)", x, y)
			}
		}
	}
}

func TestWeeklyBars_TinyRequestedSizeIsClamped(t *testing.T) {
	img := WeeklyBars([7]int64{60}, 1, 1)
	b := img.Bounds()
	if b.Dx() < 14 || b.Dy() < 2 {
		t.Fatalf("size must be clamped to a drawable minimum, got %v", b)
	}
}
