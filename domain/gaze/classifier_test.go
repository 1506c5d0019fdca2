package gaze

import (
	"testing"
	"time"
)

var (
	sampleFocused   = Sample{Located: true}
	sampleOneEyeOut = Sample{Located: true, LeftOutside: true}
	sampleAway      = Sample{Located: true, LeftOutside: true, RightOutside: true}
	sampleLost      = Sample{}
)

func TestClassifier_BothEyesRule(t *testing.T) {
	c := NewClassifier(5 * time.Second)
	now := time.Unix(1000, 0)

	if v := c.Classify(sampleFocused, now); !v.Focused {
		t.Fatalf("both eyes inside must be focused")
	}
	if v := c.Classify(sampleOneEyeOut, now); !v.Focused {
		t.Fatalf("single eye outside must still be focused")
	}
	if v := c.Classify(sampleAway, now); v.Focused {
		t.Fatalf("both eyes outside must be unfocused")
	}
}

func TestClassifier_NotLocatedIsUnfocusedWithWarning(t *testing.T) {
	c := NewClassifier(5 * time.Second)
	v := c.Classify(sampleLost, time.Unix(1000, 0))
	if v.Focused {
		t.Fatalf("unlocated pupils must be unfocused")
	}
	if v.Warning == "" {
		t.Fatalf("unlocated pupils must carry a warning")
	}
	if v.Alert {
		t.Fatalf("no alert before the streak threshold")
	}
}

func TestClassifier_AlertFiresOncePerStreak(t *testing.T) {
	c := NewClassifier(5 * time.Second)
	base := time.Unix(1000, 0)

	if v := c.Classify(sampleAway, base); v.Alert {
		t.Fatalf("streak start must not alert")
	}
	if v := c.Classify(sampleAway, base.Add(4*time.Second)); v.Alert {
		t.Fatalf("streak below threshold must not alert")
	}
	if v := c.Classify(sampleAway, base.Add(5*time.Second)); !v.Alert {
		t.Fatalf("expected alert once streak reaches threshold")
	}
	if v := c.Classify(sampleAway, base.Add(20*time.Second)); v.Alert {
		t.Fatalf("latched streak must not alert again")
	}
}

func TestClassifier_RefocusClearsLatch(t *testing.T) {
	c := NewClassifier(5 * time.Second)
	base := time.Unix(1000, 0)

	c.Classify(sampleAway, base)
	if v := c.Classify(sampleAway, base.Add(6*time.Second)); !v.Alert {
		t.Fatalf("setup: first streak should alert")
	}
	if v := c.Classify(sampleFocused, base.Add(7*time.Second)); !v.Focused {
		t.Fatalf("setup: refocus expected")
	}
	// Second streak alerts again after its own threshold.
	c.Classify(sampleAway, base.Add(8*time.Second))
	if v := c.Classify(sampleAway, base.Add(12*time.Second)); v.Alert {
		t.Fatalf("second streak below threshold must not alert")
	}
	if v := c.Classify(sampleAway, base.Add(13*time.Second)); !v.Alert {
		t.Fatalf("second streak must alert independently")
	}
}

func TestClassifier_ResetClearsStreak(t *testing.T) {
	c := NewClassifier(5 * time.Second)
	base := time.Unix(1000, 0)
	c.Classify(sampleAway, base)
	c.Reset()
	// Post-reset the streak restarts; threshold measured from the new start.
	if v := c.Classify(sampleAway, base.Add(4*time.Second)); v.Alert {
		t.Fatalf("reset must restart the streak clock")
	}
	if v := c.Classify(sampleAway, base.Add(9*time.Second)); !v.Alert {
		t.Fatalf("expected alert relative to post-reset streak start")
	}
}
