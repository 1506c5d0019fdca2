package gaze

import "time"

// Sample is the per-frame input to the classifier: whether both pupils were
// located plus the boundary verdict for each eye.
type Sample struct {
	Located      bool
	LeftOutside  bool
	RightOutside bool
}

// Verdict is the classifier output for one sample.
type Verdict struct {
	Focused bool
	// Alert is set exactly once per unfocus streak, when the streak first
	// reaches the configured threshold.
	Alert bool
	// Warning carries a transient condition worth surfacing ("pupils not
	// located"); it never influences Focused or Alert on its own.
	Warning string
}

const defaultAlertAfter = 5 * time.Second

// Classifier turns per-frame samples into focus verdicts and debounces the
// sustained-unfocus alert. Not safe for concurrent use; the session machine
// serializes calls.
type Classifier struct {
	alertAfter time.Duration

	unfocusedSince time.Time // zero while focused
	alerted        bool      // latch: one alert per streak
}

// NewClassifier returns a classifier that raises an alert once unfocus has
// persisted for alertAfter. Non-positive values fall back to the default.
func NewClassifier(alertAfter time.Duration) *Classifier {
	if alertAfter <= 0 {
		alertAfter = defaultAlertAfter
	}
	return &Classifier{alertAfter: alertAfter}
}

// Reset clears the streak and the alert latch. Call at session start.
func (c *Classifier) Reset() {
	c.unfocusedSince = time.Time{}
	c.alerted = false
}

// Classify evaluates one sample at the given instant. The user counts as
// focused while both pupils are located and at least one eye remains inside
// its boundary; only both eyes straying together means looking away.
func (c *Classifier) Classify(s Sample, now time.Time) Verdict {
	v := Verdict{}
	if !s.Located {
		v.Warning = "pupils not located"
	}
	v.Focused = s.Located && !(s.LeftOutside && s.RightOutside)

	if v.Focused {
		c.unfocusedSince = time.Time{}
		c.alerted = false
		return v
	}
	if c.unfocusedSince.IsZero() {
		c.unfocusedSince = now
	}
	if !c.alerted && now.Sub(c.unfocusedSince) >= c.alertAfter {
		c.alerted = true
		v.Alert = true
	}
	return v
}
