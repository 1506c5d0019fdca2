package session

import "time"

const (
	defaultSampleInterval = time.Second
	defaultStudyDuration  = 25 * time.Minute
)

// Aggregator samples the focus state on a fixed wall-clock cadence while a
// session runs and turns the collected timeline into a Record on finish.
// Not safe for concurrent use; the machine serializes access.
type Aggregator struct {
	interval time.Duration
	limit    time.Duration

	active   bool
	start    time.Time
	lastAt   time.Time // most recent sample slot boundary
	latest   bool      // most recent classification
	timeline []bool
}

// NewAggregator returns an idle aggregator. Non-positive interval or limit
// fall back to the defaults (1s samples, 25 minute sessions).
func NewAggregator(interval, limit time.Duration) *Aggregator {
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	if limit <= 0 {
		limit = defaultStudyDuration
	}
	return &Aggregator{interval: interval, limit: limit}
}

// Begin starts a new session at now. Until the first observation arrives the
// user is assumed focused; they just pressed start.
func (a *Aggregator) Begin(now time.Time) {
	a.active = true
	a.start = now
	a.lastAt = now
	a.latest = true
	a.timeline = nil
}

// Active reports whether a session is currently being aggregated.
func (a *Aggregator) Active() bool { return a.active }

// Observe records the most recent classification. It does not append a
// sample; Sample owns the cadence.
func (a *Aggregator) Observe(focused bool) {
	if !a.active {
		return
	}
	a.latest = focused
}

// Sample appends one timeline entry per elapsed interval since the last
// sample, each carrying the latest classification. Called from both the
// frame path and the UI tick so stalled frames cannot stall the clock.
func (a *Aggregator) Sample(now time.Time) {
	if !a.active {
		return
	}
	for now.Sub(a.lastAt) >= a.interval {
		a.lastAt = a.lastAt.Add(a.interval)
		a.timeline = append(a.timeline, a.latest)
	}
}

// Elapsed returns time since session start, zero when idle.
func (a *Aggregator) Elapsed(now time.Time) time.Duration {
	if !a.active {
		return 0
	}
	return now.Sub(a.start)
}

// Remaining returns time until the configured study duration runs out.
func (a *Aggregator) Remaining(now time.Time) time.Duration {
	if !a.active {
		return 0
	}
	rem := a.limit - now.Sub(a.start)
	if rem < 0 {
		rem = 0
	}
	return rem
}

// Expired reports whether the session has reached its configured duration.
func (a *Aggregator) Expired(now time.Time) bool {
	return a.active && now.Sub(a.start) >= a.limit
}

// Finish closes the session at now and returns the finalized record with a
// copied timeline. The aggregator returns to idle.
func (a *Aggregator) Finish(now time.Time) Record {
	a.Sample(now)
	rec := Record{
		Start:        a.start.Unix(),
		End:          now.Unix(),
		FocusPercent: focusPercent(a.timeline),
		Timeline:     append([]bool(nil), a.timeline...),
	}
	a.active = false
	a.timeline = nil
	return rec
}
