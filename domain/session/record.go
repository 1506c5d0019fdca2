package session

import "time"

// Record is one finished study session. Start and End are unix seconds;
// Timeline holds the per-interval focus samples in capture order.
type Record struct {
	ID           int64
	Start        int64
	End          int64
	FocusPercent float64
	Timeline     []bool
}

// Duration returns the wall-clock length of the session, never negative.
func (r Record) Duration() time.Duration {
	secs := r.End - r.Start
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// focusPercent computes the share of focused samples as 0..100.
// An empty timeline scores zero.
func focusPercent(timeline []bool) float64 {
	if len(timeline) == 0 {
		return 0
	}
	focused := 0
	for _, f := range timeline {
		if f {
			focused++
		}
	}
	return 100 * float64(focused) / float64(len(timeline))
}
