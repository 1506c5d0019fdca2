package presenter

import "time"

// Ticker receives periodic wall-clock ticks.
type Ticker interface{ Tick(now time.Time) }

// Loop drives the periodic UI work: advance the session machine's clock,
// let the session presenter drain worker events into the view, then invoke
// a scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Machine  Ticker
	Session  *SessionPresenter
	Schedule func()
}

func NewLoop(machine Ticker, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Machine: machine, Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Machine first so expiry lands before the snapshot is rendered.
	if l.Machine != nil {
		l.Machine.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
