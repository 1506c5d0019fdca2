package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/focus-tracker-go/domain/session"
)

// MachineSource is the machine surface the presenter polls each tick.
type MachineSource interface {
	Status(now time.Time) session.Status
}

// FocusView displays the live session state.
type FocusView interface {
	SetPhase(text string)
	SetStatus(text string)
	SetFocus(focused, scoring bool)
	SetClock(elapsed, remaining time.Duration)
	ShowSummary(text string)
	SetRunning(running bool)
}

// SessionPresenter connects the session machine to the focus view: button
// presses go down as control calls, worker events come back up through the
// status queue, and the clock is refreshed from a status snapshot each tick.
type SessionPresenter struct {
	machine   MachineSource
	controls  session.Controls
	queue     *StatusQueue
	view      FocusView
	attention func()

	// Ended runs after a session summary reached the view, letting the
	// container refresh the history and weekly panels.
	Ended func(rec session.Record)
}

// NewSessionPresenter returns a wired presenter. attention may be nil.
func NewSessionPresenter(machine MachineSource, controls session.Controls, queue *StatusQueue, view FocusView, attention func()) *SessionPresenter {
	return &SessionPresenter{machine: machine, controls: controls, queue: queue, view: view, attention: attention}
}

var _ QueueHandler = (*SessionPresenter)(nil)

// Calibrate handles the Start Calibration button.
func (p *SessionPresenter) Calibrate() {
	if p == nil || p.controls == nil {
		return
	}
	p.controls.StartCalibration()
}

// Begin handles the Start Session button.
func (p *SessionPresenter) Begin() {
	if p == nil || p.controls == nil {
		return
	}
	p.controls.StartSession(time.Now())
}

// End handles the Stop button.
func (p *SessionPresenter) End() {
	if p == nil || p.controls == nil {
		return
	}
	p.controls.Stop(time.Now())
}

// Tick drains queued worker events and refreshes the clock display.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.machine == nil || p.view == nil {
		return
	}
	if p.queue != nil {
		p.queue.Drain(p)
	}
	st := p.machine.Status(now)
	p.view.SetClock(st.Elapsed, st.Remaining)
	p.view.SetFocus(st.Focused, st.Phase == session.PhaseSession)
}

// HandleStatus pushes a queued status line to the view.
func (p *SessionPresenter) HandleStatus(text string) {
	if p == nil || p.view == nil {
		return
	}
	p.view.SetStatus(text)
}

// HandlePhase reflects a phase transition in the view.
func (p *SessionPresenter) HandlePhase(prev, next session.Phase) {
	if p == nil || p.view == nil {
		return
	}
	p.view.SetPhase("State: " + next.String())
	p.view.SetRunning(next != session.PhaseIdle)
}

// HandleEnded shows the finished session summary and runs the Ended hook.
func (p *SessionPresenter) HandleEnded(rec session.Record) {
	if p == nil || p.view == nil {
		return
	}
	p.view.ShowSummary(summaryText(rec))
	if p.Ended != nil {
		p.Ended(rec)
	}
}

// HandleAttention forwards the alert to the platform attention hook.
func (p *SessionPresenter) HandleAttention() {
	if p == nil || p.attention == nil {
		return
	}
	p.attention()
}

func summaryText(rec session.Record) string {
	secs := int(rec.Duration().Seconds())
	return fmt.Sprintf("Session complete: %.1f%% focused over %02d:%02d", rec.FocusPercent, secs/60, secs%60)
}
