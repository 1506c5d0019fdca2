package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/focus-tracker-go/config"
	"github.com/soocke/focus-tracker-go/domain/gaze"
)

// Phase represents the high-level finite states of the study cycle.
type Phase int

const (
	PhaseIdle        Phase = iota // no camera activity
	PhaseCalibrating              // learning the per-eye gaze boundaries
	PhaseSession                  // timed session, focus being scored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCalibrating:
		return "calibrating"
	case PhaseSession:
		return "session"
	default:
		return "unknown"
	}
}

// Status is a point-in-time snapshot of the machine for display purposes.
type Status struct {
	Phase      Phase
	Focused    bool
	Calibrated bool
	Elapsed    time.Duration
	Remaining  time.Duration
}

// Machine coordinates transitions between the study phases and owns the
// calibration boundaries, the focus classifier and the session aggregator.
// It is concurrency-safe; the frame worker and the UI thread may call its
// exported methods from any goroutine.
type Machine struct {
	mu        sync.Mutex
	phase     Phase
	logger    *slog.Logger
	listeners []PhaseListener

	frames   Frames
	store    RecordStore
	notifier Notifier

	left  *gaze.Boundary
	right *gaze.Boundary
	cls   *gaze.Classifier
	agg   *Aggregator

	lastFocused bool
	lastStatus  string
}

// NewMachine creates a machine starting in PhaseIdle, configured from cfg
// (nil cfg uses defaults throughout).
func NewMachine(logger *slog.Logger, cfg *config.Config, frames Frames, store RecordStore, notifier Notifier) *Machine {
	interval := defaultSampleInterval
	study := defaultStudyDuration
	alert := 5 * time.Second
	tolerance := 5
	if cfg != nil {
		if cfg.SampleIntervalSeconds > 0 {
			interval = time.Duration(cfg.SampleIntervalSeconds) * time.Second
		}
		if cfg.StudyMinutes > 0 {
			study = time.Duration(cfg.StudyMinutes) * time.Minute
		}
		if cfg.AlertAfterSeconds > 0 {
			alert = time.Duration(cfg.AlertAfterSeconds) * time.Second
		}
		if cfg.BoundaryTolerancePx > 0 {
			tolerance = cfg.BoundaryTolerancePx
		}
	}
	return &Machine{
		phase:    PhaseIdle,
		logger:   logger,
		frames:   frames,
		store:    store,
		notifier: notifier,
		left:     gaze.NewBoundary(tolerance),
		right:    gaze.NewBoundary(tolerance),
		cls:      gaze.NewClassifier(alert),
		agg:      NewAggregator(interval, study),
	}
}

var (
	_ ReadingSink = (*Machine)(nil)
	_ PhaseSource = (*Machine)(nil)
	_ Controls    = (*Machine)(nil)
)

// AddListener registers a listener for phase transitions.
func (m *Machine) AddListener(l PhaseListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// AttachFrames wires the frame pipeline once it exists. The pipeline and the
// machine reference each other, so one side is attached after construction.
func (m *Machine) AttachFrames(f Frames) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = f
}

// Current returns the current phase.
func (m *Machine) Current() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Status returns a display snapshot evaluated at now.
func (m *Machine) Status(now time.Time) Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		Phase:      m.phase,
		Focused:    m.lastFocused,
		Calibrated: m.left.Calibrated() && m.right.Calibrated(),
		Elapsed:    m.agg.Elapsed(now),
		Remaining:  m.agg.Remaining(now),
	}
}

// transition performs the phase change if it is an actual change and notifies
// listeners. Callers hold the lock.
func (m *Machine) transition(next Phase) {
	prev := m.phase
	if prev == next {
		return
	}
	m.phase = next
	if m.logger != nil {
		m.logger.Debug("session phase transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range m.listeners {
		l(prev, next)
	}
}

// setStatus pushes a status message when it differs from the last one, so
// the per-frame paths cannot flood the notifier. Callers hold the lock.
func (m *Machine) setStatus(text string) {
	if text == m.lastStatus {
		return
	}
	m.lastStatus = text
	if m.notifier != nil {
		m.notifier.StatusUpdate(text)
	}
}

// StartCalibration opens the frame pipeline and enters PhaseCalibrating.
// Outside PhaseIdle it is a no-op. A pipeline start failure keeps the
// machine idle and surfaces the error as a status message.
func (m *Machine) StartCalibration() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseIdle {
		return
	}
	m.left.Reset()
	m.right.Reset()
	m.lastFocused = false
	if m.frames != nil {
		if err := m.frames.Start(); err != nil {
			if m.logger != nil {
				m.logger.Error("camera start failed", "error", err)
			}
			m.setStatus("camera unavailable: " + err.Error())
			return
		}
	}
	m.transition(PhaseCalibrating)
	m.setStatus("calibrating: follow the edges of your screen with your eyes")
}

// StartSession moves from PhaseCalibrating into the timed session. Both eye
// boundaries must report calibrated; otherwise the transition is rejected
// with a status message and calibration continues.
func (m *Machine) StartSession(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case PhaseIdle:
		m.setStatus("start calibration before starting a session")
		return
	case PhaseSession:
		return
	}
	if !m.left.Calibrated() || !m.right.Calibrated() {
		m.setStatus("calibration incomplete: keep moving your eyes across the screen")
		return
	}
	m.cls.Reset()
	m.agg.Begin(now)
	m.lastFocused = true
	m.transition(PhaseSession)
	m.setStatus("session started")
}

// Stop ends the current activity: a running session is finalized and saved,
// a calibration is cancelled without a record. Idle is a no-op.
func (m *Machine) Stop(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case PhaseCalibrating:
		m.stopFrames()
		m.transition(PhaseIdle)
		m.setStatus("calibration cancelled")
	case PhaseSession:
		m.finalize(now)
	}
}

// ProcessReading consumes one locator result from the frame worker. During
// calibration it widens the boundaries; during a session it classifies,
// samples and checks for expiry. Any other phase ignores the reading.
func (m *Machine) ProcessReading(r gaze.Reading, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case PhaseCalibrating:
		m.left.Adjust(r.Left)
		m.right.Adjust(r.Right)
		if m.left.Calibrated() && m.right.Calibrated() {
			m.setStatus("calibration ready: start the session when you are")
		} else if !r.Located() {
			m.setStatus("pupils not located: adjust lighting or camera")
		}
	case PhaseSession:
		sample := gaze.Sample{
			Located:      r.Located(),
			LeftOutside:  m.left.Outside(r.Left),
			RightOutside: m.right.Outside(r.Right),
		}
		v := m.cls.Classify(sample, now)
		m.lastFocused = v.Focused
		m.agg.Observe(v.Focused)
		m.agg.Sample(now)
		switch {
		case v.Warning != "":
			m.setStatus(v.Warning)
		case v.Focused:
			m.setStatus("focused")
		default:
			m.setStatus("unfocused")
		}
		if v.Alert {
			if m.logger != nil {
				m.logger.Info("sustained unfocus alert")
			}
			if m.notifier != nil {
				m.notifier.RequestAttention()
			}
		}
		if m.agg.Expired(now) {
			m.finalize(now)
		}
	}
}

// SourceLost is called by the frame worker when the camera stops delivering.
// A running session is finalized at the loss instant; a calibration is
// abandoned. The error is fatal to the attempt, not to the app.
func (m *Machine) SourceLost(err error, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.logger != nil {
		m.logger.Error("frame source lost", "error", err, "phase", m.phase.String())
	}
	switch m.phase {
	case PhaseCalibrating:
		m.stopFrames()
		m.transition(PhaseIdle)
		m.setStatus("camera lost: " + err.Error())
	case PhaseSession:
		m.setStatus("camera lost: ending session")
		m.finalize(now)
	}
}

// Tick advances the session clock from the UI loop so sampling and expiry
// do not depend on frames arriving.
func (m *Machine) Tick(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseSession {
		return
	}
	m.agg.Sample(now)
	if m.agg.Expired(now) {
		m.finalize(now)
	}
}

// finalize is the single path closing a session: snapshot the record, return
// to idle, notify, and persist when the duration is positive. Callers hold
// the lock.
func (m *Machine) finalize(now time.Time) {
	rec := m.agg.Finish(now)
	m.stopFrames()
	m.transition(PhaseIdle)
	m.lastFocused = false
	m.setStatus("session finished")
	if m.notifier != nil {
		m.notifier.SessionEnded(rec)
	}
	if rec.End <= rec.Start {
		if m.logger != nil {
			m.logger.Debug("session too short, not persisted", "start", rec.Start, "end", rec.End)
		}
		return
	}
	if m.store == nil {
		return
	}
	id, err := m.store.SaveSession(context.Background(), rec)
	if err != nil {
		if m.logger != nil {
			m.logger.Error("session save failed", "error", err)
		}
		m.setStatus("session finished (save failed)")
		return
	}
	if m.logger != nil {
		m.logger.Info("session saved", "id", id, "focus_percent", rec.FocusPercent, "samples", len(rec.Timeline))
	}
}

func (m *Machine) stopFrames() {
	if m.frames != nil {
		m.frames.Stop()
	}
}
