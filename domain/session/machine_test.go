package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/soocke/focus-tracker-go/config"
	"github.com/soocke/focus-tracker-go/domain/gaze"
)

// dummy logger discards output
var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeFrames struct {
	started, stopped int
	failStart        error
}

func (f *fakeFrames) Start() error {
	if f.failStart != nil {
		return f.failStart
	}
	f.started++
	return nil
}
func (f *fakeFrames) Stop()         { f.stopped++ }
func (f *fakeFrames) Running() bool { return f.started > f.stopped }

type fakeStore struct {
	saved []Record
	err   error
}

func (s *fakeStore) SaveSession(_ context.Context, rec Record) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.saved = append(s.saved, rec)
	return int64(len(s.saved)), nil
}

type fakeNotifier struct {
	statuses  []string
	ended     []Record
	attention int
}

func (n *fakeNotifier) StatusUpdate(text string) { n.statuses = append(n.statuses, text) }
func (n *fakeNotifier) SessionEnded(rec Record)  { n.ended = append(n.ended, rec) }
func (n *fakeNotifier) RequestAttention()        { n.attention++ }

func (n *fakeNotifier) sawStatus(substr string) bool {
	for _, s := range n.statuses {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

var (
	_ Frames      = (*fakeFrames)(nil)
	_ RecordStore = (*fakeStore)(nil)
	_ Notifier    = (*fakeNotifier)(nil)
)

func testConfig() *config.Config {
	return &config.Config{
		StudyMinutes:          1,
		SampleIntervalSeconds: 1,
		AlertAfterSeconds:     5,
		BoundaryTolerancePx:   5,
	}
}

func newTestMachine() (*Machine, *fakeFrames, *fakeStore, *fakeNotifier) {
	frames := &fakeFrames{}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	m := NewMachine(discardLogger, testConfig(), frames, store, notifier)
	return m, frames, store, notifier
}

func reading(lx, ly, rx, ry int) gaze.Reading {
	return gaze.Reading{
		Left:  gaze.Coord{X: lx, Y: ly, Detected: true},
		Right: gaze.Coord{X: rx, Y: ry, Detected: true},
	}
}

// calibrateMachine feeds opposite-corner readings so both boundaries span
// [100,200] on each axis.
func calibrateMachine(m *Machine, at time.Time) {
	m.ProcessReading(reading(100, 100, 100, 100), at)
	m.ProcessReading(reading(200, 200, 200, 200), at)
}

func TestMachine_CalibrationFlow(t *testing.T) {
	m, frames, _, notifier := newTestMachine()
	base := time.Unix(10_000, 0)

	m.StartCalibration()
	if m.Current() != PhaseCalibrating {
		t.Fatalf("expected calibrating, got %v", m.Current())
	}
	if frames.started != 1 {
		t.Fatalf("frame pipeline not started: %d", frames.started)
	}
	if st := m.Status(base); st.Calibrated {
		t.Fatalf("fresh calibration must not report calibrated")
	}
	calibrateMachine(m, base)
	if st := m.Status(base); !st.Calibrated {
		t.Fatalf("expected calibrated after corner readings")
	}
	if !notifier.sawStatus("calibration ready") {
		t.Fatalf("missing readiness status, got %v", notifier.statuses)
	}
}

func TestMachine_CalibrationCameraFailure(t *testing.T) {
	frames := &fakeFrames{failStart: errors.New("device busy")}
	notifier := &fakeNotifier{}
	m := NewMachine(discardLogger, testConfig(), frames, &fakeStore{}, notifier)

	m.StartCalibration()
	if m.Current() != PhaseIdle {
		t.Fatalf("failed camera open must keep the machine idle, got %v", m.Current())
	}
	if !notifier.sawStatus("device busy") {
		t.Fatalf("camera error not surfaced: %v", notifier.statuses)
	}
}

func TestMachine_StartSessionRequiresCalibration(t *testing.T) {
	m, _, _, notifier := newTestMachine()
	base := time.Unix(10_000, 0)

	m.StartSession(base)
	if m.Current() != PhaseIdle || !notifier.sawStatus("start calibration") {
		t.Fatalf("session start from idle must be rejected with a hint")
	}

	m.StartCalibration()
	m.StartSession(base)
	if m.Current() != PhaseCalibrating {
		t.Fatalf("uncalibrated session start must be rejected, got %v", m.Current())
	}
	if !notifier.sawStatus("calibration incomplete") {
		t.Fatalf("missing rejection status: %v", notifier.statuses)
	}

	calibrateMachine(m, base)
	m.StartSession(base)
	if m.Current() != PhaseSession {
		t.Fatalf("calibrated session start must succeed, got %v", m.Current())
	}
}

func TestMachine_SessionScoringAndStop(t *testing.T) {
	m, frames, store, notifier := newTestMachine()
	base := time.Unix(10_000, 0)
	m.StartCalibration()
	calibrateMachine(m, base)
	m.StartSession(base)

	// Two focused seconds, one unfocused, one focused again.
	m.ProcessReading(reading(150, 150, 150, 150), base.Add(1*time.Second))
	m.ProcessReading(reading(150, 150, 150, 150), base.Add(2*time.Second))
	m.ProcessReading(reading(400, 400, 400, 400), base.Add(3*time.Second))
	m.ProcessReading(reading(150, 150, 150, 150), base.Add(4*time.Second))

	m.Stop(base.Add(4 * time.Second))
	if m.Current() != PhaseIdle {
		t.Fatalf("stop must return to idle, got %v", m.Current())
	}
	if frames.stopped == 0 {
		t.Fatalf("frame pipeline must stop with the session")
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(store.saved))
	}
	rec := store.saved[0]
	if rec.FocusPercent != 75 {
		t.Fatalf("expected 75%% focus, got %v (timeline %v)", rec.FocusPercent, rec.Timeline)
	}
	if len(notifier.ended) != 1 {
		t.Fatalf("SessionEnded not notified")
	}
	if !notifier.sawStatus("focused") || !notifier.sawStatus("unfocused") {
		t.Fatalf("focus status changes not surfaced: %v", notifier.statuses)
	}
}

func TestMachine_ShortSessionNotPersisted(t *testing.T) {
	m, _, store, notifier := newTestMachine()
	base := time.Unix(10_000, 0)
	m.StartCalibration()
	calibrateMachine(m, base)
	m.StartSession(base)
	m.Stop(base.Add(300 * time.Millisecond))

	if len(store.saved) != 0 {
		t.Fatalf("sub-second session must not be persisted")
	}
	if len(notifier.ended) != 1 {
		t.Fatalf("stats must still reach the notifier")
	}
}

func TestMachine_SaveFailureKeepsResult(t *testing.T) {
	frames := &fakeFrames{}
	store := &fakeStore{err: errors.New("disk full")}
	notifier := &fakeNotifier{}
	m := NewMachine(discardLogger, testConfig(), frames, store, notifier)
	base := time.Unix(10_000, 0)
	m.StartCalibration()
	calibrateMachine(m, base)
	m.StartSession(base)
	m.Stop(base.Add(5 * time.Second))

	if len(notifier.ended) != 1 {
		t.Fatalf("save failure must not suppress the session result")
	}
	if !notifier.sawStatus("save failed") {
		t.Fatalf("save failure not surfaced: %v", notifier.statuses)
	}
	if m.Current() != PhaseIdle {
		t.Fatalf("machine must settle in idle after save failure")
	}
}

func TestMachine_AutoExpiryViaTick(t *testing.T) {
	m, _, store, _ := newTestMachine() // 1 minute study duration
	base := time.Unix(10_000, 0)
	m.StartCalibration()
	calibrateMachine(m, base)
	m.StartSession(base)

	m.Tick(base.Add(59 * time.Second))
	if m.Current() != PhaseSession {
		t.Fatalf("session must keep running before expiry")
	}
	m.Tick(base.Add(60 * time.Second))
	if m.Current() != PhaseIdle {
		t.Fatalf("session must auto-end at the study duration")
	}
	if len(store.saved) != 1 {
		t.Fatalf("expired session must be persisted")
	}
	if got := store.saved[0].End - store.saved[0].Start; got != 60 {
		t.Fatalf("expected 60s record, got %ds", got)
	}
}

func TestMachine_SustainedUnfocusAlertsOnce(t *testing.T) {
	m, _, _, notifier := newTestMachine()
	base := time.Unix(10_000, 0)
	m.StartCalibration()
	calibrateMachine(m, base)
	m.StartSession(base)

	for i := 1; i <= 10; i++ {
		m.ProcessReading(reading(400, 400, 400, 400), base.Add(time.Duration(i)*time.Second))
	}
	if notifier.attention != 1 {
		t.Fatalf("expected exactly one attention request per streak, got %d", notifier.attention)
	}
	// Refocus, then a second sustained streak fires again.
	m.ProcessReading(reading(150, 150, 150, 150), base.Add(11*time.Second))
	for i := 12; i <= 20; i++ {
		m.ProcessReading(reading(400, 400, 400, 400), base.Add(time.Duration(i)*time.Second))
	}
	if notifier.attention != 2 {
		t.Fatalf("expected a second alert for the new streak, got %d", notifier.attention)
	}
}

func TestMachine_SourceLost(t *testing.T) {
	m, _, store, notifier := newTestMachine()
	base := time.Unix(10_000, 0)

	m.StartCalibration()
	m.SourceLost(errors.New("read failed"), base)
	if m.Current() != PhaseIdle {
		t.Fatalf("source loss during calibration must return to idle")
	}
	if !notifier.sawStatus("camera lost") {
		t.Fatalf("camera loss not surfaced: %v", notifier.statuses)
	}

	m.StartCalibration()
	calibrateMachine(m, base)
	m.StartSession(base)
	m.SourceLost(errors.New("read failed"), base.Add(8*time.Second))
	if m.Current() != PhaseIdle {
		t.Fatalf("source loss during session must finalize")
	}
	if len(store.saved) != 1 {
		t.Fatalf("session interrupted by source loss must still be recorded")
	}
}

func TestMachine_ListenerSequence(t *testing.T) {
	m, _, _, _ := newTestMachine()
	base := time.Unix(10_000, 0)
	var seq []Phase
	m.AddListener(func(prev, next Phase) { seq = append(seq, next) })

	m.StartCalibration()
	calibrateMachine(m, base)
	m.StartSession(base)
	m.Stop(base.Add(2 * time.Second))

	want := []Phase{PhaseCalibrating, PhaseSession, PhaseIdle}
	if len(seq) != len(want) {
		t.Fatalf("transition sequence %v want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("transition sequence %v want %v", seq, want)
		}
	}
}

func TestMachine_InvalidEventsAreNoOps(t *testing.T) {
	m, frames, store, _ := newTestMachine()
	base := time.Unix(10_000, 0)

	m.Stop(base)
	m.Tick(base)
	m.ProcessReading(reading(150, 150, 150, 150), base)
	if m.Current() != PhaseIdle || frames.stopped != 0 || len(store.saved) != 0 {
		t.Fatalf("idle machine must ignore stop/tick/readings")
	}

	m.StartCalibration()
	m.StartCalibration() // second call is a no-op
	if frames.started != 1 {
		t.Fatalf("repeated calibration start must not reopen the camera: %d", frames.started)
	}
}
