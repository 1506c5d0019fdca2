package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/focus-tracker-go/config"
	"github.com/soocke/focus-tracker-go/domain/gaze"
	"github.com/soocke/focus-tracker-go/domain/session"
	"github.com/soocke/focus-tracker-go/pupil"
)

const (
	trackStatsLogInterval = 5 * time.Second

	// A camera that fails this many reads in a row is considered gone.
	maxConsecutiveReadFailures = 30

	defaultFrameInterval = 50 * time.Millisecond
)

// TrackStats exposes worker instrumentation data.
type TrackStats struct {
	Frames          uint64
	Misses          uint64
	AvgLocate       time.Duration
	AvgLocateMicros float64
}

// Service runs the background tracking worker: read a frame, locate the
// pupils, feed the session machine. Use NewService to construct an instance.
//
// The service restarts once per calibrate/stop cycle. Each Start bumps the
// run counter so a loop that has not yet observed Stop retires instead of
// being revived by the new running flag, and leaves the camera to the run
// that now owns it.
type Service struct {
	running atomic.Bool
	run     atomic.Uint64
	srcMu   sync.Mutex // serializes camera open/close across restarts
	source  Source
	locator pupil.Locator
	sink    session.ReadingSink
	logger  *slog.Logger

	interval time.Duration

	frames      atomic.Uint64
	misses      atomic.Uint64
	locateNanos atomic.Uint64
}

var _ session.Frames = (*Service)(nil)

// NewService constructs a tracking service. The frame cadence comes from
// cfg.FrameIntervalMs (nil cfg or non-positive values use the default).
func NewService(logger *slog.Logger, cfg *config.Config, source Source, locator pupil.Locator, sink session.ReadingSink) *Service {
	interval := defaultFrameInterval
	if cfg != nil && cfg.FrameIntervalMs > 0 {
		interval = time.Duration(cfg.FrameIntervalMs) * time.Millisecond
	}
	return &Service{
		source:   source,
		locator:  locator,
		sink:     sink,
		logger:   logger,
		interval: interval,
	}
}

// Start opens the camera and launches the worker loop. Already-running
// services are left alone.
func (s *Service) Start() error {
	if s.running.Load() {
		return nil
	}
	s.srcMu.Lock()
	id := s.run.Add(1)
	err := s.source.Open()
	s.srcMu.Unlock()
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	s.running.Store(true)
	go s.loop(id)
	return nil
}

// Stop asks the worker to exit. The camera is released by the loop itself.
func (s *Service) Stop() {
	if !s.running.Load() {
		return
	}
	s.running.Store(false)
}

// Running reports worker activity.
func (s *Service) Running() bool { return s.running.Load() }

// Stats returns a snapshot of the worker counters.
func (s *Service) Stats() TrackStats {
	frames := s.frames.Load()
	total := s.locateNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if frames > 0 && total > 0 {
		avg = time.Duration(total / frames)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	return TrackStats{
		Frames:          frames,
		Misses:          s.misses.Load(),
		AvgLocate:       avg,
		AvgLocateMicros: avgMicros,
	}
}

func (s *Service) loop(id uint64) {
	defer s.release(id)
	logTicker := time.NewTicker(trackStatsLogInterval)
	defer logTicker.Stop()

	failures := 0
	for s.active(id) {
		frame, ok := s.source.Read()
		if !s.active(id) {
			// Stopped mid-read; the frame may already belong to the next run.
			return
		}
		if !ok {
			failures++
			if failures >= maxConsecutiveReadFailures {
				if s.run.Load() == id {
					s.running.Store(false)
					s.sink.SourceLost(errors.New("camera stopped delivering frames"), time.Now())
				}
				return
			}
			time.Sleep(s.interval)
			continue
		}
		failures = 0

		start := time.Now()
		reading, err := s.locator.Locate(frame)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("pupil locate", "error", err)
			}
			reading = gaze.Reading{}
		}
		s.locateNanos.Add(uint64(time.Since(start).Nanoseconds()))
		s.frames.Add(1)
		if !reading.Located() {
			s.misses.Add(1)
		}
		s.sink.ProcessReading(reading, time.Now())

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		time.Sleep(s.interval)
	}
}

// active reports whether run id should keep looping. A restart bumps the run
// counter, retiring any loop that has not yet observed Stop.
func (s *Service) active(id uint64) bool {
	return s.running.Load() && s.run.Load() == id
}

// release closes the camera unless a newer run has taken it over.
func (s *Service) release(id uint64) {
	s.srcMu.Lock()
	defer s.srcMu.Unlock()
	if s.run.Load() != id {
		return
	}
	if err := s.source.Close(); err != nil && s.logger != nil {
		s.logger.Error("camera close", "error", err)
	}
}

func (s *Service) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("tracking.stats",
		"frames", stats.Frames,
		"misses", stats.Misses,
		"avg_locate", stats.AvgLocate,
	)
}
