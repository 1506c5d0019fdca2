package session

import (
	"context"
	"time"

	"github.com/soocke/focus-tracker-go/domain/gaze"
)

// Frames controls the background frame pipeline feeding the machine.
type Frames interface {
	Start() error
	Stop()
	Running() bool
}

// RecordStore persists finished sessions. The machine only saves; browsing
// and aggregation are presenter concerns.
type RecordStore interface {
	SaveSession(ctx context.Context, rec Record) (int64, error)
}

// Notifier receives user-facing events from the machine. Implementations are
// called from the frame worker as well as the UI thread and must not touch
// widgets directly.
type Notifier interface {
	StatusUpdate(text string)
	SessionEnded(rec Record)
	RequestAttention()
}

// PhaseListener is invoked on every successful phase transition.
type PhaseListener func(prev, next Phase)

// Interface slices for consumers (presenters, capture worker).
type PhaseSource interface{ Current() Phase }
type ReadingSink interface {
	ProcessReading(r gaze.Reading, now time.Time)
	SourceLost(err error, now time.Time)
}
type Controls interface {
	StartCalibration()
	StartSession(now time.Time)
	Stop(now time.Time)
}
