package presenter

import (
	"github.com/soocke/focus-tracker-go/domain/session"
)

type uiEventKind int

const (
	eventStatus uiEventKind = iota + 1
	eventPhase
	eventEnded
	eventAttention
)

type uiEvent struct {
	kind   uiEventKind
	status string
	prev   session.Phase
	next   session.Phase
	record session.Record
}

// StatusQueue carries machine events from the frame worker to the UI thread.
// Senders never block: when the buffer is full the oldest event is dropped in
// favor of the newest. Drain runs on the Tk thread only.
type StatusQueue struct {
	events chan uiEvent
}

// NewStatusQueue returns a queue sized for a few seconds of backlog.
func NewStatusQueue() *StatusQueue {
	return &StatusQueue{events: make(chan uiEvent, 16)}
}

var _ session.Notifier = (*StatusQueue)(nil)

// StatusUpdate queues a status line. Implements session.Notifier.
func (q *StatusQueue) StatusUpdate(text string) {
	q.push(uiEvent{kind: eventStatus, status: text})
}

// SessionEnded queues the finished session summary. Implements session.Notifier.
func (q *StatusQueue) SessionEnded(rec session.Record) {
	q.push(uiEvent{kind: eventEnded, record: rec})
}

// RequestAttention queues an attention request. Implements session.Notifier.
func (q *StatusQueue) RequestAttention() {
	q.push(uiEvent{kind: eventAttention})
}

// OnPhase queues a phase transition; register with Machine.AddListener.
func (q *StatusQueue) OnPhase(prev, next session.Phase) {
	q.push(uiEvent{kind: eventPhase, prev: prev, next: next})
}

func (q *StatusQueue) push(ev uiEvent) {
	if q == nil {
		return
	}
	select {
	case q.events <- ev:
	default:
		select {
		case <-q.events:
		default:
		}
		select {
		case q.events <- ev:
		default:
		}
	}
}

// QueueHandler receives drained events on the UI thread.
type QueueHandler interface {
	HandleStatus(text string)
	HandlePhase(prev, next session.Phase)
	HandleEnded(rec session.Record)
	HandleAttention()
}

// Drain delivers every queued event to the handler, then returns.
func (q *StatusQueue) Drain(h QueueHandler) {
	if q == nil || h == nil {
		return
	}
	for {
		select {
		case ev := <-q.events:
			switch ev.kind {
			case eventStatus:
				h.HandleStatus(ev.status)
			case eventPhase:
				h.HandlePhase(ev.prev, ev.next)
			case eventEnded:
				h.HandleEnded(ev.record)
			case eventAttention:
				h.HandleAttention()
			}
		default:
			return
		}
	}
}
