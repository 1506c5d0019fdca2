package model

import (
	"github.com/soocke/focus-tracker-go/domain/session"
)

// HistoryModel caches the loaded session records and tracks the two-step
// delete confirmation. No synchronization needed: updates occur on the UI
// thread tick.
type HistoryModel struct {
	records []session.Record
	armed   int64 // session id awaiting delete confirmation, 0 = none
}

// NewHistoryModel returns a pointer to a ready-to-use HistoryModel.
func NewHistoryModel() *HistoryModel { return &HistoryModel{} }

// SetRecords replaces the cached records and clears any pending delete.
func (m *HistoryModel) SetRecords(recs []session.Record) {
	if m == nil {
		return
	}
	m.records = recs
	m.armed = 0
}

// Records returns the cached records, newest first.
func (m *HistoryModel) Records() []session.Record {
	if m == nil {
		return nil
	}
	return m.records
}

// ByID returns the cached record with the given id.
func (m *HistoryModel) ByID(id int64) (session.Record, bool) {
	if m == nil {
		return session.Record{}, false
	}
	for _, r := range m.records {
		if r.ID == id {
			return r, true
		}
	}
	return session.Record{}, false
}

// ArmDelete marks id for deletion. It reports true when id was already
// armed, meaning the caller should go ahead with the delete.
func (m *HistoryModel) ArmDelete(id int64) bool {
	if m == nil || id == 0 {
		return false
	}
	if m.armed == id {
		m.armed = 0
		return true
	}
	m.armed = id
	return false
}

// DisarmDelete clears a pending delete confirmation.
func (m *HistoryModel) DisarmDelete() {
	if m == nil {
		return
	}
	m.armed = 0
}

// Armed returns the id currently awaiting confirmation (0 = none).
func (m *HistoryModel) Armed() int64 {
	if m == nil {
		return 0
	}
	return m.armed
}
