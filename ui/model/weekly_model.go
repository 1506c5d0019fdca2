package model

import (
	"time"

	"github.com/soocke/focus-tracker-go/domain/session"
)

// WeeklyModel tracks which week the stats panel is showing. Weeks start on
// Monday; Next is clamped so the view never moves past the week containing
// the current moment.
type WeeklyModel struct {
	weekStart time.Time
	totals    [7]int64
}

// NewWeeklyModel returns a model positioned on the week containing now.
func NewWeeklyModel(now time.Time) *WeeklyModel {
	return &WeeklyModel{weekStart: session.WeekStart(now)}
}

// WeekStart returns the Monday midnight of the shown week.
func (m *WeeklyModel) WeekStart() time.Time {
	if m == nil {
		return time.Time{}
	}
	return m.weekStart
}

// SetTotals stores the per-day totals (Monday..Sunday, seconds).
func (m *WeeklyModel) SetTotals(t [7]int64) {
	if m == nil {
		return
	}
	m.totals = t
}

// Totals returns the per-day totals for the shown week.
func (m *WeeklyModel) Totals() [7]int64 {
	if m == nil {
		return [7]int64{}
	}
	return m.totals
}

// Prev moves one week back.
func (m *WeeklyModel) Prev() {
	if m == nil {
		return
	}
	m.weekStart = m.weekStart.AddDate(0, 0, -7)
}

// Next moves one week forward. It reports false without moving when the
// shown week is already the week containing now.
func (m *WeeklyModel) Next(now time.Time) bool {
	if m == nil {
		return false
	}
	candidate := m.weekStart.AddDate(0, 0, 7)
	if candidate.After(session.WeekStart(now)) {
		return false
	}
	m.weekStart = candidate
	return true
}

// AtCurrentWeek reports whether the shown week contains now.
func (m *WeeklyModel) AtCurrentWeek(now time.Time) bool {
	if m == nil {
		return false
	}
	return !m.weekStart.Before(session.WeekStart(now))
}
