package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/focus-tracker-go/config"
	"github.com/soocke/focus-tracker-go/ui/presenter"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Focus    FocusPanel
	Settings SettingsPanel
	History  HistoryPanel
	Weekly   WeeklyPanel
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetPhase(text string)
	SetStatus(text string)
	SetFocus(focused, scoring bool)
	SetClock(elapsed, remaining time.Duration)
	ShowSummary(text string)
	SetRunning(running bool)
	SetRows(rows []presenter.HistoryRow)
	ShowDetail(text string, strip image.Image)
	SetDeleteLabel(text string)
	SetHint(text string)
	SetWeekLabel(text string)
	SetBars(img image.Image)
	SetBreakdown(text string)
	SetNextEnabled(enabled bool)
}

var (
	_ UI                    = (*RootView)(nil)
	_ presenter.FocusView   = (*RootView)(nil)
	_ presenter.HistoryView = (*RootView)(nil)
	_ presenter.WeeklyView  = (*RootView)(nil)
)

// Callbacks carries the user-action handlers wired into the layout at Build time.
type Callbacks struct {
	Calibrate     func()
	StartSession  func()
	Stop          func()
	Exit          func()
	ShowSession   func(id int64)
	DeleteSession func(id int64)
	PrevWeek      func()
	NextWeek      func()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout top to bottom: focus controls, settings form,
// session history, weekly stats. Handlers are invoked on user actions.
func (rv *RootView) Build(cb Callbacks) {
	if rv == nil {
		return
	}
	row := 0
	rv.Focus, row = NewFocusPanel(row, cb.Calibrate, cb.StartSession, cb.Stop, cb.Exit)

	rv.Settings = NewSettingsPanel(rv.cfg, rv.cfgPath, rv.logger)
	row = rv.Settings.Build(row)

	rv.History, row = NewHistoryPanel(row, rv.logger, cb.ShowSession, cb.DeleteSession)
	rv.Weekly, _ = NewWeeklyPanel(row, cb.PrevWeek, cb.NextWeek)
}

// --- SessionPresenter view contract methods ---

// SetPhase updates the state label text.
func (rv *RootView) SetPhase(text string) {
	if rv != nil && rv.Focus != nil {
		rv.Focus.SetPhase(text)
	}
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Focus != nil {
		rv.Focus.SetStatus(text)
	}
}

// SetFocus updates the focused/unfocused indicator.
func (rv *RootView) SetFocus(focused, scoring bool) {
	if rv != nil && rv.Focus != nil {
		rv.Focus.SetFocus(focused, scoring)
	}
}

// SetClock updates the elapsed/remaining clock.
func (rv *RootView) SetClock(elapsed, remaining time.Duration) {
	if rv != nil && rv.Focus != nil {
		rv.Focus.SetClock(elapsed, remaining)
	}
}

// ShowSummary displays the end-of-session summary line.
func (rv *RootView) ShowSummary(text string) {
	if rv != nil && rv.Focus != nil {
		rv.Focus.ShowSummary(text)
	}
}

// SetRunning toggles the control buttons and locks settings while a
// calibration or session is active.
func (rv *RootView) SetRunning(running bool) {
	if rv == nil {
		return
	}
	if rv.Focus != nil {
		rv.Focus.SetRunning(running)
	}
	if rv.Settings != nil {
		rv.Settings.SetEditable(!running)
	}
}

// --- HistoryPresenter view contract methods ---

// SetRows proxies to the history panel.
func (rv *RootView) SetRows(rows []presenter.HistoryRow) {
	if rv != nil && rv.History != nil {
		rv.History.SetRows(rows)
	}
}

// ShowDetail proxies to the history panel.
func (rv *RootView) ShowDetail(text string, strip image.Image) {
	if rv != nil && rv.History != nil {
		rv.History.ShowDetail(text, strip)
	}
}

// SetDeleteLabel proxies to the history panel.
func (rv *RootView) SetDeleteLabel(text string) {
	if rv != nil && rv.History != nil {
		rv.History.SetDeleteLabel(text)
	}
}

// SetHint proxies to the history panel.
func (rv *RootView) SetHint(text string) {
	if rv != nil && rv.History != nil {
		rv.History.SetHint(text)
	}
}

// --- WeeklyPresenter view contract methods ---

// SetWeekLabel proxies to the weekly panel.
func (rv *RootView) SetWeekLabel(text string) {
	if rv != nil && rv.Weekly != nil {
		rv.Weekly.SetWeekLabel(text)
	}
}

// SetBars proxies to the weekly panel.
func (rv *RootView) SetBars(img image.Image) {
	if rv != nil && rv.Weekly != nil {
		rv.Weekly.SetBars(img)
	}
}

// SetBreakdown proxies to the weekly panel.
func (rv *RootView) SetBreakdown(text string) {
	if rv != nil && rv.Weekly != nil {
		rv.Weekly.SetBreakdown(text)
	}
}

// SetNextEnabled proxies to the weekly panel.
func (rv *RootView) SetNextEnabled(enabled bool) {
	if rv != nil && rv.Weekly != nil {
		rv.Weekly.SetNextEnabled(enabled)
	}
}
