package view

import (
	"fmt"
	"time"

	"github.com/soocke/focus-tracker-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// FocusPanel shows the live session state (phase, status line, focus
// indicator, session clock) and owns the primary action buttons.
type FocusPanel interface {
	SetPhase(text string)
	SetStatus(text string)
	SetFocus(focused, scoring bool)
	SetClock(elapsed, remaining time.Duration)
	ShowSummary(text string)
	SetRunning(running bool)
}

type focusPanel struct {
	phaseLbl   *LabelWidget
	focusLbl   *LabelWidget
	clockLbl   *LabelWidget
	statusLbl  *LabelWidget
	summaryLbl *LabelWidget

	calibrateBtn *ButtonWidget
	startBtn     *ButtonWidget
	stopBtn      *ButtonWidget
}

// NewFocusPanel grids the panel's widgets starting at startRow and returns
// the view and the next free row. Handlers are invoked on user actions.
func NewFocusPanel(startRow int, onCalibrate, onStart, onStop, onExit func()) (FocusPanel, int) {
	v := &focusPanel{}
	row := startRow

	v.phaseLbl = Label(Txt("State: idle"), Borderwidth(1), Relief("ridge"))
	Grid(v.phaseLbl, Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	v.focusLbl = Label(Txt("--"), Width(11), Anchor("center"), Borderwidth(1), Relief("groove"))
	Grid(v.focusLbl, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	v.clockLbl = Label(Txt("00:00 elapsed, 00:00 left"), Anchor("w"))
	Grid(v.clockLbl, Row(row), Column(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	row++

	v.statusLbl = Label(Txt("press Start Calibration to begin"), Anchor("w"))
	Grid(v.statusLbl, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++

	v.summaryLbl = Label(Txt(""), Anchor("w"))
	Grid(v.summaryLbl, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++

	btnFrame := Frame()
	Grid(btnFrame, Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.3m"), Pady("0.3m"))
	v.calibrateBtn = Button(Txt("Start Calibration"), Command(onCalibrate))
	Grid(v.calibrateBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.startBtn = Button(Txt("Start Session"), Command(onStart))
	Grid(v.startBtn, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.stopBtn = Button(Txt("Stop"), Command(onStop))
	Grid(v.stopBtn, In(btnFrame), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++

	v.SetRunning(false)
	v.SetFocus(false, false)
	return v, row
}

// SetPhase updates the phase label text.
func (v *focusPanel) SetPhase(text string) {
	if v == nil || v.phaseLbl == nil {
		return
	}
	v.phaseLbl.Configure(Txt(text))
}

// SetStatus updates the status line.
func (v *focusPanel) SetStatus(text string) {
	if v == nil || v.statusLbl == nil {
		return
	}
	v.statusLbl.Configure(Txt(text))
}

// SetFocus colors the focus indicator. Outside a running session the
// indicator is neutral.
func (v *focusPanel) SetFocus(focused, scoring bool) {
	if v == nil || v.focusLbl == nil {
		return
	}
	p := theme.CurrentPalette()
	switch {
	case !scoring:
		v.focusLbl.Configure(Txt("--"), Background(p.Surface), Foreground(p.TextMuted))
	case focused:
		v.focusLbl.Configure(Txt("focused"), Background(p.Accent), Foreground("white"))
	default:
		v.focusLbl.Configure(Txt("unfocused"), Background(p.Danger), Foreground("white"))
	}
}

// SetClock updates the elapsed/remaining display.
func (v *focusPanel) SetClock(elapsed, remaining time.Duration) {
	if v == nil || v.clockLbl == nil {
		return
	}
	e, r := int(elapsed.Seconds()), int(remaining.Seconds())
	v.clockLbl.Configure(Txt(fmt.Sprintf("%02d:%02d elapsed, %02d:%02d left", e/60, e%60, r/60, r%60)))
}

// ShowSummary puts the finished session summary under the status line.
func (v *focusPanel) ShowSummary(text string) {
	if v == nil || v.summaryLbl == nil {
		return
	}
	v.summaryLbl.Configure(Txt(text))
}

// SetRunning toggles the action buttons for idle vs active phases.
func (v *focusPanel) SetRunning(running bool) {
	if v == nil {
		return
	}
	idleOnly, activeOnly := "normal", "disabled"
	if running {
		idleOnly, activeOnly = "disabled", "normal"
	}
	if v.calibrateBtn != nil {
		v.calibrateBtn.Configure(State(idleOnly))
	}
	if v.startBtn != nil {
		v.startBtn.Configure(State(activeOnly))
	}
	if v.stopBtn != nil {
		v.stopBtn.Configure(State(activeOnly))
	}
}
