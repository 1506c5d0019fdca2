package view

import (
	"image"

	"github.com/soocke/focus-tracker-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Bar chart placeholder size; SetBars adopts whatever arrives.
const (
	weeklyBarsW = 360
	weeklyBarsH = 120
)

// WeeklyPanel shows one week of focus time as a bar chart with
// prev/next navigation.
type WeeklyPanel interface {
	SetWeekLabel(text string)
	SetBars(img image.Image)
	SetBreakdown(text string)
	SetNextEnabled(enabled bool)
}

type weeklyPanel struct {
	weekLbl      *LabelWidget
	barsLbl      *LabelWidget
	breakdownLbl *LabelWidget
	nextBtn      *ButtonWidget
	prevBars     *Img // last Tk photo image instance for the chart
}

// NewWeeklyPanel grids the panel starting at startRow and returns the view
// and the next free row.
func NewWeeklyPanel(startRow int, onPrev, onNext func()) (WeeklyPanel, int) {
	v := &weeklyPanel{}
	row := startRow

	header := Label(Txt("Weekly stats"), Anchor("w"))
	Grid(header, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	row++

	prevBtn := Button(Txt("< Prev"), Command(func() {
		if onPrev != nil {
			onPrev()
		}
	}))
	Grid(prevBtn, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	v.weekLbl = Label(Txt(""), Anchor("center"))
	Grid(v.weekLbl, Row(row), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.nextBtn = Button(Txt("Next >"), Command(func() {
		if onNext != nil {
			onNext()
		}
	}))
	Grid(v.nextBtn, Row(row), Column(2), Sticky("e"), Padx("0.4m"), Pady("0.2m"))
	row++

	v.prevBars = NewPhoto(Data(images.EncodePNG(images.WeeklyBars([7]int64{}, weeklyBarsW, weeklyBarsH))))
	v.barsLbl = Label(Image(v.prevBars), Borderwidth(1), Relief("sunken"))
	Grid(v.barsLbl, Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	row++

	v.breakdownLbl = Label(Txt("no sessions this week"), Anchor("w"))
	Grid(v.breakdownLbl, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++

	return v, row
}

// SetWeekLabel updates the displayed week range.
func (v *weeklyPanel) SetWeekLabel(text string) {
	if v == nil || v.weekLbl == nil {
		return
	}
	v.weekLbl.Configure(Txt(text))
}

// SetBars swaps in a freshly rendered bar chart.
func (v *weeklyPanel) SetBars(img image.Image) {
	if v == nil || v.barsLbl == nil || img == nil {
		return
	}
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if v.prevBars != nil {
		v.prevBars.Delete()
	}
	v.prevBars = NewPhoto(Data(images.EncodePNG(img)))
	v.barsLbl.Configure(Image(v.prevBars))
}

// SetBreakdown updates the per-day totals line under the chart.
func (v *weeklyPanel) SetBreakdown(text string) {
	if v == nil || v.breakdownLbl == nil {
		return
	}
	v.breakdownLbl.Configure(Txt(text))
}

// SetNextEnabled toggles forward navigation, disabled at the current week.
func (v *weeklyPanel) SetNextEnabled(enabled bool) {
	if v == nil || v.nextBtn == nil {
		return
	}
	if enabled {
		v.nextBtn.Configure(State("normal"))
	} else {
		v.nextBtn.Configure(State("disabled"))
	}
}
