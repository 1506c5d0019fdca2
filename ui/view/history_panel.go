package view

import (
	"image"
	"log/slog"
	"strconv"

	"github.com/soocke/focus-tracker-go/ui/images"
	"github.com/soocke/focus-tracker-go/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Timeline strip placeholder size; ShowDetail adopts whatever arrives.
const (
	historyStripW = 360
	historyStripH = 22
)

// HistoryPanel lists stored sessions and shows the selected session's
// summary text and focus timeline strip.
type HistoryPanel interface {
	SetRows(rows []presenter.HistoryRow)
	ShowDetail(text string, strip image.Image)
	SetDeleteLabel(text string)
	SetHint(text string)
}

type historyPanel struct {
	logger *slog.Logger
	rows   []presenter.HistoryRow

	selector  *TComboboxWidget
	deleteBtn *ButtonWidget
	detailLbl *LabelWidget
	stripLbl  *LabelWidget
	hintLbl   *LabelWidget
	prevStrip *Img // last Tk photo image instance for the strip

	onShow   func(id int64)
	onDelete func(id int64)
}

// NewHistoryPanel grids the panel starting at startRow and returns the view
// and the next free row. onShow/onDelete receive the selected session id.
func NewHistoryPanel(startRow int, logger *slog.Logger, onShow, onDelete func(id int64)) (HistoryPanel, int) {
	v := &historyPanel{logger: logger, onShow: onShow, onDelete: onDelete}
	row := startRow

	header := Label(Txt("Session history"), Anchor("w"))
	Grid(header, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	row++

	v.selector = TCombobox(Values([]string{"<no sessions>"}), Width(38))
	Grid(v.selector, Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	v.selector.Current(0)
	Bind(v.selector, "<<ComboboxSelected>>", Command(func() { v.showSelected() }))
	viewBtn := Button(Txt("View"), Command(func() { v.showSelected() }))
	Grid(viewBtn, Row(row), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.deleteBtn = Button(Txt("Delete"), Command(func() { v.deleteSelected() }))
	Grid(v.deleteBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++

	v.detailLbl = Label(Txt("select a session"), Anchor("w"))
	Grid(v.detailLbl, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++

	v.prevStrip = NewPhoto(Data(images.EncodePNG(images.TimelineStrip(nil, historyStripW, historyStripH))))
	v.stripLbl = Label(Image(v.prevStrip), Borderwidth(1), Relief("sunken"))
	Grid(v.stripLbl, Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	row++

	v.hintLbl = Label(Txt(""), Anchor("w"))
	Grid(v.hintLbl, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++

	return v, row
}

// selectedID maps the combobox selection back to a session id.
func (v *historyPanel) selectedID() (int64, bool) {
	if v == nil || v.selector == nil || len(v.rows) == 0 {
		return 0, false
	}
	idxStr := v.selector.Current(nil)
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(v.rows) {
		if err != nil && v.logger != nil {
			v.logger.Error("history selection parse error", "error", err)
		}
		return 0, false
	}
	return v.rows[idx].ID, true
}

func (v *historyPanel) showSelected() {
	if id, ok := v.selectedID(); ok && v.onShow != nil {
		v.onShow(id)
	}
}

func (v *historyPanel) deleteSelected() {
	if id, ok := v.selectedID(); ok && v.onDelete != nil {
		v.onDelete(id)
	}
}

// SetRows replaces the selectable sessions, selecting the newest.
func (v *historyPanel) SetRows(rows []presenter.HistoryRow) {
	if v == nil || v.selector == nil {
		return
	}
	v.rows = rows
	labels := make([]string, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, r.Label)
	}
	if len(labels) == 0 {
		labels = []string{"<no sessions>"}
	}
	v.selector.Configure(Values(labels))
	v.selector.Current(0)
}

// ShowDetail updates the summary text and swaps in the timeline strip.
func (v *historyPanel) ShowDetail(text string, strip image.Image) {
	if v == nil {
		return
	}
	if v.detailLbl != nil {
		v.detailLbl.Configure(Txt(text))
	}
	if v.stripLbl != nil && strip != nil {
		// Replace previous photo to avoid retaining obsolete pixel buffers.
		if v.prevStrip != nil {
			v.prevStrip.Delete()
		}
		v.prevStrip = NewPhoto(Data(images.EncodePNG(strip)))
		v.stripLbl.Configure(Image(v.prevStrip))
	}
}

// SetDeleteLabel relabels the delete button (two-step confirmation).
func (v *historyPanel) SetDeleteLabel(text string) {
	if v == nil || v.deleteBtn == nil {
		return
	}
	v.deleteBtn.Configure(Txt(text))
}

// SetHint updates the panel's hint line.
func (v *historyPanel) SetHint(text string) {
	if v == nil || v.hintLbl == nil {
		return
	}
	v.hintLbl.Configure(Txt(text))
}
