package presenter

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/focus-tracker-go/domain/session"
	"github.com/soocke/focus-tracker-go/ui/images"
	"github.com/soocke/focus-tracker-go/ui/model"
)

// SessionDirectory narrows the store surface the history presenter needs.
type SessionDirectory interface {
	LoadSessions(ctx context.Context) ([]session.Record, error)
	SessionByID(ctx context.Context, id int64) (*session.Record, error)
	DeleteSession(ctx context.Context, id int64) error
}

// HistoryRow is one display row of the history panel.
type HistoryRow struct {
	ID    int64
	Label string
}

// HistoryView is the view surface the history presenter drives.
type HistoryView interface {
	SetRows(rows []HistoryRow)
	ShowDetail(text string, strip image.Image)
	SetDeleteLabel(text string)
	SetHint(text string)
}

// Timeline strip display size.
const (
	stripW = 360
	stripH = 22
)

// HistoryPresenter lists stored sessions and serves the per-session View and
// Delete actions. Delete is a two-step inline confirmation tracked by the
// history model.
type HistoryPresenter struct {
	dir    SessionDirectory
	model  *model.HistoryModel
	view   HistoryView
	logger *slog.Logger
}

// NewHistoryPresenter returns a wired presenter.
func NewHistoryPresenter(dir SessionDirectory, m *model.HistoryModel, view HistoryView, logger *slog.Logger) *HistoryPresenter {
	return &HistoryPresenter{dir: dir, model: m, view: view, logger: logger}
}

// Reload fetches all sessions, newest first, and rebuilds the rows.
func (p *HistoryPresenter) Reload() {
	if p == nil || p.dir == nil || p.view == nil {
		return
	}
	recs, err := p.dir.LoadSessions(context.Background())
	if err != nil {
		if p.logger != nil {
			p.logger.Error("load sessions", "error", err)
		}
		p.view.SetHint("history unavailable: " + err.Error())
		return
	}
	p.model.SetRecords(recs)
	rows := make([]HistoryRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, HistoryRow{ID: r.ID, Label: rowLabel(r)})
	}
	p.view.SetRows(rows)
	p.view.SetDeleteLabel("Delete")
	if len(recs) == 0 {
		p.view.SetHint("no sessions recorded yet")
	} else {
		p.view.SetHint(fmt.Sprintf("%d sessions", len(recs)))
	}
}

// Show renders the selected session's summary and timeline strip. Selecting
// a session cancels any pending delete confirmation.
func (p *HistoryPresenter) Show(id int64) {
	if p == nil || p.view == nil {
		return
	}
	rec, ok := p.model.ByID(id)
	if !ok {
		got, err := p.dir.SessionByID(context.Background(), id)
		if err != nil {
			if p.logger != nil {
				p.logger.Error("load session", "id", id, "error", err)
			}
			p.view.SetHint("session unavailable: " + err.Error())
			return
		}
		if got == nil {
			p.view.SetHint("session not found")
			return
		}
		rec = *got
	}
	p.model.DisarmDelete()
	p.view.SetDeleteLabel("Delete")
	p.view.ShowDetail(detailText(rec), images.TimelineStrip(rec.Timeline, stripW, stripH))
}

// Delete removes a session on the second confirming call for the same id.
func (p *HistoryPresenter) Delete(id int64) {
	if p == nil || p.dir == nil || p.view == nil {
		return
	}
	if !p.model.ArmDelete(id) {
		p.view.SetDeleteLabel("Confirm delete")
		p.view.SetHint("press delete again to confirm")
		return
	}
	if err := p.dir.DeleteSession(context.Background(), id); err != nil {
		if p.logger != nil {
			p.logger.Error("delete session", "id", id, "error", err)
		}
		p.view.SetHint("delete failed: " + err.Error())
		p.view.SetDeleteLabel("Delete")
		return
	}
	p.Reload()
}

func rowLabel(r session.Record) string {
	start := time.Unix(r.Start, 0).Format("2006-01-02 15:04")
	return fmt.Sprintf("%s  %s  %.0f%%", start, formatMinSec(r.Duration()), r.FocusPercent)
}

func detailText(r session.Record) string {
	start := time.Unix(r.Start, 0).Format("Mon Jan 2 15:04")
	return fmt.Sprintf("%s, %s, %.1f%% focused (%d samples)",
		start, formatMinSec(r.Duration()), r.FocusPercent, len(r.Timeline))
}

func formatMinSec(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
