package presenter

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/focus-tracker-go/ui/images"
	"github.com/soocke/focus-tracker-go/ui/model"
)

// WeeklyProvider narrows the store surface for weekly aggregation.
type WeeklyProvider interface {
	WeeklyStats(ctx context.Context, weekStart int64) ([7]int64, error)
}

// WeeklyView is the view surface the weekly presenter drives.
type WeeklyView interface {
	SetWeekLabel(text string)
	SetBars(img image.Image)
	SetBreakdown(text string)
	SetNextEnabled(enabled bool)
}

// Bar chart display size.
const (
	barsW = 360
	barsH = 120
)

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeeklyPresenter shows per-day study totals for one week and handles the
// prev/next navigation, clamped at the week containing now.
type WeeklyPresenter struct {
	stats  WeeklyProvider
	model  *model.WeeklyModel
	view   WeeklyView
	logger *slog.Logger
}

// NewWeeklyPresenter returns a wired presenter positioned by its model.
func NewWeeklyPresenter(stats WeeklyProvider, m *model.WeeklyModel, view WeeklyView, logger *slog.Logger) *WeeklyPresenter {
	return &WeeklyPresenter{stats: stats, model: m, view: view, logger: logger}
}

// Reload queries the shown week and renders label, bars and breakdown.
func (p *WeeklyPresenter) Reload(now time.Time) {
	if p == nil || p.stats == nil || p.view == nil {
		return
	}
	ws := p.model.WeekStart()
	totals, err := p.stats.WeeklyStats(context.Background(), ws.Unix())
	if err != nil {
		if p.logger != nil {
			p.logger.Error("weekly stats", "week_start", ws, "error", err)
		}
		p.view.SetBreakdown("weekly stats unavailable: " + err.Error())
		return
	}
	p.model.SetTotals(totals)
	p.view.SetWeekLabel(weekLabel(ws))
	p.view.SetBars(images.WeeklyBars(totals, barsW, barsH))
	p.view.SetBreakdown(breakdownText(totals))
	p.view.SetNextEnabled(!p.model.AtCurrentWeek(now))
}

// Prev moves one week back and reloads.
func (p *WeeklyPresenter) Prev(now time.Time) {
	if p == nil {
		return
	}
	p.model.Prev()
	p.Reload(now)
}

// Next moves one week forward and reloads; at the current week it is a no-op.
func (p *WeeklyPresenter) Next(now time.Time) {
	if p == nil {
		return
	}
	if p.model.Next(now) {
		p.Reload(now)
	}
}

func weekLabel(ws time.Time) string {
	end := ws.AddDate(0, 0, 6)
	return ws.Format("Jan 2") + " to " + end.Format("Jan 2, 2006")
}

func breakdownText(totals [7]int64) string {
	var parts []string
	for i, secs := range totals {
		if secs <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", dayNames[i], formatHourMin(secs)))
	}
	if len(parts) == 0 {
		return "no sessions this week"
	}
	return strings.Join(parts, "   ")
}

func formatHourMin(secs int64) string {
	return fmt.Sprintf("%d:%02d", secs/3600, (secs%3600)/60)
}
