package presenter

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/soocke/focus-tracker-go/domain/session"
	"github.com/soocke/focus-tracker-go/ui/model"
)

type fakeWeekly struct {
	totals   map[int64][7]int64
	err      error
	requests []int64
}

func (f *fakeWeekly) WeeklyStats(ctx context.Context, weekStart int64) ([7]int64, error) {
	f.requests = append(f.requests, weekStart)
	if f.err != nil {
		return [7]int64{}, f.err
	}
	return f.totals[weekStart], nil
}

type mockWeeklyView struct {
	weekLabels  []string
	bars        image.Image
	breakdowns  []string
	nextEnabled []bool
}

func (v *mockWeeklyView) SetWeekLabel(text string)   { v.weekLabels = append(v.weekLabels, text) }
func (v *mockWeeklyView) SetBars(img image.Image)    { v.bars = img }
func (v *mockWeeklyView) SetBreakdown(text string)   { v.breakdowns = append(v.breakdowns, text) }
func (v *mockWeeklyView) SetNextEnabled(state bool)  { v.nextEnabled = append(v.nextEnabled, state) }
func (v *mockWeeklyView) lastNextEnabled() bool {
	if len(v.nextEnabled) == 0 {
		return false
	}
	return v.nextEnabled[len(v.nextEnabled)-1]
}

func TestWeeklyPresenter_ReloadRendersCurrentWeek(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 0, 0, 0, time.Local)
	weekStart := session.WeekStart(now).Unix()
	stats := &fakeWeekly{totals: map[int64][7]int64{
		weekStart: {1800, 0, 7200, 0, 900, 0, 0},
	}}
	view := &mockWeeklyView{}
	p := NewWeeklyPresenter(stats, model.NewWeeklyModel(now), view, discardLogger)

	p.Reload(now)
	if len(stats.requests) != 1 || stats.requests[0] != weekStart {
		t.Fatalf("requests=%v want [%d]", stats.requests, weekStart)
	}
	if view.bars == nil {
		t.Fatal("bars image missing")
	}
	breakdown := view.breakdowns[len(view.breakdowns)-1]
	for _, want := range []string{"Mon 0:30", "Wed 2:00", "Fri 0:15"} {
		if !strings.Contains(breakdown, want) {
			t.Fatalf("breakdown %q missing %q", breakdown, want)
		}
	}
	if strings.Contains(breakdown, "Tue") {
		t.Fatalf("idle days must be omitted: %q", breakdown)
	}
	if view.lastNextEnabled() {
		t.Fatal("next must be disabled on the current week")
	}
	if len(view.weekLabels) == 0 || !strings.Contains(view.weekLabels[0], "Mar 4") {
		t.Fatalf("week label %v", view.weekLabels)
	}
}

func TestWeeklyPresenter_PrevAndClampedNext(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 0, 0, 0, time.Local)
	currentWeek := session.WeekStart(now)
	stats := &fakeWeekly{totals: map[int64][7]int64{}}
	view := &mockWeeklyView{}
	p := NewWeeklyPresenter(stats, model.NewWeeklyModel(now), view, discardLogger)

	p.Prev(now)
	if want := currentWeek.AddDate(0, 0, -7).Unix(); stats.requests[len(stats.requests)-1] != want {
		t.Fatalf("prev requested %d want %d", stats.requests[len(stats.requests)-1], want)
	}
	if !view.lastNextEnabled() {
		t.Fatal("next must be enabled behind the current week")
	}

	p.Next(now)
	if stats.requests[len(stats.requests)-1] != currentWeek.Unix() {
		t.Fatalf("next requested %d want %d", stats.requests[len(stats.requests)-1], currentWeek.Unix())
	}
	if view.lastNextEnabled() {
		t.Fatal("next must be disabled back on the current week")
	}

	before := len(stats.requests)
	p.Next(now)
	if len(stats.requests) != before {
		t.Fatal("clamped next must not requery")
	}
}

func TestWeeklyPresenter_EmptyWeekBreakdown(t *testing.T) {
	now := time.Now()
	stats := &fakeWeekly{totals: map[int64][7]int64{}}
	view := &mockWeeklyView{}
	p := NewWeeklyPresenter(stats, model.NewWeeklyModel(now), view, discardLogger)

	p.Reload(now)
	if got := view.breakdowns[len(view.breakdowns)-1]; got != "no sessions this week" {
		t.Fatalf("breakdown %q", got)
	}
}

func TestWeeklyPresenter_ErrorSurfacesBreakdownHint(t *testing.T) {
	now := time.Now()
	stats := &fakeWeekly{err: errors.New("db closed")}
	view := &mockWeeklyView{}
	p := NewWeeklyPresenter(stats, model.NewWeeklyModel(now), view, discardLogger)

	p.Reload(now)
	got := view.breakdowns[len(view.breakdowns)-1]
	if !strings.Contains(got, "weekly stats unavailable") {
		t.Fatalf("breakdown %q", got)
	}
	if len(view.weekLabels) != 0 {
		t.Fatal("failed reload must not render a week label")
	}
}
