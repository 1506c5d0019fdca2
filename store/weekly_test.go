package store

import (
	"context"
	"testing"
	"time"

	"github.com/soocke/focus-tracker-go/domain/session"
)

// 2024-03-04 was a Monday.
var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)

func TestWeeklyStats_BucketsByStartDay(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	at := func(day int, hour, min int) int64 {
		return monday.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute).Unix()
	}
	save := func(start, dur int64) {
		mustSave(t, s, session.Record{Start: start, End: start + dur, FocusPercent: 100, Timeline: []bool{true}})
	}

	save(at(0, 9, 0), 1800)  // Monday
	save(at(2, 10, 0), 3600) // Wednesday
	save(at(2, 15, 0), 3600) // Wednesday again
	save(at(4, 23, 45), 900) // Friday

	// Neighbouring weeks must not leak in.
	save(monday.Unix()-3600, 1200)
	save(monday.AddDate(0, 0, 7).Unix(), 600)

	got, err := s.WeeklyStats(ctx, monday.Unix())
	if err != nil {
		t.Fatalf("weekly stats: %v", err)
	}
	want := [7]int64{1800, 0, 7200, 0, 900, 0, 0}
	if got != want {
		t.Fatalf("weekly totals=%v want %v", got, want)
	}
}

func TestWeeklyStats_WindowBoundaries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	weekStart := monday.Unix()
	weekEnd := monday.AddDate(0, 0, 7).Unix()

	// Starts at Monday midnight of the target week.
	mustSave(t, s, session.Record{Start: weekStart, End: weekStart + 300})
	// Ends exactly at the following Monday midnight.
	mustSave(t, s, session.Record{Start: weekEnd - 600, End: weekEnd})
	// Ends one second before the target week begins.
	mustSave(t, s, session.Record{Start: weekStart - 601, End: weekStart - 1})
	// Starts exactly at the following Monday midnight.
	mustSave(t, s, session.Record{Start: weekEnd, End: weekEnd + 600})

	got, err := s.WeeklyStats(ctx, weekStart)
	if err != nil {
		t.Fatalf("weekly stats: %v", err)
	}
	if got[0] != 300 {
		t.Fatalf("session starting at Monday midnight belongs to bucket 0, got %v", got)
	}
	if got[6] != 600 {
		t.Fatalf("session ending at the next Monday midnight belongs to bucket 6, got %v", got)
	}
	var total int64
	for _, v := range got {
		total += v
	}
	if total != 900 {
		t.Fatalf("sessions outside the window must not count, totals %v", got)
	}
}

func TestWeeklyStats_EmptyWeek(t *testing.T) {
	s := openTestStore(t)
	got, err := s.WeeklyStats(context.Background(), monday.Unix())
	if err != nil {
		t.Fatalf("weekly stats: %v", err)
	}
	if got != [7]int64{} {
		t.Fatalf("empty week must yield zero totals, got %v", got)
	}
}
