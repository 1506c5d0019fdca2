package store

import (
	"context"
	"fmt"
)

const weekSeconds = 7 * 24 * 60 * 60

// WeeklyStats sums session durations per weekday for the week starting at
// weekStart (unix seconds of a Monday midnight, see session.WeekStart).
// Buckets run Monday..Sunday; a session belongs to the week and day its
// start falls on.
func (s *Store) WeeklyStats(ctx context.Context, weekStart int64) ([7]int64, error) {
	var totals [7]int64
	rows, err := s.db.QueryContext(ctx, `
SELECT start_time, end_time
FROM sessions
WHERE start_time >= ? AND start_time < ?;
`, weekStart, weekStart+weekSeconds)
	if err != nil {
		return totals, fmt.Errorf("weekly stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var start, end int64
		if err := rows.Scan(&start, &end); err != nil {
			return totals, fmt.Errorf("scan weekly row: %w", err)
		}
		day := (start - weekStart) / (24 * 60 * 60)
		if day < 0 || day > 6 {
			continue
		}
		if dur := end - start; dur > 0 {
			totals[day] += dur
		}
	}
	if err := rows.Err(); err != nil {
		return totals, fmt.Errorf("iterate weekly rows: %w", err)
	}
	return totals, nil
}
