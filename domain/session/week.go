package session

import "time"

// WeekStart returns midnight of the Monday beginning ref's week, in ref's
// location. Weekly statistics and navigation are anchored on this value.
func WeekStart(ref time.Time) time.Time {
	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	back := (int(ref.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return midnight.AddDate(0, 0, -back)
}
