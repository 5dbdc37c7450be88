package utils

import "time"

// WeekStart returns the Monday on or before t, truncated to midnight.
// Sunday counts as the end of the previous week, so cards drawn on a
// Sunday still belong to the Monday six days earlier.
func WeekStart(t time.Time) time.Time {
	day := int(t.Weekday()) // Sunday=0 .. Saturday=6
	offset := 1 - day
	if day == 0 {
		offset = -6
	}
	d := t.AddDate(0, 0, offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
