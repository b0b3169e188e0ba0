package helpers

import "time"

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return duration
}

// Calendar windows are half-open intervals [start, end) computed in the
// location of the reference time. A post created at exactly end belongs to
// the next window.

// DayWindow returns the bounds of the calendar day containing t.
func DayWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// ISOWeekWindow returns the bounds of the ISO week (Monday start) containing t.
func ISOWeekWindow(t time.Time) (start, end time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 { // time.Sunday
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = day.AddDate(0, 0, -(weekday - 1))
	return start, start.AddDate(0, 0, 7)
}

// MonthWindow returns the bounds of the calendar month containing t.
func MonthWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// YearWindow returns the bounds of the calendar year containing t.
func YearWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(1, 0, 0)
}
