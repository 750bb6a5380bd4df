package boost

import "time"

// The competition week is a calendar week: Monday 00:00:00 UTC
// inclusive through the following Monday exclusive.

// WeekStart truncates t to the start of its competition week.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := t.Truncate(24 * time.Hour)
	// time.Weekday counts Sunday as 0; shift so Monday is the origin.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the exclusive end of the week starting at start.
func WeekEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, 7)
}

// InWeek reports whether t falls inside the week starting at start.
func InWeek(t, start time.Time) bool {
	return !t.Before(start) && t.Before(WeekEnd(start))
}

// AlignedToWeek reports whether t is exactly a week boundary.
func AlignedToWeek(t time.Time) bool {
	return t.UTC().Equal(WeekStart(t))
}
