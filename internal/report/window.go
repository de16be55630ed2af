package report

import "time"

const dateLayout = "2006-01-02"

// Window is an inclusive calendar-day period.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartDate returns the inclusive start as YYYY-MM-DD.
func (w Window) StartDate() string {
	return w.Start.Format(dateLayout)
}

// EndDate returns the inclusive end as YYYY-MM-DD.
func (w Window) EndDate() string {
	return w.End.Format(dateLayout)
}

// Label renders the period for display.
func (w Window) Label() string {
	return w.StartDate() + " - " + w.EndDate()
}

// Contains reports whether the ISO date string falls inside the window.
// Lexicographic comparison is valid and intentional: the format is
// fixed-width.
func (w Window) Contains(date string) bool {
	return date >= w.StartDate() && date <= w.EndDate()
}

// LastWeeks returns a rolling lookback window of n weeks ending now.
func LastWeeks(n int, now time.Time) Window {
	return Window{Start: now.AddDate(0, 0, -7*n), End: now}
}

// CalendarWeek returns Monday of the current week through today.
func CalendarWeek(now time.Time) Window {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return Window{Start: now.AddDate(0, 0, -(weekday - 1)), End: now}
}

// CalendarMonth returns the first of the current month through today.
func CalendarMonth(now time.Time) Window {
	return Window{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// MonthKey returns the budget month selector (YYYY-MM-01) for now.
func MonthKey(now time.Time) string {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
}
