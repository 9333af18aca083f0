package scoring

import "time"

// Streak holds the consecutive-day counters of a user.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// UpdateStreak computes the counters after logging an activity at now.
//
// Day boundaries are taken in loc (UTC when nil). Same-day repeats keep the
// streak (minimum 1), the next calendar day extends it, anything else,
// including no previous activity, restarts it at 1. A last activity dated
// after now counts as the same day.
func UpdateStreak(last *time.Time, current, longest int, now time.Time, loc *time.Location) Streak {
	if current < 0 {
		current = 0
	}
	if longest < 0 {
		longest = 0
	}

	next := 1
	if last != nil {
		switch days := DaysBetween(*last, now, loc); {
		case days <= 0:
			next = max(current, 1)
		case days == 1:
			next = current + 1
		}
	}

	return Streak{
		Current: next,
		Longest: max(next, longest),
	}
}

// CalendarDay returns the date of t in loc as a UTC midnight, which makes
// day arithmetic immune to DST shifts.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from one instant to another in loc.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	return int(CalendarDay(to, loc).Sub(CalendarDay(from, loc)).Hours() / 24)
}

// DayBounds returns [start, end) of the calendar day containing t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// DayKey formats the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return CalendarDay(t, loc).Format("2006-01-02")
}
