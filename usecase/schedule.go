package usecase

import (
	"time"

	"main/model"
)

// DayOf strips the time-of-day component, leaving local midnight. All date
// arithmetic in the analytics engine happens at this granularity.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Weekday index with Monday=0 .. Sunday=6, matching Habit.DaysOfWeek.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// StartOfWeek returns the Monday of the calendar week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := DayOf(t)
	return day.AddDate(0, 0, -isoWeekday(day))
}

// IsDueOn reports whether the habit's recurrence rule schedules it on the
// given calendar date. Dates before StartDate or after EndDate (inclusive)
// are never due.
func IsDueOn(h *model.Habit, date time.Time) bool {
	day := DayOf(date)
	if day.Before(DayOf(h.StartDate)) {
		return false
	}
	if !h.EndDate.IsZero() && day.After(DayOf(h.EndDate)) {
		return false
	}

	switch h.Frequency {
	case model.FrequencyDaily:
		return true
	case model.FrequencyWeekly:
		wd := isoWeekday(day)
		for _, d := range h.DaysOfWeek {
			if d == wd {
				return true
			}
		}
		return false
	case model.FrequencyMonthly:
		// Literal day-of-month match: a habit started on the 31st is never
		// due in months with fewer days. Do not clamp to month-end.
		return day.Day() == h.StartDate.Day()
	}

	// Frequency is validated as a closed enum at creation; anything else is
	// an impossible state and is simply never due.
	return false
}
