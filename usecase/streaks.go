package usecase

import (
	"sort"
	"time"

	"main/model"
)

// UniqueDays reduces completion timestamps to their unique local calendar
// days. Multiple completions on one day count once.
func UniqueDays(times []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(times))
	var days []time.Time
	for _, t := range times {
		day := DayOf(t)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return days
}

// ComputeStreaks reconstructs the current and longest consecutive-day streaks
// from an unordered set of completion timestamps. The current streak is alive
// only if the most recent completion day is today or yesterday; the longest
// streak is computed from the full history either way.
func ComputeStreaks(completions []time.Time, today time.Time) (current, longest int) {
	days := UniqueDays(completions)
	if len(days) == 0 {
		return 0, 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	todayDay := DayOf(today)
	alive := days[0].Equal(todayDay) || days[0].Equal(todayDay.AddDate(0, 0, -1))

	run := 1
	longest = 1
	latestRun := 1
	inLatestRun := true
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			run++
		} else {
			run = 1
			inLatestRun = false
		}
		if inLatestRun {
			latestRun = run
		}
		if run > longest {
			longest = run
		}
	}

	if alive {
		current = latestRun
	}
	return current, longest
}

// WeekStats counts due-opportunities and fulfilled completions for the ISO
// calendar week containing today, truncated at today. Days after today never
// count as opportunities even though they fall in the same week.
func WeekStats(h *model.Habit, completions []time.Time, today time.Time) (done, opportunities int) {
	start := StartOfWeek(today)
	end := DayOf(today)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if IsDueOn(h, day) {
			opportunities++
		}
	}

	for _, day := range UniqueDays(completions) {
		if !day.Before(start) && !day.After(end) {
			done++
		}
	}
	return done, opportunities
}
