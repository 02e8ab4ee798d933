package usecase

import (
	"testing"
	"time"

	"main/model"
)

func TestComputeStreaksEmpty(t *testing.T) {
	current, longest := ComputeStreaks(nil, date(2024, 1, 12))
	if current != 0 || longest != 0 {
		t.Errorf("empty log: got current=%d longest=%d, want 0/0", current, longest)
	}
}

func TestComputeStreaks(t *testing.T) {
	today := date(2024, 1, 12)

	tests := []struct {
		name        string
		offsets     []int // completion days as today-minus-N
		wantCurrent int
		wantLongest int
	}{
		{"run ending today", []int{0, 1, 2}, 3, 3},
		{"alive via yesterday", []int{1, 2}, 2, 2},
		{"lapsed single day", []int{2}, 0, 1},
		{"lapsed run keeps longest", []int{2, 3, 4, 5}, 0, 4},
		{"old run of four then isolated yesterday", []int{10, 9, 8, 7, 1}, 1, 4},
		{"single completion today", []int{0}, 1, 1},
		{"two runs, newest wins as current", []int{0, 1, 5, 6, 7}, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var completions []time.Time
			for _, off := range tt.offsets {
				completions = append(completions, today.AddDate(0, 0, -off))
			}
			current, longest := ComputeStreaks(completions, today)
			if current != tt.wantCurrent || longest != tt.wantLongest {
				t.Errorf("got current=%d longest=%d, want %d/%d",
					current, longest, tt.wantCurrent, tt.wantLongest)
			}
		})
	}
}

func TestComputeStreaksDeduplicates(t *testing.T) {
	today := date(2024, 1, 12)
	completions := []time.Time{
		today.Add(8 * time.Hour),
		today.Add(20 * time.Hour), // same day, later clock time
		today.AddDate(0, 0, -1),
	}

	current, longest := ComputeStreaks(completions, today)
	if current != 2 || longest != 2 {
		t.Errorf("duplicate same-day entries must count once: got current=%d longest=%d", current, longest)
	}
}

func TestComputeStreaksOrderIndependent(t *testing.T) {
	today := date(2024, 1, 12)
	forward := []time.Time{
		today.AddDate(0, 0, -2),
		today.AddDate(0, 0, -1),
		today,
	}
	backward := []time.Time{forward[2], forward[1], forward[0]}

	c1, l1 := ComputeStreaks(forward, today)
	c2, l2 := ComputeStreaks(backward, today)
	if c1 != c2 || l1 != l2 {
		t.Errorf("input order changed the result: %d/%d vs %d/%d", c1, l1, c2, l2)
	}
}

func TestUniqueDays(t *testing.T) {
	base := date(2024, 3, 10)
	times := []time.Time{
		base.Add(6 * time.Hour),
		base.Add(18 * time.Hour),
		base.AddDate(0, 0, 1),
	}

	days := UniqueDays(times)
	if len(days) != 2 {
		t.Fatalf("got %d unique days, want 2", len(days))
	}
}

func TestWeekStatsDailyTruncation(t *testing.T) {
	// 2024-01-03 is a Wednesday; the week runs Mon 01-01 through Sun 01-07.
	today := date(2024, 1, 3)
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		StartDate: date(2023, 12, 1),
		IsActive:  true,
	}

	completions := []time.Time{
		date(2024, 1, 1),
		date(2024, 1, 3),
	}

	done, opportunities := WeekStats(habit, completions, today)
	if opportunities != 3 {
		t.Errorf("opportunities = %d, want 3 (Mon, Tue, Wed only)", opportunities)
	}
	if done != 2 {
		t.Errorf("done = %d, want 2", done)
	}
}

func TestWeekStatsIgnoresPreviousWeek(t *testing.T) {
	today := date(2024, 1, 3)
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		StartDate: date(2023, 12, 1),
		IsActive:  true,
	}

	// Sunday of the previous week must not count
	completions := []time.Time{date(2023, 12, 31)}

	done, _ := WeekStats(habit, completions, today)
	if done != 0 {
		t.Errorf("done = %d, want 0 for completions outside the current week", done)
	}
}

func TestWeekStatsHabitStartsMidWeek(t *testing.T) {
	// Habit starts Wednesday; Monday and Tuesday are not opportunities.
	today := date(2024, 1, 5) // Friday
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		StartDate: date(2024, 1, 3),
		IsActive:  true,
	}

	_, opportunities := WeekStats(habit, nil, today)
	if opportunities != 3 {
		t.Errorf("opportunities = %d, want 3 (Wed, Thu, Fri)", opportunities)
	}
}

func TestWeekStatsWeekly(t *testing.T) {
	// Due Monday and Friday; today is Wednesday.
	today := date(2024, 1, 3)
	habit := &model.Habit{
		Frequency:  model.FrequencyWeekly,
		DaysOfWeek: []int{0, 4},
		StartDate:  date(2023, 12, 1),
		IsActive:   true,
	}

	done, opportunities := WeekStats(habit, []time.Time{date(2024, 1, 1)}, today)
	if opportunities != 1 {
		t.Errorf("opportunities = %d, want 1 (Monday only, Friday is in the future)", opportunities)
	}
	if done != 1 {
		t.Errorf("done = %d, want 1", done)
	}
}
