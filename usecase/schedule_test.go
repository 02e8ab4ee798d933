package usecase

import (
	"testing"
	"time"

	"main/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsDueOnDaily(t *testing.T) {
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		StartDate: date(2024, 1, 1),
		IsActive:  true,
	}

	// Due every day from startDate onward when no endDate is set
	for d := 0; d < 60; d++ {
		day := date(2024, 1, 1).AddDate(0, 0, d)
		if !IsDueOn(habit, day) {
			t.Errorf("daily habit should be due on %s", day.Format("2006-01-02"))
		}
	}

	if IsDueOn(habit, date(2023, 12, 31)) {
		t.Error("habit should not be due before its start date")
	}
}

func TestIsDueOnDayGranularity(t *testing.T) {
	// Start date stored with a time-of-day component must not push the first
	// occurrence into the next day.
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		StartDate: time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC),
		IsActive:  true,
	}

	morning := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	if !IsDueOn(habit, morning) {
		t.Error("habit should be due on its start day regardless of time of day")
	}
}

func TestIsDueOnEndDate(t *testing.T) {
	habit := &model.Habit{
		Frequency: model.FrequencyDaily,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 10),
		IsActive:  true,
	}

	if !IsDueOn(habit, date(2024, 1, 10)) {
		t.Error("end date is inclusive, habit should still be due on it")
	}
	if IsDueOn(habit, date(2024, 1, 11)) {
		t.Error("habit should not be due after its end date")
	}
}

func TestIsDueOnWeekly(t *testing.T) {
	// Monday=0 .. Sunday=6; due Mon/Wed/Fri
	habit := &model.Habit{
		Frequency:  model.FrequencyWeekly,
		DaysOfWeek: []int{0, 2, 4},
		StartDate:  date(2024, 1, 1),
		IsActive:   true,
	}

	// 2024-01-01 is a Monday. Sample four consecutive weeks.
	for d := 0; d < 28; d++ {
		day := date(2024, 1, 1).AddDate(0, 0, d)
		wd := isoWeekday(day)
		want := wd == 0 || wd == 2 || wd == 4
		if got := IsDueOn(habit, day); got != want {
			t.Errorf("weekly habit on %s (weekday %d): got %v, want %v",
				day.Format("2006-01-02"), wd, got, want)
		}
	}
}

func TestIsDueOnWeeklyEmptyDays(t *testing.T) {
	habit := &model.Habit{
		Frequency: model.FrequencyWeekly,
		StartDate: date(2024, 1, 1),
		IsActive:  true,
	}

	for d := 0; d < 7; d++ {
		if IsDueOn(habit, date(2024, 1, 1).AddDate(0, 0, d)) {
			t.Error("weekly habit with no selected days is never due")
		}
	}
}

func TestIsDueOnMonthly(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		day   time.Time
		want  bool
	}{
		{"same day next month", date(2024, 1, 15), date(2024, 2, 15), true},
		{"different day of month", date(2024, 1, 15), date(2024, 2, 16), false},
		{"start day itself", date(2024, 1, 15), date(2024, 1, 15), true},
		// Start day 31: short months never match, no clamping to month-end.
		{"day 31 in march", date(2024, 1, 31), date(2024, 3, 31), true},
		{"day 31 skips february", date(2024, 1, 31), date(2024, 2, 29), false},
		{"day 31 skips april", date(2024, 1, 31), date(2024, 4, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habit := &model.Habit{
				Frequency: model.FrequencyMonthly,
				StartDate: tt.start,
				IsActive:  true,
			}
			if got := IsDueOn(habit, tt.day); got != tt.want {
				t.Errorf("IsDueOn(%s) = %v, want %v", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	monday := date(2024, 1, 1)
	for d := 0; d < 7; d++ {
		day := monday.AddDate(0, 0, d)
		if got := StartOfWeek(day); !got.Equal(monday) {
			t.Errorf("StartOfWeek(%s) = %s, want %s",
				day.Format("2006-01-02"), got.Format("2006-01-02"), monday.Format("2006-01-02"))
		}
	}

	// Next Monday starts a new week
	if got := StartOfWeek(date(2024, 1, 8)); !got.Equal(date(2024, 1, 8)) {
		t.Errorf("StartOfWeek on a Monday should return that Monday, got %s", got.Format("2006-01-02"))
	}
}
