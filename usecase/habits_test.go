package usecase

import (
	"testing"
	"time"

	"main/model"
)

func validTestHabit() *model.Habit {
	return &model.Habit{
		Title:     "Morning Run",
		Category:  model.CategoryFitness,
		Frequency: model.FrequencyDaily,
		StartDate: date(2024, 1, 1),
		IsActive:  true,
	}
}

func TestValidateHabit(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(h *model.Habit)
		wantErr bool
	}{
		{"valid daily", func(h *model.Habit) {}, false},
		{"empty title", func(h *model.Habit) { h.Title = "  " }, true},
		{"unknown category", func(h *model.Habit) { h.Category = "gardening" }, true},
		{"unknown frequency", func(h *model.Habit) { h.Frequency = "hourly" }, true},
		{"weekly without days", func(h *model.Habit) {
			h.Frequency = model.FrequencyWeekly
			h.DaysOfWeek = nil
		}, true},
		{"weekly with days", func(h *model.Habit) {
			h.Frequency = model.FrequencyWeekly
			h.DaysOfWeek = []int{0, 4}
		}, false},
		{"weekday out of range", func(h *model.Habit) {
			h.Frequency = model.FrequencyWeekly
			h.DaysOfWeek = []int{7}
		}, true},
		{"negative weekday", func(h *model.Habit) {
			h.Frequency = model.FrequencyWeekly
			h.DaysOfWeek = []int{-1}
		}, true},
		{"end before start", func(h *model.Habit) {
			h.EndDate = h.StartDate.AddDate(0, 0, -1)
		}, true},
		{"end equals start", func(h *model.Habit) {
			h.EndDate = h.StartDate
		}, false},
		{"bad reminder time", func(h *model.Habit) { h.ReminderTime = "25:00" }, true},
		{"good reminder time", func(h *model.Habit) { h.ReminderTime = "07:30" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validTestHabit()
			tt.mutate(h)
			err := validateHabit(h)
			if tt.wantErr && err == nil {
				t.Error("expected a validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestBuildStatus(t *testing.T) {
	today := date(2024, 1, 3) // Wednesday
	habit := validTestHabit()

	logs := []*model.CompletionLog{
		{Day: "2024-01-02", CompletedAt: date(2024, 1, 2).Add(7 * time.Hour)},
		{Day: "2024-01-03", CompletedAt: date(2024, 1, 3).Add(7 * time.Hour)},
		// Second entry for the same day must not inflate any statistic
		{Day: "2024-01-03", CompletedAt: date(2024, 1, 3).Add(21 * time.Hour)},
	}

	s := buildStatus(habit, logs, today)
	if !s.IsDueToday || !s.CompletedToday {
		t.Errorf("due/completed = %v/%v, want true/true", s.IsDueToday, s.CompletedToday)
	}
	if s.Streak != 2 || s.LongestStreak != 2 {
		t.Errorf("streaks = %d/%d, want 2/2", s.Streak, s.LongestStreak)
	}
	if s.CompletionsLast7Days != 2 {
		t.Errorf("CompletionsLast7Days = %d, want 2", s.CompletionsLast7Days)
	}
	if s.OpportunitiesLast7Days != 3 {
		t.Errorf("OpportunitiesLast7Days = %d, want 3 (Mon-Wed)", s.OpportunitiesLast7Days)
	}
	if s.Points != 20 {
		t.Errorf("display Points = %d, want 20 (2 unique days x 10)", s.Points)
	}
}

func TestBuildStatusNonUTCServer(t *testing.T) {
	// A completion at 01:00 local on a UTC+5 server is stored with a UTC
	// instant on the previous date. The recorded day string must win, or the
	// habit would read as not completed minutes after completing it.
	loc := time.FixedZone("UTC+5", 5*60*60)
	habit := validTestHabit()

	logs := []*model.CompletionLog{
		{Day: "2024-01-13", CompletedAt: time.Date(2024, 1, 12, 20, 0, 0, 0, time.UTC)},
	}

	now := time.Date(2024, 1, 13, 9, 0, 0, 0, loc)
	s := buildStatus(habit, logs, now)
	if !s.CompletedToday {
		t.Error("CompletedToday = false, want true")
	}
	if s.Streak != 1 || s.LongestStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", s.Streak, s.LongestStreak)
	}
}

func TestBuildStatusNoCompletions(t *testing.T) {
	today := date(2024, 1, 3)
	s := buildStatus(validTestHabit(), nil, today)
	if s.CompletedToday || s.Streak != 0 || s.LongestStreak != 0 || s.Points != 0 {
		t.Errorf("fresh habit should have zeroed stats, got %+v", s)
	}
	if !s.IsDueToday {
		t.Error("daily habit should still be due today")
	}
}
