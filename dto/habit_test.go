package dto

import (
	"testing"
	"time"
)

func TestToHabitUpdatesEmptyRequestChangesNothing(t *testing.T) {
	var req UpdateHabitRequest
	u := req.ToHabitUpdates()

	if u.Title != "" || u.Description != "" || u.Color != "" || u.ReminderTime != "" {
		t.Errorf("empty request must map to zero-valued updates, got %+v", u)
	}
	if u.Category != "" || u.Frequency != "" || u.DaysOfWeek != nil {
		t.Errorf("empty request must leave schedule fields zero, got %+v", u)
	}
	if !u.StartDate.IsZero() || !u.EndDate.IsZero() {
		t.Errorf("absent dates must stay zero, got start=%v end=%v", u.StartDate, u.EndDate)
	}
	if req.IsActive != nil {
		t.Error("absent is_active must stay nil")
	}
}

func TestToHabitDefaultsActive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	req := CreateHabitRequest{
		Title:     "Read",
		Category:  "LEARNING",
		Frequency: "DAILY",
		StartDate: &start,
	}

	h := req.ToHabit("user-1")
	if !h.IsActive {
		t.Error("new habits must start active")
	}
	if h.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", h.UserID, "user-1")
	}
	if !h.StartDate.Equal(start) {
		t.Errorf("StartDate = %v, want %v", h.StartDate, start)
	}
}
