package dto

import (
	"time"

	"main/model"
)

type CreateHabitRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Category     string     `json:"category" binding:"required"`
	Frequency    string     `json:"frequency" binding:"required"`
	DaysOfWeek   []int      `json:"days_of_week"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Color        string     `json:"color"`
	ReminderTime string     `json:"reminder_time" binding:"omitempty,remindertime"`
}

// UpdateHabitRequest is a partial update: fields left at their zero value are
// not touched, so Description, Color, ReminderTime and EndDate cannot be
// cleared back to empty through this request. IsActive is a pointer because
// false is a meaningful value to set.
type UpdateHabitRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Frequency    string     `json:"frequency"`
	DaysOfWeek   []int      `json:"days_of_week"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Color        string     `json:"color"`
	ReminderTime string     `json:"reminder_time" binding:"omitempty,remindertime"`
	IsActive     *bool      `json:"is_active"`
}

type CompleteHabitRequest struct {
	Note string `json:"note"`
}

type CompletionResponse struct {
	LogID         string    `json:"log_id"`
	HabitID       string    `json:"habit_id"`
	Day           string    `json:"day"`
	CompletedAt   time.Time `json:"completed_at"`
	Note          string    `json:"note,omitempty"`
	PointsAwarded int       `json:"points_awarded"`
}

// ToHabit maps a create request onto the storage model. Zero-value dates stay
// zero so the service layer can apply its defaults.
func (r *CreateHabitRequest) ToHabit(userID string) *model.Habit {
	h := &model.Habit{
		UserID:       userID,
		Title:        r.Title,
		Description:  r.Description,
		Category:     model.Category(r.Category),
		Frequency:    model.Frequency(r.Frequency),
		DaysOfWeek:   r.DaysOfWeek,
		Color:        r.Color,
		ReminderTime: r.ReminderTime,
		IsActive:     true,
	}
	if r.StartDate != nil {
		h.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		h.EndDate = *r.EndDate
	}
	return h
}

// ToHabitUpdates maps an update request onto the partial-update model the
// service merges over the stored habit. IsActive travels separately since a
// zero value is indistinguishable from "leave it alone".
func (r *UpdateHabitRequest) ToHabitUpdates() *model.Habit {
	h := &model.Habit{
		Title:        r.Title,
		Description:  r.Description,
		Category:     model.Category(r.Category),
		Frequency:    model.Frequency(r.Frequency),
		DaysOfWeek:   r.DaysOfWeek,
		Color:        r.Color,
		ReminderTime: r.ReminderTime,
	}
	if r.StartDate != nil {
		h.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		h.EndDate = *r.EndDate
	}
	return h
}
