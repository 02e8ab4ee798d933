package dto

import (
	"time"

	"main/model"
)

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time" binding:"required"`
	Location    string     `json:"location"`
	ReminderAt  *time.Time `json:"reminder_at"`
}

type UpdateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	Location    string     `json:"location"`
	ReminderAt  *time.Time `json:"reminder_at"`
}

func (r *CreateEventRequest) ToEvent(userID string) *model.Event {
	e := &model.Event{
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		Location:    r.Location,
	}
	if r.ReminderAt != nil {
		e.ReminderAt = *r.ReminderAt
	}
	return e
}

func (r *UpdateEventRequest) ToEventUpdates() *model.Event {
	e := &model.Event{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
	}
	if r.StartTime != nil {
		e.StartTime = *r.StartTime
	}
	if r.ReminderAt != nil {
		e.ReminderAt = *r.ReminderAt
	}
	return e
}
