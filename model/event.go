package model

import "time"

// Event is a one-off calendar entry with an optional timed reminder.
type Event struct {
	EventID     string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title" binding:"required"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	StartTime   time.Time `bson:"start_time" json:"start_time"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	ReminderAt  time.Time `bson:"reminder_at,omitempty" json:"reminder_at,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
