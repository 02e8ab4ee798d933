package model

import "time"

// CompletionLog records that a habit was performed on a specific calendar day.
// Entries are immutable; at most one exists per (habit_id, user_id, day),
// enforced by a unique index on those three fields. Day holds the completion's
// calendar day formatted as "2006-01-02" in the user's local zone.
type CompletionLog struct {
	LogID       string    `bson:"_id,omitempty" json:"id"`
	HabitID     string    `bson:"habit_id" json:"habit_id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Day         string    `bson:"day" json:"day"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
	Note        string    `bson:"note,omitempty" json:"note,omitempty"`
}

// UserPoints is the authoritative cumulative points counter, incremented with
// a streak multiplier on each completion.
type UserPoints struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Points    int       `bson:"points" json:"points"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
