package model

import "time"

type Category string
type Frequency string

const (
	CategoryHealth       Category = "HEALTH"
	CategoryFitness      Category = "FITNESS"
	CategoryLearning     Category = "LEARNING"
	CategoryProductivity Category = "PRODUCTIVITY"
	CategoryOther        Category = "OTHER"

	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

type Habit struct {
	HabitID      string    `bson:"_id,omitempty" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	Title        string    `bson:"title" json:"title" binding:"required"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Category     Category  `bson:"category" json:"category"`
	Frequency    Frequency `bson:"frequency" json:"frequency"`
	DaysOfWeek   []int     `bson:"days_of_week,omitempty" json:"days_of_week,omitempty"` // 0=Monday .. 6=Sunday, weekly only
	StartDate    time.Time `bson:"start_date" json:"start_date"`
	EndDate      time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Color        string    `bson:"color,omitempty" json:"color,omitempty"`
	ReminderTime string    `bson:"reminder_time,omitempty" json:"reminder_time,omitempty"` // "HH:MM"
	IsActive     bool      `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// HabitWithStatus is the per-habit view model recomputed on every analytics
// refresh. It is never persisted.
type HabitWithStatus struct {
	Habit
	IsDueToday             bool `json:"is_due_today"`
	CompletedToday         bool `json:"completed_today"`
	Streak                 int  `json:"streak"`
	LongestStreak          int  `json:"longest_streak"`
	CompletionsLast7Days   int  `json:"completions_last_7_days"`
	OpportunitiesLast7Days int  `json:"opportunities_last_7_days"`
	Points                 int  `json:"points"` // display stat: unique completion days * 10
}
