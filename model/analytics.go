package model

// AnalyticsData is the portfolio-level roll-up over all of a user's habits.
// BestActiveStreak is the maximum current streak across habits, not a sum.
type AnalyticsData struct {
	TotalHabits       int               `json:"total_habits"`
	CompletedToday    int               `json:"completed_today"`
	PendingToday      int               `json:"pending_today"`
	BestActiveStreak  int               `json:"best_active_streak"`
	WeeklyCompletion  float64           `json:"weekly_completion"`
	TopHabitsByStreak []HabitWithStatus `json:"top_habits_by_streak"`
}

// PointsSummary pairs the stored points counter with its derived level/badge.
type PointsSummary struct {
	Points int    `json:"points"`
	Level  int    `json:"level"`
	Badge  string `json:"badge"`
}
