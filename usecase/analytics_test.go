package usecase

import (
	"testing"

	"main/model"
)

func status(title string, due, completed bool, streak, longest, done, opp int) model.HabitWithStatus {
	return model.HabitWithStatus{
		Habit:                  model.Habit{Title: title},
		IsDueToday:             due,
		CompletedToday:         completed,
		Streak:                 streak,
		LongestStreak:          longest,
		CompletionsLast7Days:   done,
		OpportunitiesLast7Days: opp,
	}
}

func TestRollupEmpty(t *testing.T) {
	data := Rollup(nil)
	if data.TotalHabits != 0 || data.CompletedToday != 0 || data.PendingToday != 0 {
		t.Errorf("empty rollup has non-zero counts: %+v", data)
	}
	if data.WeeklyCompletion != 0 {
		t.Errorf("WeeklyCompletion = %f, want 0", data.WeeklyCompletion)
	}
	if data.BestActiveStreak != 0 {
		t.Errorf("BestActiveStreak = %d, want 0", data.BestActiveStreak)
	}
}

func TestRollupTodayBuckets(t *testing.T) {
	statuses := []model.HabitWithStatus{
		status("a", true, true, 1, 1, 1, 1),
		status("b", true, false, 0, 2, 0, 1),
		// Not due today: contributes to neither bucket
		status("c", false, false, 0, 5, 0, 0),
	}

	data := Rollup(statuses)
	if data.TotalHabits != 3 {
		t.Errorf("TotalHabits = %d, want 3", data.TotalHabits)
	}
	if data.CompletedToday != 1 {
		t.Errorf("CompletedToday = %d, want 1", data.CompletedToday)
	}
	if data.PendingToday != 1 {
		t.Errorf("PendingToday = %d, want 1", data.PendingToday)
	}
}

func TestRollupBestActiveStreak(t *testing.T) {
	// The dashboard headline is the best CURRENT streak, not the historical
	// longest one.
	statuses := []model.HabitWithStatus{
		status("a", true, true, 3, 3, 3, 3),
		status("b", true, false, 0, 30, 0, 3),
	}

	data := Rollup(statuses)
	if data.BestActiveStreak != 3 {
		t.Errorf("BestActiveStreak = %d, want 3", data.BestActiveStreak)
	}
}

func TestRollupWeeklyCompletion(t *testing.T) {
	statuses := []model.HabitWithStatus{
		status("a", true, true, 1, 1, 2, 3),
		status("b", true, false, 0, 0, 1, 3),
	}

	data := Rollup(statuses)
	want := 100 * float64(3) / float64(6)
	if data.WeeklyCompletion != want {
		t.Errorf("WeeklyCompletion = %f, want %f", data.WeeklyCompletion, want)
	}
}

func TestRollupZeroOpportunities(t *testing.T) {
	// All monthly habits with no due day this week: denominator is 0.
	statuses := []model.HabitWithStatus{
		status("a", false, false, 0, 1, 0, 0),
		status("b", false, false, 0, 2, 0, 0),
	}

	data := Rollup(statuses)
	if data.WeeklyCompletion != 0 {
		t.Errorf("WeeklyCompletion = %f, want 0 when there are no opportunities", data.WeeklyCompletion)
	}
}

func TestRollupTopHabitsByStreak(t *testing.T) {
	statuses := []model.HabitWithStatus{
		status("a", false, false, 0, 1, 0, 0),
		status("b", false, false, 0, 9, 0, 0),
		status("c", false, false, 0, 4, 0, 0),
		status("d", false, false, 0, 7, 0, 0),
		status("e", false, false, 0, 2, 0, 0),
		status("f", false, false, 0, 8, 0, 0),
		status("g", false, false, 0, 5, 0, 0),
	}

	data := Rollup(statuses)
	if len(data.TopHabitsByStreak) != 5 {
		t.Fatalf("got %d top habits, want 5", len(data.TopHabitsByStreak))
	}

	wantOrder := []string{"b", "f", "d", "g", "c"}
	for i, want := range wantOrder {
		if got := data.TopHabitsByStreak[i].Title; got != want {
			t.Errorf("top habit %d = %q, want %q", i, got, want)
		}
	}
}

func TestRollupDoesNotMutateInput(t *testing.T) {
	statuses := []model.HabitWithStatus{
		status("first", false, false, 0, 1, 0, 0),
		status("second", false, false, 0, 9, 0, 0),
	}

	Rollup(statuses)
	if statuses[0].Title != "first" || statuses[1].Title != "second" {
		t.Error("rollup reordered the caller's slice")
	}
}

// End-to-end over the pure pipeline: a daily habit with a fresh three-day run.
func TestDrinkWaterScenario(t *testing.T) {
	today := date(2024, 1, 12)
	habit := &model.Habit{
		Title:     "Drink Water",
		Frequency: model.FrequencyDaily,
		StartDate: date(2024, 1, 1),
		IsActive:  true,
	}

	logs := []*model.CompletionLog{
		{Day: "2024-01-10", CompletedAt: date(2024, 1, 10)},
		{Day: "2024-01-11", CompletedAt: date(2024, 1, 11)},
		{Day: "2024-01-12", CompletedAt: date(2024, 1, 12)},
	}

	s := buildStatus(habit, logs, today)
	if !s.IsDueToday {
		t.Error("daily habit should be due today")
	}
	if !s.CompletedToday {
		t.Error("habit should count as completed today")
	}
	if s.Streak != 3 || s.LongestStreak != 3 {
		t.Errorf("streaks = %d/%d, want 3/3", s.Streak, s.LongestStreak)
	}

	// Without today's entry the run stays alive via yesterday.
	s = buildStatus(habit, logs[:2], today)
	if s.CompletedToday {
		t.Error("habit should not count as completed today")
	}
	if s.Streak != 2 || s.LongestStreak != 2 {
		t.Errorf("streaks = %d/%d, want 2/2", s.Streak, s.LongestStreak)
	}

	data := Rollup([]model.HabitWithStatus{s})
	if data.PendingToday != 1 || data.CompletedToday != 0 {
		t.Errorf("rollup buckets = completed %d / pending %d, want 0/1",
			data.CompletedToday, data.PendingToday)
	}
	if data.BestActiveStreak != 2 {
		t.Errorf("BestActiveStreak = %d, want 2", data.BestActiveStreak)
	}
}

func TestCommitIfLatestRejectsSupersededRefresh(t *testing.T) {
	svc := NewAnalyticsService(nil, nil, nil)

	first := svc.beginRefresh("user-1")
	second := svc.beginRefresh("user-1")

	data := model.AnalyticsData{}
	if svc.commitIfLatest("user-1", first, &data) {
		t.Error("superseded refresh must not commit")
	}
	if !svc.commitIfLatest("user-1", second, &data) {
		t.Error("latest refresh must commit")
	}

	// Sequences are per user; another user's refresh is unaffected.
	other := svc.beginRefresh("user-2")
	if !svc.commitIfLatest("user-2", other, &data) {
		t.Error("unrelated user's refresh must commit")
	}
}
