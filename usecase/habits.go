package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
)

const dayFormat = "2006-01-02"

type HabitsService struct {
	HabitsRepo      *repository.HabitsRepo
	CompletionsRepo *repository.CompletionsRepo
	PointsRepo      *repository.PointsRepo
	Scheduler       *services.ReminderScheduler
}

func NewHabitsService(habits *repository.HabitsRepo, completions *repository.CompletionsRepo, points *repository.PointsRepo, scheduler *services.ReminderScheduler) *HabitsService {
	return &HabitsService{
		HabitsRepo:      habits,
		CompletionsRepo: completions,
		PointsRepo:      points,
		Scheduler:       scheduler,
	}
}

func (svc *HabitsService) CreateHabit(ctx context.Context, habit *model.Habit) error {
	if habit.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := validateHabit(habit); err != nil {
		return err
	}

	unique, err := svc.titleAvailable(ctx, habit.UserID, habit.Category, habit.Title, "")
	if err != nil {
		return err
	}
	if !unique {
		return errors.New("a habit with this title already exists in this category")
	}

	now := time.Now()
	if habit.HabitID == "" {
		habit.HabitID = uuid.New().String()
	}
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = now
	}
	habit.UpdatedAt = now
	if habit.StartDate.IsZero() {
		habit.StartDate = DayOf(now)
	}

	if err := svc.HabitsRepo.CreateHabit(ctx, habit); err != nil {
		return err
	}

	svc.scheduleReminder(habit)
	return nil
}

func (svc *HabitsService) GetUserHabits(ctx context.Context, userID string) ([]*model.Habit, error) {
	return svc.HabitsRepo.GetUserHabits(ctx, userID)
}

func (svc *HabitsService) UpdateHabit(ctx context.Context, habitID, userID string, updates *model.Habit, isActive *bool) (*model.Habit, error) {
	existing, err := svc.HabitsRepo.GetHabitByID(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, repository.ErrHabitNotFound
	}

	if updates.Title != "" {
		existing.Title = updates.Title
	}
	if updates.Description != "" {
		existing.Description = updates.Description
	}
	if updates.Category != "" {
		existing.Category = updates.Category
	}
	if updates.Frequency != "" {
		existing.Frequency = updates.Frequency
		if updates.Frequency != model.FrequencyWeekly {
			existing.DaysOfWeek = nil
		}
	}
	if updates.DaysOfWeek != nil {
		existing.DaysOfWeek = updates.DaysOfWeek
	}
	if !updates.StartDate.IsZero() {
		existing.StartDate = updates.StartDate
	}
	if !updates.EndDate.IsZero() {
		existing.EndDate = updates.EndDate
	}
	if updates.Color != "" {
		existing.Color = updates.Color
	}
	if updates.ReminderTime != "" {
		existing.ReminderTime = updates.ReminderTime
	}
	if isActive != nil {
		existing.IsActive = *isActive
	}

	if err := validateHabit(existing); err != nil {
		return nil, err
	}

	unique, err := svc.titleAvailable(ctx, userID, existing.Category, existing.Title, habitID)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, errors.New("a habit with this title already exists in this category")
	}

	existing.UpdatedAt = time.Now()
	if err := svc.HabitsRepo.UpdateHabit(ctx, habitID, userID, existing); err != nil {
		return nil, err
	}

	svc.cancelReminder(habitID)
	svc.scheduleReminder(existing)
	return existing, nil
}

// DeleteHabit removes the habit and cascades to its completion logs.
func (svc *HabitsService) DeleteHabit(ctx context.Context, habitID, userID string) error {
	if err := svc.HabitsRepo.DeleteHabit(ctx, habitID, userID); err != nil {
		return err
	}
	if err := svc.CompletionsRepo.DeleteHabitCompletions(ctx, habitID, userID); err != nil {
		return err
	}
	svc.cancelReminder(habitID)
	return nil
}

// CompleteHabit appends a completion log entry for the given instant and
// awards streak-multiplied points. The award is derived from the streak as
// it stands after this completion. Returns the entry and the points awarded.
func (svc *HabitsService) CompleteHabit(ctx context.Context, habitID, userID string, at time.Time, note string) (*model.CompletionLog, int, error) {
	habit, err := svc.HabitsRepo.GetHabitByID(ctx, habitID, userID)
	if err != nil {
		return nil, 0, err
	}
	if habit == nil {
		return nil, 0, repository.ErrHabitNotFound
	}

	entry := &model.CompletionLog{
		LogID:       uuid.New().String(),
		HabitID:     habitID,
		UserID:      userID,
		Day:         DayOf(at).Format(dayFormat),
		CompletedAt: at,
		Note:        note,
	}

	if err := svc.CompletionsRepo.CreateCompletion(ctx, entry); err != nil {
		return nil, 0, err
	}

	entries, err := svc.CompletionsRepo.GetHabitCompletions(ctx, habitID, userID)
	if err != nil {
		return nil, 0, err
	}
	streak, _ := ComputeStreaks(completionDays(entries, at.Location()), at)

	award := CompletionAward(streak)
	if err := svc.PointsRepo.IncrementPoints(ctx, userID, award); err != nil {
		return nil, 0, err
	}

	utils.TrackHabitOperation("complete")
	utils.TrackCompletion(award)
	return entry, award, nil
}

// GetHabitsWithStatus builds the enriched per-habit view model for all of the
// user's habits as of now. Per-habit log fetches run concurrently; any store
// failure fails the whole call, since partial analytics are worse than a
// visible error.
func (svc *HabitsService) GetHabitsWithStatus(ctx context.Context, userID string, now time.Time) ([]model.HabitWithStatus, error) {
	habits, err := svc.HabitsRepo.GetUserHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]model.HabitWithStatus, len(habits))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		fetchErr error
	)
	for i, habit := range habits {
		wg.Add(1)
		go func(i int, habit *model.Habit) {
			defer wg.Done()
			entries, err := svc.CompletionsRepo.GetHabitCompletions(ctx, habit.HabitID, habit.UserID)
			if err != nil {
				mu.Lock()
				if fetchErr == nil {
					fetchErr = err
				}
				mu.Unlock()
				return
			}
			statuses[i] = buildStatus(habit, entries, now)
		}(i, habit)
	}
	wg.Wait()
	if fetchErr != nil {
		return nil, fetchErr
	}

	// Habits still pending today sort first, then alphabetical by title.
	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].CompletedToday != statuses[j].CompletedToday {
			return !statuses[i].CompletedToday
		}
		return strings.ToLower(statuses[i].Title) < strings.ToLower(statuses[j].Title)
	})

	return statuses, nil
}

// buildStatus derives the ephemeral per-habit status from its completion log.
func buildStatus(h *model.Habit, entries []*model.CompletionLog, now time.Time) model.HabitWithStatus {
	times := completionDays(entries, now.Location())
	days := UniqueDays(times)

	today := DayOf(now)
	completedToday := false
	for _, d := range days {
		if d.Equal(today) {
			completedToday = true
			break
		}
	}

	current, longest := ComputeStreaks(times, now)
	done, opportunities := WeekStats(h, times, now)

	return model.HabitWithStatus{
		Habit:                  *h,
		IsDueToday:             IsDueOn(h, now),
		CompletedToday:         completedToday,
		Streak:                 current,
		LongestStreak:          longest,
		CompletionsLast7Days:   done,
		OpportunitiesLast7Days: opportunities,
		// Cheap display stat; the authoritative ledger lives in the points
		// counter and includes streak multipliers.
		Points: len(days) * BasePointsPerCompletion,
	}
}

// completionDays resolves log entries to the local calendar days they were
// recorded against. The persisted day string is authoritative: the driver
// hands CompletedAt back in UTC, and re-deriving the day from it would shift
// entries logged near midnight onto the wrong date on non-UTC servers.
func completionDays(entries []*model.CompletionLog, loc *time.Location) []time.Time {
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		day, err := time.ParseInLocation(dayFormat, e.Day, loc)
		if err != nil {
			day = DayOf(e.CompletedAt.In(loc))
		}
		days = append(days, day)
	}
	return days
}

func (svc *HabitsService) titleAvailable(ctx context.Context, userID string, category model.Category, title, excludeID string) (bool, error) {
	habits, err := svc.HabitsRepo.GetUserHabits(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, h := range habits {
		if h.HabitID == excludeID {
			continue
		}
		if h.Category == category && strings.EqualFold(h.Title, title) {
			return false, nil
		}
	}
	return true, nil
}

func (svc *HabitsService) scheduleReminder(habit *model.Habit) {
	if svc.Scheduler == nil || habit.ReminderTime == "" || !habit.IsActive {
		return
	}
	userID, title := habit.UserID, habit.Title
	err := svc.Scheduler.ScheduleDaily("habit:"+habit.HabitID, habit.ReminderTime, func() {
		svc.Scheduler.Notify(userID, title, "Time to work on your habit")
	})
	if err != nil {
		utils.TrackError("scheduler", "habit_reminder_failed")
	}
}

func (svc *HabitsService) cancelReminder(habitID string) {
	if svc.Scheduler == nil {
		return
	}
	svc.Scheduler.Cancel("habit:" + habitID)
}

func validateHabit(h *model.Habit) error {
	if strings.TrimSpace(h.Title) == "" {
		return errors.New("habit title is required")
	}

	switch h.Category {
	case model.CategoryHealth, model.CategoryFitness, model.CategoryLearning, model.CategoryProductivity, model.CategoryOther:
	default:
		return errors.New("invalid category")
	}

	switch h.Frequency {
	case model.FrequencyDaily, model.FrequencyMonthly:
	case model.FrequencyWeekly:
		if len(h.DaysOfWeek) == 0 {
			return errors.New("weekly habits require at least one day of week")
		}
		for _, d := range h.DaysOfWeek {
			if d < 0 || d > 6 {
				return errors.New("days of week must be between 0 (Monday) and 6 (Sunday)")
			}
		}
	default:
		return errors.New("invalid frequency")
	}

	if !h.EndDate.IsZero() && !h.StartDate.IsZero() && DayOf(h.EndDate).Before(DayOf(h.StartDate)) {
		return errors.New("end date cannot be before start date")
	}

	if h.ReminderTime != "" && !utils.ValidateReminderTime(h.ReminderTime) {
		return errors.New("reminder time must be in HH:MM format")
	}

	return nil
}
