package usecase

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

// Rollup folds per-habit statuses into the dashboard summary. Pure function;
// the statuses carry everything it needs.
func Rollup(statuses []model.HabitWithStatus) model.AnalyticsData {
	data := model.AnalyticsData{
		TotalHabits:       len(statuses),
		TopHabitsByStreak: []model.HabitWithStatus{},
	}

	var weekDone, weekOpportunities int
	for _, s := range statuses {
		if s.IsDueToday {
			if s.CompletedToday {
				data.CompletedToday++
			} else {
				data.PendingToday++
			}
		}
		if s.Streak > data.BestActiveStreak {
			data.BestActiveStreak = s.Streak
		}
		weekDone += s.CompletionsLast7Days
		weekOpportunities += s.OpportunitiesLast7Days
	}

	// A week with no scheduled opportunities reports 0%, not NaN.
	if weekOpportunities > 0 {
		data.WeeklyCompletion = 100 * float64(weekDone) / float64(weekOpportunities)
	}

	top := make([]model.HabitWithStatus, len(statuses))
	copy(top, statuses)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].LongestStreak > top[j].LongestStreak
	})
	if len(top) > 5 {
		top = top[:5]
	}
	data.TopHabitsByStreak = top

	return data
}

// AnalyticsService recomputes the dashboard rollup on demand. Concurrent
// refreshes for the same user are sequenced: a refresh that finishes after a
// newer one started is discarded rather than written over fresher numbers.
type AnalyticsService struct {
	Habits     *HabitsService
	PointsRepo *repository.PointsRepo
	Cache      *services.AnalyticsCache

	mu   sync.Mutex
	seqs map[string]uint64
}

func NewAnalyticsService(habits *HabitsService, points *repository.PointsRepo, cache *services.AnalyticsCache) *AnalyticsService {
	return &AnalyticsService{
		Habits:     habits,
		PointsRepo: points,
		Cache:      cache,
		seqs:       make(map[string]uint64),
	}
}

func (svc *AnalyticsService) beginRefresh(userID string) uint64 {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.seqs[userID]++
	return svc.seqs[userID]
}

// commitIfLatest publishes the snapshot only while the refresh is still the
// newest one for the user. The sequence check and the cache write share the
// lock, so a superseded refresh cannot slip its snapshot in after a fresher
// one has already been written.
func (svc *AnalyticsService) commitIfLatest(userID string, seq uint64, data *model.AnalyticsData) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.seqs[userID] != seq {
		return false
	}
	if svc.Cache != nil {
		if err := svc.Cache.SetSnapshot(userID, data); err != nil {
			log.Printf("Failed to cache analytics for user %s: %v", userID, err)
		}
	}
	return true
}

// GetAnalytics computes a fresh rollup for the user as of now. On success the
// result replaces the cached last-known-good snapshot, unless a newer refresh
// started while this one ran.
func (svc *AnalyticsService) GetAnalytics(ctx context.Context, userID string, now time.Time) (model.AnalyticsData, error) {
	seq := svc.beginRefresh(userID)

	statuses, err := svc.Habits.GetHabitsWithStatus(ctx, userID, now)
	if err != nil {
		utils.TrackAnalyticsRefresh("error")
		return model.AnalyticsData{}, err
	}

	data := Rollup(statuses)

	if !svc.commitIfLatest(userID, seq, &data) {
		utils.TrackAnalyticsRefresh("superseded")
		return data, nil
	}

	utils.TrackAnalyticsRefresh("success")
	return data, nil
}

// LastKnownGood returns the most recent cached snapshot, if any, along with
// when it was computed.
func (svc *AnalyticsService) LastKnownGood(userID string) (*model.AnalyticsData, time.Time, error) {
	if svc.Cache == nil {
		return nil, time.Time{}, nil
	}
	return svc.Cache.GetSnapshot(userID)
}

// GetPointsSummary reads the user's lifetime points and derives level and
// badge from them.
func (svc *AnalyticsService) GetPointsSummary(ctx context.Context, userID string) (model.PointsSummary, error) {
	points, err := svc.PointsRepo.GetPoints(ctx, userID)
	if err != nil {
		return model.PointsSummary{}, err
	}

	level := LevelForPoints(points)
	return model.PointsSummary{
		Points: points,
		Level:  level,
		Badge:  BadgeForLevel(level),
	}, nil
}
