package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"
	"main/utils"

	"github.com/redis/go-redis/v9"
)

// AnalyticsCache keeps the last successfully computed analytics snapshot per
// user in Redis, so a transient store failure can fall back to slightly stale
// numbers instead of an empty dashboard.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type analyticsCacheEntry struct {
	Data      model.AnalyticsData `json:"data"`
	UpdatedAt time.Time           `json:"updated_at"`
}

var GlobalAnalyticsCache *AnalyticsCache

func NewAnalyticsCache(redisURL string, ttl time.Duration) (*AnalyticsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &AnalyticsCache{client: client, ttl: ttl}, nil
}

func analyticsKey(userID string) string {
	return fmt.Sprintf("analytics:%s", userID)
}

// SetSnapshot stores the snapshot as the user's last known good analytics.
func (ac *AnalyticsCache) SetSnapshot(userID string, data *model.AnalyticsData) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}
	if data == nil {
		return fmt.Errorf("cannot cache nil analytics")
	}

	entry := analyticsCacheEntry{
		Data:      *data,
		UpdatedAt: time.Now(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics: %v", err)
	}

	ctx := context.Background()
	if err := ac.client.Set(ctx, analyticsKey(userID), payload, ac.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache analytics: %v", err)
	}
	return nil
}

// GetSnapshot returns the cached snapshot and its age. A cache miss returns
// nil without error.
func (ac *AnalyticsCache) GetSnapshot(userID string) (*model.AnalyticsData, time.Time, error) {
	if userID == "" {
		return nil, time.Time{}, fmt.Errorf("userID cannot be empty")
	}

	ctx := context.Background()
	payload, err := ac.client.Get(ctx, analyticsKey(userID)).Bytes()
	if err == redis.Nil {
		utils.TrackCacheOperation("analytics", false)
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to get analytics from cache: %v", err)
	}

	var entry analyticsCacheEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal analytics: %v", err)
	}

	utils.TrackCacheOperation("analytics", true)
	return &entry.Data, entry.UpdatedAt, nil
}

func (ac *AnalyticsCache) DeleteSnapshot(userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}
	ctx := context.Background()
	if err := ac.client.Del(ctx, analyticsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete analytics from cache: %v", err)
	}
	return nil
}

func (ac *AnalyticsCache) IsConnected() bool {
	if ac == nil || ac.client == nil {
		return false
	}
	return ac.client.Ping(context.Background()).Err() == nil
}

func (ac *AnalyticsCache) Close() error {
	return ac.client.Close()
}
