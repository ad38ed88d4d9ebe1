package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindwell/model"
)

// InsightCache keeps each user's insight list in Redis. Generating a new
// insight invalidates the entry.
type InsightCache struct {
	client *redis.Client
	ttl    time.Duration
}

type insightCacheEntry struct {
	Insights  []model.Insight `json:"insights"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewInsightCache(client *redis.Client, ttl time.Duration) *InsightCache {
	return &InsightCache{client: client, ttl: ttl}
}

func insightKey(userID string) string {
	return fmt.Sprintf("insights:%s", userID)
}

// Get reports a miss with ok == false.
func (ic *InsightCache) Get(ctx context.Context, userID string) (insights []model.Insight, ok bool, err error) {
	data, err := ic.client.Get(ctx, insightKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get insights from cache: %w", err)
	}

	var entry insightCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal insights: %w", err)
	}
	return entry.Insights, true, nil
}

func (ic *InsightCache) Set(ctx context.Context, userID string, insights []model.Insight) error {
	data, err := json.Marshal(insightCacheEntry{Insights: insights, UpdatedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to marshal insights: %w", err)
	}
	if err := ic.client.Set(ctx, insightKey(userID), data, ic.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache insights: %w", err)
	}
	return nil
}

func (ic *InsightCache) Invalidate(ctx context.Context, userID string) error {
	if err := ic.client.Del(ctx, insightKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate insights: %w", err)
	}
	return nil
}
