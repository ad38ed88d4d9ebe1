package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell/model"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}
	client, err := NewRedisClient(url)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func TestTokenBlacklist(t *testing.T) {
	client := testRedis(t)
	ctx := context.Background()
	tb := NewTokenBlacklist(client)

	revoked, err := tb.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, tb.Revoke(ctx, "tok", time.Now().Add(time.Minute)))
	revoked, err = tb.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, tb.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	revoked, err = tb.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked, "already expired tokens are not stored")
	assert.True(t, tb.IsConnected(ctx))
}

func TestInsightCache(t *testing.T) {
	client := testRedis(t)
	ctx := context.Background()
	cache := NewInsightCache(client, time.Minute)

	_, ok, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	insights := []model.Insight{{ID: "i1", UserID: "u1", Title: "Weekly Mood Analysis",
		MoodCorrelations: map[string]float64{"exercise": 0.8}}}
	require.NoError(t, cache.Set(ctx, "u1", insights))

	got, ok, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "i1", got[0].ID)
	assert.Equal(t, 0.8, got[0].MoodCorrelations["exercise"])

	require.NoError(t, cache.Invalidate(ctx, "u1"))
	_, ok, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenBlacklistIsConnectedWithoutRedis(t *testing.T) {
	ctx := context.Background()

	var nilList *TokenBlacklist
	assert.False(t, nilList.IsConnected(ctx))
	assert.False(t, NewTokenBlacklist(nil).IsConnected(ctx))

	// nothing listens on port 1
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	assert.False(t, NewTokenBlacklist(client).IsConnected(ctx))
}
