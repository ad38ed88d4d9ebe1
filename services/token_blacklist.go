package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist remembers logged-out tokens until they would have expired.
type TokenBlacklist struct {
	Client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{Client: client}
}

func blacklistKey(token string) string {
	return "blacklist:access:" + token
}

func (tb *TokenBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := tb.Client.Set(ctx, blacklistKey(token), "true", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %w", err)
	}
	return nil
}

func (tb *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := tb.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check token blacklist: %w", err)
	}
	return n > 0, nil
}

// IsConnected reports whether the backing Redis answers a ping.
func (tb *TokenBlacklist) IsConnected(ctx context.Context) bool {
	return tb != nil && tb.Client != nil && tb.Client.Ping(ctx).Err() == nil
}
