package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_token:"

// RedisRevocationList records revoked token IDs in Redis until their natural
// expiry, after which the keys lapse on their own.
type RedisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList wraps an existing Redis connection.
func NewRedisRevocationList(r *Redis) *RedisRevocationList {
	if r == nil || r.Client == nil {
		return nil
	}
	return &RedisRevocationList{client: r.Client}
}

// IsRevoked reports whether the token ID is present in the denylist.
func (l *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := l.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Revoke adds the token ID with a TTL matching the remaining token lifetime.
func (l *RedisRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return errors.New("token already expired")
	}
	return l.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}
