package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker grants a short lived lease so only one replica sweeps per interval.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// NoopLocker always grants the lock. Used for single instance deployments.
type NoopLocker struct{}

func (NoopLocker) TryLock(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

type setNX interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisLocker takes the lease with SET NX. The key expires on its own, it is never released explicitly.
type RedisLocker struct {
	client setNX
}

// NewRedisLocker wraps a redis client.
func NewRedisLocker(client setNX) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}
