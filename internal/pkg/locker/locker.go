package locker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker provides best-effort mutual exclusion for batch jobs across
// instances, backed by a Redis SET NX key with a TTL. A nil client degrades
// to always acquiring, which is correct for a single-instance deployment.
type Locker struct {
	client *redis.Client
}

func New(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// NewRedisClient connects to redis with short timeouts.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

// Acquire attempts to take the named lock for at most ttl. It returns false
// when another holder has it.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}
	return l.client.SetNX(ctx, key, "1", ttl).Result()
}

// Release drops the named lock. Releasing a lock that expired is harmless.
func (l *Locker) Release(ctx context.Context, key string) error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Del(ctx, key).Err()
}
