package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const sweepLockKey = "reminder:sweep:lock"

// SweepLock is a best-effort cross-instance lease around a sweep tick.
// SETNX with a TTL; the TTL keeps a crashed holder from blocking sweeps
// forever.
type SweepLock struct {
	client *redis.Client
}

func NewSweepLock(client *redis.Client) *SweepLock {
	return &SweepLock{client: client}
}

func (l *SweepLock) TryLock(ttl time.Duration) (bool, error) {
	return l.client.SetNX(Ctx, sweepLockKey, 1, ttl).Result()
}

func (l *SweepLock) Unlock() error {
	return l.client.Del(Ctx, sweepLockKey).Err()
}
