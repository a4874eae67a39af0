package presence

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Tracker records user heartbeats and derives the online-user count.
// Entries expire on their own, which stands in for on-disconnect
// cleanup.
type Tracker interface {
	Touch(ctx context.Context, userID int64) error
	OnlineCount(ctx context.Context) (int64, error)
}

const keyPrefix = "presence:"

// RedisTracker keeps one TTL key per online user.
type RedisTracker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTracker(client *redis.Client, ttl time.Duration) *RedisTracker {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &RedisTracker{client: client, ttl: ttl}
}

func (t *RedisTracker) Touch(ctx context.Context, userID int64) error {
	key := keyPrefix + strconv.FormatInt(userID, 10)
	return t.client.Set(ctx, key, 1, t.ttl).Err()
}

func (t *RedisTracker) OnlineCount(ctx context.Context) (int64, error) {
	var (
		cursor uint64
		count  int64
	)
	for {
		keys, next, err := t.client.Scan(ctx, cursor, keyPrefix+"*", 500).Result()
		if err != nil {
			return 0, err
		}
		count += int64(len(keys))
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

// NoopTracker is used when Redis is not configured; the server stays
// available and the online count reads zero.
type NoopTracker struct{}

func (NoopTracker) Touch(ctx context.Context, userID int64) error { return nil }

func (NoopTracker) OnlineCount(ctx context.Context) (int64, error) { return 0, nil }
