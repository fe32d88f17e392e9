package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelier-community/atelier/internal/shared/logger"
)

const (
	uploadKeyPrefix = "upload:daily:"
	// Counters outlive their day so a late read near midnight still sees them.
	uploadCounterTTL = 48 * time.Hour
)

// reserveScript increments the counter unless it already reached the limit.
// Returns {count, 1} on success and {count, 0} when the limit is reached.
var reserveScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if current >= limit then
  return {current, 0}
end
current = redis.call('INCR', KEYS[1])
if current == 1 then
  redis.call('EXPIRE', KEYS[1], ARGV[2])
end
return {current, 1}
`)

// RedisUploadCounter counts uploads per user and business day.
type RedisUploadCounter struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisUploadCounter creates a new Redis-based upload counter
func NewRedisUploadCounter(client *redis.Client, logger logger.Interface) *RedisUploadCounter {
	return &RedisUploadCounter{client: client, logger: logger}
}

func (c *RedisUploadCounter) key(userID uint, day string) string {
	return fmt.Sprintf("%s%s:%d", uploadKeyPrefix, day, userID)
}

// Used returns the uploads reserved by userID on day
func (c *RedisUploadCounter) Used(ctx context.Context, userID uint, day string) (int, error) {
	v, err := c.client.Get(ctx, c.key(userID, day)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read upload counter: %w", err)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid upload counter value %q: %w", v, err)
	}
	return n, nil
}

// Reserve atomically takes one upload if fewer than limit are used
func (c *RedisUploadCounter) Reserve(ctx context.Context, userID uint, day string, limit int) (int, bool, error) {
	res, err := reserveScript.Run(ctx, c.client,
		[]string{c.key(userID, day)},
		limit, int(uploadCounterTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return 0, false, fmt.Errorf("failed to reserve upload: %w", err)
	}
	if len(res) != 2 {
		return 0, false, fmt.Errorf("unexpected reserve result: %v", res)
	}

	c.logger.Debugw("upload counter updated", "user_id", userID, "day", day, "used", res[0], "reserved", res[1] == 1)
	return int(res[0]), res[1] == 1, nil
}
