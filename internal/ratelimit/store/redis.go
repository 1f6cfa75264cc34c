package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript performs the check-and-admit step atomically server-side.
// The counter is only incremented below the ceiling, so a denied request
// never advances the count, matching the memory store's semantics.
var allowScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if count >= limit then
  local ttl = redis.call('PTTL', KEYS[1])
  if ttl < 0 then ttl = tonumber(ARGV[2]) end
  return {0, count, ttl}
end
count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then ttl = tonumber(ARGV[2]) end
return {1, count, ttl}
`)

// Redis is a Redis-backed implementation of Store.
// Suitable for multi-instance deployments where all replicas must share
// one set of windows. Expiry is handled by Redis key TTLs, so there is no
// sweep to run.
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisConfig holds configuration for the Redis connection.
// Populate from environment variables in application code.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
	Prefix   string
}

// NewRedis creates a Redis store with the given configuration.
func NewRedis(config RedisConfig) (*Redis, error) {
	if config.Prefix == "" {
		config.Prefix = "admission:"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.URL,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{
		client: client,
		prefix: config.Prefix,
	}, nil
}

func (r *Redis) Allow(ctx context.Context, key string, limit int64, window time.Duration) (Decision, error) {
	res, err := allowScript.Run(ctx, r.client, []string{r.prefix + key},
		limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("redis admission check failed: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("redis admission check returned %d values, want 3", len(res))
	}

	allowed, count, ttlMs := res[0] == 1, res[1], res[2]
	return Decision{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: max(0, limit-count),
		ResetAt:   time.Now().Add(time.Duration(ttlMs) * time.Millisecond),
	}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (int64, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (r *Redis) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis reset failed: %w", err)
	}
	return nil
}

// Close releases resources held by the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
