package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
)

// UserCache defines the interface for user caching operations.
type UserCache interface {
	// Get retrieves a user from cache by ID. A miss is reported as found == false.
	Get(ctx context.Context, id int64) (domain.User, bool, error)

	// Set stores a user in cache with the configured TTL.
	Set(ctx context.Context, user domain.User) error

	// Delete removes a user from cache by ID and bumps its generation.
	Delete(ctx context.Context, id int64) error

	// Generation returns the invalidation counter of the user. Read it before
	// loading the user from the database and pass it to SetIfGeneration.
	Generation(ctx context.Context, id int64) (int64, error)

	// SetIfGeneration stores the user only if no Delete happened since gen was read.
	SetIfGeneration(ctx context.Context, user domain.User, gen int64) (bool, error)
}

// minGenerationTTL keeps a bumped generation around longer than any in-flight fill.
const minGenerationTTL = time.Hour

// setIfGeneration: KEYS[1] entry, KEYS[2] generation; ARGV value, ttl ms, expected generation.
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[3] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisUserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Key returns the Redis key holding the user with the given ID.
func Key(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// GenerationKey returns the Redis key holding the invalidation counter of the user.
func GenerationKey(id int64) string {
	return fmt.Sprintf("user:%d:gen", id)
}

// Get retrieves a user from Redis cache.
func (c *RedisUserCache) Get(ctx context.Context, id int64) (domain.User, bool, error) {
	data, err := c.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.Int64("user_id", id))
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("failed to get user %d from cache: %w", id, err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, false, fmt.Errorf("failed to unmarshal cached user %d: %w", id, err)
	}

	c.log.Debug("cache hit", zap.Int64("user_id", id))
	return user, true, nil
}

// Set stores a user in Redis cache with TTL.
func (c *RedisUserCache) Set(ctx context.Context, user domain.User) error {
	if user.ID <= 0 {
		return fmt.Errorf("cannot cache user without id")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user %d for cache: %w", user.ID, err)
	}

	if err := c.client.Set(ctx, Key(user.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache user %d: %w", user.ID, err)
	}

	c.log.Debug("cached user", zap.Int64("user_id", user.ID), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes a user from Redis cache and bumps its generation so that
// fills which read the database before the change are discarded.
func (c *RedisUserCache) Delete(ctx context.Context, id int64) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, GenerationKey(id))
	pipe.Expire(ctx, GenerationKey(id), c.generationTTL())
	pipe.Del(ctx, Key(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete user %d from cache: %w", id, err)
	}

	c.log.Debug("deleted from cache", zap.Int64("user_id", id))
	return nil
}

// Generation returns the current invalidation counter, 0 if the user was never invalidated.
func (c *RedisUserCache) Generation(ctx context.Context, id int64) (int64, error) {
	gen, err := c.client.Get(ctx, GenerationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get cache generation of user %d: %w", id, err)
	}
	return gen, nil
}

// SetIfGeneration stores the user with TTL unless its generation moved past gen.
func (c *RedisUserCache) SetIfGeneration(ctx context.Context, user domain.User, gen int64) (bool, error) {
	if user.ID <= 0 {
		return false, fmt.Errorf("cannot cache user without id")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return false, fmt.Errorf("failed to marshal user %d for cache: %w", user.ID, err)
	}

	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{Key(user.ID), GenerationKey(user.ID)},
		data, c.ttl.Milliseconds(), gen,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to cache user %d: %w", user.ID, err)
	}
	if stored == 0 {
		c.log.Debug("stale cache fill discarded", zap.Int64("user_id", user.ID), zap.Int64("generation", gen))
		return false, nil
	}
	return true, nil
}

func (c *RedisUserCache) generationTTL() time.Duration {
	if c.ttl > minGenerationTTL {
		return c.ttl
	}
	return minGenerationTTL
}
