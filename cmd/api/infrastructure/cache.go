package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"user-crud-service/internal/adapter/cache"
	"user-crud-service/internal/adapter/ratelimit"
	"user-crud-service/internal/config"
	redisclient "user-crud-service/pkg/redis"
)

// RedisLayer groups everything that shares the single Redis connection pool.
type RedisLayer struct {
	Client  *redisclient.Client
	Users   cache.UserCache
	Limiter *ratelimit.Limiter
}

// NewRedisLayer connects to Redis and builds the user cache and the rate limiter on top of it.
func NewRedisLayer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*RedisLayer, error) {
	rdb, err := redisclient.NewClient(ctx, redisclient.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := time.Duration(cfg.Redis.CacheTTL) * time.Second
	return &RedisLayer{
		Client: rdb,
		Users:  cache.NewRedisUserCache(rdb.Client, ttl, l),
		Limiter: ratelimit.New(rdb.Client, ratelimit.Config{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		}, l),
	}, nil
}
