package di

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/cmd/api/infrastructure"
	"user-crud-service/internal/adapter/db/gormrepo"
	ginhandler "user-crud-service/internal/adapter/gin/handler"
	grpcadapter "user-crud-service/internal/adapter/grpc"
	"user-crud-service/internal/adapter/ratelimit"
	"user-crud-service/internal/adapter/repository/cached"
	"user-crud-service/internal/config"
	"user-crud-service/internal/usecase/user"
	"user-crud-service/pkg/metrics"
	redisclient "user-crud-service/pkg/redis"
)

const metricsNamespace = "user_crud"

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	RedisClient   *redisclient.Client // nil unless REDIS_ENABLED
	UserUC        user.Usecase
	RateLimiter   *ratelimit.Limiter
	Metrics       *metrics.HTTPMetrics // nil unless METRICS_ENABLED
	GinHandler    *ginhandler.UserHandler
	HealthHandler *ginhandler.HealthHandler
	GRPCService   *grpcadapter.UserService
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (_ *Container, err error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}
	// release whatever was opened before the failure
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	// Initialize database
	c.DB, err = infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	dbStore := gormrepo.NewStore(c.DB, l)
	if cfg.DB.AutoMigrate {
		if err := dbStore.AutoMigrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	var store user.Store = dbStore
	if cfg.Redis.Enabled {
		redisLayer, err := infrastructure.NewRedisLayer(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = redisLayer.Client
		c.RateLimiter = redisLayer.Limiter
		store = cached.NewCachedStore(dbStore, redisLayer.Users, l)
	}

	// Initialize use case
	c.UserUC = user.New(store, l)

	if cfg.App.MetricsEnabled {
		c.Metrics = metrics.NewHTTPMetrics(metricsNamespace)
	}

	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)
	c.HealthHandler = ginhandler.NewHealthHandler(dbStore, l)
	c.GRPCService = grpcadapter.NewUserService(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
		c.RedisClient = nil
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
		c.DB = nil
	}

	return errors.Join(errs...)
}
