package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"user-crud-service/cmd/api/di"
	ginrouter "user-crud-service/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(c *di.Container, ginAddr string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(c.GinHandler, c.HealthHandler, ginrouter.Options{
		RateLimiter: c.RateLimiter,
		Metrics:     c.Metrics,
		Swagger:     c.Config.App.SwaggerEnabled,
	}, l)

	l.Info("Gin REST API configured",
		zap.String("address", ginAddr),
		zap.Bool("metrics", c.Metrics != nil),
		zap.Bool("rate_limit", c.RateLimiter.Enabled()),
		zap.Bool("swagger", c.Config.App.SwaggerEnabled),
	)

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
