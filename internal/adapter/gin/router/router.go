package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-crud-service/internal/adapter/gin/handler"
	"user-crud-service/internal/adapter/gin/middleware"
	"user-crud-service/internal/adapter/ratelimit"
	_ "user-crud-service/internal/docs"
	"user-crud-service/pkg/metrics"
)

// Options switches the optional parts of the HTTP surface on.
// A nil field leaves the corresponding feature off.
type Options struct {
	RateLimiter *ratelimit.Limiter
	Metrics     *metrics.HTTPMetrics
	Swagger     bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	// /users and /users/ are both registered; no redirects between them
	router.RedirectTrailingSlash = false
	router.HandleMethodNotAllowed = true

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}
	if opts.RateLimiter.Enabled() {
		router.Use(middleware.RateLimiter(opts.RateLimiter))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Detail: "Not Found", Error: "not_found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, handler.ErrorResponse{Detail: "Method Not Allowed", Error: "method_not_allowed"})
	})

	router.GET("/health", healthHandler.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.Swagger {
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	for _, base := range []string{"/users", "/users/"} {
		router.POST(base, userHandler.CreateUser)
		router.GET(base, userHandler.ListUsers)
	}
	users := router.Group("/users")
	{
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
