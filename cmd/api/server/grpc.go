package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"user-crud-service/cmd/api/di"
	grpcadapter "user-crud-service/internal/adapter/grpc"
	"user-crud-service/internal/adapter/grpc/middleware"
	"user-crud-service/pkg/logger"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(c *di.Container, l *zap.Logger) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.Recovery(l),
			logger.RequestIDInterceptor(),
			middleware.RateLimit(c.RateLimiter, l),
		),
	)
	grpcadapter.RegisterUserServiceServer(grpcServer, c.GRPCService)

	return grpcServer
}
