package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

// UserService implements the gRPC user service
type UserService struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserService creates a new gRPC user service
func NewUserService(uc user.Usecase, log *zap.Logger) *UserService {
	return &UserService{uc: uc, log: log}
}

// CreateUser handles gRPC CreateUser request
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	u, err := s.uc.CreateUser(ctx, user.CreateUserRequest{Name: req.Name, Email: req.Email})
	if err != nil {
		return nil, s.toStatus(ctx, "CreateUser", err)
	}
	return toUser(u), nil
}

// GetUser handles gRPC GetUser request
func (s *UserService) GetUser(ctx context.Context, req *UserIDRequest) (*User, error) {
	u, err := s.uc.GetUser(ctx, user.GetUserRequest{ID: req.ID})
	if err != nil {
		return nil, s.toStatus(ctx, "GetUser", err)
	}
	return toUser(u), nil
}

// ListUsers handles gRPC ListUsers request
func (s *UserService) ListUsers(ctx context.Context, _ *ListUsersRequest) (*ListUsersResponse, error) {
	resp, err := s.uc.ListUsers(ctx, user.ListUsersRequest{})
	if err != nil {
		return nil, s.toStatus(ctx, "ListUsers", err)
	}

	users := make([]User, len(resp.Users))
	for i := range resp.Users {
		users[i] = *toUser(&resp.Users[i])
	}
	return &ListUsersResponse{Users: users}, nil
}

// UpdateUser handles gRPC UpdateUser request
func (s *UserService) UpdateUser(ctx context.Context, req *UpdateUserRequest) (*User, error) {
	u, err := s.uc.UpdateUser(ctx, user.UpdateUserRequest{ID: req.ID, Name: req.Name, Email: req.Email})
	if err != nil {
		return nil, s.toStatus(ctx, "UpdateUser", err)
	}
	return toUser(u), nil
}

// DeleteUser handles gRPC DeleteUser request
func (s *UserService) DeleteUser(ctx context.Context, req *UserIDRequest) (*User, error) {
	u, err := s.uc.DeleteUser(ctx, user.DeleteUserRequest{ID: req.ID})
	if err != nil {
		return nil, s.toStatus(ctx, "DeleteUser", err)
	}
	return toUser(u), nil
}

// toStatus keeps the status of typed application errors and hides everything else behind Internal.
func (s *UserService) toStatus(ctx context.Context, method string, err error) error {
	var statuser apperrors.GRPCStatuser
	if errors.As(err, &statuser) {
		return statuser.GRPCStatus().Err()
	}
	logger.WithContext(ctx, s.log).Error("gRPC call failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, "Internal Server Error")
}

func toUser(u *user.UserResponse) *User {
	return &User{ID: u.ID, Name: u.Name, Email: u.Email}
}
