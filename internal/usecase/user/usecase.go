package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

// Repository defines the data access operations available inside one session.
// Lookups report absence through the boolean result instead of an error.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (domain.User, error)                     // Insert a new user; the store assigns the ID
	GetByID(ctx context.Context, id int64) (domain.User, bool, error)                    // Retrieve user by ID
	List(ctx context.Context) ([]domain.User, error)                                     // All users, ordered by ID
	Update(ctx context.Context, id int64, name, email string) (domain.User, bool, error) // Overwrite the mutable fields
	Delete(ctx context.Context, id int64) (domain.User, bool, error)                     // Remove and return the user as it was
}

// Store hands out request-scoped sessions.
// The Repository passed to fn must not be used after fn returns.
type Store interface {
	WithSession(ctx context.Context, fn func(repo Repository) error) error
}

// Service implements Usecase.
// Every operation runs inside exactly one store session.
type Service struct {
	store    Store               // Store that opens sessions
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

var _ Usecase = (*Service)(nil)

// New creates a Service with the provided store and logger.
func New(s Store, log *zap.Logger) *Service {
	return &Service{store: s, log: log, validate: validator.New()}
}

// CreateUser validates the request and inserts a new user.
// Email uniqueness is left to the storage layer.
func (uc *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, apperrors.FromValidator(err)
	}

	var created domain.User
	err := uc.store.WithSession(ctx, func(repo Repository) error {
		var err error
		created, err = repo.Create(ctx, &domain.User{
			Name:  in.Name,
			Email: in.Email,
		})
		return err
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return toResponse(created), nil
}

// GetUser retrieves a user by ID.
func (uc *Service) GetUser(ctx context.Context, in GetUserRequest) (*UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	if in.ID <= 0 {
		log.Warn("get user with non-positive id", zap.Int64("id", in.ID))
		return nil, apperrors.ErrUserNotFound
	}

	var (
		u     domain.User
		found bool
	)
	err := uc.store.WithSession(ctx, func(repo Repository) error {
		var err error
		u, found, err = repo.GetByID(ctx, in.ID)
		return err
	})
	if err != nil {
		log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if !found {
		log.Debug("user not found", zap.Int64("id", in.ID))
		return nil, apperrors.ErrUserNotFound
	}

	return toResponse(u), nil
}

// ListUsers retrieves every user.
func (uc *Service) ListUsers(ctx context.Context, _ ListUsersRequest) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("listing users")

	var domainUsers []domain.User
	err := uc.store.WithSession(ctx, func(repo Repository) error {
		var err error
		domainUsers, err = repo.List(ctx)
		return err
	})
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]UserResponse, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = UserResponse{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}

	return &ListUsersResponse{Users: users}, nil
}

// UpdateUser replaces the name and email of an existing user.
// An unknown ID yields ErrUserNotFound, matching DeleteUser.
func (uc *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, apperrors.FromValidator(err)
	}
	if in.ID <= 0 {
		log.Warn("update user with non-positive id", zap.Int64("id", in.ID))
		return nil, apperrors.ErrUserNotFound
	}

	var (
		updated domain.User
		found   bool
	)
	err := uc.store.WithSession(ctx, func(repo Repository) error {
		var err error
		updated, found, err = repo.Update(ctx, in.ID, in.Name, in.Email)
		return err
	})
	if err != nil {
		log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if !found {
		log.Warn("update of unknown user", zap.Int64("id", in.ID))
		return nil, apperrors.ErrUserNotFound
	}

	return toResponse(updated), nil
}

// DeleteUser removes a user and returns it as it was before removal.
func (uc *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) (*UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		log.Warn("delete user with non-positive id", zap.Int64("id", in.ID))
		return nil, apperrors.ErrUserNotFound
	}

	var (
		deleted domain.User
		found   bool
	)
	err := uc.store.WithSession(ctx, func(repo Repository) error {
		var err error
		deleted, found, err = repo.Delete(ctx, in.ID)
		return err
	})
	if err != nil {
		log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if !found {
		log.Warn("delete of unknown user", zap.Int64("id", in.ID))
		return nil, apperrors.ErrUserNotFound
	}

	return toResponse(deleted), nil
}
