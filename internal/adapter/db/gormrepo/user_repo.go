package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/internal/domain/user"
	"user-crud-service/pkg/logger"
)

// UserRepo implements the usecase Repository on top of one GORM session.
type UserRepo struct {
	db  *gorm.DB    // Session-bound GORM handle
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a repository bound to the given GORM handle.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`      // Unique identifier with auto-increment
	Name  string `gorm:"size:255;not null"`             // User's name (required)
	Email string `gorm:"size:255;not null;uniqueIndex"` // User's email address (required, unique index)
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() user.User {
	return user.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

// Create inserts a new user and returns it with the generated ID.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (user.User, error) {
	if u == nil {
		return user.User{}, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	logger.WithContext(ctx, r.log).Info("user created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// GetByID retrieves a user by its ID. A missing row is reported as found == false.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	model, found, err := r.find(ctx, id)
	if err != nil || !found {
		return user.User{}, found, err
	}
	return model.toDomain(), true, nil
}

// List returns every user ordered by ID.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}

// Update overwrites name and email of an existing user.
// A row that is missing when the UPDATE runs is reported as found == false; it is never re-inserted.
func (r *UserRepo) Update(ctx context.Context, id int64, name, email string) (user.User, bool, error) {
	res := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "email": email})
	if res.Error != nil {
		logger.WithContext(ctx, r.log).Error("failed to update user in db", zap.Error(res.Error), zap.Int64("id", id))
		return user.User{}, false, fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		logger.WithContext(ctx, r.log).Debug("user not found", zap.Int64("id", id))
		return user.User{}, false, nil
	}

	logger.WithContext(ctx, r.log).Info("user updated in db", zap.Int64("id", id))
	return user.User{ID: id, Name: name, Email: email}, true, nil
}

// Delete removes a user and returns the row as it was before removal.
func (r *UserRepo) Delete(ctx context.Context, id int64) (user.User, bool, error) {
	model, found, err := r.find(ctx, id)
	if err != nil || !found {
		return user.User{}, found, err
	}

	res := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if res.Error != nil {
		logger.WithContext(ctx, r.log).Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return user.User{}, false, fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// removed by another request between the lookup and the delete
		return user.User{}, false, nil
	}

	logger.WithContext(ctx, r.log).Info("user deleted in db", zap.Int64("id", id))
	return model.toDomain(), true, nil
}

func (r *UserRepo) find(ctx context.Context, id int64) (UserSchema, bool, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(ctx, r.log).Debug("user not found", zap.Int64("id", id))
			return UserSchema{}, false, nil
		}
		logger.WithContext(ctx, r.log).Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return UserSchema{}, false, fmt.Errorf("failed to get user: %w", err)
	}
	return model, true, nil
}
