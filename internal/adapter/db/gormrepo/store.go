package gormrepo

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	usecase "user-crud-service/internal/usecase/user"
)

// Store opens request-scoped sessions on a shared GORM connection pool.
// The pool itself is owned by the caller that constructed db.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewStore creates a Store over an already opened connection pool.
func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// WithSession checks out a single pooled connection, runs fn with a repository
// bound to it, and returns the connection to the pool when fn returns or panics.
func (s *Store) WithSession(ctx context.Context, fn func(repo usecase.Repository) error) error {
	return s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return fn(NewUserRepo(tx, s.log))
	})
}

// AutoMigrate creates or updates the users table.
func (s *Store) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	s.log.Info("users table migrated")
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
