package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-crud-service/internal/adapter/cache"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	"user-crud-service/pkg/logger"
)

// Store decorates a user.Store so that every session's repository reads
// through the cache and invalidates it on writes.
type Store struct {
	inner user.Store
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group
}

// NewCachedStore wraps inner with a cache-aside layer.
func NewCachedStore(inner user.Store, c cache.UserCache, log *zap.Logger) *Store {
	return &Store{
		inner: inner,
		cache: c,
		log:   log,
	}
}

// WithSession opens a session on the inner store and hands fn a caching repository.
func (s *Store) WithSession(ctx context.Context, fn func(repo user.Repository) error) error {
	return s.inner.WithSession(ctx, func(repo user.Repository) error {
		return fn(&cachedRepository{Repository: repo, store: s})
	})
}

// cachedRepository delegates Create and List to the session repository.
type cachedRepository struct {
	user.Repository
	store *Store
}

type lookup struct {
	user  domain.User
	found bool
}

// GetByID retrieves a user by ID using the cache-aside pattern.
// Concurrent misses for the same ID share one database read.
func (r *cachedRepository) GetByID(ctx context.Context, id int64) (domain.User, bool, error) {
	log := logger.WithContext(ctx, r.store.log)

	if u, found, err := r.store.cache.Get(ctx, id); err != nil {
		log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
	} else if found {
		return u, true, nil
	}

	result, err, _ := r.store.group.Do(cache.Key(id), func() (any, error) {
		// another caller may have filled the cache while this one waited
		if u, found, err := r.store.cache.Get(ctx, id); err == nil && found {
			return lookup{user: u, found: true}, nil
		}

		// an invalidation after this point makes the fill below a no-op
		gen, genErr := r.store.cache.Generation(ctx, id)
		if genErr != nil {
			log.Warn("cache generation error, skipping fill", zap.Int64("id", id), zap.Error(genErr))
		}

		u, found, err := r.Repository.GetByID(ctx, id)
		if err != nil || !found {
			return lookup{}, err
		}

		if genErr == nil {
			if _, err := r.store.cache.SetIfGeneration(ctx, u, gen); err != nil {
				log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}
		return lookup{user: u, found: true}, nil
	})
	if err != nil {
		return domain.User{}, false, err
	}

	l := result.(lookup)
	return l.user, l.found, nil
}

// Update updates the user and invalidates its cache entry.
func (r *cachedRepository) Update(ctx context.Context, id int64, name, email string) (domain.User, bool, error) {
	u, found, err := r.Repository.Update(ctx, id, name, email)
	if err != nil || !found {
		return u, found, err
	}
	r.invalidate(ctx, id)
	return u, true, nil
}

// Delete deletes the user and invalidates its cache entry.
func (r *cachedRepository) Delete(ctx context.Context, id int64) (domain.User, bool, error) {
	u, found, err := r.Repository.Delete(ctx, id)
	if err != nil || !found {
		return u, found, err
	}
	r.invalidate(ctx, id)
	return u, true, nil
}

func (r *cachedRepository) invalidate(ctx context.Context, id int64) {
	if err := r.store.cache.Delete(ctx, id); err != nil {
		logger.WithContext(ctx, r.store.log).Warn("failed to invalidate cache", zap.Int64("id", id), zap.Error(err))
	}
}
