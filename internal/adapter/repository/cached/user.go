package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"carpool-service/internal/adapter/cache"
	domain "carpool-service/internal/domain/user"
	"carpool-service/internal/usecase/auth"
)

// CachedUserRepository implements auth.UserRepository with caching support.
// It wraps the persistent repository and a cache implementation. Only UID
// lookups are cached; the registration email check always hits the store so
// the uniqueness pre-check never reads stale data.
type CachedUserRepository struct {
	dbRepo auth.UserRepository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo auth.UserRepository, cache cache.UserCache, log *zap.Logger) auth.UserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository and invalidates any stale cache
// entry for the UID.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := r.dbRepo.Create(ctx, u); err != nil {
		return err
	}

	if r.cache != nil && u != nil {
		if err := r.cache.Delete(ctx, u.UID); err != nil {
			r.log.Warn("failed to invalidate cache after create", zap.String("uid", u.UID), zap.Error(err))
		}
	}

	return nil
}

// GetByUID retrieves a user by UID using the cache-aside pattern.
func (r *CachedUserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, uid)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.String("uid", uid), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.String("uid", uid))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%s", uid)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, uid)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.String("uid", uid))
				return cachedUser, nil
			}
		}

		// Only one request hits the database
		u, err := r.dbRepo.GetByUID(ctx, uid)
		if err != nil {
			return nil, err
		}
		if u == nil {
			// Lookup miss is a valid outcome and is not cached
			return (*domain.User)(nil), nil
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.String("uid", uid), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// GetByEmail delegates to the DB repository.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}
