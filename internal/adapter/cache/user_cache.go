package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "carpool-service/internal/domain/user"
)

// UserCache defines the interface for user caching operations.
// Token verification resolves the caller's user record on every privileged
// call; the cache keeps that hot path off the database.
type UserCache interface {
	// Get retrieves a user from cache by UID.
	// Returns nil if the user is not cached.
	Get(ctx context.Context, uid string) (*domain.User, error)

	// Set stores a user in cache with the configured TTL.
	Set(ctx context.Context, user *domain.User) error

	// Delete removes a user from cache by UID.
	Delete(ctx context.Context, uid string) error
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) UserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for a user UID.
func (c *RedisUserCache) cacheKey(uid string) string {
	return fmt.Sprintf("user:%s", uid)
}

// Get retrieves a user from Redis cache.
func (c *RedisUserCache) Get(ctx context.Context, uid string) (*domain.User, error) {
	key := c.cacheKey(uid)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("cache miss", zap.String("uid", uid))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		c.log.Error("failed to unmarshal cached user", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("uid", uid))
	return &user, nil
}

// Set stores a user in Redis cache with TTL.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot cache nil user")
	}

	key := c.cacheKey(user.UID)

	data, err := json.Marshal(user)
	if err != nil {
		c.log.Error("failed to marshal user for cache", zap.String("uid", user.UID), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("uid", user.UID), zap.Error(err))
		return err
	}

	c.log.Debug("cached user", zap.String("uid", user.UID), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes a user from Redis cache.
func (c *RedisUserCache) Delete(ctx context.Context, uid string) error {
	key := c.cacheKey(uid)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.String("uid", uid), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.String("uid", uid))
	return nil
}
