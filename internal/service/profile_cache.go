package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/miniorder-service/internal/domain"
)

const profileCachePrefix = "user:"

// ProfileCache is a read-through Redis cache for user rows. A nil cache or an
// unreachable Redis degrades to plain repository reads.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache builds a cache with the given entry lifetime in seconds.
func NewProfileCache(client *redis.Client, ttlSeconds int) *ProfileCache {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &ProfileCache{client: client, ttl: time.Duration(ttlSeconds) * time.Second}
}

// Get returns the cached user or nil on miss or cache failure.
func (c *ProfileCache) Get(ctx context.Context, openID string) *domain.User {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, profileCachePrefix+openID).Bytes()
	if err != nil {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil
	}
	return &user
}

// Set stores the user row; cache failures are ignored.
func (c *ProfileCache) Set(ctx context.Context, user *domain.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, profileCachePrefix+user.OpenID, raw, c.ttl).Err()
}

// Invalidate drops the cached entry after an upsert.
func (c *ProfileCache) Invalidate(ctx context.Context, openID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, profileCachePrefix+openID).Err()
}
