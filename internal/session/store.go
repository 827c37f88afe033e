package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Store keeps provider session keys in Redis, keyed by openid. Losing an
// entry is harmless: the client just performs a fresh login.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore builds a store with the given session key lifetime.
func NewStore(client *redis.Client, ttlHours int) *Store {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &Store{client: client, ttl: time.Duration(ttlHours) * time.Hour}
}

// SaveSessionKey records the provider session key for the openid.
func (s *Store) SaveSessionKey(ctx context.Context, openID, sessionKey string) error {
	if s == nil || s.client == nil || sessionKey == "" {
		return nil
	}
	return s.client.Set(ctx, sessionKeyPrefix+openID, sessionKey, s.ttl).Err()
}

// SessionKey fetches the stored session key, empty when absent or expired.
func (s *Store) SessionKey(ctx context.Context, openID string) (string, error) {
	if s == nil || s.client == nil {
		return "", nil
	}
	val, err := s.client.Get(ctx, sessionKeyPrefix+openID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
