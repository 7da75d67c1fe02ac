package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys are namespaced so the blacklist can share a store with unrelated data.
const blacklistPrefix = "auth:blacklist:"

func blacklistKey(token string) string {
	return blacklistPrefix + token
}

// RevocationStore is the single external capability the token authority
// depends on. Single-key insert/lookup atomicity is the store's concern.
type RevocationStore interface {
	Contains(ctx context.Context, key string) (bool, error)
	InsertWithTTL(ctx context.Context, key string, ttl time.Duration) error
}

type redisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore returns a Redis-backed revocation store.
func NewRedisRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocationStore{client: client}
}

func (s *redisRevocationStore) Contains(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisRevocationStore) InsertWithTTL(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, key, "", ttl).Err()
}
