// internal/store/redis.go
package store

import (
	"context"
	"errors"

	"tara/internal/common/database"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the flat keys in Redis. Values never expire; the
// store mirrors the durability expectations of browser local storage.
type RedisStore struct {
	client *database.RedisClient
}

func NewRedisStore(client *database.RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0)
}
