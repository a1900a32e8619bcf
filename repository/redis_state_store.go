package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStateStore persists view state as plain Redis strings under a key prefix
type RedisStateStore struct {
	Client *redis.Client
	prefix string
}

func NewRedisStateStore(opt *redis.Options, prefix string) *RedisStateStore {
	return &RedisStateStore{Client: redis.NewClient(opt), prefix: prefix}
}

var _ StateStoreInterface = (*RedisStateStore)(nil)

func (s *RedisStateStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.Client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read view state %q", key)
	}
	return v, true, nil
}

func (s *RedisStateStore) Set(ctx context.Context, key, value string) error {
	if err := s.Client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to write view state %q", key)
	}
	return nil
}

// Close releases the underlying connection pool
func (s *RedisStateStore) Close() error {
	return s.Client.Close()
}
