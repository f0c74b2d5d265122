package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/seenimoa/vndrate/pkg/models"
)

// DefaultRedisKey is the key holding the record when Redis is the backend.
const DefaultRedisKey = "vndrate:usd_vnd"

// RedisStore keeps the record under a single Redis key, using the same
// JSON document as FileStore. The key has no expiry.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Read loads the record. A missing key is not an error.
func (s *RedisStore) Read(ctx context.Context) (*models.CachedRate, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis GET %s: %w", s.key, err)
	}

	rec, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("redis key %s: %w", s.key, err)
	}
	return rec, nil
}

// Write overwrites the key with rec.
func (s *RedisStore) Write(ctx context.Context, rec models.CachedRate) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", s.key, err)
	}
	return nil
}
