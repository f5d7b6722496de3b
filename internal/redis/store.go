package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every storage entry written by Store.
const KeyPrefix = "creatives:kv:"

// EntryKey returns the redis key holding a storage entry.
func EntryKey(key string) string {
	return KeyPrefix + key
}

// Store keeps origin storage entries as plain redis strings without expiry.
type Store struct {
	client redis.Cmdable
}

// NewStore wraps a connected client.
func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, EntryKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get entry %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, EntryKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save entry %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, EntryKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove entry %q: %w", key, err)
	}
	return nil
}
