package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store is a store.KV backed by Redis. Values never expire.
type Store struct {
	client redis.UniversalClient
}

// NewStore creates a new Redis store
func NewStore(client redis.UniversalClient) *Store {
	return &Store{
		client: client,
	}
}

// Get retrieves the value stored under name
func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	val, err := s.client.Get(ctx, Key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return val, true, nil
}

// Set stores value under name without expiry
func (s *Store) Set(ctx context.Context, name, value string) error {
	if err := s.client.Set(ctx, Key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

// Delete removes name
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, Key(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
