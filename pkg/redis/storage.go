package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a prefixed key-value store on top of a Redis client.
type Storage struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStorage wraps client. Keys are prefixed with cfg.KeyPrefix and values
// expire after cfg.TTL.
func NewStorage(client redis.UniversalClient, cfg Config) *Storage {
	return &Storage{db: client, prefix: cfg.KeyPrefix, ttl: cfg.TTL}
}

// Get returns the value stored at key. A missing key is (nil, nil).
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val at key. Empty keys and values are ignored.
func (s *Storage) Set(ctx context.Context, key string, val []byte) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.db.Set(ctx, s.prefix+key, val, s.ttl).Err()
}

// Delete removes key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Del(ctx, s.prefix+key).Err()
}

// Close closes the underlying client.
func (s *Storage) Close() error {
	return s.db.Close()
}
