// Package redis implements a shared rate-limit counter store backed by Redis,
// for deployments where more than one API instance serves uploads.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

const keyPrefix = "ratelimit:"

// Store counts requests per client in fixed windows using INCR + EXPIRE.
type Store struct {
	client *redis.Client
}

var _ port.CounterStore = (*Store)(nil)

// NewStore connects to Redis and verifies the connection with a ping.
func NewStore(addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Incr bumps the counter for key, starting a new window on the first hit.
func (s *Store) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	rkey := keyPrefix + key

	count, err := s.client.Incr(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to increment counter: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, rkey, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to set counter expiry: %w", err)
		}
		return int(count), time.Now().Add(window), nil
	}

	ttl, err := s.client.TTL(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to read counter expiry: %w", err)
	}
	// A key that lost its TTL (crash between INCR and EXPIRE) would count
	// forever; re-arm it so the window eventually closes.
	if ttl < 0 {
		ttl = window
		if err := s.client.Expire(ctx, rkey, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to set counter expiry: %w", err)
		}
	}

	return int(count), time.Now().Add(ttl), nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
