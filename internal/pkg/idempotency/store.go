package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInFlight means another request with the same key is still being
// processed; the client should retry after the first one finishes.
var ErrInFlight = errors.New("request with this idempotency key is in flight")

// CachedResponse is a previously produced HTTP response, replayed verbatim
// for a repeated idempotency key.
type CachedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store keeps replayable responses in Redis, keyed by
// (route, user, idempotency key). A short-lived lock entry guards the window
// between first-seen and response-stored so duplicate concurrent submissions
// fail fast instead of both executing.
type Store struct {
	rdb     *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{
		rdb:     rdb,
		ttl:     ttl,
		lockTTL: 30 * time.Second,
	}
}

func (s *Store) key(route, userID, idempotencyKey string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", route, userID, idempotencyKey)
}

// Begin returns the cached response for the key when one exists. When none
// exists it takes the in-flight lock and returns (nil, nil); the caller must
// finish with Complete or Abandon.
func (s *Store) Begin(ctx context.Context, route, userID, idempotencyKey string) (*CachedResponse, error) {
	key := s.key(route, userID, idempotencyKey)

	val, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached CachedResponse
		if err := json.Unmarshal(val, &cached); err != nil {
			return nil, fmt.Errorf("corrupt idempotency cache entry: %w", err)
		}
		return &cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	acquired, err := s.rdb.SetNX(ctx, key+":lock", "locked", s.lockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrInFlight
	}
	return nil, nil
}

// Complete stores the produced response for replay and releases the lock.
func (s *Store) Complete(ctx context.Context, route, userID, idempotencyKey string, resp CachedResponse) error {
	key := s.key(route, userID, idempotencyKey)

	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return err
	}
	return s.rdb.Del(ctx, key+":lock").Err()
}

// Abandon releases the lock without caching, e.g. after a handler error that
// the client is allowed to retry.
func (s *Store) Abandon(ctx context.Context, route, userID, idempotencyKey string) error {
	return s.rdb.Del(ctx, s.key(route, userID, idempotencyKey)+":lock").Err()
}
