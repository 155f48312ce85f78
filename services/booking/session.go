package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rentnest/models"

	"github.com/go-redis/redis/v8"
)

const (
	sessionPrefix  = "bookingSession:"
	inflightPrefix = "bookingInflight:"

	// Pending sessions live for the duration of the payment dialog only.
	sessionTTL  = 30 * time.Minute
	inflightTTL = 2 * time.Minute
)

// SessionStore holds pending bookings between quote and confirmation, and
// the in-flight guard that blocks concurrent submissions for one form.
type SessionStore interface {
	Save(ctx context.Context, pending *models.PendingBooking) error
	Get(ctx context.Context, sessionID string) (*models.PendingBooking, error)
	Delete(ctx context.Context, sessionID string) error
	AcquireInflight(ctx context.Context, key string) (bool, error)
	ReleaseInflight(ctx context.Context, key string) error
}

// RedisSessionStore implements SessionStore on Redis.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps the given Redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Save stores the pending booking under its session ID with a TTL.
func (s *RedisSessionStore) Save(ctx context.Context, pending *models.PendingBooking) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending booking: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+pending.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store pending booking: %w", err)
	}
	return nil
}

// Get retrieves a pending booking; ErrSessionNotFound if expired or absent.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.PendingBooking, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending booking: %w", err)
	}

	var pending models.PendingBooking
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return nil, fmt.Errorf("failed to parse pending booking: %w", err)
	}
	return &pending, nil
}

// Delete discards a pending booking.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}

// AcquireInflight takes the submit guard for a form key. Returns false when
// another submission already holds it.
func (s *RedisSessionStore) AcquireInflight(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, inflightPrefix+key, "1", inflightTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire in-flight guard: %w", err)
	}
	return ok, nil
}

// ReleaseInflight frees the submit guard.
func (s *RedisSessionStore) ReleaseInflight(ctx context.Context, key string) error {
	return s.client.Del(ctx, inflightPrefix+key).Err()
}
