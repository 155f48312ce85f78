package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentnest/utils"

	"github.com/go-redis/redis/v8"
)

// ErrTokenInvalid is returned for tokens that fail validation or were
// revoked.
var ErrTokenInvalid = errors.New("invalid or revoked token")

// TokenProvider owns the auth-token lifecycle: issue on signin, verify on
// each request, revoke on signout. Callers never touch token storage
// directly; the provider is injected wherever tokens are needed.
type TokenProvider interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (string, error)
	Revoke(userID string) error
}

// RedisTokenProvider implements TokenProvider with HS256 JWTs whose hashes
// are cached in the auth Redis DB; revocation deletes the cached hash.
type RedisTokenProvider struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewRedisTokenProvider creates a provider over the given auth cache client.
func NewRedisTokenProvider(cache *redis.Client, ttl time.Duration) *RedisTokenProvider {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &RedisTokenProvider{cache: cache, ttl: ttl}
}

// Issue signs a new token for the user and caches its hash.
func (p *RedisTokenProvider) Issue(userID, email string) (string, error) {
	token, err := utils.GenerateToken(userID, email, p.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.cache.Set(ctx, utils.AuthCachePrefix+userID, utils.HashToken(token), p.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to cache token hash: %w", err)
	}

	return token, nil
}

// Verify validates the token signature and checks its hash is still the
// cached one for the subject. Returns the user ID.
func (p *RedisTokenProvider) Verify(token string) (string, error) {
	userID, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return "", ErrTokenInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cachedHash, err := p.cache.Get(ctx, utils.AuthCachePrefix+userID).Result()
	if err == redis.Nil {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("failed to check token cache: %w", err)
	}
	if cachedHash != utils.HashToken(token) {
		return "", ErrTokenInvalid
	}

	return userID, nil
}

// Revoke invalidates all outstanding tokens for the user.
func (p *RedisTokenProvider) Revoke(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.cache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
