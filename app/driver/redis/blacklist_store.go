package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog-service/app/config"
	"catalog-service/app/port"
	"catalog-service/app/utils/security"
)

const keyPrefix = "catalog:revoked:"

// BlacklistStore implements port.TokenBlacklist on Redis. Each revocation is a
// key expiring at the token's own expiry, so Redis prunes entries itself.
type BlacklistStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewBlacklistStore creates a Redis-backed token blacklist
func NewBlacklistStore(cfg *config.Config, logger *slog.Logger) (*BlacklistStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("redis connection established", "addr", cfg.RedisAddr)

	return &BlacklistStore{
		client: client,
		logger: logger.With("component", "redis_blacklist"),
	}, nil
}

// Revoke marks a token as revoked until its natural expiry
func (s *BlacklistStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// already expired, nothing to guard against
		return nil
	}

	key := keyPrefix + security.TokenDigest(token)
	if err := s.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		s.logger.Error("failed to revoke token", "error", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("token revoked", "expires_at", expiresAt)
	return nil
}

// IsRevoked reports whether the token's digest is present
func (s *BlacklistStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := keyPrefix + security.TokenDigest(token)

	val, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		s.logger.Error("failed to check token revocation", "error", err)
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return val > 0, nil
}

// PruneExpired is a no-op for Redis; per-key TTLs handle expiry natively
func (s *BlacklistStore) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// Close releases the Redis client
func (s *BlacklistStore) Close() error {
	return s.client.Close()
}

var _ port.TokenBlacklist = (*BlacklistStore)(nil)
