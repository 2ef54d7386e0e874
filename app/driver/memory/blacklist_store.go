package memory

import (
	"context"
	"sync"
	"time"

	"catalog-service/app/port"
	"catalog-service/app/utils/security"
)

// BlacklistStore is an in-memory token blacklist for tests and single-node
// development runs. Entries live until PruneExpired removes them.
type BlacklistStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewBlacklistStore creates an empty in-memory token blacklist
func NewBlacklistStore() *BlacklistStore {
	return &BlacklistStore{
		entries: make(map[string]time.Time),
	}
}

// Revoke records the token's digest. Repeat revocations are no-ops.
func (s *BlacklistStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	digest := security.TokenDigest(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[digest]; !ok {
		s.entries[digest] = expiresAt
	}
	return nil
}

// IsRevoked reports whether the token has been revoked
func (s *BlacklistStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	digest := security.TokenDigest(token)

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[digest]
	return ok, nil
}

// PruneExpired removes entries whose expiry is at or before now
func (s *BlacklistStore) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for digest, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, digest)
			removed++
		}
	}
	return removed, nil
}

var _ port.TokenBlacklist = (*BlacklistStore)(nil)
