package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"catalog-service/app/port"
	"catalog-service/app/utils/security"
)

// BlacklistRepository implements port.TokenBlacklist on PostgreSQL. Tokens are
// stored as SHA-256 digests so the table never holds a usable credential.
type BlacklistRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewBlacklistRepository creates a new PostgreSQL token blacklist
func NewBlacklistRepository(db DatabaseIface, logger *slog.Logger) port.TokenBlacklist {
	return &BlacklistRepository{
		db:     db,
		logger: logger.With("component", "blacklist_repository"),
	}
}

// Revoke records a token until its natural expiry. Revoking an already
// revoked token is a no-op.
func (r *BlacklistRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO token_blacklist (token_digest, expires_at, revoked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_digest) DO NOTHING`

	digest := security.TokenDigest(token)

	_, err := r.db.Exec(ctx, query, digest, expiresAt, time.Now().UTC())
	if err != nil {
		r.logger.Error("failed to revoke token", "error", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	r.logger.Info("token revoked", "expires_at", expiresAt)
	return nil
}

// IsRevoked reports whether the token's digest is on the blacklist
func (r *BlacklistRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token_digest = $1)`

	var revoked bool
	if err := r.db.QueryRow(ctx, query, security.TokenDigest(token)).Scan(&revoked); err != nil {
		r.logger.Error("failed to check token revocation", "error", err)
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}

// PruneExpired deletes entries whose expiry is at or before now. Entries that
// have not yet expired are never touched.
func (r *BlacklistRepository) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM token_blacklist WHERE expires_at <= $1`

	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.logger.Error("failed to prune expired blacklist entries", "error", err)
		return 0, fmt.Errorf("failed to prune expired blacklist entries: %w", err)
	}

	removed := result.RowsAffected()
	if removed > 0 {
		r.logger.Info("expired blacklist entries pruned", "removed", removed)
	}
	return removed, nil
}
