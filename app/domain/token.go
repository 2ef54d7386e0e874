package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims holds the verified payload of a session token. Tokens are
// self-contained: the server keeps no record of valid, non-revoked tokens.
type TokenClaims struct {
	UserID    uuid.UUID
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the claims are expired at the given instant.
// The boundary is inclusive: a token with ExpiresAt equal to now is expired.
func (c *TokenClaims) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// AuthContext is the identity established for a single request after the
// access guard has accepted its credential. It is passed explicitly rather
// than held in any global security context.
type AuthContext struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// CanAccessUser returns true if the authenticated caller may read the profile
// of the given user: admins may read anyone, others only themselves.
func (a *AuthContext) CanAccessUser(userID uuid.UUID) bool {
	return a.Role == RoleAdmin || a.UserID == userID
}

type authContextKey struct{}

// WithAuthContext returns a context carrying the request's authenticated identity.
func WithAuthContext(ctx context.Context, ac *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, ac)
}

// AuthContextFrom extracts the authenticated identity set by the access guard.
func AuthContextFrom(ctx context.Context) (*AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey{}).(*AuthContext)
	return ac, ok
}
