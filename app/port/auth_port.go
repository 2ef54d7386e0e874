package port

import (
	"context"
	"time"

	"catalog-service/app/domain"

	"github.com/google/uuid"
)

// TokenCodec signs and verifies self-contained session tokens. It is the only
// component holding the signing key. Implementations must be safe for
// unlimited concurrent use.
type TokenCodec interface {
	// Issue mints a signed token for the user with the configured TTL and
	// returns the compact encoded string and its expiry.
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)

	// Verify checks the signature before trusting any embedded field, then
	// decodes and validates the claims. Failures are distinguished:
	// domain.ErrInvalidCredential for a bad signature, domain.ErrCredentialExpired
	// for a valid but expired token, domain.ErrMalformedToken otherwise.
	Verify(token string) (*domain.TokenClaims, error)

	// ExtractExpiry reads the expiry of a token without verifying its
	// signature. Used by logout, where a forged revocation is harmless.
	ExtractExpiry(token string) (time.Time, error)
}

// TokenBlacklist records revoked-but-not-yet-expired tokens. It sits on the
// hot path of every protected request, so lookups must be keyed, not scans.
type TokenBlacklist interface {
	// Revoke is an idempotent insert; revoking the same token twice is a no-op.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error

	// IsRevoked reports whether the token has been revoked. After Revoke
	// returns, IsRevoked must observe the revocation from any caller.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// PruneExpired deletes entries whose stored expiry is at or before now
	// and returns the number removed. It must never remove an entry whose
	// expiry has not passed.
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}

// PasswordHasher verifies a plaintext secret against a stored one-way hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AuthUsecase turns credentials into tokens and tokens into revocations.
type AuthUsecase interface {
	// Register creates a new user with the default role.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Login verifies credentials and issues a session token. Unknown username
	// and wrong password are indistinguishable in the returned error.
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)

	// Logout revokes the presented token until its natural expiry.
	Logout(ctx context.Context, token string) error
}

// AccessUsecase is the per-request decision procedure every protected
// operation passes through.
type AccessUsecase interface {
	// Authenticate runs the ordered checks (presence, signature, expiry,
	// revocation) and returns the caller's identity on success.
	Authenticate(ctx context.Context, bearer string) (*domain.AuthContext, error)

	// Authorize compares the authenticated role against the operation's
	// required role set; membership is exact, with no hierarchy.
	Authorize(ac *domain.AuthContext, allowed ...domain.Role) error
}

// UserRepository is the credential store boundary exposed to authentication.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByRole(ctx context.Context, role domain.Role) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Search(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]*domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
