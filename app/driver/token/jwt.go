// Package token implements the session token codec on top of golang-jwt.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"catalog-service/app/domain"
)

// minSecretLen is the minimum signing key length in bytes (256 bits).
const minSecretLen = 32

// sessionClaims is the wire payload of a session token.
type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a symmetric HS256 key.
// The key is immutable for the process lifetime; all methods are pure
// functions over it and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a codec from the shared signing secret and the token TTL.
// The secret must be at least 256 bits.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("signing secret must be at least %d bytes, got %d", minSecretLen, len(secret))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token TTL must be positive, got %v", ttl)
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue mints a signed token for the user. Expiry is absolute wall-clock UTC;
// there is no sliding expiration.
func (c *Codec) Issue(user *domain.User) (string, time.Time, error) {
	now := c.now().UTC()
	expiresAt := now.Add(c.ttl)

	claims := sessionClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature first and only then decodes the claims; no
// field of an unverified payload is ever used for a decision. Failure kinds
// are distinct because callers respond differently to each.
func (c *Codec) Verify(tokenStr string) (*domain.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: signature verification failed", domain.ErrInvalidCredential)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrCredentialExpired
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
		}
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrMalformedToken
	}
	return claimsToDomain(claims)
}

// ExtractExpiry reads the expiry claim without verifying the signature.
// Logout uses this: revoking a forged token is harmless, while requiring a
// valid signature would prevent clients from logging out with a token signed
// by a rotated-away key.
func (c *Codec) ExtractExpiry(tokenStr string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: missing expiry claim", domain.ErrMalformedToken)
	}
	return claims.ExpiresAt.Time, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	return c.secret, nil
}

func claimsToDomain(claims *sessionClaims) (*domain.TokenClaims, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", domain.ErrMalformedToken)
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username claim", domain.ErrMalformedToken)
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing timestamp claims", domain.ErrMalformedToken)
	}

	return &domain.TokenClaims{
		UserID:    userID,
		Username:  claims.Username,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
