package domain

import "errors"

// Authentication errors. Login failures are deliberately uniform: the same
// error is returned for an unknown username and a wrong password so the
// external outcome does not allow username enumeration.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUsernameTaken        = errors.New("username already taken")
)

// Credential errors for the per-request access decision. Each kind maps to a
// different caller response: an expired credential means re-authenticate
// silently, an invalid signature is treated as a tampering attempt.
var (
	ErrMissingCredential  = errors.New("missing credential")
	ErrInvalidCredential  = errors.New("invalid credential")
	ErrCredentialExpired  = errors.New("credential expired")
	ErrCredentialRevoked  = errors.New("credential revoked")
	ErrMalformedToken     = errors.New("malformed token")
	ErrForbidden          = errors.New("forbidden")
	ErrStoreUnavailable   = errors.New("revocation store unavailable")
)

// Resource errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)

// Input errors.
var (
	ErrInvalidInput = errors.New("invalid input")
)
