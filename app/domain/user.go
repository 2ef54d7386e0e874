package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Role represents the authorization role of a user.
// The set is closed; any value outside it is rejected at parse time.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a raw role value against the closed role set.
// Unknown values are an error, never a silently-granted default.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleUser, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrMalformedToken, raw)
	}
}

// In returns true if the role is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// User represents a registered principal with a username, hashed secret, and role.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialized
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a user with a fresh ID and the default USER role.
// The password hash must already be computed by the caller.
func NewUser(username, passwordHash string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("%w: password hash is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateUsername checks the username against the registration rules:
// 3-20 characters, letters, digits and underscores only. Usernames are
// case-sensitive and unique across all users.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-20 characters of letters, digits or underscores", ErrInvalidInput)
	}
	return nil
}

// ChangeRole changes the user's role with validation against the closed set.
func (u *User) ChangeRole(raw string) error {
	role, err := ParseRole(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid role %q", ErrInvalidInput, raw)
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Rename changes the user's username with validation. Uniqueness is
// enforced by the repository.
func (u *User) Rename(username string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	u.Username = username
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserFilter holds optional search criteria for listing users.
type UserFilter struct {
	Username string
	Role     *Role
}
