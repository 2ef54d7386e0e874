package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catalog-service/app/domain"
	"catalog-service/app/port"
)

// dummyHash is compared against when the username is unknown so login takes
// the same time whether the user exists or not.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthUseCase implements registration, login and logout
type AuthUseCase struct {
	users     port.UserRepository
	hasher    port.PasswordHasher
	codec     port.TokenCodec
	blacklist port.TokenBlacklist
	logger    *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance
func NewAuthUseCase(
	users port.UserRepository,
	hasher port.PasswordHasher,
	codec port.TokenCodec,
	blacklist port.TokenBlacklist,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		hasher:    hasher,
		codec:     codec,
		blacklist: blacklist,
		logger:    logger.With("component", "auth_usecase"),
	}
}

// Register creates a new account with the default role
func (uc *AuthUseCase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}

	taken, err := uc.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, hash)
	if err != nil {
		return nil, err
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and issues a session token. An unknown username
// and a wrong password produce the same error so the response never reveals
// which usernames exist.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// burn a comparison so timing matches the known-user path
			_ = uc.hasher.Compare(dummyHash, password)
			uc.logger.Warn("login failed", "username", username)
			return "", time.Time{}, domain.ErrAuthenticationFailed
		}
		return "", time.Time{}, err
	}

	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		uc.logger.Warn("login failed", "username", username)
		return "", time.Time{}, domain.ErrAuthenticationFailed
	}

	token, expiresAt, err := uc.codec.Issue(user)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Info("login succeeded", "user_id", user.ID, "username", user.Username)
	return token, expiresAt, nil
}

// Logout revokes the presented token until its natural expiry. The signature
// is not verified here; revoking a forged token affects nothing.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	expiresAt, err := uc.codec.ExtractExpiry(token)
	if err != nil {
		return err
	}

	if err := uc.blacklist.Revoke(ctx, token, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	uc.logger.Info("token revoked on logout", "expires_at", expiresAt)
	return nil
}

var _ port.AuthUsecase = (*AuthUseCase)(nil)
