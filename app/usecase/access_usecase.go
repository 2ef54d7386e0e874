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

// AccessUseCase is the decision procedure every protected request runs:
// presence, signature, expiry, then revocation, in that order.
type AccessUseCase struct {
	codec             port.TokenCodec
	blacklist         port.TokenBlacklist
	revocationTimeout time.Duration
	logger            *slog.Logger
}

// NewAccessUseCase creates a new AccessUseCase instance
func NewAccessUseCase(
	codec port.TokenCodec,
	blacklist port.TokenBlacklist,
	revocationTimeout time.Duration,
	logger *slog.Logger,
) *AccessUseCase {
	return &AccessUseCase{
		codec:             codec,
		blacklist:         blacklist,
		revocationTimeout: revocationTimeout,
		logger:            logger.With("component", "access_usecase"),
	}
}

// Authenticate verifies the bearer token and returns the caller's identity
func (uc *AccessUseCase) Authenticate(ctx context.Context, bearer string) (*domain.AuthContext, error) {
	if bearer == "" {
		return nil, domain.ErrMissingCredential
	}

	claims, err := uc.codec.Verify(bearer)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			// possible forgery attempt, worth a trace
			uc.logger.Warn("token signature verification failed")
		}
		return nil, err
	}

	// the blacklist lookup is bounded; if the store cannot answer in time the
	// request is rejected rather than let through
	checkCtx, cancel := context.WithTimeout(ctx, uc.revocationTimeout)
	defer cancel()

	revoked, err := uc.blacklist.IsRevoked(checkCtx, bearer)
	if err != nil {
		uc.logger.Error("revocation check failed, rejecting request", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if revoked {
		return nil, domain.ErrCredentialRevoked
	}

	return &domain.AuthContext{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// Authorize checks exact membership of the caller's role in the allowed set
func (uc *AccessUseCase) Authorize(ac *domain.AuthContext, allowed ...domain.Role) error {
	if ac == nil {
		return domain.ErrMissingCredential
	}
	if !ac.Role.In(allowed...) {
		uc.logger.Warn("authorization denied",
			"user_id", ac.UserID,
			"role", ac.Role)
		return domain.ErrForbidden
	}
	return nil
}

var _ port.AccessUsecase = (*AccessUseCase)(nil)
