package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"catalog-service/app/domain"
	"catalog-service/app/port"
)

// UserUseCase implements user management business logic
type UserUseCase struct {
	users  port.UserRepository
	logger *slog.Logger
}

// NewUserUseCase creates a new UserUseCase instance
func NewUserUseCase(users port.UserRepository, logger *slog.Logger) *UserUseCase {
	return &UserUseCase{
		users:  users,
		logger: logger.With("component", "user_usecase"),
	}
}

// Search lists users matching the filter, paginated
func (uc *UserUseCase) Search(ctx context.Context, filter domain.UserFilter, page domain.Page) (domain.PagedResult[*domain.User], error) {
	users, total, err := uc.users.Search(ctx, filter, page)
	if err != nil {
		return domain.PagedResult[*domain.User]{}, err
	}
	return domain.NewPagedResult(users, total, page), nil
}

// GetByID returns a user profile. Admins may read anyone; everyone else only
// their own profile.
func (uc *UserUseCase) GetByID(ctx context.Context, caller *domain.AuthContext, id uuid.UUID) (*domain.User, error) {
	if !caller.CanAccessUser(id) {
		uc.logger.Warn("cross-user profile access denied",
			"caller_id", caller.UserID,
			"target_id", id)
		return nil, domain.ErrForbidden
	}
	return uc.users.FindByID(ctx, id)
}

// Update changes a user's username and/or role
func (uc *UserUseCase) Update(ctx context.Context, id uuid.UUID, username, role string) (*domain.User, error) {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username != "" && username != user.Username {
		taken, err := uc.users.ExistsByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username availability: %w", err)
		}
		if taken {
			return nil, domain.ErrUsernameTaken
		}
		if err := user.Rename(username); err != nil {
			return nil, err
		}
	}

	if role != "" {
		if err := user.ChangeRole(role); err != nil {
			return nil, err
		}
	}

	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user updated", "user_id", user.ID, "username", user.Username, "role", user.Role)
	return user, nil
}

// Delete removes a user account
func (uc *UserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("user deleted", "user_id", id)
	return nil
}

var _ port.UserUsecase = (*UserUseCase)(nil)
