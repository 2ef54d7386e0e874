package port

import (
	"context"

	"catalog-service/app/domain"

	"github.com/google/uuid"
)

// UserUsecase defines user management business logic.
type UserUsecase interface {
	// Search lists users matching the filter, paginated. Admin only.
	Search(ctx context.Context, filter domain.UserFilter, page domain.Page) (domain.PagedResult[*domain.User], error)

	// GetByID returns a user profile. Admins may read anyone; other callers
	// only their own profile.
	GetByID(ctx context.Context, caller *domain.AuthContext, id uuid.UUID) (*domain.User, error)

	// Update changes a user's username and/or role. Admin only.
	Update(ctx context.Context, id uuid.UUID, username, role string) (*domain.User, error)

	// Delete removes a user account. Admin only.
	Delete(ctx context.Context, id uuid.UUID) error
}
