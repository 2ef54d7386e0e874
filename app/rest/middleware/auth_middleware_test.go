package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/app/domain"
	"catalog-service/app/utils/logger"
)

type stubAccessUsecase struct {
	authenticateFn func(ctx context.Context, bearer string) (*domain.AuthContext, error)
}

func (s *stubAccessUsecase) Authenticate(ctx context.Context, bearer string) (*domain.AuthContext, error) {
	return s.authenticateFn(ctx, bearer)
}

func (s *stubAccessUsecase) Authorize(ac *domain.AuthContext, allowed ...domain.Role) error {
	if ac == nil || !ac.Role.In(allowed...) {
		return domain.ErrForbidden
	}
	return nil
}

func runProtected(t *testing.T, access *stubAccessUsecase, authHeader string, allowed ...domain.Role) (*httptest.ResponseRecorder, *domain.AuthContext) {
	t.Helper()

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	var seen *domain.AuthContext
	handler := func(c echo.Context) error {
		if ac, ok := domain.AuthContextFrom(c.Request().Context()); ok {
			seen = ac
		}
		return c.NoContent(http.StatusOK)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewAuthMiddleware(access, testLogger)
	err = mw.RequireAuth(allowed...)(handler)(c)
	require.NoError(t, err)
	return rec, seen
}

func TestRequireAuth(t *testing.T) {
	identity := &domain.AuthContext{
		UserID:   uuid.New(),
		Username: "alice",
		Role:     domain.RoleUser,
	}

	t.Run("valid token reaches the handler with identity", func(t *testing.T) {
		access := &stubAccessUsecase{
			authenticateFn: func(ctx context.Context, bearer string) (*domain.AuthContext, error) {
				assert.Equal(t, "good-token", bearer)
				return identity, nil
			},
		}

		rec, seen := runProtected(t, access, "Bearer good-token", domain.RoleUser)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, identity.UserID, seen.UserID)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		access := &stubAccessUsecase{
			authenticateFn: func(ctx context.Context, bearer string) (*domain.AuthContext, error) {
				assert.Empty(t, bearer)
				return nil, domain.ErrMissingCredential
			},
		}

		rec, _ := runProtected(t, access, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked token is unauthorized", func(t *testing.T) {
		access := &stubAccessUsecase{
			authenticateFn: func(ctx context.Context, bearer string) (*domain.AuthContext, error) {
				return nil, domain.ErrCredentialRevoked
			},
		}

		rec, _ := runProtected(t, access, "Bearer revoked-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role is forbidden, not unauthorized", func(t *testing.T) {
		access := &stubAccessUsecase{
			authenticateFn: func(ctx context.Context, bearer string) (*domain.AuthContext, error) {
				return identity, nil
			},
		}

		rec, _ := runProtected(t, access, "Bearer good-token", domain.RoleAdmin)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no roles means any authenticated caller", func(t *testing.T) {
		access := &stubAccessUsecase{
			authenticateFn: func(ctx context.Context, bearer string) (*domain.AuthContext, error) {
				return identity, nil
			},
		}

		rec, _ := runProtected(t, access, "Bearer good-token")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
