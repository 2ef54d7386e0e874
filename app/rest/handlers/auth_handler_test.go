package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/app/domain"
	"catalog-service/app/utils/logger"
)

type stubAuthUsecase struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, time.Time, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthUsecase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthUsecase) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthUsecase) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) ApiResult {
	t.Helper()

	var result ApiResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func newTestAuthHandler(t *testing.T, uc *stubAuthUsecase) *AuthHandler {
	t.Helper()

	testLogger, err := logger.New("debug")
	require.NoError(t, err)
	return NewAuthHandler(uc, testLogger)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &stubAuthUsecase{
			registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
				user, err := domain.NewUser(username, "hash")
				require.NoError(t, err)
				return user, nil
			},
		}
		handler := newTestAuthHandler(t, uc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/register",
			`{"username":"alice","password":"Sup3r$ecret"}`)

		require.NoError(t, handler.Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		result := decodeResult(t, rec)
		assert.True(t, result.Success)
	})

	t.Run("weak password fails validation", func(t *testing.T) {
		handler := newTestAuthHandler(t, &stubAuthUsecase{})

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/register",
			`{"username":"alice","password":"weak"}`)

		require.NoError(t, handler.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, decodeResult(t, rec).Success)
	})

	t.Run("taken username maps to conflict", func(t *testing.T) {
		uc := &stubAuthUsecase{
			registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
				return nil, domain.ErrUsernameTaken
			},
		}
		handler := newTestAuthHandler(t, uc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/register",
			`{"username":"alice","password":"Sup3r$ecret"}`)

		require.NoError(t, handler.Register(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns bearer token", func(t *testing.T) {
		expiresAt := time.Now().Add(time.Hour).UTC()
		uc := &stubAuthUsecase{
			loginFn: func(ctx context.Context, username, password string) (string, time.Time, error) {
				return "signed-token", expiresAt, nil
			},
		}
		handler := newTestAuthHandler(t, uc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/login",
			`{"username":"alice","password":"Sup3r$ecret"}`)

		require.NoError(t, handler.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		result := decodeResult(t, rec)
		require.True(t, result.Success)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "signed-token", data["token"])
		assert.Equal(t, "Bearer", data["token_type"])
	})

	t.Run("bad credentials map to unauthorized", func(t *testing.T) {
		uc := &stubAuthUsecase{
			loginFn: func(ctx context.Context, username, password string) (string, time.Time, error) {
				return "", time.Time{}, domain.ErrAuthenticationFailed
			},
		}
		handler := newTestAuthHandler(t, uc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/login",
			`{"username":"alice","password":"wrong"}`)

		require.NoError(t, handler.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid username or password", decodeResult(t, rec).Message)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes presented token", func(t *testing.T) {
		var revoked string
		uc := &stubAuthUsecase{
			logoutFn: func(ctx context.Context, token string) error {
				revoked = token
				return nil
			},
		}
		handler := newTestAuthHandler(t, uc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/logout", "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer the-token")

		require.NoError(t, handler.Logout(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "the-token", revoked)
	})

	t.Run("missing token", func(t *testing.T) {
		handler := newTestAuthHandler(t, &stubAuthUsecase{})

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/logout", "")

		require.NoError(t, handler.Logout(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unparseable token maps to bad request", func(t *testing.T) {
		uc := &stubAuthUsecase{
			logoutFn: func(ctx context.Context, token string) error {
				return domain.ErrMalformedToken
			},
		}
		handler := newTestAuthHandler(t, uc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/logout", "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer garbage")

		require.NoError(t, handler.Logout(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
