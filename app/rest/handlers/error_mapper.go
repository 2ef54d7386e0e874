package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog-service/app/domain"
	"catalog-service/app/utils/validator"
)

// respondError converts a domain error into the uniform envelope with the
// right status code. Messages stay generic for the credential failures so a
// response never leaks why authentication was refused.
func respondError(c echo.Context, err error) error {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, ApiResult{
			Success: false,
			Message: "validation failed",
			Data:    verr.Errors,
		})
	}

	switch {
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return fail(c, http.StatusUnauthorized, "invalid username or password")

	case errors.Is(err, domain.ErrMissingCredential),
		errors.Is(err, domain.ErrInvalidCredential),
		errors.Is(err, domain.ErrCredentialExpired),
		errors.Is(err, domain.ErrCredentialRevoked),
		errors.Is(err, domain.ErrStoreUnavailable):
		return fail(c, http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrForbidden):
		return fail(c, http.StatusForbidden, "access denied")

	case errors.Is(err, domain.ErrMalformedToken),
		errors.Is(err, domain.ErrInvalidInput):
		return fail(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrUsernameTaken):
		return fail(c, http.StatusConflict, "username already taken")

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "not found")

	default:
		return fail(c, http.StatusInternalServerError, "internal error")
	}
}
