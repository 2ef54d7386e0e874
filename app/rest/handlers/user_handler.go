package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"catalog-service/app/domain"
	"catalog-service/app/port"
	"catalog-service/app/utils/validator"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	userUsecase port.UserUsecase
	validator   *validator.Validator
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase port.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator.New(),
		logger:      logger,
	}
}

type updateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=20"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// List handles GET /api/users
func (h *UserHandler) List(c echo.Context) error {
	filter := domain.UserFilter{Username: c.QueryParam("username")}
	if raw := c.QueryParam("role"); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "unknown role")
		}
		filter.Role = &role
	}

	result, err := h.userUsecase.Search(c.Request().Context(), filter, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}

	users := make([]userResponse, 0, len(result.Items))
	for _, u := range result.Items {
		users = append(users, toUserResponse(u))
	}

	return ok(c, "users retrieved", PagedData{
		Items: users,
		Meta: PageMeta{
			Page:       result.Page,
			Size:       result.Size,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	caller, okCtx := domain.AuthContextFrom(c.Request().Context())
	if !okCtx {
		return respondError(c, domain.ErrMissingCredential)
	}

	user, err := h.userUsecase.GetByID(c.Request().Context(), caller, id)
	if err != nil {
		return respondError(c, err)
	}

	return ok(c, "user retrieved", toUserResponse(user))
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, err)
	}
	if req.Username == "" && req.Role == "" {
		return fail(c, http.StatusBadRequest, "nothing to update")
	}

	user, err := h.userUsecase.Update(c.Request().Context(), id, req.Username, req.Role)
	if err != nil {
		return respondError(c, err)
	}

	return ok(c, "user updated", toUserResponse(user))
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	if err := h.userUsecase.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return ok(c, "user deleted", nil)
}

// pageFromQuery reads page and size query params, falling back to defaults
func pageFromQuery(c echo.Context) domain.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return domain.NewPage(page, size)
}
