package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"catalog-service/app/domain"
	"catalog-service/app/port"
	"catalog-service/app/utils/validator"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productUsecase port.ProductUsecase
	validator      *validator.Validator
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUsecase port.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator.New(),
		logger:         logger,
	}
}

type productRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	Calories    *int    `json:"calories" validate:"omitempty,gte=0"`
	Available   *bool   `json:"available"`
}

func (r productRequest) toInput() port.ProductInput {
	return port.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Calories:    r.Calories,
		Available:   r.Available,
	}
}

// List handles GET /api/products, with optional filter query params
func (h *ProductHandler) List(c echo.Context) error {
	filter := domain.ProductFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}
	if raw := c.QueryParam("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid min_price")
		}
		filter.MinPrice = &v
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid max_price")
		}
		filter.MaxPrice = &v
	}

	result, err := h.productUsecase.Filter(c.Request().Context(), filter, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}

	return ok(c, "products retrieved", PagedData{
		Items: result.Items,
		Meta: PageMeta{
			Page:       result.Page,
			Size:       result.Size,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /api/products/:id
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.productUsecase.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return ok(c, "product retrieved", product)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, err)
	}

	product, err := h.productUsecase.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	return created(c, "product created", product)
}

// Update handles PUT /api/products/:id
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, err)
	}

	product, err := h.productUsecase.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	return ok(c, "product updated", product)
}

// Delete handles DELETE /api/products/:id
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.productUsecase.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return ok(c, "product deleted", nil)
}

func productID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
