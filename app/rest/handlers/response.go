package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ApiResult is the uniform response envelope for every endpoint
type ApiResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageMeta echoes the pagination of a list response
type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// PagedData wraps list items with their pagination metadata
type PagedData struct {
	Items interface{} `json:"items"`
	Meta  PageMeta    `json:"meta"`
}

func ok(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, ApiResult{Success: true, Message: message, Data: data})
}

func created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, ApiResult{Success: true, Message: message, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, ApiResult{Success: false, Message: message})
}
