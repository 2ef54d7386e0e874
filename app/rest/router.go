package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"catalog-service/app/domain"
	"catalog-service/app/port"
	"catalog-service/app/rest/handlers"
	custommw "catalog-service/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger         *slog.Logger
	AuthUsecase    port.AuthUsecase
	AccessUsecase  port.AccessUsecase
	UserUsecase    port.UserUsecase
	ProductUsecase port.ProductUsecase
	HealthChecker  handlers.HealthChecker
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	userHandler := handlers.NewUserHandler(config.UserUsecase, config.Logger)
	productHandler := handlers.NewProductHandler(config.ProductUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.HealthChecker, config.Logger)

	authMiddleware := custommw.NewAuthMiddleware(config.AccessUsecase, config.Logger)
	rateLimiter := custommw.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())

	// Health probes
	e.GET("/health", healthHandler.Health)
	e.GET("/health/live", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)

	api := e.Group("/api")

	// Authentication, rate limited per client IP
	auth := api.Group("/auth", rateLimiter.RateLimit())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	// logout only needs a parseable token; an expired session can still be
	// revoked explicitly
	auth.POST("/logout", authHandler.Logout)

	// User management
	users := api.Group("/users")
	users.GET("", userHandler.List, authMiddleware.RequireAuth(domain.RoleAdmin))
	users.GET("/:id", userHandler.Get, authMiddleware.RequireAuth(domain.RoleUser, domain.RoleAdmin))
	users.PUT("/:id", userHandler.Update, authMiddleware.RequireAuth(domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, authMiddleware.RequireAuth(domain.RoleAdmin))

	// Product catalog, open to any authenticated caller
	products := api.Group("/products", authMiddleware.RequireAuth(domain.RoleUser, domain.RoleAdmin))
	products.GET("", productHandler.List)
	products.GET("/filter", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	return e
}
