package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"catalog-service/app/config"
	"catalog-service/app/domain"
	"catalog-service/app/driver/memory"
	"catalog-service/app/driver/postgres"
	"catalog-service/app/driver/redis"
	"catalog-service/app/driver/token"
	"catalog-service/app/port"
	"catalog-service/app/rest"
	"catalog-service/app/usecase"
	"catalog-service/app/utils/security"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB         *postgres.DB
	redisStore *redis.BlacklistStore

	// Ports
	TokenCodec port.TokenCodec
	Blacklist  port.TokenBlacklist

	// Usecases
	AuthUsecase    port.AuthUsecase
	AccessUsecase  port.AccessUsecase
	UserUsecase    port.UserUsecase
	ProductUsecase port.ProductUsecase
	Sweeper        *usecase.BlacklistSweeper

	userRepository port.UserRepository
	hasher         port.PasswordHasher
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.TokenCodec, err = token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	container.Blacklist, err = container.buildBlacklist(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token blacklist: %w", err)
	}

	container.userRepository = postgres.NewUserRepository(container.DB.Pool(), logger)
	productRepository := postgres.NewProductRepository(container.DB.Pool(), logger)
	container.hasher = security.NewBcryptHasher(cfg.BcryptCost)

	container.AuthUsecase = usecase.NewAuthUseCase(
		container.userRepository,
		container.hasher,
		container.TokenCodec,
		container.Blacklist,
		logger,
	)
	container.AccessUsecase = usecase.NewAccessUseCase(
		container.TokenCodec,
		container.Blacklist,
		cfg.RevocationTimeout,
		logger,
	)
	container.UserUsecase = usecase.NewUserUseCase(container.userRepository, logger)
	container.ProductUsecase = usecase.NewProductUseCase(productRepository, logger)
	container.Sweeper = usecase.NewBlacklistSweeper(container.Blacklist, cfg.SweepInterval, logger)

	logger.Info("container initialized",
		"blacklist_store", cfg.BlacklistStore,
		"token_ttl", cfg.TokenTTL)

	return container, nil
}

func (c *Container) buildBlacklist(cfg *config.Config, logger *slog.Logger) (port.TokenBlacklist, error) {
	switch cfg.BlacklistStore {
	case config.BlacklistStorePostgres:
		return postgres.NewBlacklistRepository(c.DB.Pool(), logger), nil
	case config.BlacklistStoreRedis:
		store, err := redis.NewBlacklistStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		c.redisStore = store
		return store, nil
	case config.BlacklistStoreMemory:
		logger.Warn("using in-memory token blacklist, revocations are lost on restart")
		return memory.NewBlacklistStore(), nil
	default:
		return nil, fmt.Errorf("unknown blacklist store %q", cfg.BlacklistStore)
	}
}

// SeedAdmin creates the bootstrap ADMIN account if no admin exists yet
func (c *Container) SeedAdmin(ctx context.Context) error {
	if !c.Config.SeedAdmin {
		return nil
	}

	exists, err := c.userRepository.ExistsByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := c.hasher.Hash(c.Config.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin, err := newAdminUser("admin", hash)
	if err != nil {
		return err
	}

	if err := c.userRepository.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	c.Logger.Warn("seed admin account created, change its password immediately",
		"username", admin.Username)
	return nil
}

func newAdminUser(username, hash string) (*domain.User, error) {
	admin, err := domain.NewUser(username, hash)
	if err != nil {
		return nil, err
	}
	if err := admin.ChangeRole(string(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	return admin, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Logger:         c.Logger,
		AuthUsecase:    c.AuthUsecase,
		AccessUsecase:  c.AccessUsecase,
		UserUsecase:    c.UserUsecase,
		ProductUsecase: c.ProductUsecase,
		HealthChecker:  c.DB,
		RateLimitRPS:   c.Config.RateLimitRPS,
		RateLimitBurst: c.Config.RateLimitBurst,
	})
}

// Close releases all held resources
func (c *Container) Close() {
	if c.redisStore != nil {
		if err := c.redisStore.Close(); err != nil {
			c.Logger.Error("failed to close redis client", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
