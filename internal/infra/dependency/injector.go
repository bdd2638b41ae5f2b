// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finplan/backend/config"
	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/application/usecase/auth"
	"github.com/finplan/backend/internal/application/usecase/calculator"
	"github.com/finplan/backend/internal/application/usecase/dashboard"
	"github.com/finplan/backend/internal/application/usecase/goal"
	"github.com/finplan/backend/internal/application/usecase/notification"
	"github.com/finplan/backend/internal/application/usecase/portfolio"
	"github.com/finplan/backend/internal/domain/projection"
	"github.com/finplan/backend/internal/infra/server/router"
	"github.com/finplan/backend/internal/integration/adapters"
	"github.com/finplan/backend/internal/integration/cache"
	"github.com/finplan/backend/internal/integration/email"
	"github.com/finplan/backend/internal/integration/email/templates"
	"github.com/finplan/backend/internal/integration/entrypoint/controller"
	"github.com/finplan/backend/internal/integration/entrypoint/middleware"
	"github.com/finplan/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router

	// memoryCounter is set when rate limits are kept in process.
	memoryCounter *middleware.MemoryCounter
}

const rateLimitCleanupInterval = time.Minute

// Start launches background housekeeping that runs until ctx is done.
func (i *Injector) Start(ctx context.Context) {
	if i.memoryCounter != nil {
		go i.memoryCounter.RunCleanup(ctx, rateLimitCleanupInterval)
	}
}

// Options carries the optional collaborators of NewInjector.
type Options struct {
	// DB enables accounts, goals, portfolio and dashboard when set.
	DB *gorm.DB
	// DBHealth reports database liveness for /health.
	DBHealth func() bool
	// Redis enables the calculator cache and shared rate limiting when set.
	Redis *redis.Client
	// EmailSender overrides the sender chosen from the configuration.
	EmailSender adapter.EmailSender
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, opts Options) (*Injector, error) {
	settings := CalculatorSettings(cfg)

	// Calculator cache and rate limit counter
	var projectionCache adapter.ProjectionCache
	var cacheHealth func(context.Context) bool
	var memoryCounter *middleware.MemoryCounter
	var counter middleware.Counter
	if opts.Redis == nil {
		memoryCounter = middleware.NewMemoryCounter()
		counter = memoryCounter
	} else {
		redisCache := cache.NewRedisCache(opts.Redis, cfg.Redis.CacheTTL)
		projectionCache = redisCache
		cacheHealth = redisCache.HealthCheck
		counter = cache.NewRedisCounter(opts.Redis, "ratelimit:")
	}

	healthController := controller.NewHealthController(opts.DBHealth, cacheHealth)
	calculatorController := controller.NewCalculatorController(
		calculator.NewProjectUseCase(settings, projectionCache),
		calculator.NewCAGRUseCase(settings),
		calculator.NewIRRUseCase(settings),
		calculator.NewHRAUseCase(settings),
		calculator.NewGoalSIPUseCase(settings),
	)

	injector := &Injector{
		Config:        cfg,
		DB:            opts.DB,
		Redis:         opts.Redis,
		memoryCounter: memoryCounter,
	}

	if opts.DB == nil {
		slog.Warn("Accounts, goals and portfolio not initialized due to missing database connection")
		injector.Router = router.NewRouter(healthController, calculatorController, nil, nil, nil, nil, nil, nil)
		return injector, nil
	}

	db := opts.DB
	format := settings.Currency

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	holdingRepo := persistence.NewHoldingRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	sender := opts.EmailSender
	if sender == nil {
		sender, err = email.NewSender(cfg.Email)
		if err != nil {
			return nil, err
		}
	}

	authController := controller.NewAuthController(
		auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
		auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
	)

	goalController := controller.NewGoalController(
		goal.NewListGoalsUseCase(goalRepo),
		goal.NewCreateGoalUseCase(goalRepo),
		goal.NewGetGoalUseCase(goalRepo),
		goal.NewUpdateGoalUseCase(goalRepo),
		goal.NewDeleteGoalUseCase(goalRepo),
		goal.NewProjectGoalUseCase(goalRepo, format, settings.ChartPoints),
		notification.NewSendGoalDigestUseCase(userRepo, goalRepo, renderer, sender, format, cfg.Email.AppBaseURL),
	)

	portfolioController := controller.NewPortfolioController(
		portfolio.NewListHoldingsUseCase(holdingRepo),
		portfolio.NewCreateHoldingUseCase(holdingRepo),
		portfolio.NewUpdateHoldingUseCase(holdingRepo),
		portfolio.NewDeleteHoldingUseCase(holdingRepo),
		portfolio.NewGetSummaryUseCase(holdingRepo, format, settings.IRR),
	)

	dashboardController := controller.NewDashboardController(
		dashboard.NewGetSummaryUseCase(goalRepo, dashboardRepo, format),
	)

	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var authRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		authRateLimiter = middleware.NewRateLimiterWithConfig(counter, 1000, 1*time.Minute)
	} else {
		authRateLimiter = middleware.NewRateLimiterWithConfig(counter, 5, 1*time.Minute)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	injector.Router = router.NewRouter(
		healthController,
		calculatorController,
		authController,
		goalController,
		portfolioController,
		dashboardController,
		authRateLimiter,
		authMiddleware,
	)
	return injector, nil
}

// CalculatorSettings builds the calculator presets from the configuration.
func CalculatorSettings(cfg *config.Config) calculator.Settings {
	settings := calculator.DefaultSettings()

	p := cfg.Projection
	if p.ChartPoints > 0 {
		settings.ChartPoints = p.ChartPoints
	}
	settings.IRR = projection.IRROptions{
		Lower:         p.IRRLowerBound,
		Upper:         p.IRRUpperBound,
		MaxIterations: p.IRRMaxIterations,
		Tolerance:     p.IRRTolerance,
	}
	if p.SSYDepositYears > 0 {
		settings.SSYDepositYears = p.SSYDepositYears
	}
	if p.SSYMaturityYears > 0 {
		settings.SSYMaturityYears = p.SSYMaturityYears
	}
	if p.NSCTenureYears > 0 {
		settings.NSCTenureYears = p.NSCTenureYears
	}
	if p.FDCompoundingUnit != "" {
		settings.FDUnit = projection.PeriodUnit(p.FDCompoundingUnit)
	}

	c := cfg.Currency
	settings.Currency = projection.CurrencyFormat{
		Symbol:      c.Symbol,
		CroreSuffix: c.CroreSuffix,
		LakhSuffix:  c.LakhSuffix,
		Undefined:   c.Undefined,
	}
	return settings
}
