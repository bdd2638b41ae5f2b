// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finplan/backend/internal/application/usecase/calculator"
	"github.com/finplan/backend/internal/integration/entrypoint/controller"
	"github.com/finplan/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
// Controllers that need the database are nil when it is unavailable.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	calculatorController *controller.CalculatorController
	authController       *controller.AuthController
	goalController       *controller.GoalController
	portfolioController  *controller.PortfolioController
	dashboardController  *controller.DashboardController
	authRateLimiter      *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	calculatorController *controller.CalculatorController,
	authController *controller.AuthController,
	goalController *controller.GoalController,
	portfolioController *controller.PortfolioController,
	dashboardController *controller.DashboardController,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		calculatorController: calculatorController,
		authController:       authController,
		goalController:       goalController,
		portfolioController:  portfolioController,
		dashboardController:  dashboardController,
		authRateLimiter:      authRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), requestLogger())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Calculators are public and need no database
		if r.calculatorController != nil {
			calculators := v1.Group("/calculators")
			{
				calculators.POST("/sip", r.calculatorController.Growth(calculator.KindSIP))
				calculators.POST("/lumpsum", r.calculatorController.Growth(calculator.KindLumpSum))
				calculators.POST("/fd", r.calculatorController.Growth(calculator.KindFD))
				calculators.POST("/rd", r.calculatorController.Growth(calculator.KindRD))
				calculators.POST("/nsc", r.calculatorController.Growth(calculator.KindNSC))
				calculators.POST("/ssy", r.calculatorController.Growth(calculator.KindSSY))
				calculators.POST("/mutual-fund", r.calculatorController.Growth(calculator.KindMutualFund))
				calculators.POST("/cagr", r.calculatorController.CAGR)
				calculators.POST("/irr", r.calculatorController.IRR)
				calculators.POST("/hra", r.calculatorController.HRA)
				calculators.POST("/goal-sip", r.calculatorController.GoalSIP)
			}
		}

		if r.authController != nil && r.authRateLimiter != nil {
			auth := v1.Group("/auth")
			auth.Use(r.authRateLimiter.Middleware())
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.authController.Login)
			}
		}

		if r.authMiddleware == nil {
			return
		}

		if r.goalController != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.POST("/digest", r.goalController.Digest)
				goals.GET("/:id", r.goalController.Get)
				goals.PATCH("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Delete)
				goals.GET("/:id/projection", r.goalController.Projection)
			}
		}

		if r.portfolioController != nil {
			portfolio := v1.Group("/portfolio")
			portfolio.Use(r.authMiddleware.Authenticate())
			{
				portfolio.GET("/holdings", r.portfolioController.ListHoldings)
				portfolio.POST("/holdings", r.portfolioController.CreateHolding)
				portfolio.PATCH("/holdings/:id", r.portfolioController.UpdateHolding)
				portfolio.DELETE("/holdings/:id", r.portfolioController.DeleteHolding)
				portfolio.GET("/summary", r.portfolioController.Summary)
			}
		}

		if r.dashboardController != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/summary", r.dashboardController.GetSummary)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
