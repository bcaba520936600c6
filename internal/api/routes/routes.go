package routes

import (
	"github.com/gin-gonic/gin"

	"coordinator-portal-backend/internal/api/handlers"
	"coordinator-portal-backend/internal/api/middleware"
	"coordinator-portal-backend/internal/auth"
	"coordinator-portal-backend/internal/config"
	"coordinator-portal-backend/internal/dashboard"
	"coordinator-portal-backend/internal/kobo"
	"coordinator-portal-backend/internal/notify"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize services
	koboClient := kobo.NewClient(cfg)
	dashboardService := dashboard.NewService(cfg, koboClient)
	notifyService := notify.NewService(cfg)

	authService := auth.NewAuthService(cfg, dashboardService)
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	toolsHandler := handlers.NewToolsHandler(dashboardService, notifyService)
	feedbackHandler := handlers.NewFeedbackHandler(notifyService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// API v1 routes - all endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.GET("/dashboard/summary", dashboardHandler.Summary)

		tools := v1.Group("/tools")
		{
			tools.GET("", toolsHandler.List)
			tools.GET("/:id", toolsHandler.Detail)
			tools.GET("/:id/responses", toolsHandler.Responses)
			tools.POST("/:id/stop", toolsHandler.Stop)
		}

		v1.POST("/feedback", feedbackHandler.Submit)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})

	return router
}
