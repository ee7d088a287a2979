package routes

import (
	"studio_backend/internal/handlers"
	"studio_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует публичные и админские HTTP маршруты.
// adminAuth guards everything under /api/admin except /login.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	adminAuth gin.HandlerFunc,
) {
	ginRouter.GET("/health", handlers.Health)

	api := ginRouter.Group("/api")
	{
		appHandlers.PortfolioHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.OrderHandler.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	appHandlers.AuthHandler.RegisterRoutes(admin)

	protected := admin.Group("")
	protected.Use(adminAuth)
	{
		appHandlers.DashboardHandler.RegisterAdminRoutes(protected)
		appHandlers.OrderHandler.RegisterAdminRoutes(protected)
		appHandlers.ReviewHandler.RegisterAdminRoutes(protected)
		appHandlers.PortfolioHandler.RegisterAdminRoutes(protected)
		appHandlers.MediaHandler.RegisterAdminRoutes(protected)
	}
	logger.Info("HTTP routes registered", "public", "/api", "admin", "/api/admin")
}
