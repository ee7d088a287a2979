package services

import (
	"studio_backend/internal/auth"
	"studio_backend/internal/media"
	"studio_backend/internal/repositories"
	"studio_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	PortfolioService PortfolioService
	MediaService     MediaService
	OrderService     OrderService
	ReviewService    ReviewService
	AuthService      AuthService
	DashboardService DashboardService
}

// Dependencies are the shared collaborators the services are built from.
type Dependencies struct {
	Blobs    storage.BlobStore
	Acceptor *media.Acceptor
	MaxFiles int
	Tokens   *auth.TokenManager
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	portfolioRepo := repositories.NewPortfolioRepository()
	orderRepo := repositories.NewOrderRepository()
	reviewRepo := repositories.NewReviewRepository()
	adminRepo := repositories.NewAdminRepository()

	return &ServiceContainer{
		PortfolioService: NewPortfolioService(portfolioRepo, deps.Blobs),
		MediaService:     NewMediaService(portfolioRepo, deps.Blobs, deps.Acceptor, deps.MaxFiles),
		OrderService:     NewOrderService(orderRepo),
		ReviewService:    NewReviewService(reviewRepo),
		AuthService:      NewAuthService(adminRepo, deps.Tokens),
		DashboardService: NewDashboardService(orderRepo, reviewRepo, portfolioRepo),
	}
}
