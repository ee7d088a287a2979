package handlers

import (
	"studio_backend/internal/services"
	"studio_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	PortfolioHandler *PortfolioHandler
	MediaHandler     *MediaHandler
	OrderHandler     *OrderHandler
	ReviewHandler    *ReviewHandler
	DashboardHandler *DashboardHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		AuthHandler:      NewAuthHandler(base, svc.AuthService),
		PortfolioHandler: NewPortfolioHandler(base, svc.PortfolioService),
		MediaHandler:     NewMediaHandler(base, svc.MediaService),
		OrderHandler:     NewOrderHandler(base, svc.OrderService),
		ReviewHandler:    NewReviewHandler(base, svc.ReviewService),
		DashboardHandler: NewDashboardHandler(base, svc.DashboardService),
	}
}
