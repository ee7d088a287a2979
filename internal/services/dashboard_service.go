package services

import (
	"context"

	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/services/dto"
	"studio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const dashboardLatest = 5

type DashboardService interface {
	Summary(ctx context.Context, db *gorm.DB) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	orderRepo     repositories.OrderRepository
	reviewRepo    repositories.ReviewRepository
	portfolioRepo repositories.PortfolioRepository
}

func NewDashboardService(
	orderRepo repositories.OrderRepository,
	reviewRepo repositories.ReviewRepository,
	portfolioRepo repositories.PortfolioRepository,
) DashboardService {
	return &dashboardService{orderRepo: orderRepo, reviewRepo: reviewRepo, portfolioRepo: portfolioRepo}
}

func (s *dashboardService) Summary(ctx context.Context, db *gorm.DB) (*dto.DashboardResponse, error) {
	db = db.WithContext(ctx)

	statusMap, err := s.orderRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	var totalOrders int64
	for _, n := range statusMap {
		totalOrders += n
	}

	pending := false
	pendingReviews, err := s.reviewRepo.Count(db, &pending)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	portfolioItems, err := s.portfolioRepo.Count(db, nil)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	latestOrders, err := s.orderRepo.FindRecent(db, dashboardLatest)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	latestReviews, err := s.reviewRepo.List(db, nil, dashboardLatest)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if latestOrders == nil {
		latestOrders = []models.Order{}
	}
	if latestReviews == nil {
		latestReviews = []models.Review{}
	}

	return &dto.DashboardResponse{
		OK: true,
		Cards: dto.DashboardCards{
			TotalOrders:     totalOrders,
			NewOrders:       statusMap[models.OrderStatusNew],
			PendingReviews:  pendingReviews,
			CompletedOrders: statusMap[models.OrderStatusCompleted],
			PortfolioItems:  portfolioItems,
		},
		StatusMap:     statusMap,
		LatestOrders:  latestOrders,
		LatestReviews: latestReviews,
	}, nil
}
