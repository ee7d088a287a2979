package dto

import "studio_backend/internal/models"

type DashboardCards struct {
	TotalOrders     int64 `json:"totalOrders"`
	NewOrders       int64 `json:"newOrders"`
	PendingReviews  int64 `json:"pendingReviews"`
	CompletedOrders int64 `json:"completedOrders"`
	PortfolioItems  int64 `json:"portfolioItems"`
}

type DashboardResponse struct {
	OK            bool                         `json:"ok"`
	Cards         DashboardCards               `json:"cards"`
	StatusMap     map[models.OrderStatus]int64 `json:"statusMap"`
	LatestOrders  []models.Order               `json:"latestOrders"`
	LatestReviews []models.Review              `json:"latestReviews"`
}
