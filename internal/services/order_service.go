package services

import (
	"context"
	"strings"

	"studio_backend/internal/logger"
	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/services/dto"
	"studio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const maxOrdersListed = 500

type OrderService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateOrderRequest) (*models.Order, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*models.Order, error)
	List(ctx context.Context, db *gorm.DB, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id, status string) (*models.Order, error)
}

type orderService struct {
	orderRepo repositories.OrderRepository
}

func NewOrderService(orderRepo repositories.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateOrderRequest) (*models.Order, error) {
	order := &models.Order{
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		PackageType:  models.PackageType(req.PackageType),
		Budget:       strings.TrimSpace(req.Budget),
		Requirements: strings.TrimSpace(req.Requirements),
		Status:       models.OrderStatusNew,
	}
	if err := s.orderRepo.Create(db.WithContext(ctx), order); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "Order received", "order_id", order.ID, "package", order.PackageType)
	return order, nil
}

func (s *orderService) Get(ctx context.Context, db *gorm.DB, id string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, db *gorm.DB, status string) ([]models.Order, error) {
	if status != "" && !models.OrderStatus(status).Valid() {
		return nil, apperrors.ErrInvalidStatus("order", "Unknown order status")
	}
	orders, err := s.orderRepo.List(db.WithContext(ctx), models.OrderStatus(status), maxOrdersListed)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, db *gorm.DB, id, status string) (*models.Order, error) {
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, apperrors.ErrInvalidStatus("order", "Unknown order status")
	}
	order, err := s.orderRepo.UpdateStatus(db.WithContext(ctx), id, next)
	if err != nil {
		return nil, handleRepoError(err)
	}
	logger.CtxInfo(ctx, "Order status updated", "order_id", id, "status", next)
	return order, nil
}
