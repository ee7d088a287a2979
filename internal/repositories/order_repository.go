package repositories

import (
	"errors"

	"studio_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(db *gorm.DB, order *models.Order) error
	FindByID(db *gorm.DB, id string) (*models.Order, error)
	// List returns newest first; empty status means all.
	List(db *gorm.DB, status models.OrderStatus, limit int) ([]models.Order, error)
	UpdateStatus(db *gorm.DB, id string, status models.OrderStatus) (*models.Order, error)
	CountByStatus(db *gorm.DB) (map[models.OrderStatus]int64, error)
	FindRecent(db *gorm.DB, limit int) ([]models.Order, error)
}

type OrderRepositoryImpl struct{}

func NewOrderRepository() OrderRepository {
	return &OrderRepositoryImpl{}
}

func (r *OrderRepositoryImpl) Create(db *gorm.DB, order *models.Order) error {
	return db.Create(order).Error
}

func (r *OrderRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) List(db *gorm.DB, status models.OrderStatus, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&orders).Error
	return orders, err
}

func (r *OrderRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.OrderStatus) (*models.Order, error) {
	result := db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return r.FindByID(db, id)
}

func (r *OrderRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.OrderStatus]int64, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *OrderRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.Order, error) {
	return r.List(db, "", limit)
}
