package repositories

import (
	"errors"

	"studio_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	// List returns newest first; nil approved means all.
	List(db *gorm.DB, approved *bool, limit int) ([]models.Review, error)
	SetApproved(db *gorm.DB, id string, approved bool) (*models.Review, error)
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB, approved *bool) (int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	if err := db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) List(db *gorm.DB, approved *bool, limit int) ([]models.Review, error) {
	var reviews []models.Review
	query := db.Order("created_at DESC")
	if approved != nil {
		query = query.Where("approved = ?", *approved)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) SetApproved(db *gorm.DB, id string, approved bool) (*models.Review, error) {
	result := db.Model(&models.Review{}).Where("id = ?", id).Update("approved", approved)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrReviewNotFound
	}
	return r.FindByID(db, id)
}

func (r *ReviewRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) Count(db *gorm.DB, approved *bool) (int64, error) {
	var count int64
	query := db.Model(&models.Review{})
	if approved != nil {
		query = query.Where("approved = ?", *approved)
	}
	err := query.Count(&count).Error
	return count, err
}
