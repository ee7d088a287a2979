package repositories

import (
	"errors"
	"strings"

	"studio_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAdminNotFound = errors.New("admin not found")
)

type AdminRepository interface {
	FindByEmail(db *gorm.DB, email string) (*models.AdminUser, error)
	FindByID(db *gorm.DB, id string) (*models.AdminUser, error)
	Create(db *gorm.DB, admin *models.AdminUser) error
}

type AdminRepositoryImpl struct{}

func NewAdminRepository() AdminRepository {
	return &AdminRepositoryImpl{}
}

func (r *AdminRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) Create(db *gorm.DB, admin *models.AdminUser) error {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	return db.Create(admin).Error
}
