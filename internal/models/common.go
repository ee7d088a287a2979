package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries a UUID string id generated client-side so every
// supported driver (postgres, mysql, sqlite) behaves the same.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All returns every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&AdminUser{},
		&Portfolio{},
		&Media{},
		&Order{},
		&Review{},
	}
}
