package models

type AdminUser struct {
	BaseModel
	Email        string `gorm:"size:120;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}
