package models

type Order struct {
	BaseModel
	Name         string      `gorm:"size:100;not null" json:"name"`
	BusinessName string      `gorm:"size:120" json:"businessName"`
	Email        string      `gorm:"size:120" json:"email"`
	Phone        string      `gorm:"size:30" json:"phone"`
	PackageType  PackageType `gorm:"size:20;not null" json:"packageType"`
	Budget       string      `gorm:"size:60" json:"budget"`
	Requirements string      `gorm:"type:text;not null" json:"requirements"`
	Status       OrderStatus `gorm:"size:20;not null;index" json:"status"`
}
