package models

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

type Review struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	BusinessName string `gorm:"size:120" json:"businessName"`
	Rating       int    `gorm:"not null" json:"rating"`
	Comment      string `gorm:"size:500;not null" json:"comment"`
	Approved     bool   `gorm:"not null;index" json:"approved"`
}

// ClampRating maps an absent or zero rating to the default and clamps the rest to 1..5.
func ClampRating(rating *int) int {
	if rating == nil || *rating == 0 {
		return DefaultRating
	}
	switch r := *rating; {
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	default:
		return r
	}
}
