package dto

type CreateReviewRequest struct {
	Name         string `json:"name" validate:"required,notblank,max=100"`
	BusinessName string `json:"businessName" validate:"max=120"`
	Rating       *int   `json:"rating"`
	Comment      string `json:"comment" validate:"required,notblank,max=500"`
}
