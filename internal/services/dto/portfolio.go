package dto

import "studio_backend/internal/models"

const (
	DefaultPortfolioPageSize = 50
	MaxPortfolioPageSize     = 200
	MaxPortfolioPage         = 100_000
)

type CreatePortfolioRequest struct {
	Title     string   `json:"title" validate:"required,notblank,max=200"`
	Category  *string  `json:"category" validate:"omitempty,max=100"`
	Industry  *string  `json:"industry" validate:"omitempty,max=120"`
	Summary   *string  `json:"summary" validate:"omitempty,max=5000"`
	Tags      []string `json:"tags" validate:"omitempty,max=50,dive,max=100"`
	Features  []string `json:"features" validate:"omitempty,max=50,dive,max=300"`
	Results   []string `json:"results" validate:"omitempty,max=50,dive,max=300"`
	Published *bool    `json:"published"`
}

// Fields converts the request; absent lists stay nil so defaults apply.
func (r CreatePortfolioRequest) Fields() models.PortfolioFields {
	f := models.PortfolioFields{
		Title:     &r.Title,
		Category:  r.Category,
		Industry:  r.Industry,
		Summary:   r.Summary,
		Published: r.Published,
	}
	if r.Tags != nil {
		f.Tags = &r.Tags
	}
	if r.Features != nil {
		f.Features = &r.Features
	}
	if r.Results != nil {
		f.Results = &r.Results
	}
	return f
}

// UpdatePortfolioRequest is a partial update; nil fields are left untouched.
type UpdatePortfolioRequest struct {
	Title     *string   `json:"title" validate:"omitempty,notblank,max=200"`
	Category  *string   `json:"category" validate:"omitempty,max=100"`
	Industry  *string   `json:"industry" validate:"omitempty,max=120"`
	Summary   *string   `json:"summary" validate:"omitempty,max=5000"`
	Tags      *[]string `json:"tags" validate:"omitempty,max=50,dive,max=100"`
	Features  *[]string `json:"features" validate:"omitempty,max=50,dive,max=300"`
	Results   *[]string `json:"results" validate:"omitempty,max=50,dive,max=300"`
	Published *bool     `json:"published"`
}

func (r UpdatePortfolioRequest) Fields() models.PortfolioFields {
	return models.PortfolioFields{
		Title:     r.Title,
		Category:  r.Category,
		Industry:  r.Industry,
		Summary:   r.Summary,
		Tags:      r.Tags,
		Features:  r.Features,
		Results:   r.Results,
		Published: r.Published,
	}
}

// PublishRequest toggles when Published is absent.
type PublishRequest struct {
	Published *bool `json:"published"`
}

type PortfolioListQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Category  string `form:"category" validate:"omitempty,max=100"`
	Published *bool  `form:"published"`
}

// Normalize clamps page to 1..MaxPortfolioPage and limit to 1..200 (default 50).
func (q *PortfolioListQuery) Normalize() {
	switch {
	case q.Page < 1:
		q.Page = 1
	case q.Page > MaxPortfolioPage:
		q.Page = MaxPortfolioPage
	}
	switch {
	case q.Limit == 0:
		q.Limit = DefaultPortfolioPageSize
	case q.Limit < 1:
		q.Limit = 1
	case q.Limit > MaxPortfolioPageSize:
		q.Limit = MaxPortfolioPageSize
	}
}

type PortfolioListResponse struct {
	OK    bool               `json:"ok"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int64              `json:"total"`
	Pages int                `json:"pages"`
	Items []models.Portfolio `json:"items"`
}

// DetachMediaRequest names the entry to remove by publicId, or by url for
// locally stored media that has no publicId.
type DetachMediaRequest struct {
	PublicID string `json:"publicId" validate:"max=512"`
	URL      string `json:"url" validate:"max=1024"`
}
