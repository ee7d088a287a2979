package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const DefaultPortfolioCategory = "Website"

var ErrTitleRequired = errors.New("title is required")

// Portfolio is a case study shown on the public site.
type Portfolio struct {
	BaseModel
	Title     string                      `gorm:"size:200;not null" json:"title"`
	Category  string                      `gorm:"size:100;not null;index" json:"category"`
	Industry  string                      `gorm:"size:120" json:"industry"`
	Summary   string                      `gorm:"type:text" json:"summary"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	Features  datatypes.JSONSlice[string] `json:"features"`
	Results   datatypes.JSONSlice[string] `json:"results"`
	Published bool                        `gorm:"not null;index" json:"published"`

	// Ordered by Seq, i.e. upload order.
	Media []Media `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"media"`
}

// Media is one stored file attached to a portfolio. Seq is the append
// order and never leaves the server.
type Media struct {
	Seq         uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	PortfolioID string    `gorm:"type:varchar(36);not null;index" json:"-"`
	Type        MediaType `gorm:"size:10;not null" json:"type"`
	URL         string    `gorm:"size:1024;not null" json:"url"`
	PublicID    string    `gorm:"size:512;index" json:"publicId"`
	CreatedAt   time.Time `json:"-"`
}

func (Media) TableName() string {
	return "portfolio_media"
}

// PortfolioFields lists writable fields. Nil means "not provided".
type PortfolioFields struct {
	Title     *string
	Category  *string
	Industry  *string
	Summary   *string
	Tags      *[]string
	Features  *[]string
	Results   *[]string
	Published *bool
}

// NewPortfolio applies defaults (category "Website", published) and requires a title.
func NewPortfolio(f PortfolioFields) (*Portfolio, error) {
	p := &Portfolio{
		Category:  DefaultPortfolioCategory,
		Tags:      datatypes.JSONSlice[string]{},
		Features:  datatypes.JSONSlice[string]{},
		Results:   datatypes.JSONSlice[string]{},
		Published: true,
		Media:     []Media{},
	}
	if f.Title == nil {
		return nil, ErrTitleRequired
	}
	if err := p.ApplyPatch(f); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyPatch sets only the provided fields. Media is never touched here.
func (p *Portfolio) ApplyPatch(f PortfolioFields) error {
	if f.Title != nil {
		title := strings.TrimSpace(*f.Title)
		if title == "" {
			return ErrTitleRequired
		}
		p.Title = title
	}
	if f.Category != nil {
		category := strings.TrimSpace(*f.Category)
		if category == "" {
			category = DefaultPortfolioCategory
		}
		p.Category = category
	}
	if f.Industry != nil {
		p.Industry = strings.TrimSpace(*f.Industry)
	}
	if f.Summary != nil {
		p.Summary = strings.TrimSpace(*f.Summary)
	}
	if f.Tags != nil {
		p.Tags = cleanList(*f.Tags)
	}
	if f.Features != nil {
		p.Features = cleanList(*f.Features)
	}
	if f.Results != nil {
		p.Results = cleanList(*f.Results)
	}
	if f.Published != nil {
		p.Published = *f.Published
	}
	return nil
}

func cleanList(in []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
