package repositories

import (
	"errors"
	"path"
	"time"

	"studio_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
)

// PortfolioFilter narrows List. Nil Published means any.
type PortfolioFilter struct {
	Published *bool
	Category  string
	Offset    int
	Limit     int
}

type PortfolioRepository interface {
	Create(db *gorm.DB, p *models.Portfolio) error
	FindByID(db *gorm.DB, id string) (*models.Portfolio, error)
	List(db *gorm.DB, filter PortfolioFilter) ([]models.Portfolio, int64, error)
	Update(db *gorm.DB, p *models.Portfolio) error
	SetPublished(db *gorm.DB, id string, published bool) error
	// Delete removes the portfolio and its media rows and returns the media
	// so the caller can clean up blobs.
	Delete(db *gorm.DB, id string) ([]models.Media, error)

	// AppendMedia inserts all entries in order or none of them.
	AppendMedia(db *gorm.DB, portfolioID string, media []models.Media) error
	// RemoveMediaByPublicID deletes every entry with that publicId and
	// returns what was removed.
	RemoveMediaByPublicID(db *gorm.DB, portfolioID, publicID string) ([]models.Media, error)
	RemoveMediaByURL(db *gorm.DB, portfolioID, url string) ([]models.Media, error)

	Count(db *gorm.DB, published *bool) (int64, error)
	// ReferencedFileNames reports which of names is the last path element
	// of some media url, whatever prefix the url was stored under.
	ReferencedFileNames(db *gorm.DB, names []string) (map[string]bool, error)
}

type PortfolioRepositoryImpl struct {
	// db передается в каждый метод
}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func preloadMedia(db *gorm.DB) *gorm.DB {
	return db.Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}

func (r *PortfolioRepositoryImpl) Create(db *gorm.DB, p *models.Portfolio) error {
	// media only enters through AppendMedia
	return db.Omit("Media").Create(p).Error
}

func (r *PortfolioRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Portfolio, error) {
	var p models.Portfolio
	err := preloadMedia(db).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	if p.Media == nil {
		p.Media = []models.Media{}
	}
	return &p, nil
}

func (r *PortfolioRepositoryImpl) List(db *gorm.DB, filter PortfolioFilter) ([]models.Portfolio, int64, error) {
	query := db.Model(&models.Portfolio{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Portfolio
	q := preloadMedia(query).Order("created_at DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	for i := range items {
		if items[i].Media == nil {
			items[i].Media = []models.Media{}
		}
	}
	return items, total, nil
}

func (r *PortfolioRepositoryImpl) Update(db *gorm.DB, p *models.Portfolio) error {
	result := db.Model(p).
		Select("title", "category", "industry", "summary", "tags", "features", "results", "published", "updated_at").
		Updates(p)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) SetPublished(db *gorm.DB, id string, published bool) error {
	result := db.Model(&models.Portfolio{}).Where("id = ?", id).
		Updates(map[string]interface{}{"published": published, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) Delete(db *gorm.DB, id string) ([]models.Media, error) {
	var removed []models.Media
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Order("seq ASC").Find(&removed).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Portfolio{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPortfolioNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *PortfolioRepositoryImpl) AppendMedia(db *gorm.DB, portfolioID string, media []models.Media) error {
	if len(media) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		// takes the row lock, so concurrent appends serialize here
		if err := touch(tx, portfolioID); err != nil {
			return err
		}

		for i := range media {
			media[i].PortfolioID = portfolioID
		}
		return tx.Create(&media).Error
	})
}

func (r *PortfolioRepositoryImpl) RemoveMediaByPublicID(db *gorm.DB, portfolioID, publicID string) ([]models.Media, error) {
	return r.removeMedia(db, portfolioID, "public_id = ?", publicID)
}

func (r *PortfolioRepositoryImpl) RemoveMediaByURL(db *gorm.DB, portfolioID, url string) ([]models.Media, error) {
	return r.removeMedia(db, portfolioID, "url = ?", url)
}

func (r *PortfolioRepositoryImpl) removeMedia(db *gorm.DB, portfolioID, cond string, value string) ([]models.Media, error) {
	var removed []models.Media
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", portfolioID).Where(cond, value).
			Order("seq ASC").Find(&removed).Error; err != nil {
			return err
		}
		if len(removed) == 0 {
			return nil
		}

		seqs := make([]uint64, len(removed))
		for i, m := range removed {
			seqs[i] = m.Seq
		}
		if err := tx.Where("seq IN ?", seqs).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		return touch(tx, portfolioID)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *PortfolioRepositoryImpl) Count(db *gorm.DB, published *bool) (int64, error) {
	var count int64
	query := db.Model(&models.Portfolio{})
	if published != nil {
		query = query.Where("published = ?", *published)
	}
	err := query.Count(&count).Error
	return count, err
}

const referencedScanBatch = 500

func (r *PortfolioRepositoryImpl) ReferencedFileNames(db *gorm.DB, names []string) (map[string]bool, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	found := make(map[string]bool, len(names))
	if len(wanted) == 0 {
		return found, nil
	}

	var batch []models.Media
	err := db.Model(&models.Media{}).
		Select("seq", "url").
		FindInBatches(&batch, referencedScanBatch, func(tx *gorm.DB, _ int) error {
			for _, m := range batch {
				name := path.Base(m.URL)
				if _, ok := wanted[name]; ok {
					found[name] = true
				}
			}
			return nil
		}).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// touch bumps updated_at and reports ErrPortfolioNotFound for a missing row.
func touch(tx *gorm.DB, id string) error {
	result := tx.Model(&models.Portfolio{}).Where("id = ?", id).Update("updated_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	// MySQL reports zero affected rows when the value did not change
	var count int64
	if err := tx.Model(&models.Portfolio{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}
