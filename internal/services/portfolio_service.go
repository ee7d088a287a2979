package services

import (
	"context"
	"errors"
	"math"

	"studio_backend/internal/logger"
	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/services/dto"
	"studio_backend/internal/storage"
	"studio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PortfolioService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreatePortfolioRequest) (*models.Portfolio, error)
	// Get returns unpublished items only when includeDrafts is set.
	Get(ctx context.Context, db *gorm.DB, id string, includeDrafts bool) (*models.Portfolio, error)
	// List shows only published items unless publicOnly is false.
	List(ctx context.Context, db *gorm.DB, query dto.PortfolioListQuery, publicOnly bool) (*dto.PortfolioListResponse, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdatePortfolioRequest) (*models.Portfolio, error)
	// SetPublished toggles when published is nil.
	SetPublished(ctx context.Context, db *gorm.DB, id string, published *bool) (*models.Portfolio, error)
	// Delete removes the record, then its stored files on a best-effort basis.
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	blobs         storage.BlobStore
}

func NewPortfolioService(portfolioRepo repositories.PortfolioRepository, blobs storage.BlobStore) PortfolioService {
	return &portfolioService{portfolioRepo: portfolioRepo, blobs: blobs}
}

func (s *portfolioService) Create(ctx context.Context, db *gorm.DB, req *dto.CreatePortfolioRequest) (*models.Portfolio, error) {
	p, err := models.NewPortfolio(req.Fields())
	if err != nil {
		return nil, fieldError("title", err)
	}
	if err := s.portfolioRepo.Create(db.WithContext(ctx), p); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "Portfolio created", "portfolio_id", p.ID)
	return p, nil
}

func (s *portfolioService) Get(ctx context.Context, db *gorm.DB, id string, includeDrafts bool) (*models.Portfolio, error) {
	p, err := s.portfolioRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !p.Published && !includeDrafts {
		return nil, apperrors.ErrPortfolioNotFound(nil)
	}
	return p, nil
}

func (s *portfolioService) List(ctx context.Context, db *gorm.DB, query dto.PortfolioListQuery, publicOnly bool) (*dto.PortfolioListResponse, error) {
	query.Normalize()

	filter := repositories.PortfolioFilter{
		Category:  query.Category,
		Published: query.Published,
		Offset:    (query.Page - 1) * query.Limit,
		Limit:     query.Limit,
	}
	if publicOnly {
		published := true
		filter.Published = &published
	}

	items, total, err := s.portfolioRepo.List(db.WithContext(ctx), filter)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if items == nil {
		items = []models.Portfolio{}
	}

	return &dto.PortfolioListResponse{
		OK:    true,
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(query.Limit))),
		Items: items,
	}, nil
}

func (s *portfolioService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdatePortfolioRequest) (*models.Portfolio, error) {
	db = db.WithContext(ctx)

	p, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if err := p.ApplyPatch(req.Fields()); err != nil {
		return nil, fieldError("title", err)
	}
	if err := s.portfolioRepo.Update(db, p); err != nil {
		return nil, handleRepoError(err)
	}
	return s.reload(db, id)
}

func (s *portfolioService) SetPublished(ctx context.Context, db *gorm.DB, id string, published *bool) (*models.Portfolio, error) {
	db = db.WithContext(ctx)

	p, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	next := !p.Published
	if published != nil {
		next = *published
	}
	if err := s.portfolioRepo.SetPublished(db, id, next); err != nil {
		return nil, handleRepoError(err)
	}
	return s.reload(db, id)
}

func (s *portfolioService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	removed, err := s.portfolioRepo.Delete(db.WithContext(ctx), id)
	if err != nil {
		return handleRepoError(err)
	}
	deleteBlobs(ctx, s.blobs, removed)
	logger.CtxInfo(ctx, "Portfolio deleted", "portfolio_id", id, "media", len(removed))
	return nil
}

func (s *portfolioService) reload(db *gorm.DB, id string) (*models.Portfolio, error) {
	p, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return p, nil
}

func fieldError(field string, err error) *apperrors.AppError {
	return apperrors.ValidationError(map[string]string{field: err.Error()})
}

// handleRepoError maps repository sentinels to AppErrors.
func handleRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPortfolioNotFound):
		return apperrors.ErrPortfolioNotFound(err)
	case errors.Is(err, repositories.ErrOrderNotFound),
		errors.Is(err, repositories.ErrReviewNotFound),
		errors.Is(err, repositories.ErrAdminNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound(err)
	default:
		return apperrors.DatabaseError(err)
	}
}
