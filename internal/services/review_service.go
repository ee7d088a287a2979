package services

import (
	"context"
	"strings"

	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/services/dto"
	"studio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// Submit stores a review as pending moderation.
	Submit(ctx context.Context, db *gorm.DB, req *dto.CreateReviewRequest) (*models.Review, error)
	ListApproved(ctx context.Context, db *gorm.DB) ([]models.Review, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]models.Review, error)
	SetApproved(ctx context.Context, db *gorm.DB, id string, approved bool) (*models.Review, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

func (s *reviewService) Submit(ctx context.Context, db *gorm.DB, req *dto.CreateReviewRequest) (*models.Review, error) {
	review := &models.Review{
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Rating:       models.ClampRating(req.Rating),
		Comment:      strings.TrimSpace(req.Comment),
		Approved:     false,
	}
	if err := s.reviewRepo.Create(db.WithContext(ctx), review); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return review, nil
}

func (s *reviewService) ListApproved(ctx context.Context, db *gorm.DB) ([]models.Review, error) {
	approved := true
	reviews, err := s.reviewRepo.List(db.WithContext(ctx), &approved, 0)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return reviews, nil
}

func (s *reviewService) ListAll(ctx context.Context, db *gorm.DB) ([]models.Review, error) {
	reviews, err := s.reviewRepo.List(db.WithContext(ctx), nil, 0)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return reviews, nil
}

func (s *reviewService) SetApproved(ctx context.Context, db *gorm.DB, id string, approved bool) (*models.Review, error) {
	review, err := s.reviewRepo.SetApproved(db.WithContext(ctx), id, approved)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.reviewRepo.Delete(db.WithContext(ctx), id); err != nil {
		return handleRepoError(err)
	}
	return nil
}
