package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studio_backend/internal/logger"
	"studio_backend/internal/media"
	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/storage"
	"studio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const DefaultMaxFilesPerRequest = 10

// MediaService attaches uploaded files to a portfolio and detaches them.
type MediaService interface {
	// Attach admits every candidate or none. Blobs written before a failure
	// are deleted again.
	Attach(ctx context.Context, db *gorm.DB, portfolioID string, candidates []media.Candidate) (*models.Portfolio, error)
	// Detach removes every entry with the publicId, then deletes the blob.
	// Unknown publicIds leave the portfolio unchanged.
	Detach(ctx context.Context, db *gorm.DB, portfolioID, publicID string) (*models.Portfolio, error)
	// DetachByURL is Detach for media without a publicId (local backend).
	DetachByURL(ctx context.Context, db *gorm.DB, portfolioID, url string) (*models.Portfolio, error)
}

type mediaService struct {
	portfolioRepo repositories.PortfolioRepository
	blobs         storage.BlobStore
	acceptor      *media.Acceptor
	maxFiles      int
}

func NewMediaService(
	portfolioRepo repositories.PortfolioRepository,
	blobs storage.BlobStore,
	acceptor *media.Acceptor,
	maxFiles int,
) MediaService {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFilesPerRequest
	}
	return &mediaService{
		portfolioRepo: portfolioRepo,
		blobs:         blobs,
		acceptor:      acceptor,
		maxFiles:      maxFiles,
	}
}

func (s *mediaService) Attach(ctx context.Context, db *gorm.DB, portfolioID string, candidates []media.Candidate) (*models.Portfolio, error) {
	db = db.WithContext(ctx)
	log := logger.FromContext(ctx).With("portfolio_id", portfolioID)

	if _, err := s.portfolioRepo.FindByID(db, portfolioID); err != nil {
		return nil, handleRepoError(err)
	}
	if len(candidates) == 0 {
		return nil, apperrors.ErrNoFilesProvided()
	}
	if len(candidates) > s.maxFiles {
		return nil, apperrors.ErrTooManyFiles(s.maxFiles)
	}

	// 1. Admission: nothing is written unless every file passes.
	if err := s.acceptor.AcceptAll(candidates); err != nil {
		return nil, rejectionError(err)
	}

	// 2. Persist in submission order.
	written := make([]storage.BlobRef, 0, len(candidates))
	entries := make([]models.Media, 0, len(candidates))
	for i, c := range candidates {
		ref, err := s.put(ctx, c)
		if err != nil {
			log.Errorw("Failed to store upload", "index", i, "file", c.Filename, "error", err)
			s.compensate(ctx, written)
			return nil, apperrors.StorageError(err).WithDetails(map[string]interface{}{"file": c.Filename, "index": i})
		}
		written = append(written, ref)
		entries = append(entries, models.Media{
			Type:     mediaTypeOf(c.MimeType),
			URL:      ref.URL,
			PublicID: ref.PublicID,
		})
	}

	// 3. Commit: one append for the whole batch.
	if err := s.portfolioRepo.AppendMedia(db, portfolioID, entries); err != nil {
		log.Errorw("Failed to attach media, rolling back stored files", "count", len(written), "error", err)
		s.compensate(ctx, written)
		if errors.Is(err, repositories.ErrPortfolioNotFound) {
			return nil, apperrors.ErrPortfolioNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}

	log.Infow("Media attached", "count", len(entries))

	portfolio, err := s.portfolioRepo.FindByID(db, portfolioID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return portfolio, nil
}

func (s *mediaService) put(ctx context.Context, c media.Candidate) (storage.BlobRef, error) {
	if c.Open == nil {
		return storage.BlobRef{}, fmt.Errorf("candidate %q has no content", c.Filename)
	}
	rc, err := c.Open()
	if err != nil {
		return storage.BlobRef{}, fmt.Errorf("open upload: %w", err)
	}
	defer rc.Close()

	return s.blobs.Put(ctx, s.acceptor.StorageName(c), rc, c.Size, c.MimeType)
}

// compensate deletes blobs that will never be referenced. Failures are
// logged only; the original error is what the caller sees.
func (s *mediaService) compensate(ctx context.Context, refs []storage.BlobRef) {
	// the request context may already be cancelled
	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := s.blobs.Delete(ctx, ref); err != nil {
			logger.CtxWithError(ctx, "CRITICAL: failed to roll back stored file", err,
				"url", ref.URL, "public_id", ref.PublicID)
		}
	}
}

func (s *mediaService) Detach(ctx context.Context, db *gorm.DB, portfolioID, publicID string) (*models.Portfolio, error) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return nil, apperrors.ValidationError(map[string]string{"publicId": "This field is required"})
	}
	return s.detach(ctx, db, portfolioID, func(db *gorm.DB) ([]models.Media, error) {
		return s.portfolioRepo.RemoveMediaByPublicID(db, portfolioID, publicID)
	})
}

func (s *mediaService) DetachByURL(ctx context.Context, db *gorm.DB, portfolioID, url string) (*models.Portfolio, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.ValidationError(map[string]string{"url": "This field is required"})
	}
	return s.detach(ctx, db, portfolioID, func(db *gorm.DB) ([]models.Media, error) {
		return s.portfolioRepo.RemoveMediaByURL(db, portfolioID, url)
	})
}

func (s *mediaService) detach(ctx context.Context, db *gorm.DB, portfolioID string, remove func(*gorm.DB) ([]models.Media, error)) (*models.Portfolio, error) {
	db = db.WithContext(ctx)

	if _, err := s.portfolioRepo.FindByID(db, portfolioID); err != nil {
		return nil, handleRepoError(err)
	}

	removed, err := remove(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	// the record no longer references these; blob cleanup is best-effort
	deleteBlobs(ctx, s.blobs, removed)

	portfolio, err := s.portfolioRepo.FindByID(db, portfolioID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return portfolio, nil
}

// deleteBlobs removes stored files for media entries that were dropped
// from the database. Entries sharing a reference are deleted once.
func deleteBlobs(ctx context.Context, blobs storage.BlobStore, removed []models.Media) {
	seen := make(map[storage.BlobRef]struct{}, len(removed))
	for _, m := range removed {
		ref := storage.BlobRef{URL: m.URL, PublicID: m.PublicID}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		if err := blobs.Delete(ctx, ref); err != nil {
			logger.CtxWarn(ctx, "Failed to delete stored file", "url", ref.URL, "public_id", ref.PublicID, "error", err)
		}
	}
}

func mediaTypeOf(mimeType string) models.MediaType {
	if media.KindOf(mimeType) == media.KindVideo {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}

// rejectionError maps an admission failure to its AppError with the
// offending file in details.
func rejectionError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, media.ErrFileTooLarge):
		appErr = apperrors.ErrFileTooLarge()
	case errors.Is(err, media.ErrUnsupportedMediaType):
		appErr = apperrors.ErrUnsupportedMediaType()
	case errors.Is(err, media.ErrDisallowedExtension):
		appErr = apperrors.ErrDisallowedExtension()
	default:
		return apperrors.InternalError(err)
	}

	var rej *media.Rejection
	if errors.As(err, &rej) {
		appErr = appErr.WithDetails(map[string]interface{}{"file": rej.Filename, "index": rej.Index})
	}
	return appErr.WithError(err)
}
