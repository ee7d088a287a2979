package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studio_backend/internal/media"
	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/testutil"
	"studio_backend/pkg/apperrors"
)

type mediaFixture struct {
	db        *gorm.DB
	repo      repositories.PortfolioRepository
	blobs     *memoryBlobs
	svc       MediaService
	portfolio *models.Portfolio
}

func newMediaFixture(t *testing.T) *mediaFixture {
	t.Helper()
	f := &mediaFixture{
		db:    testutil.NewTestDB(t),
		repo:  repositories.NewPortfolioRepository(),
		blobs: newMemoryBlobs(),
	}
	f.svc = NewMediaService(f.repo, f.blobs, media.NewAcceptor(0, nil), 0)
	f.portfolio = createTestPortfolio(t, f.db, f.repo)
	return f
}

func (f *mediaFixture) reload(t *testing.T) *models.Portfolio {
	t.Helper()
	p, err := f.repo.FindByID(f.db, f.portfolio.ID)
	require.NoError(t, err)
	return p
}

func assertAppError(t *testing.T, err error, code apperrors.ErrorCode, status int) *apperrors.AppError {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.HTTPCode)
	return appErr
}

func TestAttach_PreservesSubmissionOrder(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	p, err := f.svc.Attach(ctx, f.db, f.portfolio.ID, []media.Candidate{
		candidate("a.jpg", "image/jpeg", "A"),
		candidate("b.mp4", "video/mp4", "B"),
		candidate("c.png", "image/png", "C"),
	})
	require.NoError(t, err)
	require.Len(t, p.Media, 3)

	assert.Equal(t, models.MediaTypeImage, p.Media[0].Type)
	assert.Equal(t, models.MediaTypeVideo, p.Media[1].Type)
	assert.Equal(t, models.MediaTypeImage, p.Media[2].Type)
	assert.Regexp(t, `^portfolio/a-\d+-\d+\.jpg$`, p.Media[0].PublicID)
	assert.Regexp(t, `^portfolio/b-\d+-\d+\.mp4$`, p.Media[1].PublicID)
	assert.Regexp(t, `^portfolio/c-\d+-\d+\.png$`, p.Media[2].PublicID)
	assert.Equal(t, 3, f.blobs.count())

	// a second batch appends after the first
	p, err = f.svc.Attach(ctx, f.db, f.portfolio.ID, []media.Candidate{candidate("d.webp", "image/webp", "D")})
	require.NoError(t, err)
	require.Len(t, p.Media, 4)
	assert.Regexp(t, `^portfolio/d-`, p.Media[3].PublicID)
}

func TestAttach_AllOrNothingOnRejectedFile(t *testing.T) {
	f := newMediaFixture(t)

	_, err := f.svc.Attach(context.Background(), f.db, f.portfolio.ID, []media.Candidate{
		candidate("a.jpg", "image/jpeg", "A"),
		sizedCandidate("big.mp4", "video/mp4", media.DefaultMaxFileSize+1),
		candidate("c.png", "image/png", "C"),
	})

	appErr := assertAppError(t, err, apperrors.CodeLimitExceeded, http.StatusRequestEntityTooLarge)
	assert.Equal(t, map[string]interface{}{"file": "big.mp4", "index": 1}, appErr.Details)
	assert.Empty(t, f.blobs.puts, "nothing may be written before admission completes")
	assert.Empty(t, f.reload(t).Media)
}

func TestAttach_AdmissionErrors(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	_, err := f.svc.Attach(ctx, f.db, f.portfolio.ID, []media.Candidate{candidate("doc.pdf", "application/pdf", "%PDF")})
	assertAppError(t, err, apperrors.CodeUnsupportedMediaType, http.StatusUnsupportedMediaType)

	_, err = f.svc.Attach(ctx, f.db, f.portfolio.ID, []media.Candidate{candidate("anim.svg", "image/svg+xml", "<svg/>")})
	assertAppError(t, err, apperrors.CodeDisallowedExtension, http.StatusBadRequest)

	_, err = f.svc.Attach(ctx, f.db, f.portfolio.ID, nil)
	assertAppError(t, err, apperrors.CodeValidationFailed, http.StatusBadRequest)

	many := make([]media.Candidate, DefaultMaxFilesPerRequest+1)
	for i := range many {
		many[i] = candidate("a.jpg", "image/jpeg", "A")
	}
	_, err = f.svc.Attach(ctx, f.db, f.portfolio.ID, many)
	assertAppError(t, err, apperrors.CodeLimitExceeded, http.StatusBadRequest)

	_, err = f.svc.Attach(ctx, f.db, "missing", []media.Candidate{candidate("a.jpg", "image/jpeg", "A")})
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	assert.Empty(t, f.blobs.puts)
}

func TestAttach_StorageFailureRollsBackWrittenBlobs(t *testing.T) {
	f := newMediaFixture(t)
	f.blobs.failPutAt = 3

	_, err := f.svc.Attach(context.Background(), f.db, f.portfolio.ID, []media.Candidate{
		candidate("a.jpg", "image/jpeg", "A"),
		candidate("b.jpg", "image/jpeg", "B"),
		candidate("c.jpg", "image/jpeg", "C"),
	})

	assertAppError(t, err, apperrors.CodeStorageError, http.StatusBadGateway)
	assert.Len(t, f.blobs.deletes, 2)
	assert.Zero(t, f.blobs.count())
	assert.Empty(t, f.reload(t).Media)
}

func TestAttach_RepositoryFailureRollsBackAllBlobs(t *testing.T) {
	f := newMediaFixture(t)
	svc := NewMediaService(failingAppendRepo{f.repo}, f.blobs, media.NewAcceptor(0, nil), 0)

	_, err := svc.Attach(context.Background(), f.db, f.portfolio.ID, []media.Candidate{
		candidate("a.jpg", "image/jpeg", "A"),
		candidate("b.mp4", "video/mp4", "B"),
	})

	assertAppError(t, err, apperrors.CodeDatabaseError, http.StatusInternalServerError)
	assert.Len(t, f.blobs.puts, 2)
	assert.Len(t, f.blobs.deletes, 2)
	assert.Zero(t, f.blobs.count())
	assert.Empty(t, f.reload(t).Media)
}

func TestAttach_CompensationFailureKeepsOriginalError(t *testing.T) {
	f := newMediaFixture(t)
	f.blobs.deleteErr = errors.New("delete refused")
	svc := NewMediaService(failingAppendRepo{f.repo}, f.blobs, media.NewAcceptor(0, nil), 0)

	_, err := svc.Attach(context.Background(), f.db, f.portfolio.ID, []media.Candidate{candidate("a.jpg", "image/jpeg", "A")})
	assertAppError(t, err, apperrors.CodeDatabaseError, http.StatusInternalServerError)
}

func TestDetach_IsIdempotent(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	p, err := f.svc.Attach(ctx, f.db, f.portfolio.ID, []media.Candidate{
		candidate("a.jpg", "image/jpeg", "A"),
		candidate("b.jpg", "image/jpeg", "B"),
	})
	require.NoError(t, err)
	target := p.Media[0].PublicID

	first, err := f.svc.Detach(ctx, f.db, f.portfolio.ID, target)
	require.NoError(t, err)
	second, err := f.svc.Detach(ctx, f.db, f.portfolio.ID, target)
	require.NoError(t, err)

	assert.Equal(t, first.Media, second.Media)
	assert.Len(t, f.blobs.deletes, 1, "second call finds no entry and deletes nothing")
}

func TestDetach_RemovesOnlyMatchingEntry(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	p, err := f.svc.Attach(ctx, f.db, f.portfolio.ID, []media.Candidate{
		candidate("a.jpg", "image/jpeg", "A"),
		candidate("b.jpg", "image/jpeg", "B"),
		candidate("c.jpg", "image/jpeg", "C"),
	})
	require.NoError(t, err)
	before := p.Media

	after, err := f.svc.Detach(ctx, f.db, f.portfolio.ID, before[1].PublicID)
	require.NoError(t, err)
	require.Len(t, after.Media, 2)
	assert.Equal(t, before[0].PublicID, after.Media[0].PublicID)
	assert.Equal(t, before[2].PublicID, after.Media[1].PublicID)

	unchanged, err := f.svc.Detach(ctx, f.db, f.portfolio.ID, "portfolio/never-uploaded.jpg")
	require.NoError(t, err)
	assert.Len(t, unchanged.Media, 2)
}

func TestDetach_BlobFailureIsNotSurfaced(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	p, err := f.svc.Attach(ctx, f.db, f.portfolio.ID, []media.Candidate{candidate("a.jpg", "image/jpeg", "A")})
	require.NoError(t, err)

	f.blobs.deleteErr = errors.New("timeout")
	after, err := f.svc.Detach(ctx, f.db, f.portfolio.ID, p.Media[0].PublicID)
	require.NoError(t, err)
	assert.Empty(t, after.Media)
}

func TestDetach_Validation(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	_, err := f.svc.Detach(ctx, f.db, f.portfolio.ID, "  ")
	assertAppError(t, err, apperrors.CodeValidationFailed, http.StatusBadRequest)

	_, err = f.svc.Detach(ctx, f.db, "missing", "portfolio/a.jpg")
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	_, err = f.svc.DetachByURL(ctx, f.db, f.portfolio.ID, "")
	assertAppError(t, err, apperrors.CodeValidationFailed, http.StatusBadRequest)
}
