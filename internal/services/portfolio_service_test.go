package services

import (
	"context"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio_backend/internal/media"
	"studio_backend/internal/repositories"
	"studio_backend/internal/services/dto"
	"studio_backend/internal/testutil"
	"studio_backend/pkg/apperrors"
)

func TestPortfolioService_CreateDefaults(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewPortfolioService(repositories.NewPortfolioRepository(), newMemoryBlobs())

	p, err := svc.Create(context.Background(), db, &dto.CreatePortfolioRequest{Title: "  Dental clinic  "})
	require.NoError(t, err)
	assert.Equal(t, "Dental clinic", p.Title)
	assert.Equal(t, "Website", p.Category)
	assert.True(t, p.Published)
	assert.NotNil(t, p.Tags)
	assert.NotNil(t, p.Media)

	_, err = svc.Create(context.Background(), db, &dto.CreatePortfolioRequest{Title: "   "})
	assertAppError(t, err, apperrors.CodeValidationFailed, http.StatusBadRequest)
}

func TestPortfolioService_PublicVisibility(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := NewPortfolioService(repositories.NewPortfolioRepository(), newMemoryBlobs())

	draft, err := svc.Create(ctx, db, &dto.CreatePortfolioRequest{Title: "Draft", Published: testutil.BoolPtr(false)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, db, &dto.CreatePortfolioRequest{Title: "Live", Category: testutil.StrPtr("Shop")})
	require.NoError(t, err)

	_, err = svc.Get(ctx, db, draft.ID, false)
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
	_, err = svc.Get(ctx, db, draft.ID, true)
	require.NoError(t, err)

	public, err := svc.List(ctx, db, dto.PortfolioListQuery{}, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, public.Total)
	assert.Equal(t, 1, public.Page)
	assert.Equal(t, dto.DefaultPortfolioPageSize, public.Limit)
	assert.Equal(t, 1, public.Pages)

	all, err := svc.List(ctx, db, dto.PortfolioListQuery{Limit: 1000}, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)
	assert.Equal(t, dto.MaxPortfolioPageSize, all.Limit)

	shop, err := svc.List(ctx, db, dto.PortfolioListQuery{Category: "Shop"}, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, shop.Total)

	far, err := svc.List(ctx, db, dto.PortfolioListQuery{Page: math.MaxInt, Limit: dto.MaxPortfolioPageSize}, false)
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPortfolioPage, far.Page)
	assert.EqualValues(t, 2, far.Total)
	assert.Empty(t, far.Items)
}

func TestPortfolioService_UpdateAndToggle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := NewPortfolioService(repositories.NewPortfolioRepository(), newMemoryBlobs())

	p, err := svc.Create(ctx, db, &dto.CreatePortfolioRequest{Title: "Old", Tags: []string{"a"}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, db, p.ID, &dto.UpdatePortfolioRequest{Summary: testutil.StrPtr("New summary")})
	require.NoError(t, err)
	assert.Equal(t, "Old", updated.Title)
	assert.Equal(t, "New summary", updated.Summary)
	assert.Equal(t, []string{"a"}, []string(updated.Tags))

	toggled, err := svc.SetPublished(ctx, db, p.ID, nil)
	require.NoError(t, err)
	assert.False(t, toggled.Published)

	forced, err := svc.SetPublished(ctx, db, p.ID, testutil.BoolPtr(true))
	require.NoError(t, err)
	assert.True(t, forced.Published)

	_, err = svc.Update(ctx, db, "missing", &dto.UpdatePortfolioRequest{})
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
}

func TestPortfolioService_DeleteCascadesToBlobs(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()
	blobs := newMemoryBlobs()
	svc := NewPortfolioService(repo, blobs)
	mediaSvc := NewMediaService(repo, blobs, media.NewAcceptor(0, nil), 0)

	p, err := svc.Create(ctx, db, &dto.CreatePortfolioRequest{Title: "Gone soon"})
	require.NoError(t, err)
	_, err = mediaSvc.Attach(ctx, db, p.ID, []media.Candidate{
		candidate("a.jpg", "image/jpeg", "A"),
		candidate("b.mp4", "video/mp4", "B"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, db, p.ID))
	assert.Zero(t, blobs.count())

	err = svc.Delete(ctx, db, p.ID)
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
}
