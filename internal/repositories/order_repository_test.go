package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio_backend/internal/models"
	"studio_backend/internal/testutil"
)

func TestOrderRepository_StatusFlow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOrderRepository()

	order := &models.Order{Name: "Ana", PackageType: models.PackageBusiness, Requirements: "A landing page", Status: models.OrderStatusNew}
	require.NoError(t, repo.Create(db, order))
	require.NoError(t, repo.Create(db, &models.Order{Name: "Bo", PackageType: models.PackageStarter, Requirements: "Menu site", Status: models.OrderStatusNew}))

	updated, err := repo.UpdateStatus(db, order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)

	counts, err := repo.CountByStatus(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[models.OrderStatusNew])
	assert.EqualValues(t, 1, counts[models.OrderStatusCompleted])
	assert.EqualValues(t, 0, counts[models.OrderStatusCancelled])

	newOnly, err := repo.List(db, models.OrderStatusNew, 0)
	require.NoError(t, err)
	assert.Len(t, newOnly, 1)

	_, err = repo.UpdateStatus(db, "missing", models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
