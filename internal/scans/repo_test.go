package scans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupScansTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS analysis_results (
  id TEXT PRIMARY KEY,
  farmer_id TEXT NOT NULL,
  disease_name TEXT NOT NULL,
  confidence REAL NOT NULL,
  healthy INTEGER NOT NULL,
  image_ref TEXT,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func seedResult(t *testing.T, repo Repository, farmerID uuid.UUID, label string, healthy bool) *models.AnalysisResult {
	t.Helper()
	result := &models.AnalysisResult{
		FarmerID:    farmerID,
		DiseaseName: label,
		Confidence:  0.9,
		Healthy:     healthy,
	}
	require.NoError(t, repo.Create(context.Background(), result))
	return result
}

func TestCreateAndFindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupScansTestDB(t))
	farmerID := uuid.New()

	created := seedResult(t, repo, farmerID, "Common Rust", false)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(ctx, farmerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Common Rust", found.DiseaseName)
}

func TestFindByIDScopedToFarmer(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupScansTestDB(t))
	owner := uuid.New()

	created := seedResult(t, repo, owner, "Gray Leaf Spot", false)

	// another farmer cannot read it
	_, err := repo.FindByID(ctx, uuid.New(), created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListPaginationAndHealthyFilter(t *testing.T) {
	ctx := context.Background()
	conn := setupScansTestDB(t)
	repo := NewRepository(conn)
	farmerID := uuid.New()

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		healthy := i == 1
		label := "Northern Leaf Blight"
		if healthy {
			label = "Healthy"
		}
		result := seedResult(t, repo, farmerID, label, healthy)
		ids[i] = result.ID

		// spread created_at so cursor ordering is deterministic
		at := time.Date(2025, 5, 1, 12, i, 0, 0, time.UTC)
		require.NoError(t, conn.Exec(
			"UPDATE analysis_results SET created_at = ? WHERE id = ?", at, result.ID,
		).Error)
	}

	page, next, err := repo.List(ctx, listResultsParams{FarmerID: farmerID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)
	require.NotNil(t, next)
	assert.Equal(t, ids[1], next.ID)

	rest, last, err := repo.List(ctx, listResultsParams{FarmerID: farmerID, Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, ids[0], rest[0].ID)
	assert.Nil(t, last)

	unhealthy := false
	sick, _, err := repo.List(ctx, listResultsParams{FarmerID: farmerID, Limit: 10, Healthy: &unhealthy})
	require.NoError(t, err)
	require.Len(t, sick, 2)
	for _, row := range sick {
		assert.False(t, row.Healthy)
	}
}

func TestListEmptyForOtherFarmer(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupScansTestDB(t))

	seedResult(t, repo, uuid.New(), "Healthy", true)

	page, next, err := repo.List(ctx, listResultsParams{FarmerID: uuid.New(), Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Nil(t, next)
}
