package farmers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/corneye/corneye-backend/pkg/db"
	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/corneye/corneye-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFarmersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS farmers (
  id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  phone TEXT NOT NULL,
  farm_location TEXT NOT NULL DEFAULT '',
  farm_area TEXT NOT NULL DEFAULT '',
  profile_photo TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@test.com", prefix, uuid.NewString()[:8])
}

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupFarmersTestDB(t))
	email := uniqueEmail("juan")

	created, err := repo.Create(ctx, CreateFarmerDTO{
		FullName:     "Juan Dela Cruz",
		Email:        email,
		PasswordHash: "hash",
		Phone:        "09171234567",
		FarmLocation: "Nueva Ecija",
		FarmArea:     "2 hectares",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, enums.FarmerStatusActive, created.Status)

	byEmail, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "Juan Dela Cruz", byEmail.FullName)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, email, byID.Email)
}

func TestFindByEmailNotFound(t *testing.T) {
	repo := NewRepository(setupFarmersTestDB(t))
	_, err := repo.FindByEmail(context.Background(), uniqueEmail("ghost"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupFarmersTestDB(t))
	email := uniqueEmail("dupe")

	_, err := repo.Create(ctx, CreateFarmerDTO{
		FullName: "First", Email: email, PasswordHash: "hash", Phone: "0917",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, CreateFarmerDTO{
		FullName: "Second", Email: email, PasswordHash: "hash", Phone: "0918",
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "farmers_email_key"))
}

func TestUpdateProfileIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupFarmersTestDB(t))

	created, err := repo.Create(ctx, CreateFarmerDTO{
		FullName: "Juan Dela Cruz", Email: uniqueEmail("profile"), PasswordHash: "hash", Phone: "0917",
	})
	require.NoError(t, err)

	updates := map[string]any{
		"full_name":     "Juan D. Cruz",
		"farm_location": "Isabela",
		"farm_area":     "3 hectares",
	}

	found, err := repo.UpdateProfile(ctx, created.ID, updates)
	require.NoError(t, err)
	require.True(t, found)

	// saving the same values again succeeds and changes nothing
	found, err = repo.UpdateProfile(ctx, created.ID, updates)
	require.NoError(t, err)
	require.True(t, found)

	after, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan D. Cruz", after.FullName)
	assert.Equal(t, "Isabela", after.FarmLocation)
	assert.Equal(t, "3 hectares", after.FarmArea)
}

func TestUpdateProfileUnknownID(t *testing.T) {
	repo := NewRepository(setupFarmersTestDB(t))
	found, err := repo.UpdateProfile(context.Background(), uuid.New(), map[string]any{"full_name": "Nobody"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupFarmersTestDB(t))

	created, err := repo.Create(ctx, CreateFarmerDTO{
		FullName: "Status Farmer", Email: uniqueEmail("status"), PasswordHash: "hash", Phone: "0917",
	})
	require.NoError(t, err)

	found, err := repo.UpdateStatus(ctx, created.ID, enums.FarmerStatusInactive)
	require.NoError(t, err)
	require.True(t, found)

	after, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.FarmerStatusInactive, after.Status)

	found, err = repo.UpdateStatus(ctx, uuid.New(), enums.FarmerStatusActive)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListPaginationAndSearch(t *testing.T) {
	ctx := context.Background()
	conn := setupFarmersTestDB(t)
	repo := NewRepository(conn)

	marker := uuid.NewString()[:8]
	base := time.Now().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		created, err := repo.Create(ctx, CreateFarmerDTO{
			FullName: fmt.Sprintf("Directory %s %d", marker, i),
			Email:    uniqueEmail("list"), PasswordHash: "hash", Phone: "0917",
		})
		require.NoError(t, err)
		// spread created_at so cursor ordering is deterministic
		require.NoError(t, conn.Exec(
			"UPDATE farmers SET created_at = ? WHERE id = ?",
			base.Add(time.Duration(i)*time.Minute), created.ID,
		).Error)
		ids = append(ids, created.ID)
	}

	page, next, err := repo.List(ctx, ListParams{Search: marker, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)
	assert.Equal(t, ids[1], next.ID)

	rest, last, err := repo.List(ctx, ListParams{
		Search: marker,
		Limit:  2,
		Cursor: &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID},
	})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Nil(t, last)
	assert.Equal(t, ids[0], rest[0].ID)
}
