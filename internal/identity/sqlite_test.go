package identity

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/migrations"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.UpSQLite(context.Background(), db))
	return db
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(newSQLiteDB(t))
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	err := repo.Create(ctx, &models.Credential{
		ID: "id-1", Email: "a@b.com", PasswordHash: []byte("hash"), Name: "a", CreatedAt: created,
	})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, []byte("hash"), got.PasswordHash)
	assert.Equal(t, "a", got.Name)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestSQLiteRepository_DuplicateEmail(t *testing.T) {
	repo := NewSQLiteRepository(newSQLiteDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Credential{ID: "1", Email: "a@b.com", PasswordHash: []byte("h1"), Name: "a"}))

	err := repo.Create(ctx, &models.Credential{ID: "2", Email: "a@b.com", PasswordHash: []byte("h2"), Name: "a"})
	require.ErrorIs(t, err, common.ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, []byte("h1"), got.PasswordHash)
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	repo := NewSQLiteRepository(newSQLiteDB(t))
	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_ClosedDB(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)

	err = repo.Create(context.Background(), &models.Credential{ID: "1", Email: "a@b.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrEmailTaken)
}
