package localdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/identity"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

func TestInitDatabase_LocalFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "reportdrop.db")

	repos, err := InitDatabase(ctx, path, "")
	require.NoError(t, err)
	assert.IsType(t, &identity.SQLiteRepository{}, repos.Credentials)

	require.NoError(t, repos.Metadata.Set(ctx, common.SessionKey, []byte(`{}`)))
	require.NoError(t, repos.Credentials.Create(ctx, &models.Credential{ID: "1", Email: "a@b.com", PasswordHash: []byte("h"), Name: "a"}))
	require.NoError(t, repos.Close())

	reopened, err := InitDatabase(ctx, path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	v, err := reopened.Metadata.Get(ctx, common.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), v)

	c, err := reopened.Credentials.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "1", c.ID)
}

func TestInitDatabase_InMemory(t *testing.T) {
	repos, err := InitDatabase(context.Background(), ":memory:", "")
	require.NoError(t, err)
	require.NoError(t, repos.Close())
}

func TestInitDatabase_UnsupportedDSN(t *testing.T) {
	_, err := InitDatabase(context.Background(), ":memory:", "mysql://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported directory dsn")
}
