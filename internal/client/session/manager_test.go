package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/reportdrop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/identity"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

type fixture struct {
	ids   *identity.Service
	store *Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := openDB(t)
	return fixture{
		ids:   identity.NewService(identity.NewSQLiteRepository(db), logging.Discard(), identity.WithBcryptCost(bcrypt.MinCost)),
		store: NewStore(metadata.NewSQLiteRepository(db), logging.Discard()),
	}
}

func (f fixture) manager() *Manager {
	return NewManager(context.Background(), f.ids, f.store, logging.Discard())
}

type memStore struct {
	id       *models.Identity
	loadErr  error
	saveErr  error
	clearErr error
	clears   int
}

func (m *memStore) Load(context.Context) (*models.Identity, error) { return m.id, m.loadErr }

func (m *memStore) Save(_ context.Context, id *models.Identity) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.id = id
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.clears++
	m.id = nil
	return m.clearErr
}

type okIdentities struct{}

func (okIdentities) Validate(_ context.Context, email, _ string) (*models.Identity, error) {
	return &models.Identity{ID: "1", Email: email, DisplayName: "x", SessionStartedAt: time.Now()}, nil
}

func (okIdentities) Register(_ context.Context, email, _, _ string) (*models.Identity, error) {
	return &models.Identity{ID: "1", Email: email, DisplayName: "x", SessionStartedAt: time.Now()}, nil
}

func TestManager_StartsAnonymous(t *testing.T) {
	m := newFixture(t).manager()
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.CurrentIdentity())
}

func TestManager_LoginSurvivesRestart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.manager()
	_, err := m.Register(ctx, "Alice@Example.com", "abcdef", "abcdef")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	id, err := m.Login(ctx, "alice@example.com", "abcdef")
	require.NoError(t, err)
	assert.True(t, m.IsAuthenticated())

	restarted := f.manager()
	require.True(t, restarted.IsAuthenticated())
	got := restarted.CurrentIdentity()
	assert.Equal(t, id.Email, got.Email)
	assert.Equal(t, id.DisplayName, got.DisplayName)
	assert.Equal(t, id.ID, got.ID)
}

func TestManager_FailedLoginStaysAnonymous(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager()

	_, err := m.Login(ctx, "nobody@x.com", "abcdef")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.False(t, m.IsAuthenticated())

	loaded, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestManager_RegisterEmailTaken(t *testing.T) {
	m := newFixture(t).manager()
	ctx := context.Background()

	_, err := m.Register(ctx, "a@b.com", "abcdef", "abcdef")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	_, err = m.Register(ctx, "A@B.com", "xyzxyz", "xyzxyz")
	require.ErrorIs(t, err, common.ErrEmailTaken)
	assert.False(t, m.IsAuthenticated())
}

func TestManager_LogoutTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager()

	_, err := m.Register(ctx, "a@b.com", "abcdef", "abcdef")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.IsAuthenticated())

	assert.False(t, f.manager().IsAuthenticated())
}

func TestManager_SaveFailureKeepsAnonymous(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	m := NewManager(context.Background(), okIdentities{}, store, logging.Discard())

	_, err := m.Login(context.Background(), "a@b.com", "abcdef")
	require.ErrorContains(t, err, "disk full")
	assert.False(t, m.IsAuthenticated())
}

func TestManager_LogoutClearsEvenOnStoreError(t *testing.T) {
	store := &memStore{clearErr: errors.New("locked")}
	m := NewManager(context.Background(), okIdentities{}, store, logging.Discard())

	_, err := m.Login(context.Background(), "a@b.com", "abcdef")
	require.NoError(t, err)

	err = m.Logout(context.Background())
	require.ErrorContains(t, err, "locked")
	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, 1, store.clears)
}

func TestManager_RestoreFailureStartsAnonymous(t *testing.T) {
	store := &memStore{loadErr: errors.New("io"), id: &models.Identity{ID: "1", Email: "a@b.com"}}
	m := NewManager(context.Background(), okIdentities{}, store, logging.Discard())
	assert.False(t, m.IsAuthenticated())
}

func TestManager_CurrentIdentityIsACopy(t *testing.T) {
	m := NewManager(context.Background(), okIdentities{}, &memStore{}, logging.Discard())
	_, err := m.Login(context.Background(), "a@b.com", "abcdef")
	require.NoError(t, err)

	got := m.CurrentIdentity()
	got.Email = "mutated"
	assert.Equal(t, "a@b.com", m.CurrentIdentity().Email)
}
