package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

// IdentityService is what the manager needs from the credential directory.
type IdentityService interface {
	Validate(ctx context.Context, email, password string) (*models.Identity, error)
	Register(ctx context.Context, email, password, confirmPassword string) (*models.Identity, error)
}

// Persister is the durable side of a session.
type Persister interface {
	Load(ctx context.Context) (*models.Identity, error)
	Save(ctx context.Context, id *models.Identity) error
	Clear(ctx context.Context) error
}

// Manager is a two-state machine: anonymous (nil identity) or
// authenticated. Transitions are serialized; reads never block and always
// see the last committed identity.
type Manager struct {
	ids    IdentityService
	store  Persister
	logger logging.Logger

	mu      sync.Mutex
	current atomic.Pointer[models.Identity]
}

// NewManager restores the persisted identity if any. A failing store
// leaves the manager anonymous.
func NewManager(ctx context.Context, ids IdentityService, store Persister, logger logging.Logger) *Manager {
	m := &Manager{ids: ids, store: store, logger: logger.With("component", "session")}

	id, err := store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "session restore failed, starting anonymous", "error", err)
		return m
	}
	if id != nil {
		m.current.Store(id)
		m.logger.Info(ctx, "session restored", "email", id.Email)
	}
	return m
}

func (m *Manager) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	return m.authenticate(ctx, func() (*models.Identity, error) {
		return m.ids.Validate(ctx, email, password)
	})
}

func (m *Manager) Register(ctx context.Context, email, password, confirmPassword string) (*models.Identity, error) {
	return m.authenticate(ctx, func() (*models.Identity, error) {
		return m.ids.Register(ctx, email, password, confirmPassword)
	})
}

// authenticate commits the identity only after it has been persisted.
func (m *Manager) authenticate(ctx context.Context, fn func() (*models.Identity, error)) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := fn()
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, id); err != nil {
		return nil, err
	}

	m.current.Store(id)
	m.logger.Info(ctx, "authenticated", "email", id.Email)

	c := *id
	return &c, nil
}

// Logout always ends up anonymous, even if clearing the store fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.Store(nil)
	return m.store.Clear(ctx)
}

// CurrentIdentity returns a copy of the identity, or nil when anonymous.
func (m *Manager) CurrentIdentity() *models.Identity {
	id := m.current.Load()
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func (m *Manager) IsAuthenticated() bool {
	return m.current.Load() != nil
}
