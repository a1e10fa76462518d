// Package session keeps the authenticated identity of the CLI user, in
// memory and across restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reportdrop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

// Store persists one Identity under common.SessionKey.
type Store struct {
	repo   metadata.Repository
	logger logging.Logger
}

func NewStore(repo metadata.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("component", "session-store")}
}

// Load returns the saved identity or nil when there is none. A malformed
// entry is logged, removed, and reported as absent.
func (s *Store) Load(ctx context.Context) (*models.Identity, error) {
	raw, err := s.repo.Get(ctx, common.SessionKey)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil || id.ID == "" || id.Email == "" {
		s.logger.Warn(ctx, "discarding corrupt session entry", "error", err, "bytes", len(raw))
		if err := s.repo.Delete(ctx, common.SessionKey); err != nil {
			s.logger.Warn(ctx, "could not remove corrupt session entry", "error", err)
		}
		return nil, nil
	}
	return &id, nil
}

// Save overwrites the stored identity in a single write.
func (s *Store) Save(ctx context.Context, id *models.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, common.SessionKey, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored identity. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
