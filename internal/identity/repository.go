package identity

import (
	"context"

	"github.com/dmitrijs2005/reportdrop/internal/models"
)

// Repository is the credential directory. Create must reject a duplicate
// email atomically with common.ErrEmailTaken; GetByEmail returns
// common.ErrorNotFound for unknown emails. Emails arrive already lowercased.
type Repository interface {
	Create(ctx context.Context, c *models.Credential) error
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
}
