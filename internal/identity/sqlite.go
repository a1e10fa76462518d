package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/dbx"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

// SQLiteRepository keeps credentials in the local database file. The
// schema comes from the sqlite migration set.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Credential) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (id, email, password_hash, name, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO NOTHING
	`, c.ID, c.Email, c.PasswordHash, c.Name, c.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to create credential[%s]: %w", c.Email, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create credential[%s]: %w", c.Email, err)
	}
	if n == 0 {
		return common.ErrEmailTaken
	}
	return nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	c := &models.Credential{}
	var created int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, created_at FROM credentials WHERE email = ?`, email).
		Scan(&c.ID, &c.Email, &c.PasswordHash, &c.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential[%s]: %w", email, err)
	}
	c.CreatedAt = time.UnixMilli(created).UTC()
	return c, nil
}
