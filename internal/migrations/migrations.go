// Package migrations embeds the schema for both supported databases.
// The sqlite set backs the local client database (session metadata and the
// local credential directory); the postgres set backs a shared directory.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// goose keeps dialect and base FS in package state.
var mu sync.Mutex

// UpSQLite applies the sqlite migrations.
func UpSQLite(ctx context.Context, db *sql.DB) error {
	return up(ctx, db, "sqlite3", "sqlite")
}

// UpPostgres applies the postgres migrations.
func UpPostgres(ctx context.Context, db *sql.DB) error {
	return up(ctx, db, "postgres", "postgres")
}

func up(ctx context.Context, db *sql.DB, dialect, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect %s: %w", dialect, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}
