// Package localdb opens the client's databases: the local SQLite file that
// holds the session, and the credential directory (the same file, or a
// shared Postgres database).
package localdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reportdrop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/reportdrop/internal/identity"
)

type Repositories struct {
	Metadata    metadata.Repository
	Credentials identity.Repository

	local     *sql.DB
	directory *sql.DB
}

// InitDatabase opens (creating if needed) the SQLite file at path and
// applies migrations. An empty directoryDSN keeps credentials in that file.
func InitDatabase(ctx context.Context, path, directoryDSN string) (*Repositories, error) {
	db, err := identity.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("local database: %w", err)
	}

	repos := &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		local:    db,
	}

	switch {
	case directoryDSN == "":
		repos.Credentials = identity.NewSQLiteRepository(db)
	case identity.IsPostgresDSN(directoryDSN):
		pg, err := identity.OpenPostgres(ctx, directoryDSN)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		repos.directory = pg
		repos.Credentials = identity.NewPostgresRepository(pg)
	default:
		_ = db.Close()
		return nil, fmt.Errorf("unsupported directory dsn %q", directoryDSN)
	}

	return repos, nil
}

func (r *Repositories) Close() error {
	var errs []error
	if r.directory != nil {
		errs = append(errs, r.directory.Close())
	}
	errs = append(errs, r.local.Close())
	return errors.Join(errs...)
}
