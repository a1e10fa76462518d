// Package server wires the credential directory, object storage and the
// HTTP API together and runs them until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/reportdrop/internal/identity"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/server/config"
	"github.com/dmitrijs2005/reportdrop/internal/server/httpapi"
	"github.com/dmitrijs2005/reportdrop/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, repo, err := openDirectory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	transport, err := storage.NewS3Transport(ctx, c.Storage(), logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := transport.CheckConfig(); err != nil {
		logger.Warn(ctx, "uploads disabled until storage is configured", "error", err)
	}

	api := httpapi.New(httpapi.Options{
		Identities:        identity.NewService(repo, logger),
		Transport:         transport,
		Policy:            c.Policy(),
		SecretKey:         []byte(c.SecretKey),
		TokenValidity:     c.TokenValidityDuration,
		MaxRequestBytes:   c.MaxRequestBytes,
		AuthRatePerMinute: c.AuthRatePerMinute,
		CORSOrigins:       c.CORSOrigins,
		Logger:            logger,
	})

	return &App{config: c, logger: logger, db: db, handler: api.Handler()}, nil
}

func openDirectory(ctx context.Context, c *config.Config) (*sql.DB, identity.Repository, error) {
	if identity.IsPostgresDSN(c.DirectoryDSN) {
		db, err := identity.OpenPostgres(ctx, c.DirectoryDSN)
		if err != nil {
			return nil, nil, err
		}
		return db, identity.NewPostgresRepository(db), nil
	}

	if c.DirectoryDSN != "" {
		return nil, nil, fmt.Errorf("unsupported directory dsn %q", c.DirectoryDSN)
	}

	db, err := identity.OpenSQLite(ctx, c.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return db, identity.NewSQLiteRepository(db), nil
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", app.config.ListenAddr, err)
	}

	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(gCtx, "Starting app...", "listen", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.logger.Info(context.Background(), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
