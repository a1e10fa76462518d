package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/reportdrop/internal/client/config"
	"github.com/dmitrijs2005/reportdrop/internal/client/localdb"
	"github.com/dmitrijs2005/reportdrop/internal/client/session"
	"github.com/dmitrijs2005/reportdrop/internal/identity"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/models"
	"github.com/dmitrijs2005/reportdrop/internal/storage"
	"github.com/dmitrijs2005/reportdrop/internal/upload"
	"github.com/dmitrijs2005/reportdrop/internal/validator"
)

type App struct {
	session      *session.Manager
	orchestrator *upload.Orchestrator
	policy       validator.Policy
	logger       logging.Logger
	reader       *bufio.Reader
	out          io.Writer

	selection []models.SelectedFile

	progressMu sync.Mutex
	progress   map[int]int // last printed quarter per task

	closer io.Closer
}

// NewApp opens the databases, restores the session and prepares the
// transport. A transport without credentials is accepted here; uploads
// then fail with a configuration message.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := localdb.InitDatabase(ctx, c.DatabasePath, c.DirectoryDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	ids := identity.NewService(repos.Credentials, logger)
	mgr := session.NewManager(ctx, ids, session.NewStore(repos.Metadata, logger), logger)

	transport, err := storage.NewS3Transport(ctx, c.Storage(), logger)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := newApp(mgr, transport, c.Policy(), logger, os.Stdin, os.Stdout)
	a.closer = repos
	return a, nil
}

func newApp(mgr *session.Manager, transport upload.Transport, policy validator.Policy, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		session:  mgr,
		policy:   policy,
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
		progress: make(map[int]int),
	}
	a.orchestrator = upload.NewOrchestrator(mgr, transport, logger, upload.WithObserver(a.onTaskUpdate))
	return a
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
