package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

// Upload submits the current selection. Ctrl-C cancels the files that have
// not started yet. Anonymous users are sent to the login prompt.
func (a *App) Upload(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	a.resetProgress()
	res, err := a.orchestrator.Submit(ctx, a.selection)
	if err != nil {
		a.printf("%s\n", common.UserMessage(err))
		if errors.Is(err, common.ErrUnauthenticated) {
			if lerr := a.Login(ctx); lerr == nil {
				a.printf("Run 'upload' again to send your files\n")
			}
		}
		return err
	}

	a.printf("%s\n", res.Summary())
	for _, t := range res.Tasks {
		if t.Status == models.StatusFailed {
			a.printf("  %s: %s\n", t.File.Name, t.ErrorMessage)
		}
	}

	a.selection = nil
	a.orchestrator.Reset()
	return nil
}

func (a *App) resetProgress() {
	a.progressMu.Lock()
	a.progress = make(map[int]int)
	a.progressMu.Unlock()
}

// onTaskUpdate prints status changes and every 25% of progress.
func (a *App) onTaskUpdate(i int, t models.UploadTask) {
	a.progressMu.Lock()
	defer a.progressMu.Unlock()

	switch t.Status {
	case models.StatusInProgress:
		q := t.ProgressPercent / 25
		last, seen := a.progress[i]
		if seen && q <= last {
			return
		}
		a.progress[i] = q
		a.printf("  [%3d%%] %s\n", t.ProgressPercent, t.File.Name)
	case models.StatusSucceeded:
		a.printf("  [done] %s -> %s\n", t.File.Name, t.RemoteName)
	case models.StatusFailed:
		a.printf("  [fail] %s\n", t.File.Name)
	case models.StatusCancelled:
		a.printf("  [skip] %s\n", t.File.Name)
	}
}
