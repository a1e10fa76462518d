package cli

import (
	"context"
	"errors"

	"github.com/docker/go-units"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/filex"
	"github.com/dmitrijs2005/reportdrop/internal/validator"
)

var errNoPaths = errors.New("no paths given")

// Select replaces the current selection with the files in paths that pass
// validation. Rejected files are listed with their reason.
func (a *App) Select(_ context.Context, paths []string) error {
	if len(paths) == 0 {
		a.printf("Usage: select <file.pbit> [more files...]\n")
		return errNoPaths
	}

	a.selection = nil
	a.orchestrator.Reset()

	files, err := filex.Select(paths)
	if err != nil {
		a.printf("Cannot select files: %v\n", err)
		return err
	}

	valid, rejected := validator.Filter(files, a.policy)
	a.selection = valid

	for _, r := range rejected {
		a.printf("  skipped %s: %s\n", r.File, common.UserMessage(r.Err))
	}
	a.printf("%d file(s) selected\n", len(valid))
	return nil
}

// Files prints the current selection.
func (a *App) Files(context.Context) error {
	if len(a.selection) == 0 {
		a.printf("No files selected\n")
		return nil
	}
	var total int64
	for i, f := range a.selection {
		a.printf("%3d. %-40s %10s\n", i+1, f.Name, units.HumanSize(float64(f.SizeBytes)))
		total += f.SizeBytes
	}
	a.printf("     total %s, limit %s per file\n",
		units.HumanSize(float64(total)), units.BytesSize(float64(a.policy.MaxSizeBytes)))
	return nil
}
