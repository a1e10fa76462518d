// Package filex turns local paths into upload selections.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/reportdrop/internal/models"
)

// localFile opens a path lazily, at transfer time.
type localFile string

func (p localFile) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

// Select stats every path and returns one SelectedFile per regular file,
// in argument order. A missing path or a directory fails the whole call so
// the user can fix the command line.
func Select(paths []string) ([]models.SelectedFile, error) {
	out := make([]models.SelectedFile, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if fi.IsDir() {
			return nil, fmt.Errorf("%s is a directory", p)
		}
		out = append(out, models.SelectedFile{
			Name:      filepath.Base(p),
			SizeBytes: fi.Size(),
			Handle:    localFile(p),
		})
	}
	return out, nil
}

// EnsureParentDir creates the directory holding path if it does not exist.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
