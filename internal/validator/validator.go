// Package validator decides which selected files are eligible for upload.
// Everything here is pure and safe for concurrent use.
package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

// Policy is the type/size rule set applied to each file.
type Policy struct {
	AllowedExtension string
	MaxSizeBytes     int64
}

// DefaultPolicy accepts .pbit files up to 30MB.
func DefaultPolicy() Policy {
	return Policy{AllowedExtension: common.AllowedExtension, MaxSizeBytes: common.DefaultMaxFileSizeBytes}
}

// MaxSizeMB is the ceiling in whole megabytes, rounded to nearest.
func (p Policy) MaxSizeMB() int64 {
	return int64(math.Round(float64(p.MaxSizeBytes) / 1024 / 1024))
}

// Rejection pairs a file name with the reason it was dropped.
type Rejection struct {
	File string `json:"file"`
	Err  error  `json:"-"`
}

// Validate checks, in order: presence, extension (case-insensitive), size.
func Validate(file *models.SelectedFile, p Policy) error {
	if file == nil || file.Name == "" {
		return common.ErrNoFile
	}

	if !strings.HasSuffix(strings.ToLower(file.Name), strings.ToLower(p.AllowedExtension)) {
		return fmt.Errorf("%w: the file must be of type %s", common.ErrWrongExtension, p.AllowedExtension)
	}

	if file.SizeBytes > p.MaxSizeBytes {
		return fmt.Errorf("%w: maximum size is %dMB", common.ErrTooLarge, p.MaxSizeMB())
	}

	return nil
}

// Filter splits a selection into the files that pass Validate, in their
// original order, and the ones that do not.
func Filter(files []models.SelectedFile, p Policy) ([]models.SelectedFile, []Rejection) {
	valid := make([]models.SelectedFile, 0, len(files))
	var rejected []Rejection

	for i := range files {
		if err := Validate(&files[i], p); err != nil {
			rejected = append(rejected, Rejection{File: files[i].Name, Err: err})
			continue
		}
		valid = append(valid, files[i])
	}

	return valid, rejected
}
