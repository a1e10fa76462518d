package models

import "io"

// Opener gives access to the bytes of a selected file. Local paths and
// multipart parts both satisfy it through small adapters.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// SelectedFile is one entry of a user selection. It lives only for a
// selection-to-upload cycle and is never persisted.
type SelectedFile struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
	Handle    Opener `json:"-"`
}
