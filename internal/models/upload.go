package models

import (
	"fmt"
	"strings"
)

// UploadStatus is the lifecycle state of a single UploadTask.
type UploadStatus string

const (
	StatusPending    UploadStatus = "pending"
	StatusInProgress UploadStatus = "in_progress"
	StatusSucceeded  UploadStatus = "succeeded"
	StatusFailed     UploadStatus = "failed"
	StatusCancelled  UploadStatus = "cancelled"
)

// UploadTask tracks one file of a batch.
type UploadTask struct {
	File            SelectedFile `json:"file"`
	Status          UploadStatus `json:"status"`
	ProgressPercent int          `json:"progressPercent"`
	RemoteName      string       `json:"remoteName,omitempty"`
	ErrorMessage    string       `json:"errorMessage,omitempty"`
}

// Done reports whether the task reached a terminal state.
func (t UploadTask) Done() bool {
	switch t.Status {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// BatchResult is the outcome of one submit call, in selection order.
type BatchResult struct {
	Tasks          []UploadTask `json:"tasks"`
	SucceededCount int          `json:"succeededCount"`
	FailedCount    int          `json:"failedCount"`
	CancelledCount int          `json:"cancelledCount"`
}

// FailedNames lists the local names of files that did not upload,
// cancelled ones included.
func (r *BatchResult) FailedNames() []string {
	var names []string
	for _, t := range r.Tasks {
		if t.Status == StatusFailed || t.Status == StatusCancelled {
			names = append(names, t.File.Name)
		}
	}
	return names
}

// Summary is the single aggregate message shown after a batch.
func (r *BatchResult) Summary() string {
	failed := r.FailedNames()
	if len(failed) == 0 {
		return fmt.Sprintf("%d file(s) uploaded successfully", r.SucceededCount)
	}
	return "some files failed: " + strings.Join(failed, ", ")
}
