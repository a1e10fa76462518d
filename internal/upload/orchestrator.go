// Package upload drives a batch of validated files through a Transport, one
// file at a time, tracking per-file progress and outcome.
package upload

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

// ProgressFunc receives the running byte count of the current transfer.
type ProgressFunc func(loaded, total int64)

// Transport moves the bytes of one file to object storage under remoteName.
//
// CheckConfig reports a configuration problem that would make every transfer
// fail; it is consulted once per batch before anything is sent.
type Transport interface {
	CheckConfig() error
	Upload(ctx context.Context, file models.SelectedFile, remoteName string, onProgress ProgressFunc) error
}

// Authenticator is the read side of a session.
type Authenticator interface {
	IsAuthenticated() bool
}

// Observer is told about every task change. It is called synchronously from
// the submitting goroutine and must not block.
type Observer func(index int, task models.UploadTask)

type Option func(*Orchestrator)

// WithObserver registers a progress observer.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// WithClock overrides the time source used for remote names.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// Orchestrator runs upload batches. Transfers never overlap: Submit processes
// files sequentially in selection order, and concurrent Submit calls queue.
type Orchestrator struct {
	auth      Authenticator
	transport Transport
	logger    logging.Logger
	observer  Observer
	now       func() time.Time

	run sync.Mutex // held for the whole batch

	mu           sync.RWMutex
	tasks        []models.UploadTask
	lastName     time.Time
	resetPending bool
}

func NewOrchestrator(auth Authenticator, transport Transport, logger logging.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		auth:      auth,
		transport: transport,
		logger:    logger.With("component", "upload"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit uploads files and returns the per-file outcome.
//
// It fails as a whole, without touching the transport, with
// common.ErrUnauthenticated when no one is logged in, common.ErrEmptySelection
// for an empty batch, and common.ErrStorageNotConfigured when the transport
// is unusable. Per-file transport errors never abort the batch. If ctx is
// cancelled, the remaining pending tasks end up cancelled.
func (o *Orchestrator) Submit(ctx context.Context, files []models.SelectedFile) (*models.BatchResult, error) {
	if o.auth == nil || !o.auth.IsAuthenticated() {
		return nil, common.ErrUnauthenticated
	}
	if len(files) == 0 {
		return nil, common.ErrEmptySelection
	}
	if err := o.transport.CheckConfig(); err != nil {
		if !errors.Is(err, common.ErrStorageNotConfigured) {
			err = fmt.Errorf("%w: %v", common.ErrStorageNotConfigured, err)
		}
		return nil, err
	}

	o.run.Lock()
	defer o.run.Unlock()

	tasks := make([]models.UploadTask, len(files))
	for i, f := range files {
		tasks[i] = models.UploadTask{File: f, Status: models.StatusPending}
	}
	o.mu.Lock()
	o.tasks = tasks
	o.resetPending = false
	o.mu.Unlock()

	o.logger.Info(ctx, "batch started", "files", len(files))

	for i := range files {
		if err := ctx.Err(); err != nil {
			o.cancelFrom(i, err)
			break
		}
		o.process(ctx, i)
	}

	result := o.result()
	o.logger.Info(ctx, "batch finished",
		"succeeded", result.SucceededCount, "failed", result.FailedCount, "cancelled", result.CancelledCount)

	o.mu.Lock()
	if o.resetPending {
		o.tasks = nil
		o.resetPending = false
	}
	o.mu.Unlock()

	return result, nil
}

func (o *Orchestrator) process(ctx context.Context, i int) {
	remoteName := o.remoteName(o.task(i).File.Name)

	o.update(i, func(t *models.UploadTask) {
		t.Status = models.StatusInProgress
	})

	file := o.task(i).File
	err := o.transport.Upload(ctx, file, remoteName, func(loaded, total int64) {
		p := percent(loaded, total)
		o.update(i, func(t *models.UploadTask) {
			if p > t.ProgressPercent {
				t.ProgressPercent = p
			}
		})
	})

	if err != nil {
		o.logger.Error(ctx, "upload failed", "file", file.Name, "remote", remoteName, "error", err)
		o.update(i, func(t *models.UploadTask) {
			t.Status = models.StatusFailed
			t.ErrorMessage = "error uploading file: " + err.Error()
		})
		return
	}

	o.logger.Info(ctx, "upload succeeded", "file", file.Name, "remote", remoteName)
	o.update(i, func(t *models.UploadTask) {
		t.Status = models.StatusSucceeded
		t.ProgressPercent = 100
		t.RemoteName = remoteName
	})
}

func (o *Orchestrator) cancelFrom(start int, cause error) {
	o.mu.RLock()
	n := len(o.tasks)
	o.mu.RUnlock()

	for i := start; i < n; i++ {
		o.update(i, func(t *models.UploadTask) {
			if t.Status == models.StatusPending {
				t.Status = models.StatusCancelled
				t.ErrorMessage = cause.Error()
			}
		})
	}
}

// Snapshot returns a copy of the current (or last) batch's tasks.
func (o *Orchestrator) Snapshot() []models.UploadTask {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]models.UploadTask, len(o.tasks))
	copy(out, o.tasks)
	return out
}

// Reset forgets the last batch so a new selection starts from empty progress.
// Called while a batch runs (from an observer or another goroutine), it
// takes effect once that batch has produced its result.
func (o *Orchestrator) Reset() {
	if !o.run.TryLock() {
		o.mu.Lock()
		o.resetPending = true
		o.mu.Unlock()
		return
	}
	defer o.run.Unlock()

	o.mu.Lock()
	o.tasks = nil
	o.resetPending = false
	o.mu.Unlock()
}

func (o *Orchestrator) task(i int) models.UploadTask {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.tasks[i]
}

func (o *Orchestrator) update(i int, fn func(t *models.UploadTask)) {
	o.mu.Lock()
	before := o.tasks[i]
	fn(&o.tasks[i])
	after := o.tasks[i]
	o.mu.Unlock()

	if o.observer != nil && changed(before, after) {
		o.observer(i, after)
	}
}

func (o *Orchestrator) result() *models.BatchResult {
	res := &models.BatchResult{Tasks: o.Snapshot()}
	for _, t := range res.Tasks {
		switch t.Status {
		case models.StatusSucceeded:
			res.SucceededCount++
		case models.StatusFailed:
			res.FailedCount++
		case models.StatusCancelled:
			res.CancelledCount++
		}
	}
	return res
}

// remoteName prefixes name with a UTC timestamp that is strictly increasing
// for the lifetime of the orchestrator, so equal names never collide.
func (o *Orchestrator) remoteName(name string) string {
	o.mu.Lock()
	ts := o.now().UTC().Truncate(time.Millisecond)
	if !ts.After(o.lastName) {
		ts = o.lastName.Add(time.Millisecond)
	}
	o.lastName = ts
	o.mu.Unlock()

	return RemoteName(ts, name)
}

// RemoteName builds "2006-01-02T15-04-05-000Z-<name>".
func RemoteName(t time.Time, name string) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return stamp + "-" + name
}

func changed(a, b models.UploadTask) bool {
	return a.Status != b.Status ||
		a.ProgressPercent != b.ProgressPercent ||
		a.RemoteName != b.RemoteName ||
		a.ErrorMessage != b.ErrorMessage
}

func percent(loaded, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(loaded) / float64(total) * 100))
	return min(max(p, 0), 100)
}
