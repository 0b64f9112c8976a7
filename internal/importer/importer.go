// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package importer loads the codepoint reference data into the cache store
// once, in the background, and exposes a readiness flag the UI can poll.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/logging"
	"github.com/jeranaias/devtoolbox/internal/storage"
	"github.com/jeranaias/devtoolbox/internal/tasks"
)

// ErrImport matches every import failure.
var ErrImport = errors.New("import error")

// Seeds names the reference files. A missing file contributes no rows.
type Seeds struct {
	CharsPath  string
	BlocksPath string
}

// Result summarizes one import attempt.
type Result struct {
	// Skipped is true when the store already held reference data and
	// nothing was written.
	Skipped    bool
	Codepoints int
	Blocks     int
	Duration   time.Duration
}

// =============================================================================
// HANDLE
// =============================================================================

// Handle observes one background import. Ready flips to true exactly once,
// when the import finishes for any reason, and never goes back.
type Handle struct {
	ready atomic.Bool
	once  sync.Once
	done  chan struct{}
	task  *tasks.Task

	mu     sync.Mutex
	result Result
	err    error
}

func newHandle() *Handle {
	return &Handle{
		done: make(chan struct{}),
		task: tasks.New("Unicode import"),
	}
}

// Spawn starts the import on its own goroutine and returns immediately.
func Spawn(ctx context.Context, store *storage.Store, seeds Seeds, logger *zap.Logger) *Handle {
	h := newHandle()
	h.start(ctx, store, seeds, logging.OrNop(logger))
	return h
}

func (h *Handle) start(ctx context.Context, store *storage.Store, seeds Seeds, logger *zap.Logger) {
	h.once.Do(func() {
		go h.run(ctx, store, seeds, logger)
	})
}

func (h *Handle) run(ctx context.Context, store *storage.Store, seeds Seeds, logger *zap.Logger) {
	defer close(h.done)
	defer h.markReady()
	defer func() {
		if r := recover(); r != nil {
			h.finish(Result{}, fmt.Errorf("%w: panic: %v", ErrImport, r))
			logger.Error("IMPORT_PANIC", zap.Any("panic", r))
		}
	}()

	_ = h.task.Start()
	logger.Info("IMPORT_START",
		zap.String("chars", seeds.CharsPath),
		zap.String("blocks", seeds.BlocksPath))

	res, err := Run(ctx, store, seeds)
	h.finish(res, err)

	switch {
	case err != nil:
		logger.Error("IMPORT_FAILED", zap.Error(err), zap.Duration("took", res.Duration))
	case res.Skipped:
		logger.Info("IMPORT_SKIPPED", zap.String("reason", "reference data already present"))
	default:
		logger.Info("IMPORT_COMPLETE",
			zap.Int("chars", res.Codepoints),
			zap.Int("blocks", res.Blocks),
			zap.Duration("took", res.Duration))
	}
}

func (h *Handle) finish(res Result, err error) {
	h.mu.Lock()
	h.result, h.err = res, err
	h.mu.Unlock()

	if err != nil {
		_ = h.task.Fail(err)
	} else {
		_ = h.task.Complete()
	}
}

func (h *Handle) markReady() {
	h.ready.CompareAndSwap(false, true)
}

// Ready reports whether the import has finished, successfully or not.
func (h *Handle) Ready() bool {
	return h.ready.Load()
}

// Done is closed once the import has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the import finishes or ctx ends.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		return h.Result(), h.Err()
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Err returns the import failure, nil while running or on success.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Result returns the outcome recorded at completion.
func (h *Handle) Result() Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result
}

// Status returns the job status.
func (h *Handle) Status() tasks.Status {
	return h.task.Status()
}

// Summary renders the job state for the status bar.
func (h *Handle) Summary() string {
	return h.task.Summary()
}

// =============================================================================
// IMPORT
// =============================================================================

// Run performs the import synchronously. When reference_chars already has
// rows it returns a skipped Result without writing. Otherwise both seed
// files are parsed and written in one transaction; any parse, I/O or storage
// failure leaves the store exactly as it was.
func Run(ctx context.Context, store *storage.Store, seeds Seeds) (Result, error) {
	start := time.Now()
	res := Result{}

	n, err := store.CountCodepoints(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrImport, err)
	}
	if n > 0 {
		res.Skipped = true
		res.Duration = time.Since(start)
		return res, nil
	}

	chars, err := loadChars(seeds.CharsPath)
	if err != nil {
		res.Duration = time.Since(start)
		return res, err
	}
	blocks, err := loadBlocks(seeds.BlocksPath)
	if err != nil {
		res.Duration = time.Since(start)
		return res, err
	}

	err = store.Transaction(ctx, func(tx *storage.Tx) error {
		// Re-check under the store lock.
		n, err := tx.CountCodepoints()
		if err != nil {
			return err
		}
		if n > 0 {
			res.Skipped = true
			return nil
		}
		for _, c := range chars {
			if err := tx.UpsertCodepoint(c); err != nil {
				return err
			}
		}
		for _, b := range blocks {
			if err := tx.UpsertBlock(b); err != nil {
				return err
			}
		}
		return nil
	})
	res.Duration = time.Since(start)
	if err != nil {
		return Result{Duration: res.Duration}, fmt.Errorf("%w: %w", ErrImport, err)
	}
	if !res.Skipped {
		res.Codepoints, res.Blocks = len(chars), len(blocks)
	}
	return res, nil
}
