// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ParallelFor is the parallel loop capability used by the parallel-loop
// strategy.
type ParallelFor interface {
	// ParallelFor invokes body(i) for every i in [0, n) across at most
	// maxWorkers concurrent executions and blocks until all complete.
	// maxWorkers <= 0 lets the implementation pick its default.
	//
	// After the first failure, or once ctx is done, indices not yet started
	// are skipped. The returned error joins every failure (as *TaskError)
	// and ctx.Err(), and is only returned after all started bodies finished.
	ParallelFor(ctx context.Context, n, maxWorkers int, body func(i int) error) error
}

// loop holds the shared state of one ParallelFor call.
type loop struct {
	ctx  context.Context
	body func(i int) error

	stop atomic.Bool
	mu   sync.Mutex
	errs []error
}

func newLoop(ctx context.Context, body func(i int) error) *loop {
	return &loop{ctx: ctx, body: body}
}

// stopped reports whether no further index should be started.
func (l *loop) stopped() bool {
	return l.stop.Load() || l.ctx.Err() != nil
}

// runBatch runs body over [start, end), stopping early on failure.
func (l *loop) runBatch(start, end int) {
	for i := start; i < end; i++ {
		if l.stopped() {
			return
		}
		if err := l.runUnit(i); err != nil {
			l.fail(err)
			return
		}
	}
}

func (l *loop) runUnit(i int) (err error) {
	r := Range{Start: i, End: i + 1}
	defer func() {
		if p := recover(); p != nil {
			err = &TaskError{Range: r, Err: fmt.Errorf("%w: %v", ErrPanic, p)}
		}
	}()
	if err := l.body(i); err != nil {
		return &TaskError{Range: r, Err: err}
	}
	return nil
}

func (l *loop) fail(err error) {
	l.stop.Store(true)
	l.mu.Lock()
	l.errs = append(l.errs, err)
	l.mu.Unlock()
}

// result must only be called once every worker of the loop has returned.
func (l *loop) result() error {
	errs := l.errs
	if err := l.ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
