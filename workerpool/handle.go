// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"fmt"
)

// ErrPanic wraps the value of a panic recovered from a task or loop body.
var ErrPanic = errors.New("workerpool: task panicked")

// Task processes one range. A returned error, or a panic, fails the task.
type Task func(r Range) error

// Submitter runs tasks asynchronously.
type Submitter interface {
	// Submit schedules task over r and returns immediately.
	Submit(r Range, task Task) *Handle

	// JoinAll blocks until every handle has completed.
	JoinAll(handles []*Handle) error
}

// TaskError records the failure of the task that owned Range.
type TaskError struct {
	Range Range
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("workerpool: task %v: %v", e.Range, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// Handle tracks one submitted task.
type Handle struct {
	r    Range
	done chan struct{}
	err  error
}

func newHandle(r Range) *Handle {
	return &Handle{r: r, done: make(chan struct{})}
}

func (h *Handle) finish(err error) {
	h.err = err
	close(h.done)
}

// Range returns the range the task was submitted with.
func (h *Handle) Range() Range {
	return h.r
}

// Done is closed when the task has completed.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the task completes and returns its *TaskError, if any.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// JoinAll waits for every handle, in order, and returns the failures joined
// with errors.Join. It never returns before all tasks are done.
func JoinAll(handles []*Handle) error {
	var errs []error
	for _, h := range handles {
		if err := h.Wait(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// runTask executes task, converting a panic into an error. A non-nil result
// is a *TaskError.
func runTask(r Range, task Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &TaskError{Range: r, Err: fmt.Errorf("%w: %v", ErrPanic, p)}
		}
	}()
	if err := task(r); err != nil {
		return &TaskError{Range: r, Err: err}
	}
	return nil
}
