// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	batchSize  int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single unit of work for a pool worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

var (
	_ Submitter   = (*Pool)(nil)
	_ ParallelFor = (*Pool)(nil)
)

// New creates a pool with numWorkers persistent workers that claim one loop
// index at a time. If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	return NewBatched(numWorkers, 1)
}

// NewBatched creates a pool whose ParallelFor claims batchSize consecutive
// indices per atomic operation.
func NewBatched(numWorkers, batchSize int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	p := &Pool{
		numWorkers: numWorkers,
		batchSize:  batchSize,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		if item.barrier != nil {
			item.barrier.Done()
		}
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// BatchSize returns the number of indices claimed per grab in ParallelFor.
func (p *Pool) BatchSize() int {
	return p.batchSize
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Submit queues task on the pool. On a closed pool the task runs inline
// before Submit returns.
func (p *Pool) Submit(r Range, task Task) *Handle {
	h := newHandle(r)
	fn := func() { h.finish(runTask(r, task)) }
	if p.closed.Load() {
		fn()
		return h
	}
	p.workC <- workItem{fn: fn}
	return h
}

// JoinAll waits for all handles. See the package-level JoinAll.
func (p *Pool) JoinAll(handles []*Handle) error {
	return JoinAll(handles)
}

// ParallelFor executes body for each index in [0, n) using atomic work
// stealing over batches of BatchSize indices, so faster workers take more
// of the range. At most min(maxWorkers, NumWorkers) workers participate.
// Blocks until all work completes.
func (p *Pool) ParallelFor(ctx context.Context, n, maxWorkers int, body func(i int) error) error {
	l := newLoop(ctx, body)
	if n <= 0 {
		return l.result()
	}

	if maxWorkers <= 0 || maxWorkers > p.numWorkers {
		maxWorkers = p.numWorkers
	}
	numBatches := (n + p.batchSize - 1) / p.batchSize
	workers := min(maxWorkers, numBatches)

	// Single worker or closed pool: run on the calling goroutine
	if workers == 1 || p.closed.Load() {
		l.runBatch(0, n)
		return l.result()
	}

	var nextBatch atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for !l.stopped() {
					batch := int(nextBatch.Add(1)) - 1
					start := batch * p.batchSize
					if start >= n {
						return
					}
					l.runBatch(start, min(start+p.batchSize, n))
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
	return l.result()
}
