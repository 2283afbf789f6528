// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Group implements ParallelFor with an errgroup limited to maxWorkers
// goroutines. Each goroutine handles one batch of BatchSize indices; no
// goroutine outlives the call.
type Group struct {
	BatchSize int
}

var _ ParallelFor = Group{}

// ParallelFor executes body for each index in [0, n). maxWorkers <= 0 uses
// GOMAXPROCS.
func (g Group) ParallelFor(ctx context.Context, n, maxWorkers int, body func(i int) error) error {
	l := newLoop(ctx, body)
	if n <= 0 {
		return l.result()
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}
	batch := max(g.BatchSize, 1)

	var eg errgroup.Group
	eg.SetLimit(maxWorkers)
	for start := 0; start < n; start += batch {
		if l.stopped() {
			break
		}
		// Failures are collected by l; the group is only used for its
		// concurrency limit and barrier.
		eg.Go(func() error {
			l.runBatch(start, min(start+batch, n))
			return nil
		})
	}
	_ = eg.Wait()
	return l.result()
}
