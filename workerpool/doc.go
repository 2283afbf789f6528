// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the two pieces of infrastructure the
// multiplication strategies are built on:
//
//   - Submitter: Submit(Range, Task) returns a Handle, JoinAll waits for a set
//     of handles and aggregates their failures. Spawner starts one goroutine
//     per task (optionally on its own OS thread); Pool reuses persistent
//     workers.
//   - ParallelFor: invokes body(i) for every i in [0, n) across at most
//     maxWorkers concurrent executions and blocks until all complete. Pool
//     implements it with atomic work stealing; Group implements it with an
//     errgroup limited to maxWorkers goroutines.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ParallelFor(ctx, rows, 4, func(i int) error {
//	    processRow(i)
//	    return nil
//	})
//
// Panics raised by a task or a loop body are recovered and reported as errors
// wrapping ErrPanic, so a faulty unit never leaves other workers running
// after the call returns.
package workerpool
