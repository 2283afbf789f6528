// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package matmul multiplies dense matrices with one of two parallel
// strategies:
//
//   - ParallelLoop hands the row range to a workerpool.ParallelFor capability,
//     which decides at run time which worker computes which row.
//   - ManualThread splits the rows into numThreads contiguous blocks up front
//     (see Partition) and submits one task per block.
//
// Both validate shapes before scheduling anything, call matrix.MulRange for
// the actual arithmetic, and block until every worker has finished. Each row
// of the result is written by exactly one worker, so no locking is involved.
//
// Example usage:
//
//	pool := workerpool.New(8)
//	defer pool.Close()
//
//	pl := matmul.NewParallelLoop(pool)
//	c, err := pl.Multiply(ctx, a, b, 4)
//
//	mt := matmul.NewManualThread(workerpool.Spawner{LockOSThread: true})
//	c, err = mt.Multiply(ctx, a, b, 4)
package matmul
