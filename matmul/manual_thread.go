// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"context"
	"fmt"

	"github.com/ajroetker/matbench/matrix"
	"github.com/ajroetker/matbench/workerpool"
)

// ManualThread partitions the rows with Partition and submits exactly one
// task per block, empty blocks included, then joins all of them.
type ManualThread struct {
	submitter workerpool.Submitter
	kernel    kernelFunc
}

var _ Executor = (*ManualThread)(nil)

// NewManualThread returns an executor over s. A nil s starts one goroutine
// per block, each locked to its own OS thread.
func NewManualThread(s workerpool.Submitter) *ManualThread {
	if s == nil {
		s = workerpool.Spawner{LockOSThread: true}
	}
	return &ManualThread{submitter: s, kernel: matrix.MulRange}
}

// Strategy returns StrategyManualThread.
func (*ManualThread) Strategy() Strategy {
	return StrategyManualThread
}

// Multiply computes A * B on numThreads workers.
//
// Every submitted worker is joined before Multiply returns, also when some
// of them fail; the failures are returned together, each as a
// *workerpool.TaskError naming its block.
func (m *ManualThread) Multiply(ctx context.Context, a, b *matrix.Dense, numThreads int) (*matrix.Dense, error) {
	c, err := prepare(ctx, a, b, numThreads)
	if err != nil {
		return nil, err
	}

	parts := Partition(a.Rows(), numThreads)
	handles := make([]*workerpool.Handle, 0, len(parts))
	for _, r := range parts {
		handles = append(handles, m.submitter.Submit(r, func(r workerpool.Range) error {
			return mulRows(ctx, m.kernel, a, b, c, r)
		}))
	}

	if err := m.submitter.JoinAll(handles); err != nil {
		return nil, fmt.Errorf("matmul: %d threads over %d rows: %w", numThreads, a.Rows(), err)
	}
	return c, nil
}
