// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"context"
	"fmt"

	"github.com/ajroetker/matbench/matrix"
	"github.com/ajroetker/matbench/workerpool"
)

// ParallelLoop dispatches rows through a parallel-for capability. The
// capability decides which worker computes which row; at most
// maxDegreeOfParallelism rows are in flight at once.
type ParallelLoop struct {
	loop   workerpool.ParallelFor
	kernel kernelFunc
}

var _ Executor = (*ParallelLoop)(nil)

// NewParallelLoop returns an executor over loop. A nil loop uses
// workerpool.Group{}.
func NewParallelLoop(loop workerpool.ParallelFor) *ParallelLoop {
	if loop == nil {
		loop = workerpool.Group{}
	}
	return &ParallelLoop{loop: loop, kernel: matrix.MulRange}
}

// Strategy returns StrategyParallelLoop.
func (*ParallelLoop) Strategy() Strategy {
	return StrategyParallelLoop
}

// Multiply computes A * B with one loop unit per result row.
func (p *ParallelLoop) Multiply(ctx context.Context, a, b *matrix.Dense, maxDegreeOfParallelism int) (*matrix.Dense, error) {
	c, err := prepare(ctx, a, b, maxDegreeOfParallelism)
	if err != nil {
		return nil, err
	}

	err = p.loop.ParallelFor(ctx, a.Rows(), maxDegreeOfParallelism, func(i int) error {
		p.kernel(a, b, c, i, i+1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("matmul: parallel loop over %d rows: %w", a.Rows(), err)
	}
	return c, nil
}
