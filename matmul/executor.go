// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"context"
	"fmt"

	"github.com/ajroetker/matbench/matrix"
	"github.com/ajroetker/matbench/workerpool"
)

// Executor multiplies two matrices with a given amount of parallelism.
// Multiply blocks until the product is complete or has failed; a partially
// computed result is never returned.
type Executor interface {
	Strategy() Strategy
	Multiply(ctx context.Context, a, b *matrix.Dense, workers int) (*matrix.Dense, error)
}

// kernelFunc has the signature of matrix.MulRange. Executors hold one so
// tests can inject faults.
type kernelFunc func(a, b, c *matrix.Dense, rowStart, rowEnd int)

// prepare validates the operands and allocates the (a.Rows, b.Cols) result.
func prepare(ctx context.Context, a, b *matrix.Dense, workers int) (*matrix.Dense, error) {
	if err := matrix.CheckMul(a, b); err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return matrix.New(a.Rows(), b.Cols())
}

// mulRows runs kernel one row at a time over r, checking ctx between rows.
func mulRows(ctx context.Context, kernel kernelFunc, a, b, c *matrix.Dense, r workerpool.Range) error {
	for i := r.Start; i < r.End; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		kernel(a, b, c, i, i+1)
	}
	return nil
}
