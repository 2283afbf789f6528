// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"context"
	"fmt"
)

// CheckMul returns ErrDimensionMismatch unless a.Cols() == b.Rows().
func CheckMul(a, b *Dense) error {
	if a.cols != b.rows {
		return fmt.Errorf("%w: %dx%d * %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	return nil
}

// MulRange computes rows [rowStart, rowEnd) of C = A * B.
//
//   - A is M x K
//   - B is K x N
//   - C is M x N
//
// Only C's rows in the range are written, so disjoint ranges may run
// concurrently on the same C. Shapes are not validated here; callers check
// them once with CheckMul before splitting the work.
func MulRange(a, b, c *Dense, rowStart, rowEnd int) {
	k, n := a.cols, b.cols
	for i := rowStart; i < rowEnd; i++ {
		aRow := a.data[i*k : (i+1)*k]
		cRow := c.data[i*n : (i+1)*n]
		for j := range n {
			var sum float64
			for p, av := range aRow {
				sum += av * b.data[p*n+j]
			}
			cRow[j] = sum
		}
	}
}

// MulRangeContext is MulRange with ctx checked before each row. The kernel
// itself never blocks, so a row in progress always completes.
func MulRangeContext(ctx context.Context, a, b, c *Dense, rowStart, rowEnd int) error {
	for i := rowStart; i < rowEnd; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		MulRange(a, b, c, i, i+1)
	}
	return nil
}

// Mul computes A * B on the calling goroutine.
func Mul(a, b *Dense) (*Dense, error) {
	if err := CheckMul(a, b); err != nil {
		return nil, err
	}
	c, err := New(a.rows, b.cols)
	if err != nil {
		return nil, err
	}
	MulRange(a, b, c, 0, a.rows)
	return c, nil
}
