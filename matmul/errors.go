// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"errors"

	"github.com/ajroetker/matbench/matrix"
)

var (
	// ErrDimensionMismatch is returned when a.Cols() != b.Rows(). It is the
	// same sentinel as matrix.ErrDimensionMismatch.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch

	// ErrInvalidWorkers is returned for a thread count or degree of
	// parallelism below 1.
	ErrInvalidWorkers = errors.New("matmul: worker count must be >= 1")

	// ErrUnknownStrategy is returned by ParseStrategy.
	ErrUnknownStrategy = errors.New("matmul: unknown strategy")
)
