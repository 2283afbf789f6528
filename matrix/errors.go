// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import "errors"

var (
	// ErrInvalidShape is returned when a matrix is created with rows <= 0 or cols <= 0.
	ErrInvalidShape = errors.New("matrix: invalid shape")

	// ErrIndexOutOfRange reports a row or column outside the matrix bounds.
	// At and Set panic with it; Get returns it.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch is returned when a.Cols() != b.Rows() for a product.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidRange is returned by FillRandom when max <= min.
	ErrInvalidRange = errors.New("matrix: invalid random range")
)
