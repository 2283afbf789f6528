// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Dense is a row-major matrix of float64 values.
//
// The shape is fixed at creation. The backing store is mutable: inputs of a
// multiplication are only read, and the result is written by row, so several
// goroutines may fill disjoint rows of the same Dense concurrently.
type Dense struct {
	rows, cols int
	data       []float64 // len == rows*cols
}

// New allocates a zero-filled rows x cols matrix.
func New(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows builds a matrix from a slice of equally sized rows.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidShape)
	}
	m, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidShape, i, len(r), m.cols)
		}
		copy(m.Row(i), r)
	}
	return m, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

// Dims returns (rows, cols).
func (m *Dense) Dims() (int, int) { return m.rows, m.cols }

// Data exposes the row-major backing slice.
func (m *Dense) Data() []float64 { return m.data }

// Row returns row i as a sub-slice of the backing store.
func (m *Dense) Row(i int) []float64 {
	m.mustContain(i, 0)
	return m.data[i*m.cols : (i+1)*m.cols]
}

func (m *Dense) contains(i, j int) bool {
	return i >= 0 && i < m.rows && j >= 0 && j < m.cols
}

func (m *Dense) mustContain(i, j int) {
	if !m.contains(i, j) {
		panic(fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfRange, i, j, m.rows, m.cols))
	}
}

// At returns the element at (i, j). Out-of-range indices panic.
func (m *Dense) At(i, j int) float64 {
	m.mustContain(i, j)
	return m.data[i*m.cols+j]
}

// Set stores v at (i, j). Out-of-range indices panic.
func (m *Dense) Set(i, j int, v float64) {
	m.mustContain(i, j)
	m.data[i*m.cols+j] = v
}

// Get is the non-panicking form of At.
func (m *Dense) Get(i, j int) (float64, error) {
	if !m.contains(i, j) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfRange, i, j, m.rows, m.cols)
	}
	return m.data[i*m.cols+j], nil
}

// Fill sets every element to v.
func (m *Dense) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// FillRandom overwrites every element with an integer drawn uniformly from
// [min, max), converted to float64. The caller owns rng; filling is
// single-threaded.
func (m *Dense) FillRandom(rng *rand.Rand, min, max int) error {
	if max <= min {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, min, max)
	}
	span := max - min
	for i := range m.data {
		m.data[i] = float64(min + rng.IntN(span))
	}
	return nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Dense{rows: m.rows, cols: m.cols, data: data}
}

// Equal reports whether m and other have the same shape and every pair of
// elements differs by at most tol.
func (m *Dense) Equal(other *Dense, tol float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// String renders one line per row, each cell right-aligned in four columns.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := range m.rows {
		for _, v := range m.data[i*m.cols : (i+1)*m.cols] {
			fmt.Fprintf(&sb, "%4g ", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
