// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"time"

	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// Record is the aggregated timing of one (size, threads, strategy) triple.
type Record struct {
	RunID       string          `json:"run_id"`
	Size        int             `json:"size"`
	Threads     int             `json:"threads"`
	Strategy    matmul.Strategy `json:"strategy"`
	Repetitions int             `json:"repetitions"`
	Total       time.Duration   `json:"total_ns"`
	Average     time.Duration   `json:"average_ns"`
	AverageMs   float64         `json:"average_ms"`

	// Baseline is the thread count Speedup is relative to.
	Baseline int `json:"baseline_threads"`

	// Speedup is the baseline average divided by Average for the same
	// strategy and size; 0 when either is unavailable.
	Speedup float64 `json:"speedup"`
}

// speedup returns baseline/average, or 0 when undefined.
func speedup(baseline, average time.Duration) float64 {
	if baseline <= 0 || average <= 0 {
		return 0
	}
	return float64(baseline) / float64(average)
}

// Sink receives benchmark progress. The harness calls it from a single
// goroutine.
type Sink interface {
	// BeginSize starts the results of one matrix size.
	BeginSize(size int)

	// Matrix receives a labeled matrix dump for small sizes.
	Matrix(label string, m *matrix.Dense)

	// BeginStrategy starts the rows of one strategy for the current size.
	BeginStrategy(size int, s matmul.Strategy)

	// Record receives one aggregated row.
	Record(r Record)

	// Error receives a failed trial.
	Error(size, threads int, s matmul.Strategy, err error)

	// Flush completes the output.
	Flush() error
}
