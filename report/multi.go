// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package report

import (
	"errors"

	"github.com/ajroetker/matbench/bench"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// Multi forwards every event to each of its sinks, in order.
type Multi []bench.Sink

var _ bench.Sink = Multi(nil)

func (m Multi) BeginSize(size int) {
	for _, s := range m {
		s.BeginSize(size)
	}
}

func (m Multi) Matrix(label string, d *matrix.Dense) {
	for _, s := range m {
		s.Matrix(label, d)
	}
}

func (m Multi) BeginStrategy(size int, strategy matmul.Strategy) {
	for _, s := range m {
		s.BeginStrategy(size, strategy)
	}
}

func (m Multi) Record(r bench.Record) {
	for _, s := range m {
		s.Record(r)
	}
}

func (m Multi) Error(size, threads int, strategy matmul.Strategy, err error) {
	for _, s := range m {
		s.Error(size, threads, strategy, err)
	}
}

// Flush flushes every sink, even after a failure, and joins the errors.
func (m Multi) Flush() error {
	var errs []error
	for _, s := range m {
		if err := s.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
