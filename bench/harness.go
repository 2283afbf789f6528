// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package bench runs the multiplication benchmark: for every matrix size it
// generates two random inputs once, times every strategy at every thread
// count, and reports averages and speedups to a Sink.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// Harness runs a benchmark described by a Config.
type Harness struct {
	cfg       Config
	executors map[matmul.Strategy]matmul.Executor
	sink      Sink
	logger    *slog.Logger
	rng       *rand.Rand
	runID     uuid.UUID

	// now is the wall clock; replaced in tests.
	now func() time.Time
}

// New validates cfg and returns a harness that sends its results to sink.
// executors must hold one entry per strategy in cfg.Strategies.
func New(cfg Config, executors map[matmul.Strategy]matmul.Executor, sink Sink, logger *slog.Logger) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, s := range cfg.Strategies {
		if executors[s] == nil {
			return nil, fmt.Errorf("%w: no executor for strategy %s", ErrInvalidConfig, s)
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Harness{
		cfg:       cfg,
		executors: executors,
		sink:      sink,
		logger:    logger,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		runID:     uuid.New(),
		now:       time.Now,
	}, nil
}

// RunID identifies this harness' run in every Record.
func (h *Harness) RunID() uuid.UUID {
	return h.runID
}

// Run benchmarks every size in order and returns all records produced.
// On a failed trial Run stops and returns the records gathered so far with
// the error, unless Config.ContinueOnError is set.
func (h *Harness) Run(ctx context.Context) ([]Record, error) {
	h.logger.Info("benchmark started",
		"run_id", h.runID,
		"sizes", h.cfg.Sizes,
		"threads", h.cfg.Threads,
		"repetitions", h.cfg.Repetitions,
		"strategies", lo.Map(h.cfg.Strategies, func(s matmul.Strategy, _ int) string { return s.String() }))

	var records []Record
	for _, size := range h.cfg.Sizes {
		recs, err := h.runSize(ctx, size)
		records = append(records, recs...)
		if err != nil {
			return records, err
		}
	}

	h.logger.Info("benchmark finished", "run_id", h.runID, "records", len(records))
	return records, nil
}

// runSize generates the inputs for one size and runs every strategy on them.
func (h *Harness) runSize(ctx context.Context, size int) ([]Record, error) {
	a, err := h.randomMatrix(size)
	if err != nil {
		return nil, err
	}
	b, err := h.randomMatrix(size)
	if err != nil {
		return nil, err
	}

	h.logger.Info("benchmarking size", "size", size)
	h.sink.BeginSize(size)

	display := size <= h.cfg.DisplayLimit
	if display {
		h.sink.Matrix("A", a)
		h.sink.Matrix("B", b)
	}

	var records []Record
	for _, s := range h.cfg.Strategies {
		recs, err := h.runStrategy(ctx, size, s, a, b, display)
		records = append(records, recs...)
		if err != nil {
			return records, err
		}
	}
	return records, nil
}

func (h *Harness) randomMatrix(size int) (*matrix.Dense, error) {
	m, err := matrix.New(size, size)
	if err != nil {
		return nil, fmt.Errorf("bench: size %d: %w", size, err)
	}
	if err := m.FillRandom(h.rng, h.cfg.Min, h.cfg.Max); err != nil {
		return nil, fmt.Errorf("bench: size %d: %w", size, err)
	}
	return m, nil
}

// runStrategy times one strategy at every configured thread count.
func (h *Harness) runStrategy(ctx context.Context, size int, s matmul.Strategy, a, b *matrix.Dense, display bool) ([]Record, error) {
	exec := h.executors[s]
	baselineThreads := h.cfg.Baseline()
	var baseline time.Duration

	h.sink.BeginStrategy(size, s)

	records := make([]Record, 0, len(h.cfg.Threads))
	for _, threads := range h.cfg.Threads {
		durations := make([]time.Duration, 0, h.cfg.Repetitions)
		var trialErr error
		for rep := range h.cfg.Repetitions {
			elapsed, result, err := h.timeTrial(ctx, exec, a, b, threads)
			if err != nil {
				trialErr = err
				break
			}
			durations = append(durations, elapsed)
			h.logger.Debug("trial",
				"size", size, "strategy", s, "threads", threads, "rep", rep, "elapsed", elapsed)

			if display && rep == 0 && threads == baselineThreads {
				h.sink.Matrix(fmt.Sprintf("Result (%s)", s.Title()), result)
			}
		}

		if trialErr != nil {
			h.logger.Error("trial failed",
				"size", size, "strategy", s, "threads", threads, "err", trialErr)
			h.sink.Error(size, threads, s, trialErr)
			if !h.cfg.ContinueOnError || ctx.Err() != nil {
				return records, fmt.Errorf("bench: size %d, %s, %d threads: %w", size, s, threads, trialErr)
			}
			continue
		}

		total := lo.Sum(durations)
		average := total / time.Duration(len(durations))
		if threads == baselineThreads {
			baseline = average
		}

		rec := Record{
			RunID:       h.runID.String(),
			Size:        size,
			Threads:     threads,
			Strategy:    s,
			Repetitions: len(durations),
			Total:       total,
			Average:     average,
			AverageMs:   float64(average) / float64(time.Millisecond),
			Baseline:    baselineThreads,
			Speedup:     speedup(baseline, average),
		}
		h.sink.Record(rec)
		records = append(records, rec)
	}
	return records, nil
}

// timeTrial measures the wall-clock duration of one multiplication.
func (h *Harness) timeTrial(ctx context.Context, exec matmul.Executor, a, b *matrix.Dense, threads int) (time.Duration, *matrix.Dense, error) {
	start := h.now()
	result, err := exec.Multiply(ctx, a, b, threads)
	elapsed := h.now().Sub(start)
	return elapsed, result, err
}
