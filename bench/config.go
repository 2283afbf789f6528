// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/matbench/matmul"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("bench: invalid config")

// Loop names the parallel-for implementation behind the parallel strategy.
type Loop string

const (
	// LoopPool uses a persistent workerpool.Pool with atomic work stealing.
	LoopPool Loop = "pool"

	// LoopGroup uses workerpool.Group, an errgroup limited to the degree of
	// parallelism.
	LoopGroup Loop = "group"
)

// SeedEnv overrides Config.Seed when set.
const SeedEnv = "MATBENCH_SEED"

// Config drives a benchmark run.
type Config struct {
	// Sizes are the square matrix sizes, run in order.
	Sizes []int `yaml:"sizes" json:"sizes"`

	// Threads are the worker counts, strictly ascending. The first one is
	// the speedup baseline.
	Threads []int `yaml:"threads" json:"threads"`

	// Repetitions is the number of timed runs per (size, threads, strategy).
	Repetitions int `yaml:"repetitions" json:"repetitions"`

	// Strategies are benchmarked in this order for every size.
	Strategies []matmul.Strategy `yaml:"strategies" json:"strategies"`

	// Min and Max bound the random fill: integers in [Min, Max).
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`

	// Seed seeds the harness random generator. 0 seeds from the clock.
	Seed uint64 `yaml:"seed" json:"seed"`

	// DisplayLimit is the largest size whose matrices are sent to the sink.
	DisplayLimit int `yaml:"display_limit" json:"display_limit"`

	// ContinueOnError keeps going after a failed trial instead of stopping.
	ContinueOnError bool `yaml:"continue_on_error" json:"continue_on_error"`

	// Loop selects the parallel-for implementation.
	Loop Loop `yaml:"loop" json:"loop"`

	// Batch is the number of rows claimed per grab by the parallel loop.
	Batch int `yaml:"batch" json:"batch"`

	// LockThreads pins every manual-thread worker to its own OS thread.
	LockThreads bool `yaml:"lock_threads" json:"lock_threads"`
}

// DefaultConfig returns the classic run: five sizes from 200 to 1000, one to
// eight threads, three repetitions, values in [1, 10).
func DefaultConfig() Config {
	return Config{
		Sizes:        []int{200, 400, 600, 800, 1000},
		Threads:      []int{1, 2, 4, 8},
		Repetitions:  3,
		Strategies:   slices.Clone(matmul.Strategies),
		Min:          1,
		Max:          10,
		DisplayLimit: 10,
		Loop:         LoopPool,
		Batch:        1,
		LockThreads:  true,
	}
}

// LoadConfig reads a YAML file over DefaultConfig: keys absent from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("bench: reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("bench: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides to cfg.
func (cfg *Config) ApplyEnv() error {
	val := os.Getenv(SeedEnv)
	if val == "" {
		return nil
	}
	seed, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, SeedEnv, val, err)
	}
	cfg.Seed = seed
	return nil
}

// Validate reports the first problem found in cfg.
func (cfg Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case len(cfg.Sizes) == 0:
		return invalid("no sizes")
	case lo.Min(cfg.Sizes) <= 0:
		return invalid("sizes must be positive, got %v", cfg.Sizes)
	case len(cfg.Threads) == 0:
		return invalid("no thread counts")
	case lo.Min(cfg.Threads) < 1:
		return invalid("thread counts must be >= 1, got %v", cfg.Threads)
	case !lo.IsSorted(cfg.Threads) || len(lo.Uniq(cfg.Threads)) != len(cfg.Threads):
		return invalid("thread counts must be strictly ascending, got %v", cfg.Threads)
	case cfg.Repetitions < 1:
		return invalid("repetitions must be >= 1, got %d", cfg.Repetitions)
	case len(cfg.Strategies) == 0:
		return invalid("no strategies")
	case len(lo.Uniq(cfg.Strategies)) != len(cfg.Strategies):
		return invalid("duplicate strategies in %v", cfg.Strategies)
	case cfg.Max <= cfg.Min:
		return invalid("empty fill range [%d, %d)", cfg.Min, cfg.Max)
	case cfg.DisplayLimit < 0:
		return invalid("display limit must be >= 0, got %d", cfg.DisplayLimit)
	case cfg.Batch < 0:
		return invalid("batch must be >= 0, got %d", cfg.Batch)
	case cfg.Loop != LoopPool && cfg.Loop != LoopGroup:
		return invalid("unknown loop %q", cfg.Loop)
	}
	for _, s := range cfg.Strategies {
		if !slices.Contains(matmul.Strategies, s) {
			return invalid("unknown strategy %d", int(s))
		}
	}
	return nil
}

// Baseline returns the thread count speedups are measured against.
func (cfg Config) Baseline() int {
	return cfg.Threads[0]
}
