// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/matbench/matmul"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []int{200, 400, 600, 800, 1000}, cfg.Sizes)
	assert.Equal(t, []int{1, 2, 4, 8}, cfg.Threads)
	assert.Equal(t, 3, cfg.Repetitions)
	assert.Equal(t, 1, cfg.Min)
	assert.Equal(t, 10, cfg.Max)
	assert.Equal(t, 10, cfg.DisplayLimit)
	assert.Equal(t, 1, cfg.Baseline())
	assert.Equal(t, matmul.Strategies, cfg.Strategies)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"no sizes":           func(c *Config) { c.Sizes = nil },
		"zero size":          func(c *Config) { c.Sizes = []int{10, 0} },
		"no threads":         func(c *Config) { c.Threads = nil },
		"zero threads":       func(c *Config) { c.Threads = []int{0, 1} },
		"descending threads": func(c *Config) { c.Threads = []int{4, 2, 1} },
		"duplicate threads":  func(c *Config) { c.Threads = []int{1, 2, 2} },
		"no repetitions":     func(c *Config) { c.Repetitions = 0 },
		"no strategies":      func(c *Config) { c.Strategies = nil },
		"dup strategies": func(c *Config) {
			c.Strategies = []matmul.Strategy{matmul.StrategyManualThread, matmul.StrategyManualThread}
		},
		"unknown strategy":   func(c *Config) { c.Strategies = []matmul.Strategy{7} },
		"empty fill range":   func(c *Config) { c.Min, c.Max = 5, 5 },
		"negative display":   func(c *Config) { c.DisplayLimit = -1 },
		"negative batch":     func(c *Config) { c.Batch = -2 },
		"unknown loop":       func(c *Config) { c.Loop = "tasks" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	doc := `
sizes: [8, 16]
threads: [1, 3]
repetitions: 5
strategies: [thread]
seed: 99
loop: group
continue_on_error: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	want := DefaultConfig()
	want.Sizes = []int{8, 16}
	want.Threads = []int{1, 3}
	want.Repetitions = 5
	want.Strategies = []matmul.Strategy{matmul.StrategyManualThread}
	want.Seed = 99
	want.Loop = LoopGroup
	want.ContinueOnError = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategies: [gpu]\n"), 0o644))
	_, err = LoadConfig(path)
	require.ErrorIs(t, err, matmul.ErrUnknownStrategy)
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "- parallel")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv(SeedEnv, "")
	require.NoError(t, cfg.ApplyEnv())
	assert.Zero(t, cfg.Seed)

	t.Setenv(SeedEnv, "1234")
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, uint64(1234), cfg.Seed)

	t.Setenv(SeedEnv, "not-a-number")
	require.ErrorIs(t, cfg.ApplyEnv(), ErrInvalidConfig)
}
