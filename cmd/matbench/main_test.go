// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/matbench/bench"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/report"
)

// execute runs the command line args and returns what it printed.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(configEnv, "")
	t.Setenv(bench.SeedEnv, "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func readDocument(t *testing.T, path string) report.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc report.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestRun(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "report.json")
	out, _, err := execute(t, "run",
		"--sizes", "3,6", "--threads", "1,2", "--reps", "2", "--seed", "42",
		"--display-limit", "3", "--json", jsonPath, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Matrix 3x3:")
	assert.Contains(t, out, "\nA:\n")
	assert.Contains(t, out, "\nB:\n")
	assert.Contains(t, out, "Result (Parallel):")
	assert.Contains(t, out, "Result (Thread):")
	assert.Contains(t, out, "Results for 6x6 (Thread):")
	// Only the 3x3 run is small enough to print.
	assert.Equal(t, 2, strings.Count(out, "Result ("))

	doc := readDocument(t, jsonPath)
	require.Len(t, doc.Records, 2*2*2)
	assert.NotEmpty(t, doc.RunID)
	for _, r := range doc.Records {
		assert.Equal(t, doc.RunID, r.RunID)
		assert.Equal(t, 2, r.Repetitions)
		assert.Equal(t, 1, r.Baseline)
	}
	assert.Equal(t, uint64(42), doc.Config.Seed)
	assert.Equal(t, runtime.GOARCH, doc.Hardware.Arch)
	assert.Empty(t, doc.Failures)
}

func TestRunConfigLayers(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sizes: [5]\nthreads: [1, 2]\nrepetitions: 1\nseed: 7\nloop: group\n"), 0o644))
	jsonPath := filepath.Join(dir, "report.json")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--reps", "2", "--strategies", "thread", "--json", jsonPath, "--log-level", "error"})
	t.Setenv(configEnv, configPath)
	t.Setenv(bench.SeedEnv, "9")
	require.NoError(t, cmd.Execute())

	cfg := readDocument(t, jsonPath).Config
	assert.Equal(t, []int{5}, cfg.Sizes)
	assert.Equal(t, []int{1, 2}, cfg.Threads)
	assert.Equal(t, 2, cfg.Repetitions)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, bench.LoopGroup, cfg.Loop)
	assert.Equal(t, []matmul.Strategy{matmul.StrategyManualThread}, cfg.Strategies)
}

func TestRunConfigFlagWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sizes: [5]\nthreads: [1]\nrepetitions: 1\n"), 0o644))
	jsonPath := filepath.Join(dir, "report.json")

	_, _, err := execute(t, "run", "--config", configPath, "--sizes", "4", "--seed", "3",
		"--json", jsonPath, "--log-level", "error")
	require.NoError(t, err)
	cfg := readDocument(t, jsonPath).Config
	assert.Equal(t, []int{4}, cfg.Sizes)
	assert.Equal(t, uint64(3), cfg.Seed)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
		msg  string
	}{
		{name: "descending threads", args: []string{"--threads", "2,1"}, is: bench.ErrInvalidConfig},
		{name: "unknown strategy", args: []string{"--strategies", "gpu"}, is: matmul.ErrUnknownStrategy},
		{name: "unknown loop", args: []string{"--loop", "tasks"}, is: bench.ErrInvalidConfig},
		{name: "empty range", args: []string{"--min", "4", "--max", "4"}, is: bench.ErrInvalidConfig},
		{name: "missing config", args: []string{"--config", "does-not-exist.yaml"}, is: os.ErrNotExist},
		{name: "log format", args: []string{"--log-format", "xml"}, msg: "--log-format"},
		{name: "log level", args: []string{"--log-level", "loud"}, msg: "--log-level"},
		{name: "positional", args: []string{"extra"}, msg: "unknown command"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"run", "--sizes", "2"}, tc.args...)...)
			require.Error(t, err)
			if tc.is != nil {
				require.ErrorIs(t, err, tc.is)
			}
			if tc.msg != "" {
				require.ErrorContains(t, err, tc.msg)
			}
		})
	}
}

func TestRunCPUProfile(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "cpu.pprof")
	_, logs, err := execute(t, "run", "--sizes", "48", "--threads", "1,2", "--reps", "1",
		"--cpuprofile", profilePath, "--log-format", "json")
	require.NoError(t, err)

	info, err := os.Stat(profilePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Contains(t, logs, `"msg":"benchmark started"`)
	assert.Contains(t, logs, `"msg":"cpu profile"`)
}

func TestPartition(t *testing.T) {
	out, _, err := execute(t, "partition", "--rows", "10", "--threads", "4")
	require.NoError(t, err)

	var got [][]string
	for line := range strings.Lines(out) {
		got = append(got, strings.Fields(line))
	}
	assert.Equal(t, [][]string{
		{"Worker", "Rows", "Count"},
		{"0", "[0,3)", "3"},
		{"1", "[3,6)", "3"},
		{"2", "[6,8)", "2"},
		{"3", "[8,10)", "2"},
	}, got)

	_, _, err = execute(t, "partition", "--rows", "10", "--threads", "0")
	require.ErrorIs(t, err, matmul.ErrInvalidWorkers)
}

func TestHardware(t *testing.T) {
	out, _, err := execute(t, "hardware")
	require.NoError(t, err)
	var hw bench.Hardware
	require.NoError(t, yaml.Unmarshal([]byte(out), &hw))
	assert.Equal(t, runtime.GOOS, hw.OS)
	assert.Equal(t, runtime.NumCPU(), hw.NumCPU)

	out, _, err = execute(t, "hardware", "--json")
	require.NoError(t, err)
	hw = bench.Hardware{}
	require.NoError(t, json.Unmarshal([]byte(out), &hw))
	assert.Equal(t, runtime.GOARCH, hw.Arch)
}
