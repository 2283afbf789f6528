// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package profiling

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/pprof/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/matbench/matrix"
)

func writeProfile(t *testing.T, p *profile.Profile) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cpu.pprof")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, p.Write(f))
	require.NoError(t, f.Close())
	return path
}

func syntheticProfile() *profile.Profile {
	kernel := &profile.Function{ID: 1, Name: "matrix.MulRange"}
	worker := &profile.Function{ID: 2, Name: "matmul.mulRows"}
	spawn := &profile.Function{ID: 3, Name: "workerpool.runTask"}

	locKernel := &profile.Location{ID: 1, Address: 0x10, Line: []profile.Line{{Function: kernel, Line: 30}}}
	// worker and runTask share one location: runTask inlined mulRows.
	locWorker := &profile.Location{ID: 2, Address: 0x20, Line: []profile.Line{
		{Function: worker, Line: 12},
		{Function: spawn, Line: 80},
	}}

	return &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "samples", Unit: "count"},
			{Type: "cpu", Unit: "nanoseconds"},
		},
		PeriodType:    &profile.ValueType{Type: "cpu", Unit: "nanoseconds"},
		Period:        10_000_000,
		DurationNanos: int64(2 * time.Second),
		Sample: []*profile.Sample{
			{Location: []*profile.Location{locKernel, locWorker}, Value: []int64{3, 30_000_000}},
			{Location: []*profile.Location{locWorker}, Value: []int64{1, 10_000_000}},
		},
		Location: []*profile.Location{locKernel, locWorker},
		Function: []*profile.Function{kernel, worker, spawn},
	}
}

func TestSummarize(t *testing.T) {
	path := writeProfile(t, syntheticProfile())

	got, err := Summarize(path, 10)
	require.NoError(t, err)

	want := Summary{
		Duration: 2 * time.Second,
		Samples:  2,
		Unit:     "nanoseconds",
		Total:    40_000_000,
		Top: []Func{
			{Name: "matrix.MulRange", Flat: 30_000_000, Cum: 30_000_000},
			{Name: "matmul.mulRows", Flat: 10_000_000, Cum: 40_000_000},
			{Name: "workerpool.runTask", Flat: 0, Cum: 40_000_000},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeTruncates(t *testing.T) {
	path := writeProfile(t, syntheticProfile())

	got, err := Summarize(path, 1)
	require.NoError(t, err)
	require.Len(t, got.Top, 1)
	assert.Equal(t, "matrix.MulRange", got.Top[0].Name)
}

func TestSummarizeErrors(t *testing.T) {
	_, err := Summarize(filepath.Join(t.TempDir(), "missing.pprof"), 5)
	require.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(t.TempDir(), "garbage.pprof")
	require.NoError(t, os.WriteFile(garbage, []byte("not a profile"), 0o644))
	_, err = Summarize(garbage, 5)
	require.ErrorContains(t, err, "profiling: parsing")
}

func TestStartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.pprof")
	stop, err := Start(path)
	require.NoError(t, err)

	a, err := matrix.New(64, 64)
	require.NoError(t, err)
	a.Fill(1.5)
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		_, err := matrix.Mul(a, a)
		require.NoError(t, err)
	}
	require.NoError(t, stop())

	got, err := Summarize(path, 5)
	require.NoError(t, err)
	assert.Equal(t, "nanoseconds", got.Unit)
	assert.Positive(t, got.Duration)
	assert.LessOrEqual(t, len(got.Top), 5)
}

func TestStartBadPath(t *testing.T) {
	_, err := Start(filepath.Join(t.TempDir(), "no", "such", "dir", "cpu.pprof"))
	require.Error(t, err)
}
