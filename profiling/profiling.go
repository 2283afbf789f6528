// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package profiling captures a CPU profile around a benchmark run and reads
// it back into a short per-function summary.
package profiling

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"slices"
	"time"

	"github.com/google/pprof/profile"
)

// Start begins CPU profiling into path. The returned stop function ends the
// profile and closes the file; it must be called exactly once.
func Start(path string) (stop func() error, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("profiling: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return nil, errors.Join(fmt.Errorf("profiling: starting CPU profile: %w", err), f.Close())
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("profiling: closing %s: %w", path, err)
		}
		return nil
	}, nil
}

// Func is the cost attributed to one function.
type Func struct {
	Name string
	// Flat is the value of samples whose leaf frame is in this function.
	Flat int64
	// Cum also counts samples where the function is anywhere on the stack.
	Cum int64
}

// Summary condenses a profile.
type Summary struct {
	Duration time.Duration
	// Samples is the number of sample records.
	Samples int
	// Unit of Total, Flat and Cum, e.g. "nanoseconds".
	Unit  string
	Total int64
	// Top holds the most expensive functions by flat value.
	Top []Func
}

// Summarize parses the profile at path and returns its top n functions.
func Summarize(path string, n int) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("profiling: %w", err)
	}
	defer f.Close()

	prof, err := profile.Parse(f)
	if err != nil {
		return Summary{}, fmt.Errorf("profiling: parsing %s: %w", path, err)
	}
	return summarize(prof, n), nil
}

// valueIndex picks the CPU time column, falling back to the last one.
func valueIndex(prof *profile.Profile) int {
	for i, st := range prof.SampleType {
		if st.Type == "cpu" {
			return i
		}
	}
	return len(prof.SampleType) - 1
}

func summarize(prof *profile.Profile, n int) Summary {
	s := Summary{
		Duration: time.Duration(prof.DurationNanos),
		Samples:  len(prof.Sample),
	}
	if len(prof.SampleType) == 0 {
		return s
	}
	idx := valueIndex(prof)
	s.Unit = prof.SampleType[idx].Unit

	funcs := make(map[string]*Func)
	lookup := func(name string) *Func {
		fn, ok := funcs[name]
		if !ok {
			fn = &Func{Name: name}
			funcs[name] = fn
		}
		return fn
	}

	for _, sample := range prof.Sample {
		if idx >= len(sample.Value) {
			continue
		}
		v := sample.Value[idx]
		s.Total += v

		// Location[0] is the leaf; within a location, Line[0] is the
		// innermost inlined call.
		seen := make(map[string]bool)
		for li, loc := range sample.Location {
			for ln, line := range loc.Line {
				if line.Function == nil {
					continue
				}
				name := line.Function.Name
				if li == 0 && ln == 0 {
					lookup(name).Flat += v
				}
				if !seen[name] {
					seen[name] = true
					lookup(name).Cum += v
				}
			}
		}
	}

	top := make([]Func, 0, len(funcs))
	for _, fn := range funcs {
		top = append(top, *fn)
	}
	slices.SortFunc(top, func(a, b Func) int {
		if c := cmp.Compare(b.Flat, a.Flat); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Cum, a.Cum); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	s.Top = top
	return s
}
