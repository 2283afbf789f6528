// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ajroetker/matbench/bench"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// Table writes human readable results: a heading per size, optional matrix
// dumps, and a threads / time / speedup table per strategy.
//
// Rows are aligned per table, so a table is only written out when the next
// section starts or on Flush.
type Table struct {
	w  *errWriter
	tw *tabwriter.Writer
}

var _ bench.Sink = (*Table)(nil)

// NewTable returns a Table writing to w.
func NewTable(w io.Writer) *Table {
	return &Table{w: &errWriter{w: w}}
}

// BeginSize implements bench.Sink.
func (t *Table) BeginSize(size int) {
	t.endTable()
	fmt.Fprintf(t.w, "\nMatrix %dx%d:\n", size, size)
}

// Matrix implements bench.Sink.
func (t *Table) Matrix(label string, m *matrix.Dense) {
	t.endTable()
	fmt.Fprintf(t.w, "\n%s:\n%s", label, m)
}

// BeginStrategy implements bench.Sink.
func (t *Table) BeginStrategy(size int, s matmul.Strategy) {
	t.endTable()
	fmt.Fprintf(t.w, "\nResults for %dx%d (%s):\n", size, size, s.Title())
	t.tw = tabwriter.NewWriter(t.w, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(t.tw, "Threads\tTime (ms)\tSpeedup\t")
	fmt.Fprintln(t.tw, "-------\t---------\t-------\t")
}

// Record implements bench.Sink.
func (t *Table) Record(r bench.Record) {
	speedup := "n/a"
	if r.Speedup > 0 {
		speedup = fmt.Sprintf("%.2f", r.Speedup)
	}
	fmt.Fprintf(t.rows(), "%d\t%.2f\t%s\t\n", r.Threads, r.AverageMs, speedup)
}

// Error implements bench.Sink. The error itself goes to the log; the table
// only marks the failed row.
func (t *Table) Error(_, threads int, _ matmul.Strategy, _ error) {
	fmt.Fprintf(t.rows(), "%d\tfailed\t-\t\n", threads)
}

// Flush implements bench.Sink. It returns the first write error.
func (t *Table) Flush() error {
	t.endTable()
	return t.w.err
}

// rows returns the writer for table rows, falling back to the raw output
// when no strategy section is open.
func (t *Table) rows() io.Writer {
	if t.tw == nil {
		return t.w
	}
	return t.tw
}

func (t *Table) endTable() {
	if t.tw == nil {
		return
	}
	// Write errors are recorded by errWriter.
	_ = t.tw.Flush()
	t.tw = nil
}

// errWriter remembers the first write error and drops everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
