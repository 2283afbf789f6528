// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/ajroetker/matbench/bench"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// Document is the JSON report of one run.
type Document struct {
	RunID    string         `json:"run_id"`
	Hardware bench.Hardware `json:"hardware"`
	Config   bench.Config   `json:"config"`
	Records  []bench.Record `json:"records"`
	Failures []Failure      `json:"failures,omitempty"`
}

// Failure is a trial that returned an error.
type Failure struct {
	Size     int             `json:"size"`
	Threads  int             `json:"threads"`
	Strategy matmul.Strategy `json:"strategy"`
	Error    string          `json:"error"`
}

// JSON collects a run and writes it as a single Document on Flush.
// Matrix dumps are not part of the document.
type JSON struct {
	w   io.Writer
	doc Document
}

var _ bench.Sink = (*JSON)(nil)

// NewJSON returns a JSON sink for a run on hw configured with cfg.
func NewJSON(w io.Writer, hw bench.Hardware, cfg bench.Config) *JSON {
	return &JSON{
		w: w,
		doc: Document{
			Hardware: hw,
			Config:   cfg,
			Records:  []bench.Record{},
		},
	}
}

// SetRunID sets the run id of the document.
func (j *JSON) SetRunID(id uuid.UUID) {
	j.doc.RunID = id.String()
}

// Document returns the document collected so far.
func (j *JSON) Document() Document {
	return j.doc
}

// BeginSize implements bench.Sink.
func (j *JSON) BeginSize(int) {}

// Matrix implements bench.Sink.
func (j *JSON) Matrix(string, *matrix.Dense) {}

// BeginStrategy implements bench.Sink.
func (j *JSON) BeginStrategy(int, matmul.Strategy) {}

// Record implements bench.Sink.
func (j *JSON) Record(r bench.Record) {
	if j.doc.RunID == "" {
		j.doc.RunID = r.RunID
	}
	j.doc.Records = append(j.doc.Records, r)
}

// Error implements bench.Sink.
func (j *JSON) Error(size, threads int, s matmul.Strategy, err error) {
	j.doc.Failures = append(j.doc.Failures, Failure{
		Size:     size,
		Threads:  threads,
		Strategy: s,
		Error:    err.Error(),
	})
}

// Flush implements bench.Sink.
func (j *JSON) Flush() error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j.doc); err != nil {
		return fmt.Errorf("report: writing JSON: %w", err)
	}
	return nil
}
