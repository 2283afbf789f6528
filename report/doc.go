// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package report provides bench.Sink implementations: a console table in the
// layout of the classic benchmark, a JSON document for machine consumption,
// and a fan-out over several sinks.
package report
