// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "github.com/ajroetker/matbench/workerpool"

// Partition splits [0, rows) into numThreads contiguous ranges.
//
// With rowsPerThread = rows / numThreads and remainder = rows % numThreads,
// range t holds rowsPerThread+1 rows if t < remainder and rowsPerThread rows
// otherwise. The ranges tile [0, rows) exactly; when numThreads > rows the
// trailing ranges are empty. numThreads must be >= 1.
func Partition(rows, numThreads int) []workerpool.Range {
	rowsPerThread := rows / numThreads
	remainder := rows % numThreads

	parts := make([]workerpool.Range, numThreads)
	start := 0
	for t := range parts {
		n := rowsPerThread
		if t < remainder {
			n++
		}
		parts[t] = workerpool.Range{Start: start, End: start + n}
		start += n
	}
	return parts
}
