// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import "fmt"

// Range is the half-open index range [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return max(r.End-r.Start, 0)
}

// Empty reports whether the range holds no index.
func (r Range) Empty() bool {
	return r.Len() == 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}
