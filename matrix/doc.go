// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix provides the dense float64 matrix used by the benchmarks and
// the single multiplication kernel shared by every execution strategy.
//
// Example usage:
//
//	rng := rand.New(rand.NewPCG(42, 0))
//	a, _ := matrix.New(M, K)
//	b, _ := matrix.New(K, N)
//	_ = a.FillRandom(rng, 1, 10)
//	_ = b.FillRandom(rng, 1, 10)
//
//	c, _ := matrix.New(M, N)
//	matrix.MulRange(a, b, c, 0, M) // C = A * B, rows [0, M)
//
// MulRange is the only implementation of the triple loop. Parallel strategies
// split the row range and call it once per row or per block.
package matrix
