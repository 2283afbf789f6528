// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Command matbench benchmarks parallel dense matrix multiplication.
//
// Usage:
//
//	matbench run                                        # sizes 200..1000, 1..8 threads
//	matbench run --sizes 64,128 --threads 1,2,4 --reps 5
//	matbench run --config bench.yaml --json out.json --cpuprofile cpu.pprof
//	matbench partition --rows 10 --threads 4
//	matbench hardware
//
// Every measurement multiplies the same two random matrices per size with
// each strategy: "parallel" spreads rows over a parallel-for loop, "thread"
// gives each of N workers a contiguous block of rows. Speedups are relative
// to the first thread count.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
