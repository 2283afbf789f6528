// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"github.com/samber/lo"

	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/workerpool"
)

// NewExecutors builds one executor per strategy in cfg. The returned func
// releases the resources they hold and must be called once the run is over.
func NewExecutors(cfg Config) (map[matmul.Strategy]matmul.Executor, func()) {
	var loop workerpool.ParallelFor
	closeFn := func() {}

	switch cfg.Loop {
	case LoopGroup:
		loop = workerpool.Group{BatchSize: cfg.Batch}
	default:
		// Enough persistent workers for the largest degree of parallelism.
		pool := workerpool.NewBatched(lo.Max(cfg.Threads), cfg.Batch)
		loop = pool
		closeFn = pool.Close
	}

	executors := make(map[matmul.Strategy]matmul.Executor, len(cfg.Strategies))
	for _, s := range cfg.Strategies {
		switch s {
		case matmul.StrategyParallelLoop:
			executors[s] = matmul.NewParallelLoop(loop)
		case matmul.StrategyManualThread:
			executors[s] = matmul.NewManualThread(workerpool.Spawner{LockOSThread: cfg.LockThreads})
		}
	}
	return executors, closeFn
}
