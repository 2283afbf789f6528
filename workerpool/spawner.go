// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import "runtime"

// Spawner starts a new goroutine for every submitted task.
//
// With LockOSThread set, each goroutine is wired to its own OS thread for the
// lifetime of the task, so n submitted tasks run on n distinct threads.
type Spawner struct {
	LockOSThread bool
}

var _ Submitter = Spawner{}

// Submit starts task on a fresh goroutine.
func (s Spawner) Submit(r Range, task Task) *Handle {
	h := newHandle(r)
	go func() {
		if s.LockOSThread {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
		}
		h.finish(runTask(r, task))
	}()
	return h
}

// JoinAll waits for all handles. See the package-level JoinAll.
func (Spawner) JoinAll(handles []*Handle) error {
	return JoinAll(handles)
}
