// Package batchexec fans a finite operation stream out across a pinned
// worker pool. Each worker pulls index ranges from a shared atomic
// cursor (dynamic chunking), dispatches ops[i] against one shared
// dsuops.Engine, and writes results[i] — a distinct index per
// operation, so the result slice needs no synchronization of its own.
package batchexec

import (
	"errors"
	"runtime"
	"sync/atomic"

	"concurrentuf/dsuops"
	"concurrentuf/ring"
	"concurrentuf/workerctl"
)

// chunkSize is the number of operation indices one worker claims per
// cursor fetch. Small enough that a slow chunk doesn't starve idle
// workers near the end of the stream, large enough that the shared
// cursor isn't itself a bottleneck.
const chunkSize = 256

// Run dispatches every operation in ops against engine using workers
// goroutines pinned to distinct logical CPUs, writing one result per
// operation into results. results must already be sized to len(ops).
// workers <= 0 defaults to runtime.NumCPU().
func Run(engine dsuops.Engine, ops []dsuops.Operation, results []int, workers int) {
	RunCancelable(engine, ops, results, workers, nil)
}

// RunCancelable behaves exactly like Run, except that if cancel is
// non-nil and cancel.Stopped() reports true, each worker finishes the
// chunk it is currently processing and returns without claiming
// another, leaving any unclaimed result slots at their zero value.
// cmd/unionfind-bench wires a Controller here to SIGINT so a long
// benchmark run can be interrupted cleanly instead of killed mid-write.
// cancel == nil always runs every operation to completion, same as Run.
func RunCancelable(engine dsuops.Engine, ops []dsuops.Operation, results []int, workers int, cancel *workerctl.Controller) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(ops) && len(ops) > 0 {
		workers = len(ops)
	}
	if len(ops) == 0 {
		return
	}

	var cursor atomic.Int64
	ctl := workerctl.New(workers)

	for w := 0; w < workers; w++ {
		go func(cpu int) {
			defer ctl.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			ring.PinCurrentThread(cpu)

			for {
				if cancel != nil && cancel.Stopped() {
					return
				}
				start := cursor.Add(chunkSize) - chunkSize
				if start >= int64(len(ops)) {
					return
				}
				end := start + chunkSize
				if end > int64(len(ops)) {
					end = int64(len(ops))
				}
				for i := start; i < end; i++ {
					results[i] = dispatch(engine, ops[i])
				}
			}
		}(w % runtime.NumCPU())
	}

	ctl.Wait()
}

// dispatch executes one operation against engine, converting a
// precondition violation into a sentinel result code rather than
// propagating an error, so one malformed operation never aborts the
// batch.
func dispatch(engine dsuops.Engine, op dsuops.Operation) int {
	switch op.Kind {
	case dsuops.OpFind:
		r, err := engine.Find(op.A)
		if err != nil {
			return sentinelFor(err)
		}
		return r
	case dsuops.OpUnion:
		merged, err := engine.Union(op.A, op.B)
		if err != nil {
			return sentinelFor(err)
		}
		if merged {
			return 1
		}
		return 0
	case dsuops.OpSameSet:
		same, err := engine.SameSet(op.A, op.B)
		if err != nil {
			return sentinelFor(err)
		}
		if same {
			return 1
		}
		return 0
	default:
		return dsuops.ResultUnexpectedKind
	}
}

func sentinelFor(err error) int {
	if errors.Is(err, dsuops.ErrOutOfBounds) {
		return dsuops.ResultOutOfBounds
	}
	return dsuops.ResultUnexpectedKind
}
