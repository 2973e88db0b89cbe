// Package coarsedsu implements the coarse-lock Union-Find engine: a
// single mutex guards every public operation, so correctness follows
// trivially from mutual exclusion plus the same sequential forest logic
// as sequentialdsu. This engine measures scheduling overhead, not true
// parallelism — every call serializes on the one lock.
package coarsedsu

import (
	"sync"

	"concurrentuf/batchexec"
	"concurrentuf/dsuops"
)

// Engine is a coarse-lock Union-Find structure over [0,N).
type Engine struct {
	mu     sync.Mutex
	parent []int
	rank   []int
}

// New constructs an Engine with n singleton elements.
func New(n int) (*Engine, error) {
	if n < 0 {
		return nil, dsuops.ErrInvalidSize
	}
	e := &Engine{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range e.parent {
		e.parent[i] = i
	}
	return e, nil
}

// Size returns N.
func (e *Engine) Size() int { return len(e.parent) }

// Process dispatches every operation in ops against e across a pinned
// worker pool sized to the host, writing one result per operation into
// results.
func (e *Engine) Process(ops []dsuops.Operation, results []int) {
	batchexec.Run(e, ops, results, 0)
}

// find assumes the caller already holds e.mu. C++'s std::recursive_mutex
// lets union call find while already holding the lock; Go has no
// re-entrant mutex, so every internal helper here documents that it must
// only be called under the lock rather than acquiring it itself.
func (e *Engine) find(a int) int {
	root := a
	for e.parent[root] != root {
		root = e.parent[root]
	}
	for e.parent[a] != root {
		a, e.parent[a] = e.parent[a], root
	}
	return root
}

// Find returns the representative of the set containing a.
func (e *Engine) Find(a int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if a < 0 || a >= len(e.parent) {
		return 0, dsuops.ErrOutOfBounds
	}
	return e.find(a), nil
}

// Union merges the sets containing a and b under the single lock.
func (e *Engine) Union(a, b int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if a < 0 || a >= len(e.parent) || b < 0 || b >= len(e.parent) {
		return false, dsuops.ErrOutOfBounds
	}
	rootA, rootB := e.find(a), e.find(b)
	if rootA == rootB {
		return false, nil
	}
	switch {
	case e.rank[rootA] < e.rank[rootB]:
		e.parent[rootA] = rootB
	case e.rank[rootA] > e.rank[rootB]:
		e.parent[rootB] = rootA
	default:
		e.parent[rootB] = rootA
		e.rank[rootA]++
	}
	return true, nil
}

// SameSet reports whether a and b are in the same set.
func (e *Engine) SameSet(a, b int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if a < 0 || a >= len(e.parent) || b < 0 || b >= len(e.parent) {
		return false, dsuops.ErrOutOfBounds
	}
	return e.find(a) == e.find(b), nil
}
