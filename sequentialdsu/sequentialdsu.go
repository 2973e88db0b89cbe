// Package sequentialdsu implements the single-threaded Union-Find oracle:
// separated parent/rank arrays, full path compression, union by rank.
// It serves as the correctness baseline the concurrent engines are
// checked against.
package sequentialdsu

import (
	"concurrentuf/batchexec"
	"concurrentuf/dsuops"
)

// Engine is a sequential Union-Find structure over [0,N).
type Engine struct {
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

// Process dispatches every operation in ops against e, writing one
// result per operation into results. Engine has no internal locking, so
// unlike the concurrent variants it always runs on a single worker
// regardless of available CPUs; it exists to serve as the sequential
// baseline a concurrent engine's Process output is checked against.
func (e *Engine) Process(ops []dsuops.Operation, results []int) {
	batchexec.Run(e, ops, results, 1)
}

func (e *Engine) checkBounds(a int) error {
	if a < 0 || a >= len(e.parent) {
		return dsuops.ErrOutOfBounds
	}
	return nil
}

// Find walks to the root of a's tree and installs full path compression
// along the way: every visited node's parent becomes the root.
func (e *Engine) Find(a int) (int, error) {
	if err := e.checkBounds(a); err != nil {
		return 0, err
	}
	return e.find(a), nil
}

// find is the unchecked, two-pass implementation: first walk to the
// root, then walk again writing it into every visited node. Iterative
// rather than recursive so arbitrarily deep uncompressed chains never
// risk a stack overflow.
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

// Union merges the sets containing a and b by rank, returning true iff a
// merge occurred.
func (e *Engine) Union(a, b int) (bool, error) {
	if err := e.checkBounds(a); err != nil {
		return false, err
	}
	if err := e.checkBounds(b); err != nil {
		return false, err
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
	if err := e.checkBounds(a); err != nil {
		return false, err
	}
	if err := e.checkBounds(b); err != nil {
		return false, err
	}
	return e.find(a) == e.find(b), nil
}
