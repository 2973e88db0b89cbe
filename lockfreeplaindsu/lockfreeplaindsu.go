// Package lockfreeplaindsu implements a lock-free Union-Find engine
// identical to concurrentuf/lockfreedsu except for its compression step:
// instead of a CAS, the second find pass writes the compressed parent
// with a plain relaxed Store. A lost race simply means a later find
// redoes the same compression; it never corrupts the structure, since a
// stale write can only name an ancestor that was true at the moment the
// word was read, and re-reading top-down on the next find recovers the
// current root regardless. Tie-break policy for equal-rank roots: the
// smaller index becomes the parent.
package lockfreeplaindsu

import (
	"sync/atomic"

	"concurrentuf/batchexec"
	"concurrentuf/dsuops"
	"concurrentuf/packedword"
	"concurrentuf/ring"
)

// Engine is a lock-free Union-Find structure over [0,N).
type Engine struct {
	a []atomic.Int64 // packed parent/rank word per element
}

// New constructs an Engine with n singleton elements, each initially a
// root of rank 0 (encoded as -1).
func New(n int) (*Engine, error) {
	if n < 0 {
		return nil, dsuops.ErrInvalidSize
	}
	e := &Engine{a: make([]atomic.Int64, n)}
	for i := range e.a {
		e.a[i].Store(packedword.EncodeRoot(0))
	}
	return e, nil
}

// Size returns N.
func (e *Engine) Size() int { return len(e.a) }

// Process dispatches every operation in ops against e across a pinned
// worker pool sized to the host, writing one result per operation into
// results.
func (e *Engine) Process(ops []dsuops.Operation, results []int) {
	batchexec.Run(e, ops, results, 0)
}

func (e *Engine) inBounds(i int) bool {
	return i >= 0 && i < len(e.a)
}

// find returns the root of u's tree together with the root's currently
// observed packed word. As in lockfreedsu, this is iterative and
// two-pass to stay stack-safe on deep, uncompressed chains. Unlike
// lockfreedsu, the compression pass overwrites unconditionally with a
// relaxed Store rather than a CAS: cheaper per step, at the cost of
// occasionally clobbering another thread's own (equally valid)
// compression of the same node.
func (e *Engine) find(u int) (root int, rootVal packedword.Word) {
	cur := u
	for {
		v := e.a[cur].Load()
		if packedword.IsRoot(v) {
			root, rootVal = cur, v
			break
		}
		cur = packedword.Parent(v)
	}

	cur = u
	for {
		v := e.a[cur].Load()
		if packedword.IsRoot(v) || packedword.Parent(v) == root {
			break
		}
		next := packedword.Parent(v)
		e.a[cur].Store(packedword.EncodeParent(root))
		cur = next
	}
	return root, rootVal
}

// Find returns the representative of the set containing a.
func (e *Engine) Find(a int) (int, error) {
	if !e.inBounds(a) {
		return 0, dsuops.ErrOutOfBounds
	}
	root, _ := e.find(a)
	return root, nil
}

// Union merges the sets containing a and b, retrying on CAS contention
// at the root-linking step (the only step that still uses CAS).
func (e *Engine) Union(a, b int) (bool, error) {
	if !e.inBounds(a) || !e.inBounds(b) {
		return false, dsuops.ErrOutOfBounds
	}
	for {
		rootA, _ := e.find(a)
		rootB, _ := e.find(b)

		valA := e.a[rootA].Load()
		valB := e.a[rootB].Load()
		if !packedword.IsRoot(valA) || !packedword.IsRoot(valB) {
			ring.CPURelax()
			continue
		}
		if rootA == rootB {
			return false, nil
		}

		rankA, rankB := packedword.Rank(valA), packedword.Rank(valB)
		var child, parent int
		var childVal, parentVal packedword.Word
		switch {
		case rankA < rankB:
			child, childVal = rootA, valA
			parent, parentVal = rootB, valB
		case rankB < rankA:
			child, childVal = rootB, valB
			parent, parentVal = rootA, valA
		default:
			if rootA < rootB {
				child, childVal = rootB, valB
				parent, parentVal = rootA, valA
			} else {
				child, childVal = rootA, valA
				parent, parentVal = rootB, valB
			}
		}

		if !e.a[child].CompareAndSwap(childVal, packedword.EncodeParent(parent)) {
			ring.CPURelax()
			continue
		}

		if rankA == rankB {
			e.a[parent].CompareAndSwap(parentVal, packedword.EncodeRoot(packedword.Rank(parentVal)+1))
		}
		return true, nil
	}
}

// SameSet reports whether a and b are currently in the same set.
func (e *Engine) SameSet(a, b int) (bool, error) {
	if !e.inBounds(a) || !e.inBounds(b) {
		return false, dsuops.ErrOutOfBounds
	}
	for {
		rootA, _ := e.find(a)
		rootB, _ := e.find(b)
		if rootA == rootB {
			return true, nil
		}
		if packedword.IsRoot(e.a[rootA].Load()) {
			return false, nil
		}
	}
}
