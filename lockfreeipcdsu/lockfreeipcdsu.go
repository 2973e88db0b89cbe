// Package lockfreeipcdsu implements the lock-free Union-Find engine with
// an immediate-parent-check (IPC) short circuit: union and sameSet first
// compare the two elements' immediate parent pointers, and return early
// when both point to the same non-root node, since two elements sharing
// a non-root parent are necessarily in the same set already. This saves
// a full find on the common case of repeated operations over the same
// local cluster. Tie-break policy for equal-rank roots is the opposite
// of concurrentuf/lockfreedsu: the smaller index becomes the child.
package lockfreeipcdsu

import (
	"sync/atomic"

	"concurrentuf/batchexec"
	"concurrentuf/dsuops"
	"concurrentuf/packedword"
	"concurrentuf/ring"
)

// Engine is a lock-free Union-Find structure over [0,N) with an
// immediate-parent-check fast path.
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

// find is iterative and two-pass, identical in shape to lockfreedsu's:
// a root-finding walk followed by a CAS-based compression walk.
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
		e.a[cur].CompareAndSwap(v, packedword.EncodeParent(root))
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

// Union merges the sets containing a and b. Before attempting a full
// find on either side, it checks whether a and b already share the same
// non-root immediate parent; if so, they are necessarily in the same
// set and the call returns false without walking any further.
func (e *Engine) Union(a, b int) (bool, error) {
	if !e.inBounds(a) || !e.inBounds(b) {
		return false, dsuops.ErrOutOfBounds
	}
	for {
		parentA := e.a[a].Load()
		parentB := e.a[b].Load()
		if !packedword.IsRoot(parentA) && parentA == parentB {
			return false, nil
		}

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
			// Equal rank: smaller index becomes the child, the
			// opposite tie-break from the base lock-free engine.
			if rootA < rootB {
				child, childVal = rootA, valA
				parent, parentVal = rootB, valB
			} else {
				child, childVal = rootB, valB
				parent, parentVal = rootA, valA
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

// SameSet reports whether a and b are currently in the same set. It
// shares Union's immediate-parent-check fast path.
func (e *Engine) SameSet(a, b int) (bool, error) {
	if !e.inBounds(a) || !e.inBounds(b) {
		return false, dsuops.ErrOutOfBounds
	}
	if a == b {
		return true, nil
	}
	for {
		parentA := e.a[a].Load()
		parentB := e.a[b].Load()
		if !packedword.IsRoot(parentA) && parentA == parentB {
			return true, nil
		}

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
