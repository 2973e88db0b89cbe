// Package lockfreedsu implements the CAS-based lock-free Union-Find
// engine: each element is a single atomic packed word (see
// concurrentuf/packedword), find compresses paths via CAS, and union
// links roots via CAS with a re-verify retry loop. Tie-break policy for
// equal-rank roots: the smaller index becomes the parent.
package lockfreedsu

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
// observed packed word. It is iterative and two-pass rather than
// recursive: a first walk locates the root so deep, uncompressed chains
// never risk a stack overflow; a second walk attempts one CAS-based
// compression step per visited node. A failed compression CAS is not
// retried — it means another thread already advanced that node to an
// equal-or-better parent, so the root this call returns is still
// correct.
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

// Union merges the sets containing a and b, retrying on CAS contention.
func (e *Engine) Union(a, b int) (bool, error) {
	if !e.inBounds(a) || !e.inBounds(b) {
		return false, dsuops.ErrOutOfBounds
	}
	for {
		rootA, _ := e.find(a)
		rootB, _ := e.find(b)

		// Re-load the candidate roots to get their latest state.
		valA := e.a[rootA].Load()
		valB := e.a[rootB].Load()
		if !packedword.IsRoot(valA) || !packedword.IsRoot(valB) {
			ring.CPURelax()
			continue // a root was demoted concurrently; retry
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
			// Equal rank: smaller index becomes the parent.
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
			continue // lost the race to link; retry the whole operation
		}

		if rankA == rankB {
			// Linearization point already passed; a missed rank
			// bump degrades balance but never correctness.
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
		// rootA was concurrently merged into a new tree; stale, retry.
	}
}
