package sequentialdsu

import (
	"errors"
	"testing"

	"concurrentuf/dsuops"
)

func TestNewRejectsNegativeSize(t *testing.T) {
	if _, err := New(-1); !errors.Is(err, dsuops.ErrInvalidSize) {
		t.Fatalf("New(-1) error = %v, want ErrInvalidSize", err)
	}
}

func TestZeroElements(t *testing.T) {
	e, err := New(0)
	if err != nil {
		t.Fatal(err)
	}
	if e.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", e.Size())
	}
}

func TestSingletonUnionIsNoop(t *testing.T) {
	e, _ := New(1)
	merged, err := e.Union(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if merged {
		t.Fatal("union(0,0) on a singleton universe must return false")
	}
}

func TestOutOfBounds(t *testing.T) {
	e, _ := New(3)
	if _, err := e.Find(3); !errors.Is(err, dsuops.ErrOutOfBounds) {
		t.Fatalf("Find(3) error = %v, want ErrOutOfBounds", err)
	}
	if _, err := e.Union(0, 3); !errors.Is(err, dsuops.ErrOutOfBounds) {
		t.Fatalf("Union(0,3) error = %v, want ErrOutOfBounds", err)
	}
	if _, err := e.SameSet(3, 0); !errors.Is(err, dsuops.ErrOutOfBounds) {
		t.Fatalf("SameSet(3,0) error = %v, want ErrOutOfBounds", err)
	}
}

func TestUnionSelfIsNoop(t *testing.T) {
	e, _ := New(5)
	merged, _ := e.Union(2, 2)
	if merged {
		t.Fatal("union(a,a) must return false and change nothing")
	}
}

// TestScenario1 replays spec scenario 1.
func TestScenario1(t *testing.T) {
	e, _ := New(5)
	mustUnion(t, e, 0, 1)
	mustUnion(t, e, 2, 3)
	r0, _ := e.Find(0)
	r2, _ := e.Find(2)
	if r0 != 0 && r0 != 1 {
		t.Fatalf("root(0) = %d, want 0 or 1", r0)
	}
	if r2 != 2 && r2 != 3 {
		t.Fatalf("root(2) = %d, want 2 or 3", r2)
	}
	same, _ := e.SameSet(0, 2)
	if same {
		t.Fatal("0 and 2 must not be in the same set yet")
	}
	mustUnion(t, e, 1, 2)
	same, _ = e.SameSet(0, 3)
	if !same {
		t.Fatal("0 and 3 must be in the same set after union(1,2)")
	}
	allSame(t, e, []int{0, 1, 2, 3})
}

// TestScenario4 replays spec scenario 4: first union merges, repeats don't.
func TestScenario4(t *testing.T) {
	e, _ := New(2)
	r1, _ := e.Union(0, 1)
	r2, _ := e.Union(0, 1)
	r3, _ := e.Union(1, 0)
	if !r1 || r2 || r3 {
		t.Fatalf("got %v,%v,%v want true,false,false", r1, r2, r3)
	}
}

// TestScenario5 replays spec scenario 5: chain union then uniform find.
func TestScenario5(t *testing.T) {
	const n = 1000
	e, _ := New(n)
	for i := 0; i < n-1; i++ {
		mustUnion(t, e, i, i+1)
	}
	root, _ := e.Find(0)
	for i := 0; i < n; i++ {
		r, _ := e.Find(i)
		if r != root {
			t.Fatalf("Find(%d) = %d, want %d", i, r, root)
		}
	}
}

func TestUnionReturnValueCountsDistinctSets(t *testing.T) {
	const n = 50
	e, _ := New(n)
	merges := 0
	for i := 1; i < n; i++ {
		ok, _ := e.Union(i-1, i)
		if ok {
			merges++
		}
	}
	if merges != n-1 {
		t.Fatalf("merges = %d, want %d", merges, n-1)
	}
}

func mustUnion(t *testing.T, e *Engine, a, b int) {
	t.Helper()
	if _, err := e.Union(a, b); err != nil {
		t.Fatalf("Union(%d,%d) error: %v", a, b, err)
	}
}

func allSame(t *testing.T, e *Engine, elems []int) {
	t.Helper()
	r0, _ := e.Find(elems[0])
	for _, x := range elems[1:] {
		r, _ := e.Find(x)
		if r != r0 {
			t.Fatalf("Find(%d) = %d, want %d (same set as %d)", x, r, r0, elems[0])
		}
	}
}
