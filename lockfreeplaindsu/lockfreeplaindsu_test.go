package lockfreeplaindsu

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"concurrentuf/dsuops"
	"concurrentuf/sequentialdsu"
)

func TestNewRejectsNegativeSize(t *testing.T) {
	if _, err := New(-1); !errors.Is(err, dsuops.ErrInvalidSize) {
		t.Fatalf("New(-1) error = %v, want ErrInvalidSize", err)
	}
}

func TestOutOfBounds(t *testing.T) {
	e, _ := New(3)
	if _, err := e.Find(5); !errors.Is(err, dsuops.ErrOutOfBounds) {
		t.Fatalf("Find(5) error = %v, want ErrOutOfBounds", err)
	}
}

func TestUnionSelfReturnsFalse(t *testing.T) {
	e, _ := New(4)
	merged, _ := e.Union(2, 2)
	if merged {
		t.Fatal("union(a,a) must return false")
	}
}

func TestConcurrentChainUnionConverges(t *testing.T) {
	const n = 1000
	e, _ := New(n)
	var wg sync.WaitGroup
	for i := 0; i < n-1; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := e.Union(i, i+1); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	root, _ := e.Find(0)
	for i := 1; i < n; i++ {
		r, _ := e.Find(i)
		if r != root {
			t.Fatalf("Find(%d) = %d, want %d", i, r, root)
		}
	}
}

func TestUnionReturnValueCountsDistinctSets(t *testing.T) {
	const n = 100
	e, _ := New(n)
	var wg sync.WaitGroup
	var mu sync.Mutex
	merges := 0
	for i := 1; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, _ := e.Union(i-1, i)
			if ok {
				mu.Lock()
				merges++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if merges != n-1 {
		t.Fatalf("merges = %d, want %d", merges, n-1)
	}
}

func TestOracleEquivalence(t *testing.T) {
	const n = 200
	const ops = 4000
	rng := rand.New(rand.NewSource(11))

	type op struct{ a, b int }
	unions := make([]op, 0, ops)
	for i := 0; i < ops; i++ {
		unions = append(unions, op{rng.Intn(n), rng.Intn(n)})
	}

	oracle, _ := sequentialdsu.New(n)
	for _, u := range unions {
		oracle.Union(u.a, u.b)
	}

	for _, workers := range []int{1, 2, 4, 8} {
		e, _ := New(n)
		var wg sync.WaitGroup
		ch := make(chan op)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for u := range ch {
					e.Union(u.a, u.b)
				}
			}()
		}
		for _, u := range unions {
			ch <- u
		}
		close(ch)
		wg.Wait()

		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				wantSame, _ := oracle.SameSet(a, b)
				gotSame, _ := e.SameSet(a, b)
				if wantSame != gotSame {
					t.Fatalf("workers=%d: SameSet(%d,%d) = %v, want %v", workers, a, b, gotSame, wantSame)
				}
			}
		}
	}
}
