package workerctl

import (
	"sync"
	"testing"
)

func TestStopIsObservedByAllWorkers(t *testing.T) {
	const n = 8
	c := New(n)
	var wg sync.WaitGroup
	observed := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer c.Done()
			for !c.Stopped() {
			}
			observed[i] = true
		}(i)
	}
	c.Stop()
	wg.Wait()
	c.Wait()
	for i, ok := range observed {
		if !ok {
			t.Fatalf("worker %d never observed Stop", i)
		}
	}
}

func TestWaitBlocksUntilAllDone(t *testing.T) {
	const n = 4
	c := New(n)
	for i := 0; i < n; i++ {
		go c.Done()
	}
	c.Wait()
}
