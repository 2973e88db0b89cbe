// Package dsuconformance holds the cross-engine property and end-to-end
// scenario suite every Union-Find variant in this module must satisfy:
// oracle equivalence against the sequential baseline, the union
// return-value count invariant, and the literal scenarios, run against
// the five concurrent engines, with the sequential engine as the oracle.
// The batch-driven properties are replayed at thread counts {1,2,4,8};
// the literal scenarios call each engine directly. Individual engine packages
// cover their own unit behavior; this package is the one place that
// checks them against each other.
package dsuconformance

import (
	"concurrentuf/coarsedsu"
	"concurrentuf/dsuops"
	"concurrentuf/finedsu"
	"concurrentuf/lockfreedsu"
	"concurrentuf/lockfreeipcdsu"
	"concurrentuf/lockfreeplaindsu"
	"concurrentuf/sequentialdsu"
)

// newEngine constructs a fresh Engine of the given variant.
type newEngine func(n int) (dsuops.Engine, error)

// engines lists every concurrent variant under test, keyed by the same
// name cmd/unionfind-bench accepts on its command line.
var engines = map[string]newEngine{
	"coarse":         func(n int) (dsuops.Engine, error) { return coarsedsu.New(n) },
	"fine":           func(n int) (dsuops.Engine, error) { return finedsu.New(n) },
	"lockfree":       func(n int) (dsuops.Engine, error) { return lockfreedsu.New(n) },
	"lockfree_plain": func(n int) (dsuops.Engine, error) { return lockfreeplaindsu.New(n) },
	"lockfree_ipc":   func(n int) (dsuops.Engine, error) { return lockfreeipcdsu.New(n) },
}

func newOracle(n int) (dsuops.Engine, error) { return sequentialdsu.New(n) }

// threadCounts is the sweep every stress/scenario-6 style test replays
// under, so a race that only shows up at higher contention isn't missed
// by testing a single worker count.
var threadCounts = []int{1, 2, 4, 8}
