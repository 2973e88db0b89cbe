// Benchmark and correctness harness for the concurrentuf engines.
//
// Usage:
//
//	unionfind-bench <impl> <ops_file> <num_runs> [<num_threads>] [--format=json] [--no-fingerprint]
//
// impl is one of: serial, coarse, fine, lockfree, lockfree_plain, lockfree_ipc.
// A SHA3-256 fingerprint of the ops file is printed by default; pass
// --no-fingerprint to suppress it. SIGINT stops outstanding workers at
// their current chunk and reports whatever runs completed beforehand.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/sugawarayuuta/sonnet"

	"concurrentuf/batchexec"
	"concurrentuf/coarsedsu"
	"concurrentuf/debuglog"
	"concurrentuf/dsuops"
	"concurrentuf/finedsu"
	"concurrentuf/lockfreedsu"
	"concurrentuf/lockfreeipcdsu"
	"concurrentuf/lockfreeplaindsu"
	"concurrentuf/numfmt"
	"concurrentuf/opsfile"
	"concurrentuf/sequentialdsu"
	"concurrentuf/workerctl"
)

const usage = `Usage: unionfind-bench <impl> <ops_file> <num_runs> [<num_threads>] [--format=json] [--no-fingerprint]
  impl: serial, coarse, fine, lockfree, lockfree_plain, lockfree_ipc
  fingerprint of the ops file is printed by default; --no-fingerprint suppresses it`

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is separated from main so tests (and a future harness wrapper) can
// invoke it without calling os.Exit directly.
func run(args []string) int {
	cfg, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	raw, err := os.ReadFile(cfg.opsPath)
	if err != nil {
		debuglog.Error("unionfind-bench", err)
		return 1
	}
	stream, err := opsfile.Parse(raw)
	if err != nil {
		debuglog.Error("unionfind-bench", err)
		return 1
	}
	if len(stream.Ops) == 0 {
		debuglog.Message("unionfind-bench", "no operations loaded")
		return 1
	}

	newEngine, err := engineFactory(cfg.impl)
	if err != nil {
		debuglog.Error("unionfind-bench", err)
		return 1
	}

	threads := cfg.threads
	if cfg.impl == "serial" {
		threads = 1
	} else if threads <= 0 {
		threads = runtime.NumCPU()
	}

	fmt.Printf("Implementation: %s\n", cfg.impl)
	fmt.Printf("Element Count:  %d\n", stream.NumElements)
	fmt.Printf("Operation Count: %d\n", len(stream.Ops))
	fmt.Printf("Number of Runs: %d\n", cfg.runs)
	fmt.Printf("Threads:        %d\n", threads)

	if cfg.fingerprint {
		sum := sha3.Sum256(raw)
		fmt.Printf("Fingerprint:    %x\n", sum)
	}

	// A SIGINT during a run stops workers at their current chunk instead
	// of letting the process die mid-write; whatever runs completed
	// before the interrupt still get summarized.
	cancel := workerctl.New(0)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCh:
			cancel.Stop()
		case <-done:
		}
	}()

	// Warm-up run: populate caches and page in the engine's backing
	// arrays before the timed runs begin.
	warmEngine, err := newEngine(stream.NumElements)
	if err != nil {
		debuglog.Error("unionfind-bench", err)
		return 1
	}
	warmResults := make([]int, len(stream.Ops))
	batchexec.RunCancelable(warmEngine, stream.Ops, warmResults, threads, cancel)

	durations := make([]float64, 0, cfg.runs)
	results := make([]int, len(stream.Ops))
	for i := 0; i < cfg.runs; i++ {
		if cancel.Stopped() {
			debuglog.Message("unionfind-bench", "interrupted, reporting completed runs")
			break
		}
		e, err := newEngine(stream.NumElements)
		if err != nil {
			debuglog.Error("unionfind-bench", err)
			return 1
		}
		start := time.Now()
		batchexec.RunCancelable(e, stream.Ops, results, threads, cancel)
		elapsed := time.Since(start)
		if cancel.Stopped() {
			// This run was cut short and is not counted as completed.
			debuglog.Message("unionfind-bench", "interrupted, reporting completed runs")
			break
		}

		ms := float64(elapsed) / float64(time.Millisecond)
		durations = append(durations, ms)

		line := numfmt.AppendInt(nil, i+1)
		line = append(line, ": "...)
		line = numfmt.AppendFloat(line, ms, 4)
		line = append(line, " ms\n"...)
		os.Stdout.Write(line)
	}
	if len(durations) == 0 {
		debuglog.Message("unionfind-bench", "no completed runs to summarize")
		return 1
	}

	summary := summarize(cfg.impl, threads, stream.NumElements, len(stream.Ops), len(durations), durations)

	if cfg.format == formatJSON {
		enc, err := sonnet.Marshal(summary)
		if err != nil {
			debuglog.Error("unionfind-bench", err)
			return 1
		}
		os.Stdout.Write(enc)
		os.Stdout.Write([]byte{'\n'})
		return 0
	}

	printSummary(summary)
	return 0
}

// Summary is the shape marshaled for --format=json and printed in text
// form otherwise.
type Summary struct {
	Implementation string  `json:"implementation"`
	Threads        int     `json:"threads"`
	Elements       int     `json:"elements"`
	Operations     int     `json:"operations"`
	Runs           int     `json:"runs"`
	AvgMs          float64 `json:"avg_ms"`
	MinMs          float64 `json:"min_ms"`
	MaxMs          float64 `json:"max_ms"`
	StdDevMs       float64 `json:"stddev_ms"`
}

func summarize(impl string, threads, elements, ops, runs int, durations []float64) Summary {
	sorted := append([]float64(nil), durations...)
	sort.Float64s(sorted)

	var total float64
	for _, d := range durations {
		total += d
	}
	avg := total / float64(len(durations))

	var sqSum float64
	for _, d := range durations {
		diff := d - avg
		sqSum += diff * diff
	}
	var stddev float64
	if len(durations) > 1 {
		stddev = sqrtNewton(sqSum / float64(len(durations)-1))
	}

	return Summary{
		Implementation: impl,
		Threads:        threads,
		Elements:       elements,
		Operations:     ops,
		Runs:           runs,
		AvgMs:          avg,
		MinMs:          sorted[0],
		MaxMs:          sorted[len(sorted)-1],
		StdDevMs:       stddev,
	}
}

// sqrtNewton avoids importing math solely for Sqrt in a binary that is
// otherwise careful about its dependency surface; a handful of Newton
// iterations is plenty of precision for a millisecond-scale statistic.
func sqrtNewton(x float64) float64 {
	if x <= 0 {
		return 0
	}
	z := x
	for i := 0; i < 20; i++ {
		z -= (z*z - x) / (2 * z)
	}
	return z
}

func printSummary(s Summary) {
	fmt.Println("\n--- Benchmark Summary ---")
	fmt.Printf("Implementation: %s\n", s.Implementation)
	fmt.Printf("Threads:        %d\n", s.Threads)
	fmt.Printf("Element Count:  %d\n", s.Elements)
	fmt.Printf("Operation Count: %d\n", s.Operations)
	fmt.Printf("Number of Runs: %d\n", s.Runs)
	fmt.Println("-------------------------")
	fmt.Printf("Avg Time:       %.4f ms\n", s.AvgMs)
	fmt.Printf("Min Time:       %.4f ms\n", s.MinMs)
	fmt.Printf("Max Time:       %.4f ms\n", s.MaxMs)
	fmt.Printf("Std Dev:        %.4f ms\n", s.StdDevMs)
	fmt.Println("-------------------------")
}

type outputFormat int

const (
	formatText outputFormat = iota
	formatJSON
)

type config struct {
	impl        string
	opsPath     string
	runs        int
	threads     int
	format      outputFormat
	fingerprint bool
}

func engineFactory(impl string) (func(n int) (dsuops.Engine, error), error) {
	switch impl {
	case "serial":
		return func(n int) (dsuops.Engine, error) { return sequentialdsu.New(n) }, nil
	case "coarse":
		return func(n int) (dsuops.Engine, error) { return coarsedsu.New(n) }, nil
	case "fine":
		return func(n int) (dsuops.Engine, error) { return finedsu.New(n) }, nil
	case "lockfree":
		return func(n int) (dsuops.Engine, error) { return lockfreedsu.New(n) }, nil
	case "lockfree_plain":
		return func(n int) (dsuops.Engine, error) { return lockfreeplaindsu.New(n) }, nil
	case "lockfree_ipc":
		return func(n int) (dsuops.Engine, error) { return lockfreeipcdsu.New(n) }, nil
	default:
		return nil, fmt.Errorf("unionfind-bench: unknown implementation %q", impl)
	}
}
