// genops generates a random operation-stream file for concurrentuf's
// benchmark harness: a weighted mix of FIND, UNION, and SAMESET
// operations over n_elements, written in the text format opsfile reads.
//
// Usage:
//
//	genops <n_elements> <n_operations> <output_file> [--find-ratio=R] [--sameset-ratio=R] [--seed=S]
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"concurrentuf/dsuops"
	"concurrentuf/opsfile"
)

const usage = `Usage: genops <n_elements> <n_operations> <output_file> [--find-ratio=R] [--sameset-ratio=R] [--seed=S]
  find-ratio:    fraction of operations that are FIND (default 0.5)
  sameset-ratio: fraction of operations that are SAMESET (default 0.0)
  the remainder is UNION`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("genops: expected at least 3 arguments, got %d", len(args))
	}

	nElements, err := strconv.Atoi(args[0])
	if err != nil || nElements <= 0 {
		return fmt.Errorf("genops: n_elements must be a positive integer, got %q", args[0])
	}
	nOps, err := strconv.Atoi(args[1])
	if err != nil || nOps <= 0 {
		return fmt.Errorf("genops: n_operations must be a positive integer, got %q", args[1])
	}
	outputPath := args[2]

	findRatio := 0.5
	sameSetRatio := 0.0
	var rng *rand.Rand

	for _, a := range args[3:] {
		switch {
		case strings.HasPrefix(a, "--find-ratio="):
			v, err := strconv.ParseFloat(strings.TrimPrefix(a, "--find-ratio="), 64)
			if err != nil {
				return fmt.Errorf("genops: invalid --find-ratio: %w", err)
			}
			findRatio = v
		case strings.HasPrefix(a, "--sameset-ratio="):
			v, err := strconv.ParseFloat(strings.TrimPrefix(a, "--sameset-ratio="), 64)
			if err != nil {
				return fmt.Errorf("genops: invalid --sameset-ratio: %w", err)
			}
			sameSetRatio = v
		case strings.HasPrefix(a, "--seed="):
			v, err := strconv.ParseUint(strings.TrimPrefix(a, "--seed="), 10, 64)
			if err != nil {
				return fmt.Errorf("genops: invalid --seed: %w", err)
			}
			rng = rand.New(rand.NewPCG(v, v))
		default:
			return fmt.Errorf("genops: unrecognized flag %q", a)
		}
	}
	if findRatio < 0 || findRatio > 1 || sameSetRatio < 0 || sameSetRatio > 1 || findRatio+sameSetRatio > 1 {
		return fmt.Errorf("genops: find-ratio and sameset-ratio must each be in [0,1] and sum to at most 1")
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	fmt.Printf("Generating %d operations for %d elements...\n", nOps, nElements)
	fmt.Printf("Target FIND ratio: %.2f, SAMESET ratio: %.2f\n", findRatio, sameSetRatio)
	fmt.Printf("Output file: %s\n", outputPath)

	ops := make([]dsuops.Operation, nOps)
	var findCount, unionCount, sameSetCount int
	for i := range ops {
		roll := rng.Float64()
		switch {
		case roll < findRatio:
			ops[i] = dsuops.Operation{Kind: dsuops.OpFind, A: rng.IntN(nElements)}
			findCount++
		case roll < findRatio+sameSetRatio:
			ops[i] = dsuops.Operation{
				Kind: dsuops.OpSameSet,
				A:    rng.IntN(nElements),
				B:    rng.IntN(nElements),
			}
			sameSetCount++
		default:
			a := rng.IntN(nElements)
			b := rng.IntN(nElements)
			for b == a && nElements > 1 {
				b = rng.IntN(nElements)
			}
			ops[i] = dsuops.Operation{Kind: dsuops.OpUnion, A: a, B: b}
			unionCount++
		}
	}

	if err := opsfile.Write(outputPath, nElements, ops); err != nil {
		return fmt.Errorf("genops: %w", err)
	}

	fmt.Println(strings.Repeat("-", 30))
	fmt.Printf("Successfully generated %d operations.\n", len(ops))
	fmt.Printf("Actual FIND operations:    %d (%.4f)\n", findCount, float64(findCount)/float64(len(ops)))
	fmt.Printf("Actual UNION operations:   %d (%.4f)\n", unionCount, float64(unionCount)/float64(len(ops)))
	fmt.Printf("Actual SAMESET operations: %d (%.4f)\n", sameSetCount, float64(sameSetCount)/float64(len(ops)))
	fmt.Println(strings.Repeat("-", 30))
	return nil
}
