package main

import (
	"fmt"
	"strings"

	"concurrentuf/numfmt"
)

// parseArgs hand-parses os.Args with no flag package involved: three
// positional arguments, an optional fourth positional thread count, and
// optional long-form flags that may appear in any order after it.
func parseArgs(args []string) (config, error) {
	if len(args) < 3 {
		return config{}, fmt.Errorf("unionfind-bench: expected at least 3 arguments, got %d", len(args))
	}

	cfg := config{
		impl:        args[0],
		opsPath:     args[1],
		fingerprint: true,
	}

	runs, _, ok := numfmt.ParseInt([]byte(args[2]), 0)
	if !ok || runs <= 0 {
		return config{}, fmt.Errorf("unionfind-bench: num_runs must be a positive integer, got %q", args[2])
	}
	cfg.runs = runs

	rest := args[3:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "--") {
		threads, _, ok := numfmt.ParseInt([]byte(rest[0]), 0)
		if !ok || threads <= 0 {
			return config{}, fmt.Errorf("unionfind-bench: num_threads must be a positive integer, got %q", rest[0])
		}
		cfg.threads = threads
		rest = rest[1:]
	}

	for _, a := range rest {
		switch {
		case a == "--fingerprint":
			cfg.fingerprint = true
		case a == "--no-fingerprint":
			cfg.fingerprint = false
		case a == "--format=json":
			cfg.format = formatJSON
		case a == "--format=text":
			cfg.format = formatText
		default:
			return config{}, fmt.Errorf("unionfind-bench: unrecognized flag %q", a)
		}
	}

	return cfg, nil
}
