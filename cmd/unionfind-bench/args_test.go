package main

import "testing"

func TestParseArgsMinimal(t *testing.T) {
	cfg, err := parseArgs([]string{"serial", "ops.txt", "5"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.impl != "serial" || cfg.opsPath != "ops.txt" || cfg.runs != 5 || cfg.threads != 0 {
		t.Fatalf("got %+v", cfg)
	}
	if !cfg.fingerprint {
		t.Fatal("fingerprint should default to true")
	}
}

func TestParseArgsNoFingerprintDisablesDefault(t *testing.T) {
	cfg, err := parseArgs([]string{"serial", "ops.txt", "5", "--no-fingerprint"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.fingerprint {
		t.Fatal("--no-fingerprint should turn the default off")
	}
}

func TestParseArgsWithThreadsAndFlags(t *testing.T) {
	cfg, err := parseArgs([]string{"lockfree", "ops.txt", "10", "4", "--format=json", "--fingerprint"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.threads != 4 || cfg.format != formatJSON || !cfg.fingerprint {
		t.Fatalf("got %+v", cfg)
	}
}

func TestParseArgsRejectsTooFewArguments(t *testing.T) {
	if _, err := parseArgs([]string{"serial", "ops.txt"}); err == nil {
		t.Fatal("expected error for too few arguments")
	}
}

func TestParseArgsRejectsBadRunCount(t *testing.T) {
	if _, err := parseArgs([]string{"serial", "ops.txt", "0"}); err == nil {
		t.Fatal("expected error for non-positive num_runs")
	}
	if _, err := parseArgs([]string{"serial", "ops.txt", "abc"}); err == nil {
		t.Fatal("expected error for non-numeric num_runs")
	}
}

func TestParseArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseArgs([]string{"serial", "ops.txt", "1", "--bogus"}); err == nil {
		t.Fatal("expected error for unrecognized flag")
	}
}
