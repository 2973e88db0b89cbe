// Package debuglog is a zero-allocation diagnostic logger for cold error
// and status paths in the benchmark harness: ops-file read and parse
// failures, engine construction failures, and interruption notices.
// Never call it from inside a timed run — only from cmd/unionfind-bench's
// setup/teardown code, where an extra allocation or syscall is immaterial.
package debuglog

import (
	"syscall"
	"unsafe"
)

// s2b reinterprets a string's backing bytes without a copy, the inverse
// cast of numfmt's byte-to-string helper. Callers never mutate the result.
//
//go:nosplit
//go:inline
func s2b(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// writeStderr writes msg to file descriptor 2 directly, bypassing
// fmt.Sprintf and the buffered bufio/os.Stderr paths entirely.
//
//go:nosplit
//go:inline
func writeStderr(msg string) {
	_, _ = syscall.Write(2, s2b(msg))
}

// Error logs an error against a prefix, e.g. "opsfile: malformed line 12".
// If err is nil, only the prefix is printed.
//
//go:nosplit
//go:inline
func Error(prefix string, err error) {
	if err != nil {
		writeStderr(prefix + ": " + err.Error() + "\n")
		return
	}
	writeStderr(prefix + "\n")
}

// Message logs a plain diagnostic line under prefix.
//
//go:nosplit
//go:inline
func Message(prefix, message string) {
	writeStderr(prefix + ": " + message + "\n")
}
