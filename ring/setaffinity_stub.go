//go:build !linux || tinygo

// setaffinity_stub.go — No-op fallback for non-Linux or TinyGo builds.

package ring

// setAffinity is a no-op stub used when the Linux syscall version is
// unavailable (non-Linux OS or restricted build toolchains). This keeps
// batchexec's worker pool callable the same way on every target.
//
//go:nosplit
//go:inline
func setAffinity(cpu int) {}
