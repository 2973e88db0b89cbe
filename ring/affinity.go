// Package ring provides spin-wait and CPU-affinity primitives: a
// PAUSE-backed relax hint for busy-wait back-off, and a thread-pinning
// helper built on sched_setaffinity(2) on Linux with a no-op fallback
// elsewhere. concurrentuf/batchexec uses PinCurrentThread to run one
// pinned worker goroutine per logical CPU, and the lock-free engines use
// CPURelax on every CAS-contention retry.
package ring

// CPURelax hints to the CPU that the calling goroutine is in a spin-wait
// loop, letting a hyperthreaded sibling core make forward progress.
func CPURelax() { cpuRelax() }

// PinCurrentThread attempts to pin the calling OS thread to logical CPU
// cpu. Callers are expected to have already called runtime.LockOSThread
// so the goroutine will not migrate off the pinned thread. Failures are
// silent: an unpinned worker is merely slower, never incorrect.
func PinCurrentThread(cpu int) { setAffinity(cpu) }
