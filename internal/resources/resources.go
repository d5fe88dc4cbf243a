// Package resources provides optional cgroup v2 resource limits for
// sysprims-supervised process groups on Linux. It is an optional add-on
// that lets the timeout runner cap CPU/memory on the processes it creates
// (spawn-in-group does not use it), the same way
// a container runtime would, using the cgroup.kill-based termination path
// the kernel documentation recommends over signal fan-out. On platforms
// without cgroup v2 it is always unavailable; callers treat that as
// non-fatal and fall back to group-based signaling alone.
package resources

// Limits configures the controllers written into a cgroup. A zero field
// means "do not constrain that resource."
type Limits struct {
	// CPUQuotaPercent caps CPU at this percentage of one core (e.g. 100 for
	// one full core, 50 for half a core).
	CPUQuotaPercent int
	// MemoryMaxBytes caps resident memory.
	MemoryMaxBytes int64
}
