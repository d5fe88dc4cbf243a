//go:build !windows

package spawngroup

// TerminateRegistered always reports "not found" on Unix: terminate-tree
// resolves descendants via internal/procsnap and process-group signals
// instead of a PID registry, since the PGID equals the leader's PID and no
// handle needs to be tracked across calls.
func TerminateRegistered(pid uint32) (bool, error) {
	return false, nil
}
