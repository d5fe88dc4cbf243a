//go:build windows

package spawngroup

import (
	"sync"

	"golang.org/x/sys/windows"
)

// jobRegistry maps a spawn-in-group child's PID to its Job Object handle so
// a later terminate-tree call can find the group after the spawning call
// has returned. Known rough edge: PID reuse can
// theoretically misroute a termination to a replacement process. A future
// revision could replace this with an opaque token returned from Spawn.
var jobRegistry = struct {
	mu sync.Mutex
	m  map[uint32]windows.Handle
}{m: make(map[uint32]windows.Handle)}

func registerJob(pid uint32, job windows.Handle) {
	jobRegistry.mu.Lock()
	defer jobRegistry.mu.Unlock()
	jobRegistry.m[pid] = job
}

func takeJob(pid uint32) (windows.Handle, bool) {
	jobRegistry.mu.Lock()
	defer jobRegistry.mu.Unlock()
	job, ok := jobRegistry.m[pid]
	if ok {
		delete(jobRegistry.m, pid)
	}
	return job, ok
}

// TerminateRegistered looks up pid in the spawn-in-group registry and, if
// found, terminates every process in its Job Object and releases the
// handle. Returns false if pid was never registered or already reaped.
func TerminateRegistered(pid uint32) (bool, error) {
	job, ok := takeJob(pid)
	if !ok {
		return false, nil
	}
	defer windows.CloseHandle(job)
	if err := windows.TerminateJobObject(job, 1); err != nil {
		return true, err
	}
	return true, nil
}
