//go:build windows

package treekill

import (
	"time"

	"golang.org/x/sys/windows"

	"github.com/mrigan/sysprims/spawngroup"
)

func terminate(pid uint32, cfg Config) (Result, error) {
	found, err := spawngroup.TerminateRegistered(pid)
	if found {
		// TerminateJobObject reaches every process in the job in one call;
		// there is no individual-member list to report, only the target.
		alive := isAlive(pid)
		if alive {
			waitForDeath(pid, cfg.killTimeout())
			alive = isAlive(pid)
		}
		return Result{Members: []MemberOutcome{{PID: pid, Alive: alive}}}, err
	}

	// pid was never registered via spawngroup.Spawn: fall back to direct
	// termination of just the one process. Windows offers no descendant
	// walk in scope here, so any children it spawned outside a Job Object
	// are reported as escapees.
	if err := sendTerminate(pid); err != nil {
		return Result{}, err
	}
	waitForDeath(pid, cfg.graceTimeout())
	alive := isAlive(pid)
	if alive {
		sendTerminate(pid)
		waitForDeath(pid, cfg.killTimeout())
		alive = isAlive(pid)
	}
	return Result{
		Members:  []MemberOutcome{{PID: pid, Alive: alive}},
		Escapees: true,
	}, nil
}

func sendTerminate(pid uint32) error {
	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, pid)
	if err != nil {
		return nil // already gone or inaccessible; treated as best-effort
	}
	defer windows.CloseHandle(handle)
	return windows.TerminateProcess(handle, 1)
}

func waitForDeath(pid uint32, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !isAlive(pid) {
			return
		}
		time.Sleep(PollInterval)
	}
}

func isAlive(pid uint32) bool {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return false
	}
	defer windows.CloseHandle(handle)

	var code uint32
	if err := windows.GetExitCodeProcess(handle, &code); err != nil {
		return false
	}
	const stillActive = 259
	return code == stillActive
}
