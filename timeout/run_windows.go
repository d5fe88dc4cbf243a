//go:build windows

package timeout

import (
	"errors"
	"io/fs"
	"os/exec"
	"time"

	"golang.org/x/sys/windows"

	"github.com/mrigan/sysprims/internal/group"
	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

// jobAccessRights is the minimal handle right set AssignProcessToJobObject
// needs; PROCESS_TERMINATE lets the timeout path fall back to a direct kill
// if the job assignment itself failed.
const jobAccessRights = windows.PROCESS_SET_QUOTA | windows.PROCESS_TERMINATE | windows.PROCESS_QUERY_INFORMATION

// Run spawns command with args under a Job Object (when cfg.Grouping is
// GroupByDefault) and waits up to deadline. Windows delivers the initial
// "signal" to the direct child as TerminateProcess; the escalation step
// after the grace period terminates the whole job (or retries the direct
// child when ungrouped) and is reported as Outcome.Escalated.
func Run(command string, args []string, deadline time.Duration, cfg Config) (Outcome, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = cfg.Dir
	if len(cfg.Env) > 0 {
		cmd.Env = cfg.Env
	}
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr

	useGrouping := cfg.Grouping == GroupByDefault
	handle := group.Prepare(cmd, group.Options{Enabled: useGrouping})

	if err := cmd.Start(); err != nil {
		return Outcome{}, mapSpawnErr(command, err)
	}

	procHandle, err := windows.OpenProcess(jobAccessRights, false, uint32(cmd.Process.Pid))
	if err != nil {
		// The child is already running; proceed ungrouped rather than fail
		// the whole run over a handle we only need for job assignment.
		handle.Bind(cmd.Process.Pid, nil)
	} else {
		defer windows.CloseHandle(procHandle)
		handle.Bind(cmd.Process.Pid, &procHandle)
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	select {
	case err := <-waitCh:
		return Outcome{Status: Completed, ExitCode: exitCodeFrom(cmd, err)}, nil
	case <-time.After(deadline):
		return killPath(handle, cfg, waitCh)
	}
}

// killPath signals the direct child (best effort, no escalation semantics on
// this platform), waits out the grace period, then unconditionally
// terminates the whole job.
func killPath(handle *group.Handle, cfg Config, waitCh chan error) (Outcome, error) {
	reliability := handle.Reliability()
	sig := cfg.signal()

	_ = handle.Signal(sig)

	graceDeadline := time.NewTimer(cfg.killAfter())
	defer graceDeadline.Stop()

	select {
	case <-waitCh:
		if reliability != group.Guaranteed {
			return Outcome{
				Status:      TimedOut,
				SignalSent:  sig,
				Escalated:   false,
				Reliability: reliability,
			}, nil
		}
		// Bound to a job: the direct child exiting doesn't mean background
		// job members are gone, so the grace period still runs out before
		// the job is torn down.
		<-graceDeadline.C
		terminateTree(handle, reliability)
		return timedOut(sig, reliability), nil
	case <-graceDeadline.C:
		// Terminate before reaping: the reap must never block on a child
		// the initial termination attempt failed to reach.
		terminateTree(handle, reliability)
		<-waitCh
		return timedOut(sig, reliability), nil
	}
}

// terminateTree tears down everything still reachable: the whole job when
// grouping is guaranteed, otherwise a direct-child termination retry.
func terminateTree(handle *group.Handle, reliability group.Reliability) {
	if reliability == group.Guaranteed {
		_ = handle.TerminateGroup()
		return
	}
	_ = handle.Signal(sigdispatch.KILL)
}

func timedOut(sig sigdispatch.Signal, reliability group.Reliability) Outcome {
	return Outcome{
		Status:      TimedOut,
		SignalSent:  sig,
		Escalated:   true,
		Reliability: reliability,
	}
}

func exitCodeFrom(cmd *exec.Cmd, waitErr error) int {
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func mapSpawnErr(command string, err error) error {
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return sysprimserr.NotFoundCommand(command)
	case errors.Is(err, fs.ErrPermission):
		return sysprimserr.PermissionDeniedCommand(command)
	default:
		var pathErr *exec.Error
		if errors.As(err, &pathErr) {
			return sysprimserr.NotFoundCommand(command)
		}
		return sysprimserr.SpawnFailedf(command, err)
	}
}
