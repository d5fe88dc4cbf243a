//go:build !windows

package timeout

import (
	"errors"
	"io/fs"
	"os/exec"
	"time"

	"github.com/mrigan/sysprims/internal/group"
	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

// Run spawns command with args, waits up to deadline for it to exit, and on
// expiry kills the whole group (when cfg.Grouping is GroupByDefault) with a
// grace-period escalation to an unignorable kill.
func Run(command string, args []string, deadline time.Duration, cfg Config) (Outcome, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = cfg.Dir
	if len(cfg.Env) > 0 {
		cmd.Env = cfg.Env
	}
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr

	useGrouping := cfg.Grouping == GroupByDefault
	handle := group.Prepare(cmd, group.Options{Enabled: useGrouping, DieWithParent: useGrouping})
	if cfg.Cgroup != nil {
		cfg.Cgroup.ApplyToCmd(cmd)
	}

	if err := cmd.Start(); err != nil {
		return Outcome{}, mapSpawnErr(command, err)
	}
	handle.Bind(cmd.Process.Pid)

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	select {
	case err := <-waitCh:
		return Outcome{Status: Completed, ExitCode: exitCodeFrom(cmd, err)}, nil
	case <-time.After(deadline):
		return killPath(handle, cfg, waitCh)
	}
}

// killPath drives the deadline-expiry sequence: signal, grace wait,
// unconditional escalation, reap.
func killPath(handle *group.Handle, cfg Config, waitCh chan error) (Outcome, error) {
	reliability := handle.Reliability()
	sig := cfg.signal()

	_ = handle.Signal(sig)

	graceDeadline := time.NewTimer(cfg.killAfter())
	defer graceDeadline.Stop()

	leaderExited := false
	for !leaderExited {
		select {
		case <-waitCh:
			leaderExited = true
			if reliability != group.Guaranteed {
				// Foreground mode: no other descendants in scope, return
				// immediately without escalating.
				return Outcome{
					Status:      TimedOut,
					SignalSent:  sig,
					Escalated:   false,
					Reliability: reliability,
				}, nil
			}
			// GroupByDefault: the leader exiting is not evidence the group
			// is dead; keep waiting out the grace period for stragglers.
		case <-graceDeadline.C:
			return escalate(handle, cfg, sig, reliability, waitCh, false)
		}
	}

	// Leader exited early under GroupByDefault; keep waiting for the grace
	// period to elapse so background siblings get their chance, then
	// escalate unconditionally regardless of whether anything is still
	// alive. waitCh has already delivered its one value, so the reap step
	// below must not block on it again.
	<-graceDeadline.C
	return escalate(handle, cfg, sig, reliability, waitCh, true)
}

// escalate unconditionally dispatches the unignorable kill, even if the
// group leader already exited: background members may have trapped the
// initial signal. It is harmless to signal already-dead processes. If the
// leader was already reaped (alreadyReaped), waitCh must not be read again:
// it only ever delivers one value.
func escalate(handle *group.Handle, cfg Config, sig sigdispatch.Signal, reliability group.Reliability, waitCh chan error, alreadyReaped bool) (Outcome, error) {
	if cfg.Cgroup != nil {
		// cgroup.kill is the least error-prone teardown path per the
		// kernel documentation; fall back to the group kill signal if it
		// fails (e.g. cgroup already removed).
		if err := cfg.Cgroup.Kill(); err != nil {
			_ = handle.Signal(sigdispatch.KILL)
		}
	} else {
		_ = handle.Signal(sigdispatch.KILL)
	}

	if !alreadyReaped {
		<-waitCh // reap the direct child; harmless no-op if already exited
	}

	return Outcome{
		Status:      TimedOut,
		SignalSent:  sig,
		Escalated:   true,
		Reliability: reliability,
	}, nil
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
