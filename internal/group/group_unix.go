//go:build !windows

package group

import (
	"os/exec"
	"syscall"

	"github.com/mrigan/sysprims/sigdispatch"
)

// Handle tracks the process-group binding for a spawned child on Unix. The
// group leader's PID is, by definition, the process-group ID.
type Handle struct {
	childPID    int
	reliability Reliability
	enabled     bool
}

// Options configures how the grouping primitive is prepared.
type Options struct {
	// Enabled requests GroupByDefault behavior. If false, the child is left
	// in the parent's process group (Foreground mode) and Reliability is
	// always BestEffort.
	Enabled bool
	// DieWithParent asks the kernel to SIGKILL the child if sysprims itself
	// dies unexpectedly, narrowing (not closing) the window in which an
	// abrupt parent death could orphan the group: a background child should
	// not outlive an unexpectedly-killed supervisor.
	DieWithParent bool
}

// Prepare configures cmd's SysProcAttr so that, once started, the child
// becomes its own process-group leader. This must run before cmd.Start: the
// kernel establishes the group as part of fork/exec, so there is no window
// in which the child or a fast-spawning grandchild runs outside the group.
func Prepare(cmd *exec.Cmd, opts Options) *Handle {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	h := &Handle{enabled: opts.Enabled}
	if opts.Enabled {
		cmd.SysProcAttr.Setpgid = true
		h.reliability = Guaranteed
	} else {
		h.reliability = BestEffort
	}
	if opts.DieWithParent {
		setDieWithParent(cmd.SysProcAttr)
	}
	return h
}

// Bind records the started child's PID. On Unix this is also the PGID when
// grouping is enabled, since the child is its own group leader.
func (h *Handle) Bind(pid int) {
	h.childPID = pid
}

// Reliability reports whether group-directed signals are guaranteed to
// reach every descendant.
func (h *Handle) Reliability() Reliability {
	return h.reliability
}

// PGID returns the process-group ID (equal to the leader's PID) when
// grouping succeeded, or 0 otherwise.
func (h *Handle) PGID() uint32 {
	if h.reliability != Guaranteed {
		return 0
	}
	return uint32(h.childPID)
}

// Signal delivers sig to the whole group when grouping is guaranteed, or to
// the direct child only otherwise.
func (h *Handle) Signal(sig sigdispatch.Signal) error {
	if h.reliability == Guaranteed {
		return sigdispatch.SendGroup(uint32(h.childPID), sig)
	}
	return sigdispatch.Send(uint32(h.childPID), sig)
}

// Close is a no-op on Unix: the process group has no handle to release, it
// simply ceases to exist once its last member exits.
func (h *Handle) Close() error {
	return nil
}
