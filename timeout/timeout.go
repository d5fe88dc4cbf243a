// Package timeout implements the group-by-default deadline-driven process
// supervisor: spawn a command, bind it to a kernel grouping primitive, wait
// for it to complete or the deadline to expire, and on expiry terminate the
// entire group with a grace-period escalation to an unignorable kill.
package timeout

import (
	"io"
	"time"

	"github.com/mrigan/sysprims/internal/group"
	"github.com/mrigan/sysprims/internal/resources"
	"github.com/mrigan/sysprims/sigdispatch"
)

// GroupingMode selects whether the spawned command is bound to a kernel
// grouping primitive.
type GroupingMode int

const (
	// GroupByDefault creates and uses a grouping primitive (process group on
	// Unix, Job Object on Windows) so the whole tree dies together. This is
	// the default, and the reason sysprims exists at all.
	GroupByDefault GroupingMode = iota
	// Foreground signals only the direct child; no grouping primitive is
	// created. Use when the child must inherit the caller's process group.
	Foreground
)

// DefaultKillAfter is the grace period between the initial signal and the
// unignorable escalation when the caller does not specify one.
const DefaultKillAfter = 10 * time.Second

// PollInterval is 10ms. Run does not use it: it blocks on the child's wait
// result and a deadline timer rather than polling.
const PollInterval = 10 * time.Millisecond

// Config configures a single timeout-supervised run.
type Config struct {
	// Signal is sent first on deadline expiry. Defaults to TERM.
	Signal sigdispatch.Signal
	// KillAfter is the grace period after the initial signal before the
	// unignorable kill is escalated. Defaults to DefaultKillAfter.
	KillAfter time.Duration
	// Grouping selects GroupByDefault or Foreground. Defaults to
	// GroupByDefault.
	Grouping GroupingMode
	// PreserveStatus controls whether the CLI layer mirrors the child's
	// signal-derived exit status on timeout instead of a canonical code.
	// The runner itself only reports Outcome; this flag rides along for
	// the CLI's exit-code projection.
	PreserveStatus bool
	// Cgroup, if non-nil, binds the spawned group to a cgroup v2 resource
	// limit (Linux only, best-effort elsewhere) and is preferred over
	// killpg as the kill-path's first termination attempt, mirroring
	// internal/resources's cgroup.kill semantics.
	Cgroup *resources.Cgroup
	// Dir, Env, Stdout, Stderr configure the spawned command the way
	// exec.Cmd does; zero values mean "inherit defaults" (nil=discard).
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

func (c Config) signal() sigdispatch.Signal {
	if c.Signal == 0 {
		return sigdispatch.TERM
	}
	return c.Signal
}

func (c Config) killAfter() time.Duration {
	if c.KillAfter <= 0 {
		return DefaultKillAfter
	}
	return c.KillAfter
}

// Status distinguishes the two Outcome shapes.
type Status int

const (
	// Completed means the child exited of its own accord before the
	// deadline.
	Completed Status = iota
	// TimedOut means the deadline fired and the kill path ran.
	TimedOut
)

// Outcome reports how a supervised run ended. Only the fields relevant
// to Status are meaningful; Completed populates ExitCode, TimedOut
// populates SignalSent/Escalated/Reliability.
type Outcome struct {
	Status Status

	// ExitCode is set when Status == Completed.
	ExitCode int

	// SignalSent, Escalated, Reliability are set when Status == TimedOut.
	SignalSent  sigdispatch.Signal
	Escalated   bool
	Reliability group.Reliability
}
