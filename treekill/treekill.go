// Package treekill provides ad-hoc process-tree termination: a
// graceful-then-forceful teardown for a process the caller did not launch
// through the timeout runner. Used after spawngroup.Spawn, or for any PID
// the caller otherwise knows about and wants torn down as a unit.
package treekill

import (
	"time"

	"github.com/mrigan/sysprims/sigdispatch"
)

// DefaultGraceTimeout is the poll window after the initial signal, before
// escalating to the kill signal, when the caller does not specify one.
const DefaultGraceTimeout = 5 * time.Second

// DefaultKillTimeout is the poll window after the kill signal before giving
// up on a member that won't die.
const DefaultKillTimeout = 5 * time.Second

// PollInterval is how often the grace and kill waits re-check liveness.
const PollInterval = 10 * time.Millisecond

// Config configures one Terminate call.
type Config struct {
	// Signal is dispatched first. Defaults to TERM.
	Signal sigdispatch.Signal
	// KillSignal is dispatched to anything still alive after GraceTimeout.
	// Defaults to KILL.
	KillSignal sigdispatch.Signal
	// GraceTimeout is how long to wait after Signal before escalating.
	GraceTimeout time.Duration
	// KillTimeout is how long to wait after KillSignal before giving up.
	KillTimeout time.Duration
}

func (c Config) signal() sigdispatch.Signal {
	if c.Signal == 0 {
		return sigdispatch.TERM
	}
	return c.Signal
}

func (c Config) killSignal() sigdispatch.Signal {
	if c.KillSignal == 0 {
		return sigdispatch.KILL
	}
	return c.KillSignal
}

func (c Config) graceTimeout() time.Duration {
	if c.GraceTimeout <= 0 {
		return DefaultGraceTimeout
	}
	return c.GraceTimeout
}

func (c Config) killTimeout() time.Duration {
	if c.KillTimeout <= 0 {
		return DefaultKillTimeout
	}
	return c.KillTimeout
}

// MemberOutcome reports whether one resolved PID was confirmed dead by the
// end of the call.
type MemberOutcome struct {
	PID   uint32
	Alive bool
}

// Result reports the per-member outcome of one Terminate call.
type Result struct {
	Members []MemberOutcome
	// Escapees is true when descendants could not be resolved: descendant
	// resolution is unsupported on this platform, or (on Windows) pid was
	// not registered by spawngroup. Processes that were reparented out of
	// the tree before the walk are not found and do not set it.
	Escapees bool
}

// AnyAlive reports whether Result contains a member still alive.
func (r Result) AnyAlive() bool {
	for _, m := range r.Members {
		if m.Alive {
			return true
		}
	}
	return false
}

// Terminate resolves pid's descendant set and drives it through the
// graceful-then-forceful teardown sequence.
func Terminate(pid uint32, cfg Config) (Result, error) {
	return terminate(pid, cfg)
}
