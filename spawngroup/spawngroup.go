// Package spawngroup launches a command bound to a grouping primitive and
// returns immediately, handing
// teardown ownership to the caller. Callers that want to inspect output or
// tear the group down later (via treekill) need a place to read from and a
// way to find the group again, neither of which a detached process offers
// on its own.
package spawngroup

import (
	"os/exec"

	"github.com/mrigan/sysprims/internal/group"
	"github.com/mrigan/sysprims/output"
	"github.com/mrigan/sysprims/sysprimserr"
)

// Options configures a detached spawn.
type Options struct {
	Dir string
	Env []string
}

// Result describes a freshly spawned, group-bound child.
type Result struct {
	PID         uint32
	Reliability group.Reliability
	Warnings    []string
	// Output collects the child's combined stdout/stderr. Read it through
	// Output.Subscribe. Spawn closes it when the child exits; a caller that
	// closes it earlier makes further writes fail with output.ErrClosed.
	Output *output.Buffer
}

// Spawn launches command with args, binds it to a grouping primitive, and
// returns without waiting for it to finish. The caller may later pass
// Result.PID to treekill.Terminate to tear the group down.
func Spawn(command string, args []string, opts Options) (*Result, error) {
	if command == "" {
		return nil, sysprimserr.InvalidArgumentf("command must not be empty")
	}

	cmd := exec.Command(command, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = opts.Env
	}
	buf := output.NewBuffer()
	cmd.Stdout = buf
	cmd.Stderr = buf

	return spawn(cmd, buf)
}
