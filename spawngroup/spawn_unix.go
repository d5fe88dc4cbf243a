//go:build !windows

package spawngroup

import (
	"errors"
	"io/fs"
	"os/exec"

	"github.com/mrigan/sysprims/internal/group"
	"github.com/mrigan/sysprims/output"
	"github.com/mrigan/sysprims/sysprimserr"
)

func spawn(cmd *exec.Cmd, buf *output.Buffer) (*Result, error) {
	// Unlike the timeout runner, a detached group must survive sysprims
	// exiting: DieWithParent is left unset.
	handle := group.Prepare(cmd, group.Options{Enabled: true})

	if err := cmd.Start(); err != nil {
		return nil, mapSpawnErr(cmd.Path, err)
	}
	handle.Bind(cmd.Process.Pid)

	var warnings []string
	if handle.Reliability() != group.Guaranteed {
		warnings = append(warnings, "process group creation failed; spawning without grouping")
	}

	go func() {
		cmd.Wait()
		buf.Close()
	}()

	return &Result{
		PID:         uint32(cmd.Process.Pid),
		Reliability: handle.Reliability(),
		Warnings:    warnings,
		Output:      buf,
	}, nil
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
