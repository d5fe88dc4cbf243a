//go:build windows

package spawngroup

import (
	"errors"
	"os/exec"

	"golang.org/x/sys/windows"

	"github.com/mrigan/sysprims/internal/group"
	"github.com/mrigan/sysprims/output"
	"github.com/mrigan/sysprims/sysprimserr"
)

const jobAccessRights = windows.PROCESS_SET_QUOTA | windows.PROCESS_TERMINATE | windows.PROCESS_QUERY_INFORMATION

func spawn(cmd *exec.Cmd, buf *output.Buffer) (*Result, error) {
	handle := group.Prepare(cmd, group.Options{Enabled: true})

	if err := cmd.Start(); err != nil {
		return nil, mapSpawnErr(cmd.Path, err)
	}
	pid := uint32(cmd.Process.Pid)

	var warnings []string
	procHandle, err := windows.OpenProcess(jobAccessRights, false, pid)
	if err != nil {
		handle.Bind(cmd.Process.Pid, nil)
		warnings = append(warnings, "OpenProcess failed; spawning without grouping")
	} else {
		handle.Bind(cmd.Process.Pid, &procHandle)
	}

	if handle.Reliability() != group.Guaranteed {
		if len(warnings) == 0 {
			warnings = append(warnings, "Job Object creation failed; spawning without grouping")
		}
	} else {
		registerJob(pid, handle.RawJob())
	}

	go func() {
		cmd.Wait()
		buf.Close()
		if procHandle != 0 {
			windows.CloseHandle(procHandle)
		}
		// Whichever of "this exit path" and a concurrent terminate-tree call
		// takes the registry entry first owns closing the job handle; the
		// other sees ok == false and does nothing, avoiding a double close.
		if job, ok := takeJob(pid); ok {
			windows.CloseHandle(job)
		}
	}()

	return &Result{
		PID:         pid,
		Reliability: handle.Reliability(),
		Warnings:    warnings,
		Output:      buf,
	}, nil
}

func mapSpawnErr(command string, err error) error {
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return sysprimserr.NotFoundCommand(command)
	default:
		var pathErr *exec.Error
		if errors.As(err, &pathErr) {
			return sysprimserr.NotFoundCommand(command)
		}
		return sysprimserr.SpawnFailedf(command, err)
	}
}
