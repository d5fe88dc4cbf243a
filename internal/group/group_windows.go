//go:build windows

package group

import (
	"os/exec"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

// Handle tracks the Job Object binding for a spawned child on Windows.
type Handle struct {
	job         windows.Handle
	childPID    uint32
	reliability Reliability
	enabled     bool
}

// Options mirrors the Unix Options shape; DieWithParent has no Windows
// equivalent and is ignored here (Job Objects already terminate members
// when the job handle closes, which sysprims arranges to happen on its own
// exit via KILL_ON_JOB_CLOSE).
type Options struct {
	Enabled       bool
	DieWithParent bool
}

// Prepare creates a Job Object configured with KILL_ON_JOB_CLOSE when
// grouping is requested. Unlike Unix, this must happen before Start but
// binding the child to the job happens after, via Bind, since the job API
// operates on process handles rather than pre-exec attributes.
func Prepare(cmd *exec.Cmd, opts Options) *Handle {
	h := &Handle{enabled: opts.Enabled, reliability: BestEffort}
	if !opts.Enabled {
		return h
	}

	job, err := createJobObject()
	if err != nil {
		// Grouping requested but creation failed: proceed ungrouped and let
		// the caller observe BestEffort in the outcome.
		return h
	}
	h.job = job
	h.reliability = Guaranteed
	return h
}

func createJobObject() (windows.Handle, error) {
	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return 0, sysprimserr.GroupCreationFailedf("CreateJobObject failed: %v", err)
	}

	info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
		BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
			LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE,
		},
	}
	if _, err := windows.SetInformationJobObject(
		job,
		windows.JobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	); err != nil {
		windows.CloseHandle(job)
		return 0, sysprimserr.GroupCreationFailedf("SetInformationJobObject failed: %v", err)
	}
	return job, nil
}

// Bind assigns the started child process to the Job Object. Failure, or a
// nil process handle, demotes Reliability to BestEffort and releases the
// partially-acquired job handle.
func (h *Handle) Bind(pid int, proc *windows.Handle) {
	h.childPID = uint32(pid)
	if h.reliability != Guaranteed {
		return
	}
	if proc == nil {
		windows.CloseHandle(h.job)
		h.job = 0
		h.reliability = BestEffort
		return
	}
	if err := windows.AssignProcessToJobObject(h.job, *proc); err != nil {
		windows.CloseHandle(h.job)
		h.job = 0
		h.reliability = BestEffort
	}
}

// Reliability reports whether group-directed termination is guaranteed to
// reach every descendant.
func (h *Handle) Reliability() Reliability {
	return h.reliability
}

// Signal has no group form on Windows: it delivers to the direct child
// only, matching the single-process semantics of sigdispatch.Send on this
// platform. Whole-job termination is TerminateGroup.
func (h *Handle) Signal(sig sigdispatch.Signal) error {
	return sigdispatch.Send(h.childPID, sig)
}

// TerminateGroup unconditionally terminates every process in the Job
// Object, even if the direct child already exited — background job members
// may still be alive. No-op if grouping was never established.
func (h *Handle) TerminateGroup() error {
	if h.reliability != Guaranteed || h.job == 0 {
		return nil
	}
	if err := windows.TerminateJobObject(h.job, 1); err != nil {
		return sysprimserr.Systemf(0, "TerminateJobObject failed: %v", err)
	}
	return nil
}

// Close releases the Job Object handle. If any member process is still
// running, closing the last handle kills it (KILL_ON_JOB_CLOSE).
func (h *Handle) Close() error {
	if h.job == 0 {
		return nil
	}
	err := windows.CloseHandle(h.job)
	h.job = 0
	return err
}

// RawJob exposes the underlying Job Object handle for the spawn-in-group
// registry (package spawngroup), which must outlive this Handle's creator.
func (h *Handle) RawJob() windows.Handle {
	return h.job
}
