// Package sigdispatch sends validated signals to a single PID or a process
// group, rejecting PID values whose sign-reinterpretation would invoke
// POSIX broadcast or self-group semantics before any system call is made.
package sigdispatch

import (
	"math"

	"github.com/mrigan/sysprims/sysprimserr"
)

// Signal is a platform-native signal number.
type Signal int32

// MaxSafePID is the largest PID sysprims will ever pass to a signal-send
// syscall. Values above this would wrap to a negative pid_t when cast to the
// platform's signed PID type, and POSIX kill(-1, sig) signals every process
// the caller may reach.
const MaxSafePID uint32 = math.MaxInt32

// validatePID rejects pid == 0 (would signal the caller's own process group)
// and pid > MaxSafePID (would wrap to a negative PID and trigger broadcast
// semantics). name is the parameter name, used in the error message.
func validatePID(pid uint32, name string) error {
	if pid == 0 {
		return sysprimserr.InvalidArgumentf("%s must be > 0; 0 would signal the caller's own process group", name)
	}
	if pid > MaxSafePID {
		return sysprimserr.InvalidArgumentf(
			"%s %d exceeds maximum safe value %d; larger values overflow to negative PIDs with dangerous POSIX broadcast semantics",
			name, pid, MaxSafePID,
		)
	}
	return nil
}

// Send delivers sig to pid. Returns *sysprimserr.Error on failure.
func Send(pid uint32, sig Signal) error {
	if err := validatePID(pid, "pid"); err != nil {
		return err
	}
	return sendImpl(pid, sig)
}

// SendGroup delivers sig to every process in the group led by pgid. Always
// returns NotSupported on Windows, which has no process-group concept.
func SendGroup(pgid uint32, sig Signal) error {
	if err := validatePID(pgid, "pgid"); err != nil {
		return err
	}
	return sendGroupImpl(pgid, sig)
}

// Terminate is a convenience wrapper for Send(pid, TERM).
func Terminate(pid uint32) error {
	return Send(pid, TERM)
}

// ForceKill is a convenience wrapper for Send(pid, KILL).
func ForceKill(pid uint32) error {
	return Send(pid, KILL)
}

// BatchFailure records a single PID's failure within a SendMany call.
type BatchFailure struct {
	PID   uint32
	Error error
}

// BatchResult is the aggregate outcome of SendMany.
type BatchResult struct {
	Succeeded []uint32
	Failed    []BatchFailure
}

// SendMany validates every PID before sending to any of them, then dispatches
// sequentially, collecting per-PID failures rather than aborting on the
// first one. An empty slice is rejected as InvalidArgument.
func SendMany(pids []uint32, sig Signal) (BatchResult, error) {
	if len(pids) == 0 {
		return BatchResult{}, sysprimserr.InvalidArgumentf("pids must not be empty")
	}
	for _, pid := range pids {
		if err := validatePID(pid, "pid"); err != nil {
			return BatchResult{}, err
		}
	}

	var result BatchResult
	for _, pid := range pids {
		if err := sendImpl(pid, sig); err != nil {
			result.Failed = append(result.Failed, BatchFailure{PID: pid, Error: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, pid)
	}
	return result, nil
}
