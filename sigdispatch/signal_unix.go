//go:build !windows

package sigdispatch

import (
	"errors"
	"syscall"

	"github.com/mrigan/sysprims/sysprimserr"
)

// Signal constants. Numeric values match the platform's native signal
// numbers.
const (
	HUP  Signal = Signal(syscall.SIGHUP)
	INT  Signal = Signal(syscall.SIGINT)
	QUIT Signal = Signal(syscall.SIGQUIT)
	KILL Signal = Signal(syscall.SIGKILL)
	USR1 Signal = Signal(syscall.SIGUSR1)
	USR2 Signal = Signal(syscall.SIGUSR2)
	TERM Signal = Signal(syscall.SIGTERM)
	CONT Signal = Signal(syscall.SIGCONT)
	STOP Signal = Signal(syscall.SIGSTOP)
)

func init() {
	for name, sig := range map[string]Signal{
		"SIGHUP": HUP, "SIGINT": INT, "SIGQUIT": QUIT, "SIGKILL": KILL,
		"SIGUSR1": USR1, "SIGUSR2": USR2, "SIGTERM": TERM,
		"SIGCONT": CONT, "SIGSTOP": STOP,
	} {
		registerSignal(name, sig)
	}
}

func sendImpl(pid uint32, sig Signal) error {
	err := syscall.Kill(int(pid), syscall.Signal(sig))
	return mapErrno(err, pid, "send")
}

func sendGroupImpl(pgid uint32, sig Signal) error {
	// Negative PID addresses the process group per POSIX kill(2) semantics.
	err := syscall.Kill(-int(pgid), syscall.Signal(sig))
	return mapErrno(err, pgid, "send_group")
}

func mapErrno(err error, pid uint32, op string) error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ESRCH:
			return sysprimserr.NotFoundPID(pid)
		case syscall.EPERM:
			return sysprimserr.PermissionDeniedPID(pid, op)
		case syscall.EINVAL:
			return sysprimserr.InvalidArgumentf("invalid signal number for %s on pid %d", op, pid)
		default:
			return sysprimserr.Systemf(int(errno), "%s failed for pid %d: %v", op, pid, err)
		}
	}
	return sysprimserr.Systemf(0, "%s failed for pid %d: %v", op, pid, err)
}
