//go:build windows

package sigdispatch

import (
	"golang.org/x/sys/windows"

	"github.com/mrigan/sysprims/sysprimserr"
)

// Signal constants on Windows. Only TERM and KILL are meaningfully
// supported; their numeric values match the Unix values so resolved names
// round-trip the same way across platforms, but delivery always maps to
// TerminateProcess.
const (
	TERM Signal = 15
	KILL Signal = 9
	INT  Signal = 2
	HUP  Signal = 1
	QUIT Signal = 3
	USR1 Signal = 10
	USR2 Signal = 12
	CONT Signal = 18
	STOP Signal = 19
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
	if sig != TERM && sig != KILL {
		return sysprimserr.NotSupportedOp("signal delivery (non-terminate)", "windows")
	}

	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, pid)
	if err != nil {
		return mapWindowsErr(err, pid)
	}
	defer windows.CloseHandle(handle)

	// Exit code delivered to the terminated process is arbitrary; sysprims
	// does not expose it as a distinguishable "killed by us" signal.
	if err := windows.TerminateProcess(handle, 1); err != nil {
		return mapWindowsErr(err, pid)
	}
	return nil
}

func sendGroupImpl(pgid uint32, sig Signal) error {
	return sysprimserr.NotSupportedOp("KillGroup", "windows")
}

func mapWindowsErr(err error, pid uint32) error {
	switch err {
	case windows.ERROR_ACCESS_DENIED:
		return sysprimserr.PermissionDeniedPID(pid, "TerminateProcess")
	case windows.ERROR_INVALID_PARAMETER:
		return sysprimserr.NotFoundPID(pid)
	default:
		return sysprimserr.Systemf(0, "TerminateProcess failed for pid %d: %v", pid, err)
	}
}
