//go:build !windows

package treekill

import (
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mrigan/sysprims/internal/procsnap"
	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

func terminate(pid uint32, cfg Config) (Result, error) {
	if err := sigdispatch.Send(pid, 0); err != nil {
		if sErr, ok := sysprimserr.As(err); ok && sErr.Kind == sysprimserr.InvalidArgument {
			return Result{}, err
		}
		// ESRCH (already dead) or EPERM are not reasons to abort: the caller
		// still wants a best-effort attempt recorded.
	}

	target := int(pid)
	escapees := false

	descendants, err := procsnap.Descendants(target)
	if err != nil {
		// No /proc-equivalent on this platform (e.g. darwin): only the target
		// itself is signalled, or its whole group if it leads one.
		escapees = true
		descendants = nil
	}

	all := make([]uint32, 0, len(descendants)+1)
	all = append(all, pid)
	for _, d := range descendants {
		all = append(all, uint32(d))
	}

	pending := make(map[uint32]bool, len(all))
	for _, member := range all {
		pending[member] = true
	}

	isLeader := false
	if pgid, err := syscall.Getpgid(target); err == nil && pgid == target {
		isLeader = true
	}

	dispatch := func(sig sigdispatch.Signal) {
		if isLeader {
			sigdispatch.SendGroup(pid, sig)
			return
		}
		for member := range pending {
			sigdispatch.Send(member, sig)
		}
	}

	dispatch(cfg.signal())
	pollUntilDead(pending, cfg.graceTimeout())

	if len(pending) > 0 {
		dispatch(cfg.killSignal())
		pollUntilDead(pending, cfg.killTimeout())
	}

	result := Result{Escapees: escapees}
	for _, member := range all {
		result.Members = append(result.Members, MemberOutcome{PID: member, Alive: pending[member]})
	}
	return result, nil
}

// pollUntilDead removes PIDs from pending as they're observed to have
// exited, up to timeout.
func pollUntilDead(pending map[uint32]bool, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for {
		for member := range pending {
			if !isAlive(member) {
				delete(pending, member)
			}
		}
		if len(pending) == 0 || time.Now().After(deadline) {
			return
		}
		time.Sleep(PollInterval)
	}
}

// isAlive checks liveness via the null signal, per kill(2). A zombie still
// answers the null signal until its parent reaps it, so where /proc is
// available a process in state 'Z' counts as dead: it has already exited.
func isAlive(pid uint32) bool {
	if syscall.Kill(int(pid), 0) != nil {
		return false
	}
	data, err := os.ReadFile("/proc/" + strconv.FormatUint(uint64(pid), 10) + "/stat")
	if err != nil {
		return true
	}
	line := string(data)
	if i := strings.LastIndexByte(line, ')'); i != -1 && i+2 < len(line) {
		return line[i+2] != 'Z'
	}
	return true
}
