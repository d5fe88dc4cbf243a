//go:build !linux && !windows

package group

import "syscall"

// setDieWithParent is a no-op outside Linux: there is no parent-death signal
// to request, so an abruptly-killed supervisor may orphan the group until
// something tears the process group down explicitly.
func setDieWithParent(attr *syscall.SysProcAttr) {}
