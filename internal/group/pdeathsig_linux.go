package group

import "syscall"

// setDieWithParent asks the kernel to SIGKILL the child if its parent dies
// unexpectedly, so an abruptly-killed supervisor does not orphan the group.
func setDieWithParent(attr *syscall.SysProcAttr) {
	attr.Pdeathsig = syscall.SIGKILL
}
