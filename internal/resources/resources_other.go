//go:build !linux

package resources

import (
	"os/exec"
	"runtime"

	"github.com/mrigan/sysprims/sysprimserr"
)

// Manager is the non-Linux stand-in: cgroup v2 is a Linux-only facility, so
// every operation reports NotSupported and callers fall back to
// group-based signaling alone.
type Manager struct{}

// Cgroup is the non-Linux stand-in for Cgroup.
type Cgroup struct{}

// NewManager always fails on non-Linux platforms.
func NewManager(parentPath string) (*Manager, error) {
	return nil, sysprimserr.NotSupportedOp("cgroup resource limits", runtime.GOOS)
}

// ParentPath is unreachable without a Manager; present so both GOOS
// variants expose the same method set.
func (m *Manager) ParentPath() string {
	return ""
}

// CreateCgroup always fails on non-Linux platforms.
func (m *Manager) CreateCgroup(id string, limits Limits) (*Cgroup, error) {
	return nil, sysprimserr.NotSupportedOp("cgroup resource limits", runtime.GOOS)
}

// FD returns -1: there is no cgroup directory fd to hand to SysProcAttr.
func (c *Cgroup) FD() int {
	return -1
}

// ApplyToCmd is a no-op: cgroups do not exist outside Linux.
func (c *Cgroup) ApplyToCmd(cmd *exec.Cmd) {}

// Kill always fails on non-Linux platforms.
func (c *Cgroup) Kill() error {
	return sysprimserr.NotSupportedOp("cgroup.kill", runtime.GOOS)
}

// Cleanup is a no-op: there is nothing to release.
func (c *Cgroup) Cleanup() error {
	return nil
}

// Cleanup is a no-op: there is nothing to release.
func (m *Manager) Cleanup() error {
	return nil
}
