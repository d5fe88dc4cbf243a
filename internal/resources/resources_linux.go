//go:build linux

package resources

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

// Manager creates and tracks sysprims-owned cgroups under a single parent
// directory.
type Manager struct {
	parentPath string
}

// Cgroup represents one supervised group's cgroup.
type Cgroup struct {
	path string
	fd   int
}

// NewManager creates parentPath (e.g. "/sys/fs/cgroup/sysprims") and enables
// the controllers sysprims writes limits for. Returns an error if cgroup v2
// is not mounted or permissions are insufficient; callers should treat this
// as non-fatal and proceed without resource limits.
func NewManager(parentPath string) (*Manager, error) {
	if _, err := os.Stat("/sys/fs/cgroup/cgroup.controllers"); err != nil {
		return nil, fmt.Errorf("cgroup v2 not available: %w", err)
	}

	cleanupStaleDir(parentPath)

	if err := os.MkdirAll(parentPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent cgroup: %w", err)
	}

	if err := os.WriteFile(
		filepath.Join(parentPath, "cgroup.subtree_control"),
		[]byte("+cpu +memory"),
		0644,
	); err != nil {
		return nil, fmt.Errorf("failed to enable cgroup controllers: %w", err)
	}

	return &Manager{parentPath: parentPath}, nil
}

// ParentPath returns the manager's parent cgroup directory.
func (m *Manager) ParentPath() string {
	return m.parentPath
}

// CreateCgroup creates a cgroup for id, writes the requested limits, and
// opens a directory fd for use with exec.Cmd's SysProcAttr.CgroupFD.
func (m *Manager) CreateCgroup(id string, limits Limits) (*Cgroup, error) {
	path := filepath.Join(m.parentPath, id)
	if err := os.Mkdir(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cgroup directory: %w", err)
	}

	if limits.CPUQuotaPercent > 0 {
		quota := limits.CPUQuotaPercent * 1000 // 100000us period, scaled by percent
		if err := writeLimit(path, "cpu.max", fmt.Sprintf("%d 100000", quota)); err != nil {
			os.Remove(path)
			return nil, err
		}
	}
	if limits.MemoryMaxBytes > 0 {
		if err := writeLimit(path, "memory.max", fmt.Sprintf("%d", limits.MemoryMaxBytes)); err != nil {
			os.Remove(path)
			return nil, err
		}
	}

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to open cgroup directory fd: %w", err)
	}

	return &Cgroup{path: path, fd: fd}, nil
}

func writeLimit(path, file, value string) error {
	if err := os.WriteFile(filepath.Join(path, file), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to set %s: %w", file, err)
	}
	return nil
}

// FD returns the cgroup directory file descriptor for SysProcAttr.CgroupFD.
func (c *Cgroup) FD() int {
	return c.fd
}

// ApplyToCmd wires the cgroup directory fd into cmd's SysProcAttr so the
// kernel places the spawned process into this cgroup at creation time.
func (c *Cgroup) ApplyToCmd(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CgroupFD = c.fd
	cmd.SysProcAttr.UseCgroupFD = true
}

// Kill writes "1" to cgroup.kill, terminating every process in the cgroup.
// Per the cgroup v2 kernel documentation this is the least error-prone way
// to tear down a group: unlike killpg, it reaches processes regardless of
// what process group they later moved themselves into.
func (c *Cgroup) Kill() error {
	return os.WriteFile(filepath.Join(c.path, "cgroup.kill"), []byte("1"), 0644)
}

// Cleanup removes the manager's parent cgroup directory. Intended for test
// teardown; callers with live cgroups should Cleanup each Cgroup first.
func (m *Manager) Cleanup() error {
	return os.Remove(m.parentPath)
}

// Cleanup closes the directory fd and removes the cgroup directory. Safe to
// call after the group's processes have already exited.
func (c *Cgroup) Cleanup() error {
	if err := unix.Close(c.fd); err != nil {
		return fmt.Errorf("failed to close cgroup fd: %w", err)
	}
	return os.Remove(c.path)
}

// cleanupStaleDir kills any processes left in a previous run's cgroups and
// removes the directory tree. Best-effort: errors are logged, not returned.
func cleanupStaleDir(dir string) {
	if err := os.WriteFile(filepath.Join(dir, "cgroup.kill"), []byte("1"), 0644); err != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			slog.Warn("failed to remove stale child cgroup", "path", entry.Name(), "error", err)
		}
	}
	if err := os.Remove(dir); err != nil {
		slog.Warn("failed to remove stale parent cgroup", "path", dir, "error", err)
	}
}
