//go:build linux

package resources_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/mrigan/sysprims/internal/resources"
	"github.com/mrigan/sysprims/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCreateAndCleanupCgroup(t *testing.T) {
	mgr := testutil.RequireManager(t)

	cg, err := mgr.CreateCgroup("test-group-1", resources.Limits{})
	if err != nil {
		t.Fatalf("CreateCgroup failed: %v", err)
	}

	cgPath := filepath.Join(mgr.ParentPath(), "test-group-1")
	if _, err := os.Stat(cgPath); err != nil {
		t.Fatalf("cgroup directory does not exist: %v", err)
	}

	if err := cg.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	if _, err := os.Stat(cgPath); !os.IsNotExist(err) {
		t.Fatalf("cgroup directory still exists after cleanup")
	}
}

func TestResourceLimitsWritten(t *testing.T) {
	mgr := testutil.RequireManager(t)

	cg, err := mgr.CreateCgroup("test-group-2", resources.Limits{
		CPUQuotaPercent: 50,
		MemoryMaxBytes:  256 * 1024 * 1024,
	})
	if err != nil {
		t.Fatalf("CreateCgroup failed: %v", err)
	}
	t.Cleanup(func() { cg.Cleanup() })

	cgPath := filepath.Join(mgr.ParentPath(), "test-group-2")

	cpuMax, err := os.ReadFile(filepath.Join(cgPath, "cpu.max"))
	if err != nil {
		t.Fatalf("failed to read cpu.max: %v", err)
	}
	if got := strings.TrimSpace(string(cpuMax)); got != "50000 100000" {
		t.Fatalf("expected cpu.max = %q, got %q", "50000 100000", got)
	}

	memMax, err := os.ReadFile(filepath.Join(cgPath, "memory.max"))
	if err != nil {
		t.Fatalf("failed to read memory.max: %v", err)
	}
	if got := strings.TrimSpace(string(memMax)); got != "268435456" {
		t.Fatalf("expected memory.max = %q, got %q", "268435456", got)
	}
}

func TestKillCgroupWithNoMembers(t *testing.T) {
	mgr := testutil.RequireManager(t)

	cg, err := mgr.CreateCgroup("test-group-3", resources.Limits{})
	if err != nil {
		t.Fatalf("CreateCgroup failed: %v", err)
	}
	t.Cleanup(func() { cg.Cleanup() })

	if err := cg.Kill(); err != nil {
		t.Fatalf("Kill failed: %v", err)
	}
}

func TestFDValid(t *testing.T) {
	mgr := testutil.RequireManager(t)

	cg, err := mgr.CreateCgroup("test-group-4", resources.Limits{})
	if err != nil {
		t.Fatalf("CreateCgroup failed: %v", err)
	}
	t.Cleanup(func() { cg.Cleanup() })

	if cg.FD() < 0 {
		t.Fatalf("expected a valid directory fd, got %d", cg.FD())
	}
}
