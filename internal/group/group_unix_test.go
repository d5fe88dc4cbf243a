//go:build !windows

package group

import (
	"os/exec"
	"testing"

	"go.uber.org/goleak"

	"github.com/mrigan/sysprims/sigdispatch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPrepareEnabledSetsGuaranteed(t *testing.T) {
	cmd := exec.Command("sh", "-c", "exit 0")
	h := Prepare(cmd, Options{Enabled: true})
	if h.Reliability() != Guaranteed {
		t.Fatalf("expected Guaranteed, got %v", h.Reliability())
	}
	if !cmd.SysProcAttr.Setpgid {
		t.Fatal("expected Setpgid to be set on SysProcAttr")
	}
}

func TestPrepareDisabledIsBestEffort(t *testing.T) {
	cmd := exec.Command("sh", "-c", "exit 0")
	h := Prepare(cmd, Options{Enabled: false})
	if h.Reliability() != BestEffort {
		t.Fatalf("expected BestEffort, got %v", h.Reliability())
	}
	if cmd.SysProcAttr != nil && cmd.SysProcAttr.Setpgid {
		t.Fatal("expected Setpgid to remain unset")
	}
}

func TestPGIDZeroWhenNotGuaranteed(t *testing.T) {
	cmd := exec.Command("sh", "-c", "exit 0")
	h := Prepare(cmd, Options{Enabled: false})
	h.Bind(1234)
	if pgid := h.PGID(); pgid != 0 {
		t.Fatalf("expected PGID 0 for BestEffort handle, got %d", pgid)
	}
}

func TestSignalReachesRealGroup(t *testing.T) {
	cmd := exec.Command("sh", "-c", "trap 'exit 0' TERM; sleep 30")
	h := Prepare(cmd, Options{Enabled: true})
	if err := cmd.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	h.Bind(cmd.Process.Pid)

	if err := h.Signal(sigdispatch.TERM); err != nil {
		t.Fatalf("Signal failed: %v", err)
	}
	if err := cmd.Wait(); err != nil {
		t.Fatalf("expected clean exit after trapped TERM, got: %v", err)
	}
}
