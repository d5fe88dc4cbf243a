//go:build !windows

package spawngroup

import (
	"io"
	"syscall"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/mrigan/sysprims/internal/group"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSpawnReturnsImmediately(t *testing.T) {
	start := time.Now()
	result, err := Spawn("sh", []string{"-c", "sleep 30"}, Options{})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Spawn blocked for %v; expected to return immediately", elapsed)
	}
	if result.PID == 0 {
		t.Fatal("expected a non-zero PID")
	}
	if result.Reliability != group.Guaranteed {
		t.Fatalf("expected Guaranteed reliability, got %v", result.Reliability)
	}

	// Tear the spawned group down directly so the reaping goroutine inside
	// Spawn exits before the test finishes; treekill is exercised
	// separately.
	syscall.Kill(-int(result.PID), syscall.SIGKILL)
	waitForBufferClose(t, result.Output)
}

func waitForBufferClose(t *testing.T, buf interface{ Subscribe() io.ReadCloser }) {
	t.Helper()
	sub := buf.Subscribe()
	defer sub.Close()
	io.ReadAll(sub)
}

func TestSpawnEmptyCommandRejected(t *testing.T) {
	_, err := Spawn("", nil, Options{})
	if err == nil {
		t.Fatal("expected an error for an empty command")
	}
}

func TestSpawnCapturesOutput(t *testing.T) {
	result, err := Spawn("sh", []string{"-c", "echo hi; exit 0"}, Options{})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	sub := result.Output.Subscribe()
	defer sub.Close()

	data, err := io.ReadAll(sub)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "hi\n" {
		t.Fatalf("expected captured output %q, got %q", "hi\n", string(data))
	}
}
