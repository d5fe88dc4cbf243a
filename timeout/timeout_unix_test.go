//go:build !windows

package timeout

import (
	"bytes"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/mrigan/sysprims/internal/group"
	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunCompletesBeforeDeadline(t *testing.T) {
	outcome, err := Run("sh", []string{"-c", "exit 0"}, 2*time.Second, Config{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != Completed {
		t.Fatalf("expected Completed, got %v", outcome.Status)
	}
	if outcome.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", outcome.ExitCode)
	}
}

func TestRunPropagatesNonZeroExit(t *testing.T) {
	outcome, err := Run("sh", []string{"-c", "exit 7"}, 2*time.Second, Config{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != Completed {
		t.Fatalf("expected Completed, got %v", outcome.Status)
	}
	if outcome.ExitCode != 7 {
		t.Fatalf("expected exit code 7, got %d", outcome.ExitCode)
	}
}

func TestRunTimesOutGroupByDefault(t *testing.T) {
	start := time.Now()
	outcome, err := Run("sh", []string{"-c", "sleep 30"}, 200*time.Millisecond, Config{
		KillAfter: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != TimedOut {
		t.Fatalf("expected TimedOut, got %v", outcome.Status)
	}
	if outcome.Reliability != group.Guaranteed {
		t.Fatalf("expected Guaranteed reliability under GroupByDefault, got %v", outcome.Reliability)
	}
	if !outcome.Escalated {
		t.Fatal("expected escalation after an unresponsive sleep ran out the grace period")
	}
	if outcome.SignalSent != sigdispatch.TERM {
		t.Fatalf("expected initial signal TERM, got %v", outcome.SignalSent)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Run took too long to return after kill: %v", elapsed)
	}
}

func TestRunForegroundDoesNotEscalateOnDirectExit(t *testing.T) {
	// A trap that exits immediately on TERM should return without the kill
	// path ever escalating, since the direct child exiting under Foreground
	// mode is itself the signal the group is gone. The shell waits on a
	// backgrounded sleep via the wait builtin, which a trapped signal
	// interrupts; a foreground sleep would defer the trap until it ended.
	outcome, err := Run("sh", []string{"-c", "trap 'kill $!; exit 0' TERM; sleep 30 & wait"}, 150*time.Millisecond, Config{
		Grouping:  Foreground,
		KillAfter: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != TimedOut {
		t.Fatalf("expected TimedOut, got %v", outcome.Status)
	}
	if outcome.Reliability != group.BestEffort {
		t.Fatalf("expected BestEffort reliability under Foreground, got %v", outcome.Reliability)
	}
	if outcome.Escalated {
		t.Fatal("expected no escalation: direct child already exited on the initial signal")
	}
}

func TestRunEscalatesPastTrappedTerm(t *testing.T) {
	// The child ignores the initial TERM entirely; only the unignorable
	// escalation can end it. The run must still return promptly after
	// deadline + grace, not hang on the trapped signal.
	start := time.Now()
	outcome, err := Run("sh", []string{"-c", "trap '' TERM; sleep 30"}, 150*time.Millisecond, Config{
		KillAfter: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != TimedOut {
		t.Fatalf("expected TimedOut, got %v", outcome.Status)
	}
	if !outcome.Escalated {
		t.Fatal("expected escalation: the child trapped the initial TERM")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Run took %v to get past a trapped TERM; expected deadline + grace + small slack", elapsed)
	}
}

func TestRunCommandNotFound(t *testing.T) {
	_, err := Run("sysprims-definitely-not-a-real-binary", nil, time.Second, Config{})
	if err == nil {
		t.Fatal("expected an error for a missing binary")
	}
	sErr, ok := sysprimserr.As(err)
	if !ok {
		t.Fatalf("expected a sysprimserr.Error, got %T: %v", err, err)
	}
	if sErr.Kind != sysprimserr.NotFound {
		t.Fatalf("expected NotFound, got %v", sErr.Kind)
	}
}

func TestRunCapturesOutput(t *testing.T) {
	var stdout bytes.Buffer
	outcome, err := Run("sh", []string{"-c", "echo hello"}, 2*time.Second, Config{
		Stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != Completed {
		t.Fatalf("expected Completed, got %v", outcome.Status)
	}
	if got := stdout.String(); got != "hello\n" {
		t.Fatalf("expected captured stdout %q, got %q", "hello\n", got)
	}
}

func TestRunTreeEscapeStillReaped(t *testing.T) {
	// The direct child backgrounds a grandchild from a subshell, so the
	// grandchild is no longer its child but stays in the process group, and
	// then runs its own sleep past the deadline. The run must time out on
	// the group-directed kill path (Guaranteed reliability); the test does
	// not look for the grandchild afterwards.
	outcome, err := Run("sh", []string{"-c", "(sleep 30 &) ; sleep 30"}, 150*time.Millisecond, Config{
		KillAfter: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != TimedOut {
		t.Fatalf("expected TimedOut, got %v", outcome.Status)
	}
	if outcome.Reliability != group.Guaranteed {
		t.Fatalf("expected Guaranteed reliability, got %v", outcome.Reliability)
	}
}
