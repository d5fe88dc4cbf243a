package sigdispatch

import (
	"testing"

	"github.com/mrigan/sysprims/sysprimserr"
)

func TestValidatePIDRejectsZero(t *testing.T) {
	err := Send(0, TERM)
	se, ok := sysprimserr.As(err)
	if !ok || se.Kind != sysprimserr.InvalidArgument {
		t.Fatalf("expected InvalidArgument for pid 0, got %v", err)
	}
}

func TestValidatePIDRejectsAboveMax(t *testing.T) {
	for _, pid := range []uint32{MaxSafePID + 1, MaxSafePID + 2, ^uint32(0)} {
		err := Send(pid, TERM)
		se, ok := sysprimserr.As(err)
		if !ok || se.Kind != sysprimserr.InvalidArgument {
			t.Fatalf("expected InvalidArgument for pid %d, got %v", pid, err)
		}
		if got := se.Error(); got == "" {
			t.Fatalf("expected non-empty message for pid %d", pid)
		}
	}
}

func TestValidatePIDAcceptsBoundary(t *testing.T) {
	// MaxSafePID itself must pass validation; the syscall result depends on
	// whether a process with that PID happens to exist, but it must never
	// be rejected as InvalidArgument.
	err := Send(MaxSafePID, TERM)
	if se, ok := sysprimserr.As(err); ok && se.Kind == sysprimserr.InvalidArgument {
		t.Fatalf("MaxSafePID must not be rejected as InvalidArgument, got %v", err)
	}
}

func TestSendManyRejectsEmpty(t *testing.T) {
	_, err := SendMany(nil, TERM)
	se, ok := sysprimserr.As(err)
	if !ok || se.Kind != sysprimserr.InvalidArgument {
		t.Fatalf("expected InvalidArgument for empty pid slice, got %v", err)
	}
}

func TestSendManyValidatesBeforeSending(t *testing.T) {
	// A single bad PID in the batch must fail validation before any send is
	// attempted against the (otherwise unreachable) good PID.
	_, err := SendMany([]uint32{1, 0}, TERM)
	se, ok := sysprimserr.As(err)
	if !ok || se.Kind != sysprimserr.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestResolveSignalNameRoundTrip(t *testing.T) {
	want, err := ResolveSignal("SIGTERM")
	if err != nil {
		t.Fatalf("ResolveSignal(SIGTERM) failed: %v", err)
	}

	for _, name := range []string{"SIGTERM", "TERM", "term", "sigterm", " sigterm ", "Term"} {
		got, err := ResolveSignal(name)
		if err != nil {
			t.Fatalf("ResolveSignal(%q) failed: %v", name, err)
		}
		if got != want {
			t.Fatalf("ResolveSignal(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestResolveSignalUnknown(t *testing.T) {
	_, err := ResolveSignal("NOTASIGNAL")
	se, ok := sysprimserr.As(err)
	if !ok || se.Kind != sysprimserr.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestResolveSignalGlob(t *testing.T) {
	matches, err := ResolveSignalGlob("SIG*TERM")
	if err != nil {
		t.Fatalf("ResolveSignalGlob failed: %v", err)
	}
	if len(matches) != 1 || matches[0] != TERM {
		t.Fatalf("expected exactly [TERM], got %v", matches)
	}

	multi, err := ResolveSignalGlob("SIGUSR?")
	if err != nil {
		t.Fatalf("ResolveSignalGlob(SIGUSR?) failed: %v", err)
	}
	if len(multi) != 2 {
		t.Fatalf("expected 2 matches for SIGUSR?, got %d: %v", len(multi), multi)
	}
}

func TestResolveSignalGlobNoMatch(t *testing.T) {
	_, err := ResolveSignalGlob("NOMATCH*")
	se, ok := sysprimserr.As(err)
	if !ok || se.Kind != sysprimserr.InvalidArgument {
		t.Fatalf("expected InvalidArgument for zero matches, got %v", err)
	}
}
