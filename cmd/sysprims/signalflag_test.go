package main

import (
	"testing"

	"github.com/mrigan/sysprims/sigdispatch"
)

func TestParseSignalFlagNumeric(t *testing.T) {
	sig, err := parseSignalFlag("15")
	if err != nil {
		t.Fatalf("parseSignalFlag(\"15\") failed: %v", err)
	}
	if sig != sigdispatch.TERM {
		t.Fatalf("expected TERM (15), got %d", sig)
	}
}

func TestParseSignalFlagName(t *testing.T) {
	for _, name := range []string{"TERM", "term", "SIGTERM", " sigterm "} {
		sig, err := parseSignalFlag(name)
		if err != nil {
			t.Fatalf("parseSignalFlag(%q) failed: %v", name, err)
		}
		if sig != sigdispatch.TERM {
			t.Fatalf("parseSignalFlag(%q) = %d, want TERM", name, sig)
		}
	}
}

func TestParseSignalFlagUnambiguousGlob(t *testing.T) {
	sig, err := parseSignalFlag("*KILL*")
	if err != nil {
		t.Fatalf("parseSignalFlag(\"*KILL*\") failed: %v", err)
	}
	if sig != sigdispatch.KILL {
		t.Fatalf("expected KILL, got %d", sig)
	}
}

func TestParseSignalFlagAmbiguousGlobFails(t *testing.T) {
	if _, err := parseSignalFlag("SIG*"); err == nil {
		t.Fatal("expected an error for an ambiguous glob")
	}
}

func TestParseSignalFlagUnknownFails(t *testing.T) {
	if _, err := parseSignalFlag("NOTASIGNAL"); err == nil {
		t.Fatal("expected an error for an unknown signal name")
	}
}
