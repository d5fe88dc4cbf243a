package main

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"5":     5 * time.Second,
		"5s":    5 * time.Second,
		"250ms": 250 * time.Millisecond,
		"2m":    2 * time.Minute,
		"1h":    time.Hour,
		"0":     0,
	}
	for in, want := range cases {
		got, err := parseDuration(in)
		if err != nil {
			t.Fatalf("parseDuration(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("parseDuration(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "5x", "-5s", "5 s"} {
		if _, err := parseDuration(in); err == nil {
			t.Fatalf("parseDuration(%q) should have failed", in)
		}
	}
}
