package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/mrigan/sysprims/sysprimserr"
)

// parseDuration implements the CLI duration grammar:
// <integer>(ms|s|m|h), with a bare integer meaning seconds. Anything else is
// rejected with "invalid duration".
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, sysprimserr.InvalidArgumentf("invalid duration")
	}

	unit := time.Second
	numeric := s
	switch {
	case strings.HasSuffix(s, "ms"):
		unit = time.Millisecond
		numeric = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "s"):
		unit = time.Second
		numeric = strings.TrimSuffix(s, "s")
	case strings.HasSuffix(s, "m"):
		unit = time.Minute
		numeric = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "h"):
		unit = time.Hour
		numeric = strings.TrimSuffix(s, "h")
	}

	n, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil || n < 0 {
		return 0, sysprimserr.InvalidArgumentf("invalid duration")
	}
	return time.Duration(n) * unit, nil
}
