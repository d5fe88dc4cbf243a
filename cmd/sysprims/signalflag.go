package main

import (
	"strconv"
	"strings"

	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

// parseSignalFlag resolves a --signal value that may be a bare number
// ("15"), a name ("TERM", "SIGTERM", "sigterm"), or a glob ("SIG*",
// "*term*"). A glob that matches more than one signal is rejected: the
// caller must disambiguate.
func parseSignalFlag(raw string) (sigdispatch.Signal, error) {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return sigdispatch.Signal(n), nil
	}

	if strings.ContainsAny(trimmed, "*?") {
		matches, err := sigdispatch.ResolveSignalGlob(trimmed)
		if err != nil {
			return 0, err
		}
		if len(matches) > 1 {
			names := make([]string, 0, len(matches))
			for _, m := range matches {
				if name, ok := sigdispatch.NameForSignal(m); ok {
					names = append(names, name)
				}
			}
			return 0, sysprimserr.InvalidArgumentf(
				"signal glob %q matched multiple signals (%s); disambiguate", trimmed, strings.Join(names, ", "),
			)
		}
		return matches[0], nil
	}

	return sigdispatch.ResolveSignal(trimmed)
}
