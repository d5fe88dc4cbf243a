package sigdispatch

import (
	"sort"
	"strings"

	"github.com/mrigan/sysprims/sysprimserr"
)

// byName maps canonical, uppercase "SIG"-prefixed names to their numeric
// value. It is populated per-platform in signal_unix.go / signal_windows.go
// via registerSignal; bare mnemonics (e.g. "term", "int") are resolved by
// ResolveSignal prefixing "SIG" before the lookup.
var byName = map[string]Signal{}
var order []string // insertion order, for stable glob-match reporting

func registerSignal(name string, sig Signal) {
	name = strings.ToUpper(name)
	if _, exists := byName[name]; !exists {
		order = append(order, name)
	}
	byName[name] = sig
}

// ResolveSignal resolves a case-insensitive signal name. It accepts the
// canonical name ("SIGTERM"), the bare mnemonic ("TERM"), lowercase
// ("sigterm"), and a short identifier ("term", "int"), with surrounding
// whitespace trimmed.
func ResolveSignal(name string) (Signal, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, sysprimserr.InvalidArgumentf("signal name must not be empty")
	}

	upper := strings.ToUpper(trimmed)
	if sig, ok := byName[upper]; ok {
		return sig, nil
	}
	if !strings.HasPrefix(upper, "SIG") {
		if sig, ok := byName["SIG"+upper]; ok {
			return sig, nil
		}
	}

	return 0, sysprimserr.InvalidArgumentf("unknown signal name: %q", name)
}

// NameForSignal returns the canonical "SIGxxx" name for sig, if registered
// on this platform.
func NameForSignal(sig Signal) (string, bool) {
	for _, name := range order {
		if byName[name] == sig {
			return name, true
		}
	}
	return "", false
}

// ResolveSignalGlob matches pattern (supporting '*' and '?') against every
// known signal name, returning the matched signals sorted by name. Zero
// matches is InvalidArgument; multiple matches are returned together so the
// caller can decide how to disambiguate.
func ResolveSignalGlob(pattern string) ([]Signal, error) {
	pattern = strings.ToUpper(strings.TrimSpace(pattern))
	if pattern == "" {
		return nil, sysprimserr.InvalidArgumentf("signal glob must not be empty")
	}

	var matchedNames []string
	for _, name := range order {
		if globMatch(pattern, name) {
			matchedNames = append(matchedNames, name)
		}
	}
	if len(matchedNames) == 0 {
		return nil, sysprimserr.InvalidArgumentf("signal glob %q matched no known signal names", pattern)
	}
	sort.Strings(matchedNames)

	sigs := make([]Signal, 0, len(matchedNames))
	seen := make(map[Signal]bool, len(matchedNames))
	for _, name := range matchedNames {
		sig := byName[name]
		if seen[sig] {
			continue
		}
		seen[sig] = true
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// globMatch reports whether text matches pattern, where pattern may contain
// '*' (any run of characters, including none) and '?' (exactly one
// character). Iterative backtracking implementation, no regexp dependency.
func globMatch(pattern, text string) bool {
	p, t := 0, 0
	starIdx, matchIdx := -1, 0

	for t < len(text) {
		if p < len(pattern) && (pattern[p] == '?' || pattern[p] == text[t]) {
			p++
			t++
			continue
		}
		if p < len(pattern) && pattern[p] == '*' {
			starIdx = p
			matchIdx = t
			p++
			continue
		}
		if starIdx != -1 {
			p = starIdx + 1
			matchIdx++
			t = matchIdx
			continue
		}
		return false
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
