// Package procsnap resolves the transitive descendant set of a PID on Unix
// by walking /proc. It is deliberately narrow: parent-PID relation only, not
// the full process-enumeration/snapshotting feature set (listening ports,
// file descriptors, command lines) that a general-purpose collaborator would
// offer — treekill only needs "who is descended from this PID right now."
package procsnap

// Descendants returns the transitive closure of pid's children, in
// breadth-first discovery order, not including pid itself. The snapshot is
// read once at call time; processes that exit or reparent during the walk
// may be missed or duplicated, which matches terminate-tree's documented
// best-effort contract.
func Descendants(pid int) ([]int, error) {
	return descendants(pid)
}
