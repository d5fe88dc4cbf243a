// Package group abstracts the kernel-level grouping primitive that binds a
// spawned child and its descendants so they can be signaled or terminated as
// a unit: a Unix process group, or a Windows Job Object configured to kill
// all members when its last handle closes.
package group

// Reliability classifies whether a grouping primitive was actually
// established for a spawned process.
type Reliability int

const (
	// Guaranteed means the grouping primitive was successfully created and
	// the child is bound to it: a group-directed kill reaches every member.
	Guaranteed Reliability = iota
	// BestEffort means grouping was disabled or failed to establish; only
	// the direct child can be targeted.
	BestEffort
)

func (r Reliability) String() string {
	if r == Guaranteed {
		return "guaranteed"
	}
	return "best_effort"
}
