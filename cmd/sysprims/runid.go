package main

import "github.com/google/uuid"

// newRunID generates a unique identifier for a single supervised run, used
// as the cgroup directory name so concurrent sysprims invocations never
// collide.
func newRunID() string {
	return "sysprims-" + uuid.New().String()
}
