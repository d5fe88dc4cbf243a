package ffi

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mrigan/sysprims/internal/resources"
	"github.com/mrigan/sysprims/timeout"
)

// cgroupParent is the shared parent directory sysprims creates per-run
// cgroups under.
const cgroupParent = "/sys/fs/cgroup/sysprims"

// applyResourceLimits attaches a cgroup to cfg when the caller requested
// cpuLimit/memLimit and cgroup v2 is available. Both zero means no limit was
// requested and this is a no-op. Failure to create the manager or cgroup is
// returned as an error and cfg is left without a cgroup; RunTimeout ignores
// that error, so resource limits never fail the underlying operation.
func applyResourceLimits(cfg *timeout.Config, cpuLimit int, memLimitBytes int64) (*resources.Cgroup, error) {
	if cpuLimit <= 0 && memLimitBytes <= 0 {
		return nil, nil
	}

	mgr, err := resources.NewManager(cgroupParent)
	if err != nil {
		return nil, fmt.Errorf("resource limits unavailable: %w", err)
	}

	cg, err := mgr.CreateCgroup(uuid.New().String(), resources.Limits{
		CPUQuotaPercent: cpuLimit,
		MemoryMaxBytes:  memLimitBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cgroup: %w", err)
	}

	cfg.Cgroup = cg
	return cg, nil
}
