package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mrigan/sysprims/internal/resources"
	"github.com/mrigan/sysprims/sysprimserr"
	"github.com/mrigan/sysprims/timeout"
)

func newTimeoutCmd() *cobra.Command {
	var (
		signalFlag     string
		killAfterFlag  string
		foreground     bool
		preserveStatus bool
		cpuLimit       int
		memLimit       int64
	)

	cmd := &cobra.Command{
		Use:   "timeout <DURATION> -- <COMMAND> [ARGS...]",
		Short: "Run a command, killing its whole process tree if it outlives DURATION",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deadline, err := parseDuration(args[0])
			if err != nil {
				return err
			}
			command := args[1]
			commandArgs := args[2:]

			cfg := timeout.Config{
				PreserveStatus: preserveStatus,
				Stdout:         os.Stdout,
				Stderr:         os.Stderr,
			}
			if signalFlag != "" {
				sig, err := parseSignalFlag(signalFlag)
				if err != nil {
					return err
				}
				cfg.Signal = sig
			}
			if killAfterFlag != "" {
				d, err := parseDuration(killAfterFlag)
				if err != nil {
					return err
				}
				cfg.KillAfter = d
			}
			if foreground {
				cfg.Grouping = timeout.Foreground
			} else {
				cfg.Grouping = timeout.GroupByDefault
			}

			if cpuLimit > 0 || memLimit > 0 {
				cgroup, warn := tryCgroup(cpuLimit, memLimit)
				if warn != "" {
					cmd.PrintErrln("warning:", warn)
				}
				cfg.Cgroup = cgroup
				if cgroup != nil {
					defer cgroup.Cleanup()
				}
			}

			outcome, err := timeout.Run(command, commandArgs, deadline, cfg)
			if err != nil {
				return mapRunErr(command, err)
			}

			switch outcome.Status {
			case timeout.Completed:
				if outcome.ExitCode != 0 {
					return &exitCodeError{code: outcome.ExitCode}
				}
				return nil
			case timeout.TimedOut:
				if preserveStatus {
					return &exitCodeError{code: 128 + int(outcome.SignalSent)}
				}
				return &exitCodeError{code: 124}
			default:
				return sysprimserr.Internalf("unknown outcome status %d", outcome.Status)
			}
		},
	}

	cmd.Flags().StringVar(&signalFlag, "signal", "", "Initial signal to send on expiry (name, number, or glob); default TERM")
	cmd.Flags().StringVar(&killAfterFlag, "kill-after", "", "Grace period before the unignorable kill is escalated; default 10s")
	cmd.Flags().BoolVar(&foreground, "foreground", false, "Signal only the direct child; do not create a process group / Job Object")
	cmd.Flags().BoolVar(&preserveStatus, "preserve-status", false, "On timeout, exit with 128+signal instead of the canonical 124")
	cmd.Flags().IntVar(&cpuLimit, "cpu-limit", 0, "Cap CPU at this percentage of one core (Linux cgroup v2 only)")
	cmd.Flags().Int64Var(&memLimit, "mem-limit", 0, "Cap resident memory in bytes (Linux cgroup v2 only)")

	return cmd
}

// tryCgroup best-effort creates a cgroup for the requested limits. Failure
// is never fatal to the timeout run: it is reported as a warning and the
// command proceeds with group-based signaling alone, the same non-fatal
// treatment GroupCreationFailed gets in the runner.
func tryCgroup(cpuLimit int, memLimit int64) (cg *resources.Cgroup, warning string) {
	mgr, err := resources.NewManager("/sys/fs/cgroup/sysprims")
	if err != nil {
		return nil, "cgroup limits unavailable: " + err.Error()
	}
	cg, err = mgr.CreateCgroup(newRunID(), resources.Limits{
		CPUQuotaPercent: cpuLimit,
		MemoryMaxBytes:  memLimit,
	})
	if err != nil {
		return nil, "failed to create cgroup: " + err.Error()
	}
	return cg, ""
}

// mapRunErr projects a sysprimserr.Error from timeout.Run onto the
// canonical spawn-failure exit codes (127 not found, 126 not executable).
func mapRunErr(command string, err error) error {
	se, ok := sysprimserr.As(err)
	if !ok {
		return err
	}
	switch se.Kind {
	case sysprimserr.NotFound:
		return &exitCodeError{code: 127, message: se.Error()}
	case sysprimserr.PermissionDenied:
		return &exitCodeError{code: 126, message: se.Error()}
	default:
		return &exitCodeError{code: 1, message: se.Error()}
	}
}
