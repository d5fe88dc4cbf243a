package main

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrigan/sysprims/sysprimserr"
	"github.com/mrigan/sysprims/treekill"
)

func newTerminateTreeCmd() *cobra.Command {
	var (
		graceFlag      string
		killTimeout    string
		signalFlag     string
		killSignalFlag string
	)

	cmd := &cobra.Command{
		Use:   "terminate-tree <pid>",
		Short: "Best-effort graceful-then-forceful teardown of a PID not launched via `sysprims timeout`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid64, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || pid64 > 0xFFFFFFFF {
				return sysprimserr.InvalidArgumentf("invalid pid: %q", args[0])
			}

			cfg := treekill.Config{}
			if signalFlag != "" {
				sig, err := parseSignalFlag(signalFlag)
				if err != nil {
					return err
				}
				cfg.Signal = sig
			}
			if killSignalFlag != "" {
				sig, err := parseSignalFlag(killSignalFlag)
				if err != nil {
					return err
				}
				cfg.KillSignal = sig
			}
			if graceFlag != "" {
				d, err := parseDuration(graceFlag)
				if err != nil {
					return err
				}
				cfg.GraceTimeout = d
			}
			if killTimeout != "" {
				d, err := parseDuration(killTimeout)
				if err != nil {
					return err
				}
				cfg.KillTimeout = d
			}

			result, err := treekill.Terminate(uint32(pid64), cfg)
			if err != nil {
				return mapSignalErr(err)
			}

			type memberJSON struct {
				PID   uint32 `json:"pid"`
				Alive bool   `json:"alive"`
			}
			members := make([]memberJSON, len(result.Members))
			for i, m := range result.Members {
				members[i] = memberJSON{PID: m.PID, Alive: m.Alive}
			}

			out := struct {
				Members  []memberJSON `json:"members"`
				Escapees bool         `json:"escapees"`
			}{Members: members, Escapees: result.Escapees}

			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(b))

			if result.AnyAlive() {
				return &exitCodeError{code: 1, message: "one or more processes survived termination"}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&graceFlag, "grace", "", "Grace period before escalating to the kill signal; default 5s")
	cmd.Flags().StringVar(&killTimeout, "kill-timeout", "", "How long to wait after the kill signal before giving up; default 5s")
	cmd.Flags().StringVar(&signalFlag, "signal", "", "Initial signal; default TERM")
	cmd.Flags().StringVar(&killSignalFlag, "kill-signal", "", "Escalation signal; default KILL")

	return cmd
}
