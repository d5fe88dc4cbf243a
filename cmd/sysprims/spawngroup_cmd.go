package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mrigan/sysprims/spawngroup"
)

func newSpawnGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spawn-group -- <COMMAND> [ARGS...]",
		Short: "Launch a command bound to a process group / Job Object and return immediately",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := spawngroup.Spawn(args[0], args[1:], spawngroup.Options{})
			if err != nil {
				return mapRunErr(args[0], err)
			}
			// Output ownership transfers to the caller; a one-shot CLI
			// invocation has nowhere to keep reading from after it exits,
			// so it is closed immediately rather than drained.
			result.Output.Close()

			out := struct {
				PID         uint32   `json:"pid"`
				Reliability string   `json:"reliability"`
				Warnings    []string `json:"warnings,omitempty"`
			}{
				PID:         result.PID,
				Reliability: result.Reliability.String(),
				Warnings:    result.Warnings,
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(b))
			return nil
		},
	}

	return cmd
}
