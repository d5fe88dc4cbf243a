package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

func newKillCmd() *cobra.Command {
	var (
		signalFlag string
		group      bool
	)

	cmd := &cobra.Command{
		Use:   "kill <pid>",
		Short: "Send a validated signal to a PID or process group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid64, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || pid64 > 0xFFFFFFFF {
				return sysprimserr.InvalidArgumentf("invalid pid: %q", args[0])
			}
			pid := uint32(pid64)

			sig := sigdispatch.TERM
			if signalFlag != "" {
				sig, err = parseSignalFlag(signalFlag)
				if err != nil {
					return err
				}
			}

			if group {
				if err := sigdispatch.SendGroup(pid, sig); err != nil {
					return mapSignalErr(err)
				}
				return nil
			}
			if err := sigdispatch.Send(pid, sig); err != nil {
				return mapSignalErr(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&signalFlag, "signal", "", "Signal to send (name, number, or glob); default TERM")
	cmd.Flags().BoolVar(&group, "group", false, "Signal the process group led by pid instead of pid itself")

	return cmd
}

// mapSignalErr projects a sysprimserr.Error onto the CLI's generic-error
// exit code; signal dispatch has no dedicated exit code beyond 1.
func mapSignalErr(err error) error {
	if se, ok := sysprimserr.As(err); ok {
		return &exitCodeError{code: 1, message: se.Error()}
	}
	return err
}
