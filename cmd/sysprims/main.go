// Program sysprims is the command-line front end for the timeout and kill
// primitives: group-by-default deadline supervision, validated signal
// dispatch, detached grouped spawn, and ad-hoc tree teardown.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrigan/sysprims/logging"
)

func main() {
	logging.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

// run builds and executes the root command, returning the process exit
// code. A dedicated function (rather than inlining into main) lets exit
// codes flow back from RunE handlers via exitCodeError instead of every
// handler calling os.Exit directly, which would skip deferred cleanup.
func run(ctx context.Context) int {
	rootCmd := &cobra.Command{
		Use:           "sysprims",
		Short:         "Process-control primitives: group-by-default timeouts and signal dispatch",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetContext(ctx)

	rootCmd.AddCommand(
		newTimeoutCmd(),
		newKillCmd(),
		newSpawnGroupCmd(),
		newTerminateTreeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var ec *exitCodeError
		if asExitCodeError(err, &ec) {
			if ec.message != "" {
				fmt.Fprintln(os.Stderr, "Error:", ec.message)
			}
			return ec.code
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// exitCodeError carries a specific process exit code (e.g. 124, 127, 128+n)
// out of a RunE handler. message is empty when the handler already printed
// its own diagnostic (e.g. streamed child output).
type exitCodeError struct {
	code    int
	message string
}

func (e *exitCodeError) Error() string {
	if e.message != "" {
		return e.message
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func asExitCodeError(err error, target **exitCodeError) bool {
	ec, ok := err.(*exitCodeError)
	if ok {
		*target = ec
	}
	return ok
}
