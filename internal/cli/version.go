package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			b := opts.build
			fmt.Fprintf(cmd.OutOrStdout(), "redline %s (commit %s, built %s, %s)\n", b.Version, b.Commit, b.Date, runtime.Version())
		},
	}
}
