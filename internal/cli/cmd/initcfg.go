package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumduan/hardsub/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "init [path]",
		Short:         "Write a starter config.yaml with the default settings",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}
