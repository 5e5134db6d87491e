package cmd

import (
	"github.com/spf13/cobra"
)

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui",
		Short:         "Force the interactive batch view",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, convertMode{ForceTUI: true})
		},
	}
	bindConvertFlags(cmd.Flags())
	// '--no-ui' makes no sense here; keep the flag for symmetry but hide it
	if f := cmd.Flags().Lookup("no-ui"); f != nil {
		f.Hidden = true
	}
	return cmd
}
