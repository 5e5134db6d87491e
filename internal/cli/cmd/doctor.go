package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumduan/hardsub/internal/probe"
	"github.com/lumduan/hardsub/internal/util"
	"github.com/lumduan/hardsub/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (ffmpeg, ffprobe)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner := util.NewDefaultRunner()

			ff, ferr := deps.FindFFmpeg(getPersistentString(cmd, "ffmpeg", ""))
			if ferr != nil {
				return &ExitError{Code: ExitMissingDep, Err: ferr}
			}
			line := ff
			if v, verr := probe.Version(cmd.Context(), runner, ff); verr == nil {
				line = fmt.Sprintf("%s (%s)", ff, v)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ffmpeg:  %s\n", line)

			fp, perr := deps.FindFFprobe()
			if perr != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "ffprobe: not found (scan metadata and TUI percentages disabled)")
				return nil
			}
			line = fp
			if v, verr := probe.Version(cmd.Context(), runner, fp); verr == nil {
				line = fmt.Sprintf("%s (%s)", fp, v)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ffprobe: %s\n", line)
			return nil
		},
	}
}
