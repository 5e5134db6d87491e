package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumduan/hardsub/internal/config"
	"github.com/lumduan/hardsub/internal/logging"
	"github.com/lumduan/hardsub/internal/pipeline"
	"github.com/lumduan/hardsub/internal/probe"
	"github.com/lumduan/hardsub/internal/util"
	"github.com/lumduan/hardsub/internal/util/deps"
	"github.com/lumduan/hardsub/internal/util/format"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "scan",
		Short:         "List MKV files that would be converted",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			log := logging.New(logging.Options{Verbose: cfg.Verbose})

			files := pipeline.Discover(cfg.InputDir, log)
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s files found under %s\n", pipeline.InputExt, cfg.InputDir)
				return nil
			}

			// Stream metadata is optional; without ffprobe only sizes print
			runner := util.NewDefaultRunner()
			ffprobePath, _ := deps.FindFFprobe()

			var total int64
			for _, f := range files {
				rel, rerr := filepath.Rel(cfg.InputDir, f)
				if rerr != nil {
					rel = f
				}
				size := util.FileSize(f)
				total += size

				line := fmt.Sprintf("%-60s %10s", rel, format.HumanizeBytes(size))
				if ffprobePath != "" {
					if info, perr := probe.Inspect(cmd.Context(), runner, ffprobePath, f); perr == nil {
						line += fmt.Sprintf("  %s %s %s",
							info.Codec, info.Resolution(), format.Duration(secondsToDuration(info.DurationSec)))
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d file(s), %s total\n", len(files), format.HumanizeBytes(total))
			return nil
		},
	}
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
