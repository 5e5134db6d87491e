package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lumduan/hardsub/internal/config"
	"github.com/lumduan/hardsub/internal/logging"
	"github.com/lumduan/hardsub/internal/pipeline"
	"github.com/lumduan/hardsub/internal/util"
	"github.com/lumduan/hardsub/internal/util/deps"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plan",
		Short:         "Show the ffmpeg invocations without executing them",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.BindConvertFlags(cmd.Flags())
			cfg, err := config.Load()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			if noSubs, _ := cmd.Flags().GetBool("no-subs"); noSubs {
				cfg.Subtitles.Enabled = false
			}
			log := logging.New(logging.Options{Verbose: cfg.Verbose})

			// The plan prints even without ffmpeg installed
			ffmpegPath, ferr := deps.FindFFmpeg(cfg.FFmpeg)
			if ferr != nil {
				ffmpegPath = "ffmpeg"
			}

			files := pipeline.Discover(cfg.InputDir, log)
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s files found under %s\n", pipeline.InputExt, cfg.InputDir)
				return nil
			}

			conv := pipeline.NewConverter(
				pipeline.WithConfig(cfg),
				pipeline.WithFFmpegPath(ffmpegPath),
			)
			for _, f := range files {
				out := conv.PlannedOutput(f)
				rel, rerr := filepath.Rel(cfg.InputDir, f)
				if rerr != nil {
					rel = f
				}
				if cfg.SkipExisting && util.NonEmptyFile(out) {
					fmt.Fprintf(cmd.OutOrStdout(), "# %s -> %s (exists, would skip)\n", rel, out)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "# %s -> %s\n", rel, out)
				fmt.Fprintln(cmd.OutOrStdout(), util.CommandLine(ffmpegPath, conv.Args(f, out)))
			}
			return nil
		},
	}
	bindConvertFlags(cmd.Flags())
	return cmd
}
