package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumduan/hardsub/internal/config"
	"github.com/lumduan/hardsub/internal/logging"
	"github.com/lumduan/hardsub/internal/model"
	"github.com/lumduan/hardsub/internal/pipeline"
	"github.com/lumduan/hardsub/internal/ui"
	"github.com/lumduan/hardsub/internal/util"
	"github.com/lumduan/hardsub/internal/util/deps"
)

type convertMode struct {
	ForceTUI bool
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "convert",
		Short:         "Convert all MKV files under the input directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, convertMode{})
		},
	}
	bindConvertFlags(cmd.Flags())
	return cmd
}

func runConvert(cmd *cobra.Command, mode convertMode) error {
	config.BindConvertFlags(cmd.Flags())
	cfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	if noSubs, _ := cmd.Flags().GetBool("no-subs"); noSubs {
		cfg.Subtitles.Enabled = false
	}

	log := logging.New(logging.Options{Verbose: cfg.Verbose, LogsDir: cfg.LogsDir})

	ffmpegPath, ferr := deps.FindFFmpeg(cfg.FFmpeg)
	if ferr != nil {
		return &ExitError{Code: ExitMissingDep, Err: ferr}
	}

	files := pipeline.Discover(cfg.InputDir, log)
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s files found under %s\n", pipeline.InputExt, cfg.InputDir)
		return nil
	}

	if err := util.EnsureDir(cfg.OutputDir); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("create output dir: %v", err)}
	}

	noUI, _ := cmd.Flags().GetBool("no-ui")
	useTUI := mode.ForceTUI || (!noUI && isTerminal())

	var results []model.ConversionResult
	if useTUI {
		ffprobePath, _ := deps.FindFFprobe()
		results, err = ui.Run(cmd.Context(), files, ui.Options{
			Config:      cfg,
			FFmpegPath:  ffmpegPath,
			FFprobePath: ffprobePath,
			Logger:      hclog.NewNullLogger(), // console belongs to the TUI
		})
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
	} else {
		results = runPlain(cmd, cfg, ffmpegPath, files, log)
	}

	fmt.Fprint(cmd.OutOrStdout(), "\n"+pipeline.RenderSummary(results))

	s := pipeline.Summarize(results)
	if s.Failed > 0 {
		return &ExitError{
			Code: ExitConvertError,
			Err:  fmt.Errorf("%d of %d conversions failed", s.Failed, s.TotalFiles),
		}
	}
	return nil
}

// runPlain is the non-interactive path: sequential conversions tick a batch
// progress bar; parallel batches delegate to the converter's worker pool.
func runPlain(cmd *cobra.Command, cfg *config.Config, ffmpegPath string, files []string, log hclog.Logger) []model.ConversionResult {
	conv := pipeline.NewConverter(
		pipeline.WithConfig(cfg),
		pipeline.WithFFmpegPath(ffmpegPath),
		pipeline.WithLogger(log),
	)

	if cfg.Parallel && cfg.MaxWorkers > 1 {
		return conv.ProcessAll(cmd.Context(), files)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	results := make([]model.ConversionResult, 0, len(files))
	for i, f := range files {
		if cmd.Context().Err() != nil {
			log.Warn("interrupted", "completed", len(results), "remaining", len(files)-i)
			break
		}
		results = append(results, conv.ProcessFile(cmd.Context(), f))
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return results
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
