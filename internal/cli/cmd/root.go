// Package cmd defines the hardsub command tree and its exit code contract.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lumduan/hardsub/internal/config"
)

const (
	ExitOK           = 0
	ExitCLIError     = 1
	ExitMissingDep   = 2
	ExitConvertError = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hardsub",
		Short:         "Batch MKV to MP4 converter with burned-in subtitles",
		Long:          "hardsub walks a directory tree of MKV files and re-encodes each one to MP4 with its embedded subtitles burned into the picture, mirroring the directory layout under the output root. Outputs that already exist are skipped, so an interrupted batch can be resumed by running it again.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(cmd.Root()); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation behaves like `hardsub convert`
			return runConvert(cmd, convertMode{})
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().String("config", "", "Path to config file (default: ./config.{yaml|yml|json|toml})")
	root.PersistentFlags().StringP("input-dir", "i", "input", "Directory tree to scan for MKV files")
	root.PersistentFlags().StringP("output-dir", "o", "output", "Root for converted MP4 files")
	root.PersistentFlags().BoolP("verbose", "v", false, "Debug logging and full ffmpeg command lines")
	root.PersistentFlags().String("ffmpeg", "", "Path to the ffmpeg binary")

	// Bind convert flags on root so `hardsub` keeps working without a subcommand
	bindConvertFlags(root.Flags())

	root.AddCommand(newConvertCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindConvertFlags(fs *pflag.FlagSet) {
	fs.Int("height", 480, "Target video height in pixels (width follows the aspect ratio)")
	fs.Int("crf", 24, "Constant Rate Factor; lower means better quality")
	fs.String("preset", "medium", "Encoder preset: ultrafast..veryslow")
	fs.Bool("skip-existing", true, "Skip files whose output already exists")
	fs.Bool("no-subs", false, "Scale only; do not burn subtitles")
	fs.Bool("no-ui", false, "Disable TUI; use plain textual output")
	fs.Int("workers", 2, "Max concurrent conversions when --parallel is set")
	fs.Bool("parallel", false, "Convert multiple files concurrently")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

func getPersistentString(cmd *cobra.Command, name, def string) string {
	v, err := cmd.InheritedFlags().GetString(name)
	if err != nil || v == "" {
		return def
	}
	return v
}
