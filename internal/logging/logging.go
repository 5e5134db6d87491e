// Package logging configures the process-wide hclog logger: colored output
// on stderr, with an optional tee into a dated file under the logs root.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lumduan/hardsub/internal/dirs"
)

// Options control logger construction.
type Options struct {
	Verbose bool   // Debug level when true
	LogsDir string // When non-empty, also write to hardsub_<date>.log under it
}

// New builds the root logger. File-tee failures are reported on stderr and
// degrade to console-only logging; they never abort startup.
func New(opts Options) hclog.Logger {
	level := hclog.Info
	if opts.Verbose {
		level = hclog.Debug
	}

	out := io.Writer(os.Stderr)
	if opts.LogsDir != "" {
		if f, err := openLogFile(opts.LogsDir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot open log file: %v\n", err)
		} else {
			out = io.MultiWriter(os.Stderr, f)
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "hardsub",
		Level:  level,
		Output: out,
		Color:  hclog.AutoColor,
	})
}

func openLogFile(logsDir string) (*os.File, error) {
	if err := dirs.Ensure(logsDir); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("hardsub_%s.log", time.Now().Format("2006-01-02"))
	return os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
