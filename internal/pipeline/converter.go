// Package pipeline orchestrates discovery, per-file conversion, and batch
// summary reporting for the hard-sub workflow.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lumduan/hardsub/internal/config"
	"github.com/lumduan/hardsub/internal/encoder"
	"github.com/lumduan/hardsub/internal/model"
	"github.com/lumduan/hardsub/internal/progress"
	"github.com/lumduan/hardsub/internal/util"
	"github.com/lumduan/hardsub/internal/util/format"
)

// maxErrText bounds the stderr excerpt carried in a failure result.
const maxErrText = 800

// Converter runs ffmpeg conversions per the configuration. A failed file
// yields a failure-shaped ConversionResult; errors never escape the
// per-file boundary.
type Converter struct {
	cfg         *config.Config
	ffmpegPath  string
	runner      util.CmdRunner
	log         hclog.Logger
	reporter    progress.Reporter
	jobID       string
	durationSec float64 // source duration for percent progress; 0 = unknown
}

// Option configures a Converter.
type Option func(*Converter)

// WithConfig sets the conversion configuration.
func WithConfig(cfg *config.Config) Option {
	return func(c *Converter) {
		c.cfg = cfg
	}
}

// WithFFmpegPath sets the ffmpeg binary path.
func WithFFmpegPath(p string) Option {
	return func(c *Converter) {
		c.ffmpegPath = p
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(c *Converter) {
		c.runner = r
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l hclog.Logger) Option {
	return func(c *Converter) {
		c.log = l
	}
}

// WithReporter attaches a progress reporter (used by TUI).
func WithReporter(rp progress.Reporter) Option {
	return func(c *Converter) {
		c.reporter = rp
	}
}

// WithJobID sets the job ID associated with reporter events.
func WithJobID(id string) Option {
	return func(c *Converter) {
		c.jobID = id
	}
}

// WithSourceDuration supplies the source duration in seconds so encoding
// progress can be expressed as a percentage.
func WithSourceDuration(sec float64) Option {
	return func(c *Converter) {
		c.durationSec = sec
	}
}

// NewConverter constructs a Converter with defaults for missing components.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, o := range opts {
		o(c)
	}
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	if c.runner == nil {
		c.runner = util.NewDefaultRunner()
	}
	if c.log == nil {
		c.log = hclog.NewNullLogger()
	}
	return c
}

// PlannedOutput derives the output path for inputPath without touching the
// filesystem: the input's directory structure relative to the input root is
// mirrored under the output root, and the filename becomes
// "<stem>_<height>p.mp4". The derivation is idempotent.
func (c *Converter) PlannedOutput(inputPath string) string {
	rel, err := filepath.Rel(c.cfg.InputDir, inputPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		// Input outside the configured root: fall back to a flat layout
		rel = filepath.Base(inputPath)
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := fmt.Sprintf("%s_%dp%s", stem, c.cfg.Video.Height, OutputExt)
	return filepath.Join(c.cfg.OutputDir, filepath.Dir(rel), name)
}

// OutputPath derives the output path and creates its parent directories.
func (c *Converter) OutputPath(inputPath string) (string, error) {
	out := c.PlannedOutput(inputPath)
	if err := util.EnsureDir(filepath.Dir(out)); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return out, nil
}

// Args returns the exact ffmpeg argument list ProcessFile would execute for
// inputPath. Used by the plan command and verbose diagnostics.
func (c *Converter) Args(inputPath, outputPath string) []string {
	return encoder.BuildArgs(inputPath, outputPath, c.cfg, c.reporter != nil)
}

// FFmpegPath returns the resolved encoder binary path.
func (c *Converter) FFmpegPath() string {
	return c.ffmpegPath
}

// ProcessFile converts one file and returns its result. All faults
// (encoder exit codes, missing outputs, filesystem errors) are folded into
// a failure result; this method never returns an error.
func (c *Converter) ProcessFile(ctx context.Context, inputPath string) model.ConversionResult {
	base := filepath.Base(inputPath)

	outputPath, err := c.OutputPath(inputPath)
	if err != nil {
		c.log.Error("cannot derive output path", "file", base, "error", err)
		return c.failure(inputPath, outputPath, 0, 0, err.Error())
	}

	// Skip-existing short-circuit: a present output counts as done and the
	// encoder is not invoked.
	if c.cfg.SkipExisting {
		if fi, err := os.Stat(outputPath); err == nil {
			c.log.Info("skipping (already converted)", "file", base)
			c.emitSkipped(outputPath, fi.Size())
			return model.ConversionResult{
				Input:       inputPath,
				Output:      outputPath,
				Success:     true,
				Skipped:     true,
				ConvertedMB: format.MB(fi.Size()),
			}
		}
	}

	inInfo, err := os.Stat(inputPath)
	if err != nil {
		c.log.Error("cannot stat input", "file", base, "error", err)
		return c.failure(inputPath, outputPath, 0, 0, fmt.Sprintf("stat input: %v", err))
	}
	originalMB := format.MB(inInfo.Size())

	args := c.Args(inputPath, outputPath)
	c.log.Info("converting", "file", base)
	if c.cfg.Verbose {
		c.log.Debug("ffmpeg command", "cmd", util.CommandLine(c.ffmpegPath, args))
	}
	c.emitEncoding(base)

	start := time.Now()
	res, runErr := c.runner.Run(ctx, util.CmdSpec{
		Path:       c.ffmpegPath,
		Args:       args,
		Verbose:    c.cfg.Verbose,
		StdoutLine: c.progressLine(),
		StderrLine: c.stderrLine(),
	})
	elapsed := time.Since(start)

	if runErr != nil {
		stderr := truncateTail(string(res.Stderr), maxErrText)
		if stderr == "" {
			stderr = runErr.Error()
		}
		c.log.Error("ffmpeg failed", "file", base, "exit", res.Code, "stderr", stderr)
		// Drop the partial output so a later skip-existing pass retries it
		_ = util.RemoveIfExists(outputPath)
		return c.failure(inputPath, outputPath, elapsed, originalMB, stderr)
	}

	if !util.NonEmptyFile(outputPath) {
		msg := "output file is missing or empty"
		c.log.Error(msg, "file", base)
		return c.failure(inputPath, outputPath, elapsed, originalMB, msg)
	}

	convertedMB := format.MB(util.FileSize(outputPath))
	c.log.Info("converted",
		"file", base,
		"output", filepath.Base(outputPath),
		"original_mb", fmt.Sprintf("%.1f", originalMB),
		"converted_mb", fmt.Sprintf("%.1f", convertedMB),
		"elapsed", format.Duration(elapsed),
	)
	c.emitCompleted(outputPath, util.FileSize(outputPath))

	return model.ConversionResult{
		Input:       inputPath,
		Output:      outputPath,
		Success:     true,
		Elapsed:     elapsed,
		OriginalMB:  originalMB,
		ConvertedMB: convertedMB,
	}
}

// ProcessAll converts files in input order and accumulates results. A
// failed file never blocks the rest of the batch. Context cancellation
// (e.g., SIGINT) stops before the next file and returns the partial list.
// With cfg.Parallel set, a bounded worker pool runs instead; results are
// still returned in input order.
func (c *Converter) ProcessAll(ctx context.Context, files []string) []model.ConversionResult {
	if c.cfg.Parallel && c.cfg.MaxWorkers > 1 && len(files) > 1 {
		return c.processParallel(ctx, files)
	}

	results := make([]model.ConversionResult, 0, len(files))
	for i, f := range files {
		if ctx.Err() != nil {
			c.log.Warn("interrupted", "completed", len(results), "remaining", len(files)-i)
			break
		}
		results = append(results, c.ProcessFile(ctx, f))
	}
	return results
}

// processParallel fans files out to cfg.MaxWorkers goroutines. Each result
// is written to its input index so aggregation is identical to the
// sequential path regardless of completion order.
func (c *Converter) processParallel(ctx context.Context, files []string) []model.ConversionResult {
	workers := c.cfg.MaxWorkers
	if workers > len(files) {
		workers = len(files)
	}
	c.log.Info("parallel conversion", "workers", workers, "files", len(files))

	results := make([]model.ConversionResult, len(files))
	processed := make([]bool, len(files))

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				results[idx] = c.ProcessFile(ctx, files[idx])
				processed[idx] = true
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	out := make([]model.ConversionResult, 0, len(files))
	for i, ok := range processed {
		if ok {
			out = append(out, results[i])
		}
	}
	if len(out) < len(files) {
		c.log.Warn("interrupted", "completed", len(out), "remaining", len(files)-len(out))
	}
	return out
}

func (c *Converter) failure(input, output string, elapsed time.Duration, originalMB float64, msg string) model.ConversionResult {
	c.emitError(msg)
	return model.ConversionResult{
		Input:      input,
		Output:     output,
		Success:    false,
		Elapsed:    elapsed,
		OriginalMB: originalMB,
		ErrMessage: msg,
	}
}

// progressLine returns a stdout hook feeding ffmpeg -progress output to the
// reporter, or nil when no reporter is attached.
func (c *Converter) progressLine() func(string) {
	if c.reporter == nil {
		return nil
	}
	ps := &encoder.ProgressState{}
	return func(line string) {
		if u, ok := ps.UpdateFromLine(line, c.jobID, c.durationSec); ok {
			c.reporter.Update(u)
		}
	}
}

func (c *Converter) stderrLine() func(string) {
	if c.reporter == nil {
		return nil
	}
	return func(line string) {
		c.reporter.Log(progress.Log{JobID: c.jobID, Stream: progress.StreamStderr, Line: line})
	}
}

func (c *Converter) emitEncoding(base string) {
	if c.reporter == nil {
		return
	}
	c.reporter.Update(progress.Update{
		JobID:   c.jobID,
		Stage:   progress.StageEncoding,
		Percent: -1,
		Message: fmt.Sprintf("Converting %s", base),
	})
}

func (c *Converter) emitSkipped(outputPath string, bytes int64) {
	if c.reporter == nil {
		return
	}
	c.reporter.Update(progress.Update{
		JobID:   c.jobID,
		Stage:   progress.StageSkipped,
		Percent: 100,
		Message: fmt.Sprintf("Skipped: %s (exists)", filepath.Base(outputPath)),
	})
	c.reporter.Result(progress.Result{JobID: c.jobID, OutputPath: outputPath, Bytes: bytes, Skipped: true})
}

func (c *Converter) emitCompleted(outputPath string, bytes int64) {
	if c.reporter == nil {
		return
	}
	c.reporter.Update(progress.Update{
		JobID:   c.jobID,
		Stage:   progress.StageCompleted,
		Percent: 100,
		Message: fmt.Sprintf("Saved: %s (%s)", filepath.Base(outputPath), format.HumanizeBytes(bytes)),
	})
	c.reporter.Result(progress.Result{JobID: c.jobID, OutputPath: outputPath, Bytes: bytes})
}

func (c *Converter) emitError(msg string) {
	if c.reporter == nil {
		return
	}
	c.reporter.Update(progress.Update{
		JobID:   c.jobID,
		Stage:   progress.StageError,
		Percent: -1,
		Message: msg,
	})
	c.reporter.Result(progress.Result{JobID: c.jobID, Err: fmt.Errorf("%s", firstLine(msg))})
}

// truncateTail keeps the last max bytes of s; the end of ffmpeg's stderr
// carries the actual error.
func truncateTail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return "…" + s[len(s)-max:]
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
