// Package encoder builds ffmpeg invocations for hard-sub conversions.
// Nothing here executes anything; the pipeline owns execution.
package encoder

import (
	"strconv"

	"github.com/lumduan/hardsub/internal/config"
)

// BuildArgs constructs the full ffmpeg argument list for converting
// inputPath to outputPath per the configuration.
func BuildArgs(inputPath, outputPath string, cfg *config.Config, includeProgress bool) []string {
	args := []string{
		"-i", inputPath,
		"-vf", BuildFilter(inputPath, cfg),
		"-c:v", cfg.Video.Codec,
		"-c:a", cfg.Audio.Codec,
		"-crf", strconv.Itoa(cfg.Video.CRF),
		"-preset", cfg.Video.Preset,
		"-b:a", cfg.Audio.Bitrate,
		"-movflags", "+faststart",
		"-y", // never prompt for overwrite
	}

	if includeProgress {
		args = append(args, "-progress", "pipe:1", "-nostats")
	}

	args = append(args, outputPath)
	return args
}
