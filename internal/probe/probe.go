// Package probe extracts stream metadata via ffprobe and tool version
// strings. It serves the scan and doctor commands plus TUI percent display;
// the conversion pipeline itself does not depend on it.
package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lumduan/hardsub/internal/util"
)

// Info describes the primary video stream of a media file.
type Info struct {
	Codec       string
	Width       int
	Height      int
	DurationSec float64
}

// Resolution returns "WxH", or "unknown" when dimensions are missing.
func (i Info) Resolution() string {
	if i.Width <= 0 || i.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// Inspect runs ffprobe on path and parses its key=value output.
func Inspect(ctx context.Context, runner util.CmdRunner, ffprobePath, path string) (Info, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,duration",
		"-of", "default=noprint_wrappers=1",
		path,
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := runner.Run(ctx, util.CmdSpec{
		Path:          ffprobePath,
		Args:          args,
		CaptureStdout: true,
	})
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseInfo(string(res.Stdout)), nil
}

// Duration returns the source duration in seconds, or 0 when ffprobe is
// unavailable or the file carries no duration.
func Duration(ctx context.Context, runner util.CmdRunner, ffprobePath, path string) float64 {
	if ffprobePath == "" {
		return 0
	}
	info, err := Inspect(ctx, runner, ffprobePath, path)
	if err != nil {
		return 0
	}
	return info.DurationSec
}

// Version runs `<binary> -version` and returns the first output line.
func Version(ctx context.Context, runner util.CmdRunner, binaryPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := runner.Run(ctx, util.CmdSpec{
		Path:          binaryPath,
		Args:          []string{"-version"},
		CaptureStdout: true,
	})
	if err != nil {
		return "", fmt.Errorf("%s -version: %w", binaryPath, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(res.Stdout)), "\n")
	if line == "" {
		return "", fmt.Errorf("%s -version produced no output", binaryPath)
	}
	return line, nil
}

func parseInfo(out string) Info {
	var info Info
	for _, line := range strings.Split(out, "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch key {
		case "codec_name":
			info.Codec = val
		case "width":
			info.Width, _ = strconv.Atoi(val)
		case "height":
			info.Height, _ = strconv.Atoi(val)
		case "duration":
			info.DurationSec, _ = strconv.ParseFloat(val, 64)
		}
	}
	return info
}
