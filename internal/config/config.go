// Package config defines the converter configuration model and its
// validation rules. Loading goes through viper (see load.go); the pipeline
// consumes the resulting Config read-only.
package config

import (
	"fmt"
	"strings"
)

// VideoConfig holds video encoding settings.
type VideoConfig struct {
	Height int    `mapstructure:"height" yaml:"height"` // Target height in pixels (e.g., 480 for 480p)
	Codec  string `mapstructure:"codec" yaml:"codec"`
	CRF    int    `mapstructure:"crf" yaml:"crf"` // Constant Rate Factor; lower = better quality
	Preset string `mapstructure:"preset" yaml:"preset"`
}

// AudioConfig holds audio encoding settings.
type AudioConfig struct {
	Codec   string `mapstructure:"codec" yaml:"codec"`
	Bitrate string `mapstructure:"bitrate" yaml:"bitrate"` // e.g., "128k", "0.5M"
}

// SubtitleConfig holds hard-sub settings.
type SubtitleConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Language string `mapstructure:"language" yaml:"language,omitempty"` // Optional track selector
	Style    string `mapstructure:"style" yaml:"style,omitempty"`       // Optional force_style override
}

// Config is the full converter configuration.
type Config struct {
	InputDir  string `mapstructure:"input_dir" yaml:"input_dir"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	LogsDir   string `mapstructure:"logs_dir" yaml:"logs_dir"`

	Video     VideoConfig    `mapstructure:"video" yaml:"video"`
	Audio     AudioConfig    `mapstructure:"audio" yaml:"audio"`
	Subtitles SubtitleConfig `mapstructure:"subtitles" yaml:"subtitles"`

	Parallel     bool `mapstructure:"parallel" yaml:"parallel"`
	MaxWorkers   int  `mapstructure:"max_workers" yaml:"max_workers"`
	SkipExisting bool `mapstructure:"skip_existing" yaml:"skip_existing"`
	Verbose      bool `mapstructure:"verbose" yaml:"verbose"`

	// Optional explicit path to the ffmpeg binary; empty = search PATH.
	FFmpeg string `mapstructure:"ffmpeg" yaml:"ffmpeg,omitempty"`
}

const (
	MinHeight = 144
	MaxHeight = 2160
	MinCRF    = 0
	MaxCRF    = 51

	MinWorkers = 1
	MaxWorkers = 16
)

var (
	validVideoCodecs = []string{"libx264", "libx265", "h264", "hevc"}
	validAudioCodecs = []string{"aac", "mp3", "opus", "ac3"}
	validPresets = []string{
		"ultrafast", "superfast", "veryfast", "faster",
		"fast", "medium", "slow", "slower", "veryslow",
	}
)

// Default returns the configuration used when no file or overrides are present.
func Default() *Config {
	return &Config{
		InputDir:  "input",
		OutputDir: "output",
		LogsDir:   "logs",
		Video: VideoConfig{
			Height: 480,
			Codec:  "libx264",
			CRF:    24,
			Preset: "medium",
		},
		Audio: AudioConfig{
			Codec:   "aac",
			Bitrate: "128k",
		},
		Subtitles: SubtitleConfig{
			Enabled: true,
		},
		Parallel:     false,
		MaxWorkers:   2,
		SkipExisting: true,
		Verbose:      false,
	}
}

// Validate checks all invariants and returns an error naming the offending
// field and its allowed values.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.Video.Height < MinHeight || c.Video.Height > MaxHeight {
		return fmt.Errorf("video.height %d out of range (%d-%d)", c.Video.Height, MinHeight, MaxHeight)
	}
	if c.Video.CRF < MinCRF || c.Video.CRF > MaxCRF {
		return fmt.Errorf("video.crf %d out of range (%d-%d)", c.Video.CRF, MinCRF, MaxCRF)
	}
	if !contains(validVideoCodecs, c.Video.Codec) {
		return fmt.Errorf("invalid video.codec %q (valid: %s)", c.Video.Codec, strings.Join(validVideoCodecs, "|"))
	}
	if !contains(validPresets, c.Video.Preset) {
		return fmt.Errorf("invalid video.preset %q (valid: %s)", c.Video.Preset, strings.Join(validPresets, "|"))
	}
	if !contains(validAudioCodecs, c.Audio.Codec) {
		return fmt.Errorf("invalid audio.codec %q (valid: %s)", c.Audio.Codec, strings.Join(validAudioCodecs, "|"))
	}
	if !strings.HasSuffix(c.Audio.Bitrate, "k") && !strings.HasSuffix(c.Audio.Bitrate, "M") {
		return fmt.Errorf("invalid audio.bitrate %q: must end with 'k' or 'M' (e.g., \"128k\", \"0.5M\")", c.Audio.Bitrate)
	}
	if c.MaxWorkers < MinWorkers || c.MaxWorkers > MaxWorkers {
		return fmt.Errorf("max_workers %d out of range (%d-%d)", c.MaxWorkers, MinWorkers, MaxWorkers)
	}
	return nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
