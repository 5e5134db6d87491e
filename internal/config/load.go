package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lumduan/hardsub/internal/dirs"
)

// Init wires viper with config paths, env, defaults, and root flag bindings.
// It is non-fatal: a missing config file is not an error.
func Init(root *cobra.Command) error {
	// Search the working directory first, then the user config dir
	viper.AddConfigPath(".")
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: HARDSUB_*
	viper.SetEnvPrefix("HARDSUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Bind root persistent flags to viper keys
	_ = viper.BindPFlag("input_dir", root.PersistentFlags().Lookup("input-dir"))
	_ = viper.BindPFlag("output_dir", root.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("ffmpeg", root.PersistentFlags().Lookup("ffmpeg"))

	// Honor an explicit --config path; otherwise read from the search paths
	if f := root.PersistentFlags().Lookup("config"); f != nil && f.Value.String() != "" {
		viper.SetConfigFile(f.Value.String())
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}
	_ = viper.ReadInConfig() // ignore not found
	return nil
}

// BindConvertFlags binds the convert/plan flag set to viper keys so that
// flag > env > file > default precedence holds for encoding options too.
func BindConvertFlags(fs *pflag.FlagSet) {
	_ = viper.BindPFlag("video.height", fs.Lookup("height"))
	_ = viper.BindPFlag("video.crf", fs.Lookup("crf"))
	_ = viper.BindPFlag("video.preset", fs.Lookup("preset"))
	_ = viper.BindPFlag("skip_existing", fs.Lookup("skip-existing"))
	_ = viper.BindPFlag("parallel", fs.Lookup("parallel"))
	_ = viper.BindPFlag("max_workers", fs.Lookup("workers"))
}

// Load unmarshals the effective configuration and validates it.
func Load() (*Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	d := Default()
	viper.SetDefault("input_dir", d.InputDir)
	viper.SetDefault("output_dir", d.OutputDir)
	viper.SetDefault("logs_dir", d.LogsDir)
	viper.SetDefault("video.height", d.Video.Height)
	viper.SetDefault("video.codec", d.Video.Codec)
	viper.SetDefault("video.crf", d.Video.CRF)
	viper.SetDefault("video.preset", d.Video.Preset)
	viper.SetDefault("audio.codec", d.Audio.Codec)
	viper.SetDefault("audio.bitrate", d.Audio.Bitrate)
	viper.SetDefault("subtitles.enabled", d.Subtitles.Enabled)
	viper.SetDefault("subtitles.language", d.Subtitles.Language)
	viper.SetDefault("subtitles.style", d.Subtitles.Style)
	viper.SetDefault("parallel", d.Parallel)
	viper.SetDefault("max_workers", d.MaxWorkers)
	viper.SetDefault("skip_existing", d.SkipExisting)
	viper.SetDefault("verbose", d.Verbose)
}
