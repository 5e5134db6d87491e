package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"height too low", func(c *Config) { c.Video.Height = 100 }, "video.height"},
		{"height too high", func(c *Config) { c.Video.Height = 4320 }, "video.height"},
		{"crf too high", func(c *Config) { c.Video.CRF = 52 }, "video.crf"},
		{"crf negative", func(c *Config) { c.Video.CRF = -1 }, "video.crf"},
		{"unknown video codec", func(c *Config) { c.Video.Codec = "av1" }, "video.codec"},
		{"unknown preset", func(c *Config) { c.Video.Preset = "turbo" }, "video.preset"},
		{"unknown audio codec", func(c *Config) { c.Audio.Codec = "flac" }, "audio.codec"},
		{"bitrate missing suffix", func(c *Config) { c.Audio.Bitrate = "128" }, "audio.bitrate"},
		{"workers zero", func(c *Config) { c.MaxWorkers = 0 }, "max_workers"},
		{"workers too many", func(c *Config) { c.MaxWorkers = 64 }, "max_workers"},
		{"empty input dir", func(c *Config) { c.InputDir = "" }, "input_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAcceptsAllEnumValues(t *testing.T) {
	for _, codec := range validVideoCodecs {
		cfg := Default()
		cfg.Video.Codec = codec
		assert.NoError(t, cfg.Validate(), "codec %s", codec)
	}
	for _, preset := range validPresets {
		cfg := Default()
		cfg.Video.Preset = preset
		assert.NoError(t, cfg.Validate(), "preset %s", preset)
	}
	cfg := Default()
	cfg.Audio.Bitrate = "0.5M"
	assert.NoError(t, cfg.Validate())
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), "# ") // commented template

	var got Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, 480, got.Video.Height)
	assert.Equal(t, "aac", got.Audio.Codec)
	assert.True(t, got.Subtitles.Enabled)

	// Second write must refuse to clobber
	err = WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
