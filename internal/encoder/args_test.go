package encoder

import (
	"strings"
	"testing"

	"github.com/lumduan/hardsub/internal/config"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(*config.Config)
		includeProgress bool
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:   "defaults with subtitles",
			mutate: func(c *config.Config) {},
			wantContains: []string{
				"-i /in/movie.mkv",
				"subtitles=",
				"scale=-2:480",
				"-c:v libx264",
				"-c:a aac",
				"-crf 24",
				"-preset medium",
				"-b:a 128k",
				"-movflags +faststart",
				"-y",
			},
			wantNotContains: []string{"-progress"},
		},
		{
			name: "subtitles disabled",
			mutate: func(c *config.Config) {
				c.Subtitles.Enabled = false
			},
			wantContains:    []string{"-vf scale=-2:480"},
			wantNotContains: []string{"subtitles="},
		},
		{
			name: "custom codecs and quality",
			mutate: func(c *config.Config) {
				c.Video.Codec = "libx265"
				c.Video.CRF = 28
				c.Video.Preset = "veryfast"
				c.Audio.Codec = "opus"
				c.Audio.Bitrate = "192k"
				c.Video.Height = 720
			},
			wantContains: []string{
				"-c:v libx265", "-crf 28", "-preset veryfast",
				"-c:a opus", "-b:a 192k", "scale=-2:720",
			},
		},
		{
			name:            "with progress pipe",
			mutate:          func(c *config.Config) {},
			includeProgress: true,
			wantContains:    []string{"-progress pipe:1 -nostats"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			args := BuildArgs("/in/movie.mkv", "/out/movie_480p.mp4", cfg, tt.includeProgress)

			argsStr := strings.Join(args, " ")
			for _, want := range tt.wantContains {
				if !strings.Contains(argsStr, want) {
					t.Errorf("BuildArgs() missing %q, got: %v", want, args)
				}
			}
			for _, notWant := range tt.wantNotContains {
				if strings.Contains(argsStr, notWant) {
					t.Errorf("BuildArgs() should not contain %q, got: %v", notWant, args)
				}
			}

			if args[len(args)-1] != "/out/movie_480p.mp4" {
				t.Errorf("BuildArgs() last arg = %v, want output path", args[len(args)-1])
			}
		})
	}
}
