package encoder

import (
	"strings"
	"testing"

	"github.com/lumduan/hardsub/internal/config"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		input  string
		want   string
	}{
		{
			name:   "subtitles disabled is scale only",
			mutate: func(c *config.Config) { c.Subtitles.Enabled = false },
			input:  "/in/a.mkv",
			want:   "scale=-2:480",
		},
		{
			name:   "subtitles enabled",
			mutate: func(c *config.Config) {},
			input:  "/in/a.mkv",
			want:   `subtitles=/in/a.mkv,scale=-2:480`,
		},
		{
			name:   "language selector included",
			mutate: func(c *config.Config) { c.Subtitles.Language = "tha" },
			input:  "/in/a.mkv",
			want:   `subtitles=/in/a.mkv:si=tha,scale=-2:480`,
		},
		{
			name:   "style override quoted",
			mutate: func(c *config.Config) { c.Subtitles.Style = "FontName=Sarabun,FontSize=24" },
			input:  "/in/a.mkv",
			want:   `subtitles=/in/a.mkv:force_style='FontName=Sarabun,FontSize=24',scale=-2:480`,
		},
		{
			name:   "target height honored",
			mutate: func(c *config.Config) { c.Video.Height = 1080; c.Subtitles.Enabled = false },
			input:  "/in/a.mkv",
			want:   "scale=-2:1080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			if got := BuildFilter(tt.input, cfg); got != tt.want {
				t.Errorf("BuildFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeFilterValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain.mkv`, `plain.mkv`},
		{`C:\media\a.mkv`, `C\:\\media\\a.mkv`},
		{`ep1,part2.mkv`, `ep1\,part2.mkv`},
		{`it's here.mkv`, `it\'s here.mkv`},
		{`a:b;c.mkv`, `a\:b\;c.mkv`},
		{`odd[1].mkv`, `odd\[1\].mkv`},
	}
	for _, tt := range tests {
		if got := escapeFilterValue(tt.in); got != tt.want {
			t.Errorf("escapeFilterValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildFilterPathologicalPath(t *testing.T) {
	cfg := config.Default()
	got := BuildFilter(`/in/it's, a film: part 1.mkv`, cfg)

	// The raw metacharacters must not survive unescaped ahead of the
	// scale clause separator.
	if !strings.Contains(got, `it\'s\, a film\: part 1.mkv`) {
		t.Errorf("metacharacters not escaped: %q", got)
	}
	if !strings.HasSuffix(got, ",scale=-2:480") {
		t.Errorf("scale clause missing or misplaced: %q", got)
	}
}

func TestBuildFilterPathologicalStyle(t *testing.T) {
	cfg := config.Default()
	cfg.Subtitles.Style = `FontName=It's\Odd,Outline=1`
	got := BuildFilter("/in/a.mkv", cfg)

	if !strings.Contains(got, `force_style='FontName=It\'s\\Odd,Outline=1'`) {
		t.Errorf("style not escaped correctly: %q", got)
	}
}
