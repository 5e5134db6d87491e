package encoder

import (
	"fmt"
	"strings"

	"github.com/lumduan/hardsub/internal/config"
)

// BuildFilter returns the -vf expression for one conversion: a subtitle
// burn-in clause (when enabled) chained with a scale clause that pins the
// output height and keeps width even for codec compatibility.
func BuildFilter(inputPath string, cfg *config.Config) string {
	scale := fmt.Sprintf("scale=-2:%d", cfg.Video.Height)
	if !cfg.Subtitles.Enabled {
		return scale
	}

	var b strings.Builder
	b.WriteString("subtitles=")
	b.WriteString(escapeFilterValue(inputPath))
	if cfg.Subtitles.Language != "" {
		b.WriteString(":si=")
		b.WriteString(cfg.Subtitles.Language)
	}
	if cfg.Subtitles.Style != "" {
		b.WriteString(":force_style='")
		b.WriteString(escapeStyleValue(cfg.Subtitles.Style))
		b.WriteString("'")
	}
	b.WriteString(",")
	b.WriteString(scale)
	return b.String()
}

// escapeFilterValue escapes a value embedded in a filter graph. ffmpeg's
// filter grammar treats backslash, quote, colon, comma, semicolon, and
// brackets as structure, so each is backslash-escaped. Backslash first, or
// the escapes themselves get re-escaped.
func escapeFilterValue(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`,`, `\,`,
		`;`, `\;`,
		`[`, `\[`,
		`]`, `\]`,
	)
	return r.Replace(s)
}

// escapeStyleValue escapes a force_style value for embedding inside the
// single-quoted option. Commas stay literal there (they separate ASS style
// fields); only quote and backslash need escaping.
func escapeStyleValue(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
	)
	return r.Replace(s)
}
