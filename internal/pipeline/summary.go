package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumduan/hardsub/internal/model"
	"github.com/lumduan/hardsub/internal/util/format"
)

// Summary aggregates a batch of conversion results.
type Summary struct {
	TotalFiles   int
	Succeeded    int
	Failed       int
	Skipped      int
	OriginalMB   float64
	ConvertedMB  float64
	SavedMB      float64
	SavedPercent float64
	TotalTime    time.Duration
}

// Summarize computes the aggregate view of results.
func Summarize(results []model.ConversionResult) Summary {
	var s Summary
	s.TotalFiles = len(results)
	for _, r := range results {
		if r.Success {
			s.Succeeded++
			if r.Skipped {
				s.Skipped++
			}
		} else {
			s.Failed++
		}
		s.OriginalMB += r.OriginalMB
		s.ConvertedMB += r.ConvertedMB
		s.TotalTime += r.Elapsed
	}
	s.SavedMB = s.OriginalMB - s.ConvertedMB
	if s.OriginalMB > 0 {
		s.SavedPercent = s.SavedMB / s.OriginalMB * 100
	}
	return s
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	summaryRuleStyle  = lipgloss.NewStyle().Faint(true)
	successStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// maxSummaryErrLen bounds per-file error text in the failed listing.
const maxSummaryErrLen = 120

// RenderSummary formats the end-of-batch report, including a listing of
// failed files with truncated diagnostics.
func RenderSummary(results []model.ConversionResult) string {
	s := Summarize(results)
	rule := summaryRuleStyle.Render(strings.Repeat("=", 50))

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(summaryTitleStyle.Render("     CONVERSION SUMMARY REPORT") + "\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Total Files Processed:  %d\n", s.TotalFiles)
	b.WriteString(successStyle.Render(fmt.Sprintf("Successful:             %d", s.Succeeded)) + "\n")
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "  of which skipped:     %d\n", s.Skipped)
	}
	line := fmt.Sprintf("Failed:                 %d", s.Failed)
	if s.Failed > 0 {
		line = errorStyle.Render(line)
	}
	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "Total Time:             %s\n\n", format.Duration(s.TotalTime))
	fmt.Fprintf(&b, "Original Total Size:    %.2f MB\n", s.OriginalMB)
	fmt.Fprintf(&b, "Converted Total Size:   %.2f MB\n", s.ConvertedMB)
	fmt.Fprintf(&b, "Space Saved:            %.2f MB (%.1f%%)\n", s.SavedMB, s.SavedPercent)

	if s.Failed > 0 {
		b.WriteString("\nFailed Files:\n")
		n := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			n++
			fmt.Fprintf(&b, "  %d. %s - %s\n", n, filepath.Base(r.Input), oneLineErr(r.ErrMessage))
		}
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

// oneLineErr collapses an error excerpt to a single bounded line.
func oneLineErr(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if len(msg) > maxSummaryErrLen {
		return msg[:maxSummaryErrLen-1] + "…"
	}
	if msg == "" {
		return "unknown error"
	}
	return msg
}
