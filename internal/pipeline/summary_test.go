package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumduan/hardsub/internal/model"
)

func TestSummarize(t *testing.T) {
	results := []model.ConversionResult{
		{Input: "/in/a.mkv", Success: true, Elapsed: 90 * time.Second, OriginalMB: 100, ConvertedMB: 40},
		{Input: "/in/b.mkv", Success: true, Skipped: true, ConvertedMB: 30},
		{Input: "/in/c.mkv", Success: false, Elapsed: 5 * time.Second, OriginalMB: 50, ErrMessage: "boom"},
	}

	s := Summarize(results)
	assert.Equal(t, 3, s.TotalFiles)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Skipped)
	assert.InDelta(t, 150.0, s.OriginalMB, 0.001)
	assert.InDelta(t, 70.0, s.ConvertedMB, 0.001)
	assert.InDelta(t, 80.0, s.SavedMB, 0.001)
	assert.InDelta(t, 53.3, s.SavedPercent, 0.1)
	assert.Equal(t, 95*time.Second, s.TotalTime)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalFiles)
	assert.Zero(t, s.SavedPercent)
}

func TestRenderSummary(t *testing.T) {
	results := []model.ConversionResult{
		{Input: "/in/a.mkv", Success: true, Elapsed: time.Minute, OriginalMB: 10, ConvertedMB: 4},
		{
			Input:      "/in/sub/b.mkv",
			Success:    false,
			OriginalMB: 5,
			ErrMessage: "Error opening input\nStream map '0:s:0' matches no streams",
		},
	}

	out := RenderSummary(results)
	require.Contains(t, out, "CONVERSION SUMMARY REPORT")
	assert.Contains(t, out, "Total Files Processed:  2")
	assert.Contains(t, out, "Successful:             1")
	assert.Contains(t, out, "Failed:                 1")
	assert.Contains(t, out, "Total Time:             1m 0s")
	assert.Contains(t, out, "Space Saved:")

	// Failed listing collapses multi-line diagnostics to one line
	assert.Contains(t, out, "1. b.mkv - Error opening input Stream map")
	assert.NotContains(t, out, "matches no streams\n  ")
}

func TestRenderSummaryTruncatesLongErrors(t *testing.T) {
	long := strings.Repeat("x", 500)
	out := RenderSummary([]model.ConversionResult{
		{Input: "bad.mkv", ErrMessage: long},
	})
	require.Contains(t, out, "Failed Files:")
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "…")
}
