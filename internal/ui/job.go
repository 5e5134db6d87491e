package ui

import (
	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/lumduan/hardsub/internal/progress"
)

type jobState struct {
	id   string
	file string

	stage  progress.Stage
	status string
	err    error
	done   bool

	outputPath string
	bytes      int64
	percent    float64 // -1 means unknown
	speed      string

	spinner spinner.Model
	bar     bubblesprogress.Model

	started bool

	// Recent encoder stderr, kept small
	logsRing []string
}

func newJobState(id, file string, styles Styles) jobState {
	sp := spinner.New()
	sp.Style = styles.Spinner
	bar := bubblesprogress.New(
		bubblesprogress.WithDefaultGradient(),
		bubblesprogress.WithWidth(40),
	)
	return jobState{
		id:      id,
		file:    file,
		stage:   progress.StageQueued,
		status:  "Queued",
		percent: -1,
		spinner: sp,
		bar:     bar,
	}
}
