// Package ui renders the interactive batch view with one panel per file,
// driven by reporter events from the conversion pipeline.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumduan/hardsub/internal/model"
)

// Run drives the batch through the TUI and returns the per-file results in
// input order. Files never started (quit or interrupt) yield no result.
func Run(ctx context.Context, files []string, opts Options) ([]model.ConversionResult, error) {
	m := NewModel(ctx, files, opts)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(Model)
	if !ok {
		return m.sink.collect(len(files)), nil
	}
	return fm.sink.collect(len(files)), nil
}
