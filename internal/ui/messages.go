package ui

import "github.com/lumduan/hardsub/internal/progress"

type startMsg struct{}

type jobUpdateMsg struct {
	U progress.Update
}

type jobLogMsg struct {
	L progress.Log
}

type jobResultMsg struct {
	R progress.Result
}

type allDoneMsg struct{}
