package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stepcheck/internal/driver"
	"stepcheck/internal/source"
	"stepcheck/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.DirResult
	err     error
}

// runDirWithUI validates dir in the background while a Bubble Tea program
// draws progress on stderr. The validation result wins over a UI failure.
func runDirWithUI(ctx context.Context, dir string, files []string, opts driver.Options, jobs int) (*source.FileSet, []driver.DirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		fs, results, err := driver.ValidateDir(ctx, dir, opts, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	display := func(path string) string {
		return (&source.File{Path: path}).FormatPath("relative", dir)
	}
	model := ui.NewProgressModel("validate "+dir, files, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// после выхода из UI (q, ошибка) дочитываем события, чтобы проверка
	// не встала на полном канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return outcome.fs, outcome.results, outcome.err
	}
	return outcome.fs, outcome.results, uiErr
}
