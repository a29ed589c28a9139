package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fstrlit/internal/driver"
	"fstrlit/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// runParseDirWithUI parses dir while a progress view renders driver events
// on stderr; stdout stays free for the command's own output.
func runParseDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*driver.DirResult, error) {
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если модель вышла раньше, воркеры не должны встать на полном канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
