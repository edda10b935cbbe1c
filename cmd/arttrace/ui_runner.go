package main

import (
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"arttrace/internal/pipeline"
	"arttrace/internal/ui"
)

// renamingSink maps event paths to the names the progress view shows.
type renamingSink struct {
	next  pipeline.ProgressSink
	names map[string]string
}

func (s renamingSink) OnEvent(evt pipeline.Event) {
	if name, ok := s.names[evt.File]; ok {
		evt.File = name
	}
	s.next.OnEvent(evt)
}

// runWithUI runs work in the background while a progress view draws on
// out. The view ends once work returns.
func runWithUI[T any](out io.Writer, title string, files []string, lastStage pipeline.Stage, work func(sink pipeline.ProgressSink) T) (T, error) {
	names, byPath := pipeline.DisplayNames(files, ".")
	lookup := make(map[string]string, 2*len(byPath))
	for path, name := range byPath {
		lookup[path] = name
		// the driver reports loaded files by their cleaned slash path
		lookup[filepath.ToSlash(filepath.Clean(path))] = name
	}

	events := make(chan pipeline.Event, 256)
	done := make(chan T, 1)
	go func() {
		sink := renamingSink{next: pipeline.ChannelSink{Ch: events}, names: lookup}
		pipeline.EmitQueued(sink, files)
		done <- work(sink)
		close(events)
	}()

	model := ui.NewProgressModel(title, names, lastStage, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// keep the worker unblocked if the view stopped early
	go func() {
		for range events {
		}
	}()
	result := <-done
	return result, uiErr
}
