package main

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"logdoc/internal/driver"
	"logdoc/internal/levels"
	"logdoc/internal/scan"
	"logdoc/internal/ui"
)

// runWithUI runs the generator in an errgroup goroutine and renders its
// progress events until the event channel is closed.
func runWithUI(ctx context.Context, title string, opts driver.Options) (*driver.Summary, error) {
	lvls := opts.Levels
	if len(lvls) == 0 {
		lvls = levels.All()
	}
	// число файлов нужно только для полосы прогресса
	filesPerPass := 0
	if files, err := scan.ListFiles(opts.SourceRoot, nil, nil); err == nil {
		filesPerPass = len(files)
	}

	events := make(chan scan.Event, 256)
	var sum *driver.Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		o := opts
		o.Progress = scan.ChannelSink{Ch: events}
		var err error
		sum, err = driver.Generate(gctx, o)
		return err
	})

	model := ui.NewProgressModel(title, lvls, filesPerPass, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(gctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше генератора: не даём ему заблокироваться на канале
	go func() {
		for range events {
		}
	}()

	err := g.Wait()
	if err != nil {
		return nil, err
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return sum, uiErr
	}
	return sum, nil
}
