package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/faizmokh/jam/internal/files"
	"github.com/faizmokh/jam/internal/timelog"
)

// Run starts the interactive view and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, manager *files.Manager, tracker *timelog.Tracker, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var watcher *fileWatcher
	if err := manager.EnsureDir(manager.RunningPath()); err != nil {
		logger.Warn("live reload disabled", "err", err)
	} else if w, err := newFileWatcher(manager.RunningPath()); err != nil {
		logger.Warn("live reload disabled", "err", err)
	} else {
		watcher = w
		defer watcher.Close()
	}

	program := tea.NewProgram(NewModel(ctx, tracker, watcher, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
