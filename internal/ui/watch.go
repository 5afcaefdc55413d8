package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileChangedMsg struct{}

type watchErrMsg struct {
	err error
}

// fileWatcher reports changes to a single file. The parent directory is
// watched because rewrites replace the file through a rename.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

func newFileWatcher(path string) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	clean := filepath.Clean(path)
	if err := w.Add(filepath.Dir(clean)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(clean), err)
	}

	return &fileWatcher{watcher: w, path: clean}, nil
}

// next blocks until the watched file changes. It returns nil once the
// watcher is closed.
func (fw *fileWatcher) next() tea.Cmd {
	if fw == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return nil
				}
				if fw.matches(event) {
					return fileChangedMsg{}
				}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (fw *fileWatcher) matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (fw *fileWatcher) Close() error {
	if fw == nil {
		return nil
	}
	return fw.watcher.Close()
}
