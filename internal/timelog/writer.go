package timelog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faizmokh/jam/internal/files"
)

// Writer appends to the entries file and maintains the running file.
type Writer struct {
	manager *files.Manager
}

// NewWriter wires the dependencies required to modify the tracked files.
func NewWriter(manager *files.Manager) *Writer {
	return &Writer{manager: manager}
}

// AppendEntry adds a completed entry to the end of the entries file.
func (w *Writer) AppendEntry(ctx context.Context, entry Entry) error {
	if w == nil || w.manager == nil {
		return errors.New("writer not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.appendLine(w.manager.EntriesPath(), entry.String())
}

// AppendRunning adds a running entry to the end of the running file.
func (w *Writer) AppendRunning(ctx context.Context, entry RunningEntry) error {
	if w == nil || w.manager == nil {
		return errors.New("writer not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.appendLine(w.manager.RunningPath(), entry.String())
}

// RewriteRunning replaces the running file with entries, one per line.
func (w *Writer) RewriteRunning(ctx context.Context, entries []RunningEntry) error {
	if w == nil || w.manager == nil {
		return errors.New("writer not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.String())
	}

	path := w.manager.RunningPath()
	if err := w.manager.EnsureDir(path); err != nil {
		return err
	}
	return writeLines(path, lines)
}

func (w *Writer) appendLine(path, line string) error {
	terminated, err := endsWithNewline(path)
	if err != nil {
		return err
	}

	file, err := w.manager.OpenAppend(path)
	if err != nil {
		return err
	}

	// Files written by older versions may lack the final newline.
	if !terminated {
		line = "\n" + line
	}
	if _, err := file.WriteString(line + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func endsWithNewline(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return last[0] == '\n', nil
}

// writeLines atomically replaces path with lines. An empty slice produces an
// empty file.
func writeLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, ".jam-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}

	if _, err := temp.WriteString(content); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err == nil {
		if err := os.Chmod(temp.Name(), info.Mode()); err != nil {
			return err
		}
	}

	return os.Rename(temp.Name(), path)
}
