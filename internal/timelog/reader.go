package timelog

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/faizmokh/jam/internal/files"
)

const maxLineSize = 1 << 20

// Reader loads entries from the files tracked by a files.Manager.
type Reader struct {
	manager *files.Manager
}

// NewReader wires a reader using the shared files.Manager.
func NewReader(manager *files.Manager) *Reader {
	return &Reader{manager: manager}
}

// Running returns every running entry in file order. Reading stops at the
// first line that fails to parse.
func (r *Reader) Running(ctx context.Context) ([]RunningEntry, error) {
	if r == nil || r.manager == nil {
		return nil, errors.New("reader not initialized with file manager")
	}

	var entries []RunningEntry
	path := r.manager.RunningPath()
	err := scanLines(ctx, path, func(lineNumber int, line string) error {
		entry, err := ParseRunningEntry(line)
		if err != nil {
			return &LineError{Path: path, Line: lineNumber, Err: err}
		}
		entries = append(entries, entry)
		return nil
	})
	return entries, err
}

// Entries returns every completed entry in file order.
func (r *Reader) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := r.EachEntry(ctx, func(entry Entry) error {
		entries = append(entries, entry)
		return nil
	})
	return entries, err
}

// EachEntry streams completed entries to fn, stopping at the first error.
func (r *Reader) EachEntry(ctx context.Context, fn func(Entry) error) error {
	if r == nil || r.manager == nil {
		return errors.New("reader not initialized with file manager")
	}

	path := r.manager.EntriesPath()
	return scanLines(ctx, path, func(lineNumber int, line string) error {
		entry, err := ParseEntry(line)
		if err != nil {
			return &LineError{Path: path, Line: lineNumber, Err: err}
		}
		return fn(entry)
	})
}

// scanLines calls fn for each non-blank line of path with its 1-based line number.
func scanLines(ctx context.Context, path string, fn func(lineNumber int, line string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(lineNumber, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
