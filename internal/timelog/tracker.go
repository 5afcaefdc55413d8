package timelog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/faizmokh/jam/internal/files"
)

// Tracker implements the start, stop, running and export operations on top
// of a Reader and Writer sharing one files.Manager.
type Tracker struct {
	manager *files.Manager
	reader  *Reader
	writer  *Writer
	logger  *log.Logger
}

// NewTracker wires a tracker. A nil logger discards all output.
func NewTracker(manager *files.Manager, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{
		manager: manager,
		reader:  NewReader(manager),
		writer:  NewWriter(manager),
		logger:  logger,
	}
}

// Running lists the running entries in file order.
func (t *Tracker) Running(ctx context.Context) ([]RunningEntry, error) {
	entries, err := t.reader.Running(ctx)
	if err != nil {
		return nil, fmt.Errorf("read running file: %w", err)
	}
	return entries, nil
}

// Start begins tracking account at now. A missing running file counts as no
// running entries.
func (t *Tracker) Start(ctx context.Context, account string, now time.Time) (RunningEntry, error) {
	if err := ValidateAccount(account); err != nil {
		return RunningEntry{}, err
	}

	unlock, err := t.lock()
	if err != nil {
		return RunningEntry{}, err
	}
	defer unlock()

	entries, err := t.reader.Running(ctx)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return RunningEntry{}, fmt.Errorf("read running file: %w", err)
	}
	if err := checkNotRunning(entries, account); err != nil {
		return RunningEntry{}, err
	}

	entry := RunningEntry{Start: now.UTC(), Account: account}
	if err := t.writer.AppendRunning(ctx, entry); err != nil {
		return RunningEntry{}, fmt.Errorf("write running file: %w", err)
	}

	t.logger.Debug("started entry", "account", account, "start", entry.Start, "running", len(entries)+1)
	return entry, nil
}

// Stop ends the running entry selected by account (or the only running entry
// when account is empty). The completed entry is appended to the entries file
// before the running file is rewritten with the remaining entries.
func (t *Tracker) Stop(ctx context.Context, account string, now time.Time) (Entry, []RunningEntry, error) {
	unlock, err := t.lock()
	if err != nil {
		return Entry{}, nil, err
	}
	defer unlock()

	entries, err := t.reader.Running(ctx)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("read running file: %w", err)
	}

	entry, remaining, err := StopRunning(entries, account, now)
	if err != nil {
		return Entry{}, nil, err
	}

	if err := t.writer.AppendEntry(ctx, entry); err != nil {
		return Entry{}, nil, fmt.Errorf("write entries file: %w", err)
	}
	if err := t.writer.RewriteRunning(ctx, remaining); err != nil {
		return Entry{}, nil, fmt.Errorf("write running file: %w", err)
	}

	t.logger.Debug("stopped entry", "account", entry.Account, "duration", entry.Duration(), "running", len(remaining))
	return entry, remaining, nil
}

// Export writes every completed entry to w in timeclock format, separated by
// newlines. It returns the number of entries written.
func (t *Tracker) Export(ctx context.Context, w io.Writer) (int, error) {
	out := bufio.NewWriter(w)
	count := 0
	err := t.reader.EachEntry(ctx, func(entry Entry) error {
		if count > 0 {
			if err := out.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := out.WriteString(entry.Timeclock()); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("export entries: %w", err)
	}
	if err := out.Flush(); err != nil {
		return 0, fmt.Errorf("export entries: %w", err)
	}

	t.logger.Debug("exported entries", "count", count)
	return count, nil
}

// ExportFile exports to a new file at path. It never overwrites an existing
// file and removes the partial output when the export fails.
func (t *Tracker) ExportFile(ctx context.Context, path string) (int, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		return 0, fmt.Errorf("create output file: %w", err)
	}

	count, err := t.Export(ctx, file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close output file: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return count, nil
}

func (t *Tracker) lock() (func(), error) {
	release, err := t.manager.LockRunning()
	if err != nil {
		return nil, err
	}
	t.logger.Debug("acquired running file lock", "path", t.manager.RunningPath())
	return func() {
		if err := release(); err != nil {
			t.logger.Warn("release running file lock", "err", err)
		}
	}, nil
}
