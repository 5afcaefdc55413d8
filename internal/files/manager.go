package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// ErrEntriesPathRequired is returned when no entries file was configured.
var ErrEntriesPathRequired = errors.New("entries file is required (use --file or " + EntriesFileEnv + ")")

// Manager centralizes where the entries and running files live on disk.
type Manager struct {
	entriesPath string
	runningPath string
}

// NewManager constructs a Manager for the two files. entriesPath is required;
// an empty runningPath falls back to ~/.tt_running.
func NewManager(entriesPath, runningPath string) (*Manager, error) {
	if entriesPath == "" {
		return nil, ErrEntriesPathRequired
	}

	var err error
	if runningPath == "" {
		runningPath, err = DefaultRunningPath()
		if err != nil {
			return nil, fmt.Errorf("resolve running file: %w", err)
		}
	}

	entriesAbs, err := filepath.Abs(entriesPath)
	if err != nil {
		return nil, err
	}
	runningAbs, err := filepath.Abs(runningPath)
	if err != nil {
		return nil, err
	}

	return &Manager{entriesPath: entriesAbs, runningPath: runningAbs}, nil
}

// EntriesPath returns the append-only log of completed entries.
func (m *Manager) EntriesPath() string {
	return m.entriesPath
}

// RunningPath returns the file holding running entries.
func (m *Manager) RunningPath() string {
	return m.runningPath
}

// EnsureDir creates the parent directory of path.
func (m *Manager) EnsureDir(path string) error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	return nil
}

// OpenAppend opens path for appending, creating it and its directory if needed.
func (m *Manager) OpenAppend(path string) (*os.File, error) {
	if err := m.EnsureDir(path); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	return file, nil
}

// LockRunning takes an exclusive lock guarding read-modify-write cycles on
// the running file. The returned function releases it.
func (m *Manager) LockRunning() (func() error, error) {
	if m == nil {
		return nil, errors.New("files.Manager is nil")
	}
	if err := m.EnsureDir(m.runningPath); err != nil {
		return nil, err
	}

	file, err := lockFile(m.runningPath + ".lock")
	if err != nil {
		return nil, fmt.Errorf("lock running file: %w", err)
	}
	return func() error { return unlockFile(file) }, nil
}
