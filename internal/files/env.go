package files

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EntriesFileEnv names the completed-entries log.
	EntriesFileEnv = "TIMETRACKER_FILE"
	// RunningFileEnv overrides where running entries are kept.
	RunningFileEnv = "TIMETRACKER_RUNNING_FILE"
	// DefaultRunningFileName is created under the user's home directory.
	DefaultRunningFileName = ".tt_running"
)

// ResolvePath picks the first non-empty value of explicit, the environment
// variable envKey and fallback, expanding a leading ~. It returns "" when all
// three are empty.
func ResolvePath(explicit, envKey, fallback string) (string, error) {
	candidates := []string{explicit}
	if envKey != "" {
		if value, ok := os.LookupEnv(envKey); ok {
			candidates = append(candidates, value)
		}
	}
	candidates = append(candidates, fallback)

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		return ExpandPath(candidate)
	}
	return "", nil
}

// DefaultRunningPath returns ~/.tt_running.
func DefaultRunningPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultRunningFileName), nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}
