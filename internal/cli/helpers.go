package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/faizmokh/jam/internal/timelog"
)

// joinAccount turns the positional arguments into one account label.
func joinAccount(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// formatRunning renders "<start-rfc3339> <account>" for listings.
func formatRunning(entry timelog.RunningEntry) string {
	return entry.Start.UTC().Format(timelog.TimestampLayout) + " " + entry.Account
}

func formatElapsed(d time.Duration) string {
	seconds := int64(d.Round(time.Second) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func plural(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}
