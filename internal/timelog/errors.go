package timelog

import (
	"errors"
	"fmt"
)

// ErrMissingStart is returned when a line has no space separating the start timestamp.
var ErrMissingStart = errors.New("missing start date")

// ErrMissingStop is returned when an entry line has a start but no stop timestamp.
var ErrMissingStop = errors.New("missing stop date")

// ErrDuplicateRunning indicates the account already has a running entry.
var ErrDuplicateRunning = errors.New("there is already a running entry for the account")

// ErrNoRunningEntries is returned when stopping while nothing is running.
var ErrNoRunningEntries = errors.New("no running entries")

// ErrAccountNotFound is returned when no running entry matches the requested account.
var ErrAccountNotFound = errors.New("no running entries for the account were found")

// ErrAmbiguousStop is returned when stopping without an account while several entries run.
var ErrAmbiguousStop = errors.New("account must be specified when there is more than one running entry")

// ErrOutputExists prevents export from overwriting an existing file.
var ErrOutputExists = errors.New("there is already a file at the output path")

// ErrInvalidAccount rejects accounts that cannot be stored on a single line.
var ErrInvalidAccount = errors.New("invalid account")

// DateParseError reports a timestamp token that is not valid RFC 3339.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// LineError ties a parse failure to its position in a file.
type LineError struct {
	Path string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// accountError attaches the account to one of the sentinel errors while
// keeping errors.Is working.
type accountError struct {
	sentinel error
	account  string
}

func (e *accountError) Error() string {
	switch e.sentinel {
	case ErrDuplicateRunning:
		return fmt.Sprintf("there is already a running entry for the account %q", e.account)
	case ErrAccountNotFound:
		return fmt.Sprintf("no running entries for the account %q were found", e.account)
	default:
		return fmt.Sprintf("%v: %q", e.sentinel, e.account)
	}
}

func (e *accountError) Unwrap() error { return e.sentinel }
