package timelog

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is RFC 3339 at second precision. Times are always
// formatted in UTC so the zone renders as a literal "Z".
const TimestampLayout = time.RFC3339

// TimeclockLayout matches the "%Y-%m-%d %H:%M:%S%z" stamps read by ledger-style timeclock tools.
const TimeclockLayout = "2006-01-02 15:04:05-0700"

// descriptionSeparator splits the optional description from the account on a line.
const descriptionSeparator = '\t'

// String renders the canonical "<start> <stop> <account>" line.
func (e Entry) String() string {
	var b strings.Builder
	b.Grow(2*len(TimestampLayout) + 2 + len(e.Account) + len(e.Description) + 1)
	b.WriteString(formatTimestamp(e.Start))
	b.WriteByte(' ')
	b.WriteString(formatTimestamp(e.Stop))
	b.WriteByte(' ')
	b.WriteString(e.Account)
	writeDescription(&b, e.Description)
	return b.String()
}

// String renders the canonical "<start> <account>" line.
func (r RunningEntry) String() string {
	var b strings.Builder
	b.Grow(len(TimestampLayout) + 1 + len(r.Account) + len(r.Description) + 1)
	b.WriteString(formatTimestamp(r.Start))
	b.WriteByte(' ')
	b.WriteString(r.Account)
	writeDescription(&b, r.Description)
	return b.String()
}

// Timeclock renders the entry as a clock-in/clock-out pair.
func (e Entry) Timeclock() string {
	in := fmt.Sprintf("i %s %s", e.Start.UTC().Format(TimeclockLayout), e.Account)
	if e.Description != "" {
		in += "  " + e.Description
	}
	return in + "\no " + e.Stop.UTC().Format(TimeclockLayout)
}

// ParseEntry parses a line produced by Entry.String.
func ParseEntry(line string) (Entry, error) {
	start, remainder, ok := strings.Cut(line, " ")
	if !ok {
		return Entry{}, ErrMissingStart
	}
	stop, rest, ok := strings.Cut(remainder, " ")
	if !ok {
		return Entry{}, ErrMissingStop
	}

	startTime, err := parseTimestamp(start)
	if err != nil {
		return Entry{}, err
	}
	stopTime, err := parseTimestamp(stop)
	if err != nil {
		return Entry{}, err
	}

	account, description := splitDescription(rest)
	return Entry{
		Start:       startTime,
		Stop:        stopTime,
		Account:     account,
		Description: description,
	}, nil
}

// ParseRunningEntry parses a line produced by RunningEntry.String.
func ParseRunningEntry(line string) (RunningEntry, error) {
	start, rest, ok := strings.Cut(line, " ")
	if !ok {
		return RunningEntry{}, ErrMissingStart
	}

	startTime, err := parseTimestamp(start)
	if err != nil {
		return RunningEntry{}, err
	}

	account, description := splitDescription(rest)
	return RunningEntry{
		Start:       startTime,
		Account:     account,
		Description: description,
	}, nil
}

// ValidateAccount reports whether account can be written as part of a single line.
func ValidateAccount(account string) error {
	if strings.TrimSpace(account) == "" {
		return fmt.Errorf("%w: account is required", ErrInvalidAccount)
	}
	if strings.ContainsAny(account, "\t\r\n") {
		return fmt.Errorf("%w: %q contains a tab or line break", ErrInvalidAccount, account)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return time.Time{}, &DateParseError{Value: value, Err: err}
	}
	return t.UTC(), nil
}

func writeDescription(b *strings.Builder, description string) {
	if description == "" {
		return
	}
	b.WriteByte(descriptionSeparator)
	b.WriteString(description)
}

func splitDescription(rest string) (string, string) {
	account, description, _ := strings.Cut(rest, string(descriptionSeparator))
	return account, description
}
