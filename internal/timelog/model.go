package timelog

import "time"

// Entry is a completed interval recorded in the entries file.
type Entry struct {
	Start       time.Time
	Stop        time.Time
	Account     string
	Description string
}

// Duration is the time between start and stop.
func (e Entry) Duration() time.Duration {
	return e.Stop.Sub(e.Start)
}

// RunningEntry is an interval that has been started but not stopped yet.
type RunningEntry struct {
	Start       time.Time
	Account     string
	Description string
}

// Complete closes the running entry at now.
func (r RunningEntry) Complete(now time.Time) Entry {
	return Entry{
		Start:       r.Start,
		Stop:        now.UTC(),
		Account:     r.Account,
		Description: r.Description,
	}
}

// Elapsed reports how long the entry has been running at now.
func (r RunningEntry) Elapsed(now time.Time) time.Duration {
	return now.Sub(r.Start)
}
