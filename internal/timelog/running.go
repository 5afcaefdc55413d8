package timelog

import "time"

// FindRunning returns the index of the first entry for account, or -1.
func FindRunning(entries []RunningEntry, account string) int {
	for i, entry := range entries {
		if entry.Account == account {
			return i
		}
	}
	return -1
}

// SelectRunning picks the entry a stop request refers to. With an account the
// first matching entry wins; without one there must be exactly one entry.
func SelectRunning(entries []RunningEntry, account string) (int, error) {
	if len(entries) == 0 {
		return -1, ErrNoRunningEntries
	}

	if account != "" {
		index := FindRunning(entries, account)
		if index < 0 {
			return -1, &accountError{sentinel: ErrAccountNotFound, account: account}
		}
		return index, nil
	}

	if len(entries) != 1 {
		return -1, ErrAmbiguousStop
	}
	return 0, nil
}

// StopRunning removes the selected entry and returns it completed at now along
// with the remaining entries in their original order. The input slice is not
// modified.
func StopRunning(entries []RunningEntry, account string, now time.Time) (Entry, []RunningEntry, error) {
	index, err := SelectRunning(entries, account)
	if err != nil {
		return Entry{}, nil, err
	}

	remaining := make([]RunningEntry, 0, len(entries)-1)
	remaining = append(remaining, entries[:index]...)
	remaining = append(remaining, entries[index+1:]...)

	return entries[index].Complete(now), remaining, nil
}

// checkNotRunning enforces one running entry per account.
func checkNotRunning(entries []RunningEntry, account string) error {
	if FindRunning(entries, account) >= 0 {
		return &accountError{sentinel: ErrDuplicateRunning, account: account}
	}
	return nil
}
