package timelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runningFixture() []RunningEntry {
	return []RunningEntry{
		{Start: time.Date(2021, 7, 3, 9, 0, 0, 0, time.UTC), Account: "A"},
		{Start: time.Date(2021, 7, 3, 10, 0, 0, 0, time.UTC), Account: "B"},
		{Start: time.Date(2021, 7, 3, 11, 0, 0, 0, time.UTC), Account: "C"},
	}
}

func TestSelectRunningEmpty(t *testing.T) {
	_, err := SelectRunning(nil, "")
	assert.ErrorIs(t, err, ErrNoRunningEntries)

	_, err = SelectRunning(nil, "A")
	assert.ErrorIs(t, err, ErrNoRunningEntries)
}

func TestSelectRunningSoleEntry(t *testing.T) {
	index, err := SelectRunning(runningFixture()[:1], "")
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestSelectRunningAmbiguous(t *testing.T) {
	_, err := SelectRunning(runningFixture()[:2], "")
	assert.ErrorIs(t, err, ErrAmbiguousStop)
}

func TestSelectRunningAccountNotFound(t *testing.T) {
	_, err := SelectRunning(runningFixture(), "missing")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.EqualError(t, err, `no running entries for the account "missing" were found`)
}

func TestSelectRunningFirstMatchWins(t *testing.T) {
	entries := append(runningFixture(), RunningEntry{
		Start:   time.Date(2021, 7, 3, 12, 0, 0, 0, time.UTC),
		Account: "B",
	})

	index, err := SelectRunning(entries, "B")
	require.NoError(t, err)
	assert.Equal(t, 1, index)
}

func TestStopRunningPreservesOrder(t *testing.T) {
	entries := runningFixture()
	now := time.Date(2021, 7, 3, 12, 0, 0, 0, time.UTC)

	entry, remaining, err := StopRunning(entries, "B", now)
	require.NoError(t, err)

	assert.Equal(t, Entry{
		Start:   time.Date(2021, 7, 3, 10, 0, 0, 0, time.UTC),
		Stop:    now,
		Account: "B",
	}, entry)
	assert.Equal(t, []RunningEntry{entries[0], entries[2]}, remaining)
	assert.Len(t, entries, 3, "input must not be modified")
	assert.Equal(t, "B", entries[1].Account)
}

func TestStopRunningLastEntryLeavesEmpty(t *testing.T) {
	entries := runningFixture()[:1]

	entry, remaining, err := StopRunning(entries, "", entries[0].Start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "A", entry.Account)
	assert.Empty(t, remaining)
}

func TestCheckNotRunning(t *testing.T) {
	assert.NoError(t, checkNotRunning(runningFixture(), "D"))

	err := checkNotRunning(runningFixture(), "C")
	assert.ErrorIs(t, err, ErrDuplicateRunning)
	assert.EqualError(t, err, `there is already a running entry for the account "C"`)
}
