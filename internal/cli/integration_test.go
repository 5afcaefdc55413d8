package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jam/internal/files"
	"github.com/faizmokh/jam/internal/timelog"
)

func TestCLIWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	st, mgr := newTestState(t)

	// 1. Start tracking at 10:00.
	setClock(st, "2021-07-03T10:00:00Z")
	startOut := executeCommand(t, newStartCommand(ctx, st), "writing")
	assertContains(t, startOut, `Started "writing" at 2021-07-03T10:00:00Z`)
	assertFileEquals(t, mgr.RunningPath(), "2021-07-03T10:00:00Z writing\n")

	// 2. The running listing shows the entry.
	runningOut := executeCommand(t, newRunningCommand(ctx, st))
	assertContains(t, runningOut, "2021-07-03T10:00:00Z writing")

	// 3. Stop at 13:00 without naming the account.
	setClock(st, "2021-07-03T13:00:00Z")
	stopOut := executeCommand(t, newStopCommand(ctx, st))
	assertContains(t, stopOut, `Stopped "writing" after 3h 0m 0s`)
	assertNotContains(t, stopOut, "still running")
	assertFileEquals(t, mgr.EntriesPath(), "2021-07-03T10:00:00Z 2021-07-03T13:00:00Z writing\n")
	assertFileEquals(t, mgr.RunningPath(), "")

	// 4. Export to a new timeclock file.
	out := filepath.Join(t.TempDir(), "export.timeclock")
	exportOut := executeCommand(t, newExportCommand(ctx, st), "--output", out)
	assertContains(t, exportOut, "Exported 1 entry to "+out)
	assertFileEquals(t, out, "i 2021-07-03 10:00:00+0000 writing\no 2021-07-03 13:00:00+0000")
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out, err := executeCommandErr(cmd, args...)
	if err != nil {
		t.Fatalf("cmd.Execute(%q): %v\n%s", args, err, out)
	}
	return out
}

func executeCommandErr(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}

func assertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile(%s): %v", path, err)
	}
	if string(data) != want {
		t.Fatalf("%s = %q, want %q", filepath.Base(path), string(data), want)
	}
}

func newTestState(t *testing.T) (*state, *files.Manager) {
	t.Helper()
	base := t.TempDir()
	mgr, err := files.NewManager(filepath.Join(base, "entries.log"), filepath.Join(base, "running"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	st := &state{
		manager: mgr,
		tracker: timelog.NewTracker(mgr, nil),
	}
	return st, mgr
}

func setClock(st *state, value string) {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	st.now = func() time.Time { return now }
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
}
