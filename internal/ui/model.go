package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/faizmokh/jam/internal/timelog"
)

// Model owns Bubble Tea state for the running-entries view.
type Model struct {
	ctx     context.Context
	tracker *timelog.Tracker
	watcher *fileWatcher
	logger  *log.Logger
	clock   func() time.Time

	entries  []timelog.RunningEntry
	selected int
	now      time.Time
	width    int

	mode  mode
	input textinput.Model

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeStart
	modeConfirmStop
)

const (
	loadingStatus = "Loading running entries..."
	refreshStatus = "Refreshing..."
)

type entriesLoadedMsg struct {
	entries []timelog.RunningEntry
	err     error
}

type startResultMsg struct {
	entry timelog.RunningEntry
	err   error
}

type stopResultMsg struct {
	entry timelog.Entry
	err   error
}

type tickMsg time.Time

// NewModel seeds a Bubble Tea model with required collaborators. watcher may
// be nil, in which case the view only refreshes on demand.
func NewModel(ctx context.Context, tracker *timelog.Tracker, watcher *fileWatcher, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "account"
	input.Prompt = "> "
	input.CharLimit = 200

	return Model{
		ctx:        ctx,
		tracker:    tracker,
		watcher:    watcher,
		logger:     logger,
		clock:      time.Now,
		now:        time.Now(),
		mode:       modeNormal,
		input:      input,
		loading:    true,
		statusLine: loadingStatus,
	}
}

// Init loads the running entries and starts the clock and file watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadEntriesCmd(), tick()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.next())
	}
	return tea.Batch(cmds...)
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case fileChangedMsg:
		m.logger.Debug("running file changed, reloading")
		m.loading = true
		return m, tea.Batch(m.loadEntriesCmd(), m.watcher.next())
	case watchErrMsg:
		m.logger.Warn("watch running file", "err", msg.err)
		return m, m.watcher.next()
	case entriesLoadedMsg:
		return m.handleEntriesLoaded(msg)
	case startResultMsg:
		return m.handleStartResult(msg)
	case stopResultMsg:
		return m.handleStopResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeStart:
		return m.handleInputKey(msg)
	case modeConfirmStop:
		return m.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.statusLine = fmt.Sprintf("Selected entry %d of %d", m.selected+1, len(m.entries))
			m.errorLine = ""
		}
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.statusLine = fmt.Sprintf("Selected entry %d of %d", m.selected+1, len(m.entries))
			m.errorLine = ""
		}
	case "r":
		return m.reload()
	case "a", "n":
		return m.beginStart()
	case "s", "x":
		if len(m.entries) == 0 || m.loading {
			return m, nil
		}
		m.mode = modeConfirmStop
		m.statusLine = ""
		m.errorLine = ""
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitStart()
	case tea.KeyEsc:
		return m.cancelInput("Cancelled.")
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		return m.stopSelected()
	case "n", "N", "esc":
		return m.cancelInput("Stop cancelled.")
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) beginStart() (tea.Model, tea.Cmd) {
	m.mode = modeStart
	m.input.Reset()
	m.statusLine = ""
	m.errorLine = ""
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) submitStart() (tea.Model, tea.Cmd) {
	account := strings.TrimSpace(m.input.Value())
	if err := timelog.ValidateAccount(account); err != nil {
		m.errorLine = "Account cannot be empty."
		return m, nil
	}

	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
	m.statusLine = fmt.Sprintf("Starting %q...", account)
	m.errorLine = ""
	return m, m.startCmd(account)
}

func (m Model) cancelInput(message string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
	m.statusLine = message
	m.errorLine = ""
	return m, nil
}

func (m Model) stopSelected() (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	if m.selected < 0 || m.selected >= len(m.entries) {
		return m.cancelInput("No entry selected.")
	}
	account := m.entries[m.selected].Account
	m.statusLine = fmt.Sprintf("Stopping %q...", account)
	m.errorLine = ""
	return m, m.stopCmd(account)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.statusLine = refreshStatus
	m.errorLine = ""
	return m, m.loadEntriesCmd()
}

func (m Model) handleEntriesLoaded(msg entriesLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load running entries: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.entries = msg.entries
	if m.selected >= len(m.entries) {
		m.selected = len(m.entries) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if m.statusLine == loadingStatus || m.statusLine == refreshStatus {
		m.statusLine = fmt.Sprintf("%d running.", len(m.entries))
	}
	return m, nil
}

func (m Model) handleStartResult(msg startResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Start failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.statusLine = fmt.Sprintf("Started %q.", msg.entry.Account)
	m.errorLine = ""
	m.loading = true
	return m, m.loadEntriesCmd()
}

func (m Model) handleStopResult(msg stopResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Stop failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.statusLine = fmt.Sprintf("Stopped %q after %s.", msg.entry.Account, formatElapsed(msg.entry.Duration()))
	m.errorLine = ""
	m.loading = true
	return m, m.loadEntriesCmd()
}

func (m Model) loadEntriesCmd() tea.Cmd {
	tracker := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := tracker.Running(ctx)
		if errors.Is(err, fs.ErrNotExist) {
			return entriesLoadedMsg{}
		}
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) startCmd(account string) tea.Cmd {
	tracker := m.tracker
	ctx := m.ctx
	clock := m.clock
	return func() tea.Msg {
		entry, err := tracker.Start(ctx, account, clock())
		return startResultMsg{entry: entry, err: err}
	}
}

func (m Model) stopCmd(account string) tea.Cmd {
	tracker := m.tracker
	ctx := m.ctx
	clock := m.clock
	return func() tea.Msg {
		entry, _, err := tracker.Stop(ctx, account, clock())
		return stopResultMsg{entry: entry, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Running entries"))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.entries) == 0:
		b.WriteString(mutedStyle.Render("Loading..."))
		b.WriteByte('\n')
	case len(m.entries) == 0:
		b.WriteString(mutedStyle.Render("(nothing running)"))
		b.WriteByte('\n')
	default:
		width := m.accountWidth()
		for i, entry := range m.entries {
			row := fmt.Sprintf("%s  %s  %s",
				entry.Start.Local().Format("2006-01-02 15:04"),
				runewidth.FillRight(runewidth.Truncate(entry.Account, width, "…"), width),
				formatElapsed(entry.Elapsed(m.now)))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString("  " + row)
			}
			b.WriteByte('\n')
		}
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	switch m.mode {
	case modeStart:
		b.WriteString("\nStart tracking (Enter to start, Esc to cancel):\n")
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	case modeConfirmStop:
		if m.selected < len(m.entries) {
			b.WriteString(fmt.Sprintf("\nStop %q? (y/n, Esc to cancel)\n", m.entries[m.selected].Account))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k select  a start  s stop  r reload  q quit"))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) accountWidth() int {
	width := 30
	if m.width > 0 {
		width = m.width - 36
	}
	if width < 10 {
		width = 10
	}
	if width > 60 {
		width = 60
	}
	return width
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
