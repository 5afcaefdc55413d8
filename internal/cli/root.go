package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/faizmokh/jam/internal/config"
	"github.com/faizmokh/jam/internal/files"
	"github.com/faizmokh/jam/internal/timelog"
	"github.com/faizmokh/jam/internal/ui"
	"github.com/faizmokh/jam/internal/version"
)

// LogLevelEnv sets the log level when --log-level is not given.
const LogLevelEnv = "JAM_LOG"

const defaultLogLevel = "warn"

// state carries the collaborators resolved once at startup.
type state struct {
	manager *files.Manager
	tracker *timelog.Tracker
	logger  *log.Logger
	now     func() time.Time

	// setupErr is reported by commands that need the data files.
	setupErr error
}

func (s *state) ready() error {
	if s.setupErr != nil {
		return s.setupErr
	}
	if s.tracker == nil {
		return errors.New("tracker not configured")
	}
	return nil
}

func (s *state) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

type rootOptions struct {
	file        string
	runningFile string
	configPath  string
	logLevel    string
}

// NewRootCommand creates the top-level Cobra command. Bare `jam` opens the TUI
// on a terminal and lists running entries otherwise.
func NewRootCommand(ctx context.Context) *cobra.Command {
	opts := &rootOptions{}
	st := &state{}

	cmd := &cobra.Command{
		Use:   "jam",
		Short: "Track time spent on accounts from your terminal.",
		Long: `jam records when you start and stop working on an account.

Completed intervals are appended to the entries file (--file or TIMETRACKER_FILE).
Intervals still in progress live in the running file (--running-file or
TIMETRACKER_RUNNING_FILE, default ~/.tt_running).`,
		Version: version.Info(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configure(st, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.ready(); err != nil {
				return err
			}
			if isTerminal(cmd.OutOrStdout()) && isTerminal(cmd.InOrStdin()) {
				return ui.Run(ctx, st.manager, st.tracker, st.logger)
			}
			return listRunning(ctx, cmd, st, false)
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "Entries file (env "+files.EntriesFileEnv+")")
	flags.StringVar(&opts.runningFile, "running-file", "", "Running entries file (env "+files.RunningFileEnv+", default ~/"+files.DefaultRunningFileName+")")
	flags.StringVar(&opts.configPath, "config", "", "Config file (env "+config.PathEnv+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (env "+LogLevelEnv+")")

	cmd.AddCommand(
		newStartCommand(ctx, st),
		newStopCommand(ctx, st),
		newRunningCommand(ctx, st),
		newExportCommand(ctx, st),
		newVersionCommand(),
	)

	return cmd
}

// configure resolves flags, environment and config file into st. Missing data
// file paths are recorded rather than returned so commands that do not touch
// the files still run.
func (o *rootOptions) configure(st *state, stderr io.Writer) error {
	cfg, cfgPath, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(firstNonEmpty(o.logLevel, os.Getenv(LogLevelEnv), cfg.LogLevel, defaultLogLevel))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	st.logger = log.NewWithOptions(stderr, log.Options{Level: level, Prefix: "jam"})

	entriesPath, err := files.ResolvePath(o.file, files.EntriesFileEnv, cfg.File)
	if err != nil {
		return err
	}
	runningPath, err := files.ResolvePath(o.runningFile, files.RunningFileEnv, cfg.RunningFile)
	if err != nil {
		return err
	}

	manager, err := files.NewManager(entriesPath, runningPath)
	if err != nil {
		st.setupErr = err
		st.logger.Debug("files not configured", "err", err)
		return nil
	}

	st.manager = manager
	st.tracker = timelog.NewTracker(manager, st.logger)
	st.logger.Debug("resolved options",
		"file", manager.EntriesPath(),
		"running_file", manager.RunningPath(),
		"config", cfgPath,
		"log_level", level)
	return nil
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	return NewRootCommand(ctx).ExecuteContext(ctx)
}

// Main is a helper used by cmd/jam/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
