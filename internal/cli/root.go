package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/config"
	"kanban-cli/internal/format"
	"kanban-cli/internal/logging"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
	"kanban-cli/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	Backend    string
	DataDir    string
	RedisAddr  string
	IDs        string
	LogLevel   string
	LogJSON    bool
	PrettyJSON bool
	Format     string

	cfg     config.Config
	log     zerolog.Logger
	logFile io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Local-first kanban board (TUI, web and scriptable commands)",
		SilenceUsage:  true,
		SilenceErrors: true, // printed once, by writeErr or Execute
		Example: strings.TrimSpace(`
  # Start the interactive board
  kanban

  # Serve the board to a browser
  kanban web --addr 127.0.0.1:3340

  # Scriptable commands
  kanban cards add todo "Write tests"
  kanban cards move 1 done
  kanban export --format yaml
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd, cmd == cmd.Root())
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logFile != nil {
			_ = app.logFile.Close()
			app.logFile = nil
		}
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/kanban/config.toml)")
	pf.StringVar(&app.Backend, "backend", "file", "Storage backend (file|sqlite|redis|memory)")
	pf.StringVar(&app.DataDir, "data-dir", "", "Directory for the file and sqlite backends")
	pf.StringVar(&app.RedisAddr, "redis-addr", "", "Redis address for the redis backend")
	pf.StringVar(&app.IDs, "ids", "timestamp", "Card id scheme (timestamp|uuid)")
	pf.StringVar(&app.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	pf.BoolVar(&app.LogJSON, "log-json", false, "Log as JSON instead of console lines")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&app.Format, "format", envOr("KANBAN_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newCardsCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// setup loads configuration and installs the logger. The TUI owns the
// terminal, so in that mode logs go to a file in the data dir.
func (app *App) setup(cmd *cobra.Command, tuiMode bool) error {
	cfg, err := config.Load(config.LoadOptions{Path: app.ConfigPath, Flags: cmd.Flags()})
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg

	var out io.Writer = cmd.ErrOrStderr()
	if tuiMode {
		f, err := logging.OpenFile(cfg.DataDir)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.logFile = f
		out = f
	}
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Out: out})
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = logger
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, b, err := openBoard(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer st.Close()

	ctrl, err := newController(app, st, b)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(cmd.Context(), ctrl)
}

// openBoard opens the configured backend and loads the board, falling back to
// the seed board when nothing usable is stored.
func openBoard(ctx context.Context, app *App) (*store.Store, model.Board, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opt, err := app.cfg.StoreOptions()
	if err != nil {
		return nil, model.Board{}, err
	}
	backend, err := store.OpenBackend(ctx, opt)
	if err != nil {
		return nil, model.Board{}, fmt.Errorf("open %s backend: %w", opt.Kind, err)
	}
	st := store.New(backend, app.log)
	return st, st.LoadOrDefault(ctx), nil
}

func newController(app *App, p board.Persister, b model.Board) (*board.Controller, error) {
	ids, err := board.NewIDSource(app.cfg.IDs)
	if err != nil {
		return nil, err
	}
	return board.New(b, board.Options{Persister: p, IDs: ids, Log: app.log}), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err}
}

// reportedError marks an error already written to stderr.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the command tree, printing errors that no command reported
// itself (argument and flag errors from cobra).
func Execute(root *cobra.Command) error {
	err := root.Execute()
	if err == nil {
		return nil
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err.Error())
	}
	return err
}
