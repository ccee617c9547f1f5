package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"shatilah/internal/config"
	"shatilah/internal/format"
	"shatilah/internal/logging"
	"shatilah/internal/state"
	"shatilah/internal/store"
	"shatilah/internal/tui"
)

type App struct {
	Dir        string
	Backend    string
	Format     string
	Locale     string
	LogLevel   string
	PrettyJSON bool

	cfg       *config.Config
	store     *store.Store
	mgr       *state.Manager
	log       zerolog.Logger
	logCloser io.Closer

	now  func() time.Time
	rand *rand.Rand
}

func NewRootCmd() *cobra.Command {
	app := &App{now: time.Now}

	cmd := &cobra.Command{
		Use:          "shatilah",
		Short:        "Weekly prayer schedule and shared prayer requests",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  shatilah

  # Today's prayers (or any day)
  shatilah day
  shatilah tuesday

  # Mark the third prayer of Tuesday as prayed
  shatilah toggle tuesday 2

  # Shared prayer requests
  shatilah requests add Pray for patience
  shatilah requests list
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Store directory (default: ./.shatilah if found, else $XDG_DATA_HOME/shatilah or ~/.shatilah)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Store backend (sqlite|file|memory)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn)")
	cmd.PersistentFlags().StringVar(&app.Locale, "locale", "", "Locale for request dates (e.g. en-US, en-GB, de-DE)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error|off)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")

	cmd.AddCommand(newDayCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newProgressCmd(app))
	cmd.AddCommand(newRequestsCmd(app))
	cmd.AddCommand(newQuoteCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// configure merges config file/env with flags. Flags win.
func (app *App) configure() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if app.Dir != "" {
		cfg.Dir = app.Dir
	}
	if app.Backend != "" {
		cfg.Backend = app.Backend
	}
	if app.Format != "" {
		cfg.Format = app.Format
	}
	if app.Locale != "" {
		cfg.Locale = app.Locale
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir, err := cfg.StoreDir()
	if err != nil {
		return fmt.Errorf("resolve store dir: %w", err)
	}
	cfg.Dir = dir
	app.cfg = cfg
	app.Format = cfg.Format
	return nil
}

// open opens the store and loads session state. Commands that only read the
// catalog never call it.
func (app *App) open(ctx context.Context) (*state.Manager, error) {
	if app.mgr != nil {
		return app.mgr, nil
	}
	backend, err := store.ParseBackend(app.cfg.Backend)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, backend, app.cfg.Dir)
	if err != nil {
		return nil, err
	}
	app.store = st

	logFile := ""
	if backend != store.BackendMemory {
		logFile = app.cfg.LogFile(app.cfg.Dir)
	}
	logger, closer, logErr := logging.New(logging.Options{Level: app.cfg.Log.Level, File: logFile, Writer: io.Discard})
	app.log, app.logCloser = logger, closer
	if logErr != nil {
		// Logging problems never stop the app.
		app.log = zerolog.Nop()
	}

	app.mgr = state.New(st.KV,
		state.WithClock(app.now),
		state.WithLocale(app.cfg.Locale),
		state.WithLogger(app.log),
	)
	rep := app.mgr.Load()
	app.log.Debug().
		Str("backend", string(backend)).
		Str("dir", app.cfg.Dir).
		Str("progress", string(rep.Progress)).
		Str("requests", string(rep.Requests)).
		Msg("state loaded")
	return app.mgr, nil
}

func (app *App) close() error {
	var err error
	if app.store != nil {
		err = app.store.Close()
		app.store = nil
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
	app.mgr = nil
	return err
}

func runTUI(cmd *cobra.Command, app *App) error {
	mgr, err := app.open(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(mgr, tui.Options{
		Now:       app.now,
		Rand:      app.rand,
		Glyphs:    app.cfg.TUI.Glyphs,
		ShowQuote: !app.cfg.TUI.HideStartQuote,
		Logger:    app.log,
	})
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
