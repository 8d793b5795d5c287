// Package main provides the CLI entrypoint for worldview.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/worldview/internal/config"
	"github.com/verte-zerg/worldview/internal/logging"
	"github.com/verte-zerg/worldview/internal/restcountries"
	"github.com/verte-zerg/worldview/internal/store"
	"github.com/verte-zerg/worldview/internal/theme"
	"github.com/verte-zerg/worldview/internal/tui"
)

var (
	flagBaseURL  string
	flagTimeout  time.Duration
	flagFallback string
	flagLogLevel string
	flagVerbose  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "worldview",
		Short:         "Browse the countries of the world",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runExplorerCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagBaseURL, "base-url", config.DefaultBaseURL, "REST Countries API endpoint")
	flags.DurationVar(&flagTimeout, "timeout", config.DefaultTimeout, "request timeout")
	flags.StringVar(&flagFallback, "fallback", "", "JSON dataset used when the API is unavailable (default: bundled)")
	flags.StringVar(&flagLogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "log to stderr instead of the log file")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newRegionsCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app holds the resources shared by every command.
type app struct {
	settings config.Settings
	log      *logging.Logger
	service  *restcountries.Service
	closers  []func() error
}

// setup merges the config file with explicitly set flags, validates the
// result and builds the logger and data service.
func setup(cmd *cobra.Command, allowStderr bool) (*app, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	a := &app{settings: settings}

	log, err := a.openLogger(cmd.ErrOrStderr(), allowStderr && flagVerbose)
	if err != nil {
		return nil, err
	}
	a.log = log

	var fallback restcountries.Loader = restcountries.BundledLoader{}
	if settings.Fallback != "" {
		fallback = restcountries.FileLoader{Path: settings.Fallback}
	}
	a.service = restcountries.NewService(restcountries.Options{
		Client:   restcountries.NewClient(settings.BaseURL, settings.Timeout, nil),
		Fallback: fallback,
		Logger:   log,
	})
	return a, nil
}

func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	settings := config.DefaultSettings()
	if err := settings.ApplyFile(fileCfg); err != nil {
		return config.Settings{}, err
	}
	applyStringFlag(cmd, "base-url", &settings.BaseURL, flagBaseURL)
	applyDurationFlag(cmd, "timeout", &settings.Timeout, flagTimeout)
	applyStringFlag(cmd, "fallback", &settings.Fallback, flagFallback)
	applyStringFlag(cmd, "log-level", &settings.LogLevel, flagLogLevel)
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func (a *app) openLogger(stderr io.Writer, toStderr bool) (*logging.Logger, error) {
	if toStderr {
		return logging.New(logging.Options{
			Level:         a.settings.LogLevel,
			HumanReadable: true,
			Writer:        stderr,
		})
	}
	file, err := logging.OpenFile(a.settings.LogFile)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, file.Close)
	return logging.New(logging.Options{Level: a.settings.LogLevel, Writer: file})
}

// openStore opens the preference database.
func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	a.closers = append(a.closers, st.Close)
	return st, nil
}

// themes resolves the initial theme against the preference store.
func (a *app) themes(ctx context.Context, st theme.PreferenceStore) (*theme.Manager, error) {
	def, err := theme.Parse(a.settings.Theme)
	if err != nil {
		return nil, err
	}
	m := theme.NewManager(theme.Options{
		Store:   st,
		Detect:  detectSystemTheme,
		Default: def,
		Logger:  a.log,
	})
	m.Init(ctx)
	return m, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if cerr := a.closers[i](); cerr != nil {
			logErrf("failed to close resource: %v\n", cerr)
		}
	}
}

var detectStdout = theme.TerminalDetector(os.Stdout)

// detectSystemTheme only queries the terminal when stdout is one.
func detectSystemTheme() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return detectStdout()
}

func runExplorerCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	st, err := a.openStore()
	if err != nil {
		return err
	}
	themes, err := a.themes(ctx, st)
	if err != nil {
		return err
	}
	a.log.WithFields(map[string]any{
		"base_url": a.settings.BaseURL,
		"theme":    string(themes.Current()),
	}).Info("starting explorer")

	var systemChanges <-chan bool
	if a.settings.WatchInterval > 0 {
		systemChanges = theme.Watch(ctx, a.settings.WatchInterval, detectSystemTheme)
	}

	model := tui.NewModel(tui.Options{
		Context:       ctx,
		Service:       a.service,
		Themes:        themes,
		SystemChanges: systemChanges,
		Logger:        a.log,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyDurationFlag(cmd *cobra.Command, name string, target *time.Duration, value time.Duration) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
