// Package cli contains the daytrack command definitions.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nissyi-gh/daytrack/internal/app"
	"github.com/nissyi-gh/daytrack/internal/config"
	"github.com/nissyi-gh/daytrack/internal/store"
	"github.com/nissyi-gh/daytrack/internal/ui"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Running it without a subcommand
// starts the terminal UI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "daytrack",
		Short: "Daytrack - a daily activity tracker",
		Long: `Daytrack keeps a single list of daily tasks with a category, a priority,
a due date and a status. Starting and completing a task records when it
happened and how many minutes it took.

Without a subcommand the interactive terminal UI is started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			p := tea.NewProgram(ui.NewModel(tracker), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running program: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringP("dir", "d", ".", "Directory searched for a .env file")
	root.PersistentFlags().String("backend", "", "Storage backend: csv or sqlite (overrides "+config.KeyBackend+")")
	root.PersistentFlags().String("file", "", "Data file path (overrides "+config.KeyFile+")")

	root.AddCommand(
		newAddCmd(),
		newStatusCmd(),
		newListCmd(),
		newStatsCmd(),
		newImportCmd(),
		newReportCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig resolves configuration and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("dir")
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid directory: %w", err)
	}

	cfg, err := config.Load(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Backend = backend
	}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		cfg.File = file
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openTracker wires config, logging and storage together. The returned
// function releases the store and the log file.
func openTracker(cmd *cobra.Command) (*app.Tracker, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: level,
	}))

	backend, err := store.Open(cfg.Backend, cfg.StorePath())
	if err != nil {
		logFile.Close()
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	s := store.NewTaskStore(backend,
		store.WithPolicy(cfg.Policy()),
		store.WithLogger(logger),
	)
	logger.Info("store opened", "backend", cfg.Backend, "path", cfg.StorePath(), "transitions", cfg.Policy().String())

	closeFn := func() {
		if err := s.Close(); err != nil {
			logger.Error("close store", "error", err)
		}
		logFile.Close()
	}
	return app.New(s, logger), closeFn, nil
}
