package main

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/logging"
	"github.com/rgehrsitz/finhealth/internal/output"
	"github.com/rgehrsitz/finhealth/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the global flags and the process-wide logger
type app struct {
	storeDriver string
	storePath   string
	dsn         string
	format      string
	output      string
	envFile     string
	debug       bool

	settings *config.Settings
	logger   *logrus.Logger
}

func (a *app) bindFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&a.storeDriver, "store", "", "Snapshot store: memory, file or postgres (env FINHEALTH_STORE, default file)")
	f.StringVar(&a.storePath, "store-path", "", "Snapshot file for the file store (env FINHEALTH_STORE_PATH)")
	f.StringVar(&a.dsn, "dsn", "", "PostgreSQL connection string (env FINHEALTH_DSN)")
	f.StringVarP(&a.format, "format", "f", "console", "Output format (console, json, csv, pdf)")
	f.StringVarP(&a.output, "output", "o", "", "Write the report to this file instead of stdout")
	f.StringVar(&a.envFile, "env-file", ".env", "Optional .env file with FINHEALTH_* settings")
	f.BoolVar(&a.debug, "debug", false, "Enable debug logging of calculations")
}

// init resolves settings: flags override environment, which overrides defaults
func (a *app) init(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if a.storeDriver != "" {
		settings.Store = a.storeDriver
	}
	if a.storePath != "" {
		settings.StorePath = a.storePath
	}
	if a.dsn != "" {
		settings.DSN = a.dsn
	}
	if a.debug {
		settings.LogLevel = "debug"
	}
	a.settings = settings

	logger, err := logging.NewWithWriter(cmd.ErrOrStderr(), settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// openEngine opens the configured store and returns an engine over it.
// The returned func closes the store.
func (a *app) openEngine(ctx context.Context) (*calculation.Engine, func(), error) {
	s, err := store.Open(ctx, store.Options{
		Driver: a.settings.Store,
		Path:   a.settings.StorePath,
		DSN:    a.settings.DSN,
	})
	if err != nil {
		return nil, nil, err
	}
	a.logger.WithField("store", a.settings.Store).Debug("store opened")

	engine := calculation.NewEngine(s)
	engine.SetLogger(logging.NewCalculationLogger(a.logger))
	closeFn := func() {
		if err := s.Close(); err != nil {
			a.logger.WithError(err).Warn("failed to close store")
		}
	}
	return engine, closeFn, nil
}

// render writes the report in the selected format. Binary formats without
// an --output path go to a timestamped file.
func (a *app) render(cmd *cobra.Command, report *domain.Report) error {
	f := output.GetFormatterByName(a.format)
	if f == nil {
		return fmt.Errorf("unsupported format %q (available: %v)", a.format, output.AvailableFormats())
	}

	if a.output != "" || f.Name() == "pdf" {
		path, err := output.WriteFormatted(f, report, a.output)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
