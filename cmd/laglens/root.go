package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/laglens/internal/adapters/bbref"
	"github.com/okian/laglens/internal/adapters/repository"
	service "github.com/okian/laglens/internal/app"
	"github.com/okian/laglens/internal/config"
	"github.com/okian/laglens/pkg/logger"
	"github.com/okian/laglens/pkg/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// env carries what every subcommand needs after the root pre-run.
type env struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:          "laglens",
		Short:        "Lead/lag cross-correlation of NBA player metrics",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return e.teardown(cmd)
		},
	}

	root.AddCommand(newScrapeCmd(e), newAnalyzeCmd(e), newVersionCmd())
	return root
}

func (e *env) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	e.cfg = cfg

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return err
	}
	e.log = logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		e.log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

func (e *env) teardown(cmd *cobra.Command) error {
	if e.cfg == nil {
		return nil
	}
	if path := e.cfg.MetricsTextfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			e.log.Error(cmd.Context(), "metrics textfile", logger.Error(err))
			return err
		}
	}
	return logger.Sync()
}

func (e *env) store() *repository.CSVStore {
	return repository.NewCSVStore(e.cfg.DataDir)
}

func (e *env) service(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithLogger(logger.Named("service")),
		service.WithStore(e.store()),
		service.WithMetrics(e.cfg.MetricList()),
		service.WithMinSeasons(e.cfg.MinSeasons),
	}
	return service.New(append(base, opts...)...)
}

func (e *env) scraper() *bbref.Scraper {
	lo, hi := e.cfg.Delay()
	return bbref.New(
		bbref.WithBaseURL(e.cfg.BaseURL),
		bbref.WithUserAgent(e.cfg.UserAgent),
		bbref.WithTimeout(e.cfg.RequestTimeout()),
		bbref.WithRetries(e.cfg.Retries),
		bbref.WithDelay(lo, hi),
		bbref.WithLogger(logger.Named("bbref")),
	)
}
