package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/laglens/internal/adapters/bbref"
	service "github.com/okian/laglens/internal/app"
	"github.com/okian/laglens/internal/config"
	"github.com/okian/laglens/internal/domain/season"
	"github.com/okian/laglens/pkg/logger"
)

func newScrapeCmd(e *env) *cobra.Command {
	var (
		kinds    []string
		from, to int
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch season tables into the data directory",
		Long: "Fetch the totals, per-100-possession and advanced player tables for every\n" +
			"season in the range, pausing between requests, and save them as CSV.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			parsed := make([]bbref.Kind, 0, len(kinds))
			for _, k := range kinds {
				kind, err := bbref.ParseKind(k)
				if err != nil {
					return err
				}
				parsed = append(parsed, kind)
			}
			if !cmd.Flags().Changed("from") {
				from = e.cfg.SeasonFrom
			}
			if !cmd.Flags().Changed("to") {
				to = e.cfg.SeasonTo
			}
			seasons := season.Range(from, to)
			if len(seasons) == 0 {
				return fmt.Errorf("%w: --to %d before --from %d", config.ErrInvalidConfig, to, from)
			}

			svc := e.service(service.WithScraper(e.scraper()))
			if err := svc.Scrape(ctx, parsed, from, to); err != nil {
				e.log.Error(ctx, "scrape failed", logger.Error(err))
				return err
			}
			e.log.Info(ctx, "scrape finished",
				logger.Any("kinds", kinds),
				logger.String("first_season", seasons[0]),
				logger.String("last_season", seasons[len(seasons)-1]),
				logger.String("data_dir", e.cfg.DataDir),
			)
			return nil
		},
	}

	defaultKinds := make([]string, 0, len(bbref.Kinds()))
	for _, k := range bbref.Kinds() {
		defaultKinds = append(defaultKinds, string(k))
	}
	cmd.Flags().StringSliceVar(&kinds, "kinds", defaultKinds, "table kinds to fetch")
	cmd.Flags().IntVar(&from, "from", 2005, "first season end year (default from config)")
	cmd.Flags().IntVar(&to, "to", 2019, "last season end year (default from config)")
	return cmd
}
