// Package service runs scrapes and lead/lag analyses over the stored tables.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/laglens/internal/adapters/bbref"
	"github.com/okian/laglens/internal/adapters/repository"
	"github.com/okian/laglens/internal/domain/aggregate"
	"github.com/okian/laglens/internal/domain/align"
	"github.com/okian/laglens/internal/domain/dataset"
	"github.com/okian/laglens/internal/domain/dedupe"
	"github.com/okian/laglens/internal/domain/model"
	"github.com/okian/laglens/internal/domain/series"
	"github.com/okian/laglens/internal/domain/types"
	"github.com/okian/laglens/internal/domain/xcorr"
	"github.com/okian/laglens/pkg/logger"
	"github.com/okian/laglens/pkg/metrics"
)

// Names of the optional auxiliary tables in the store.
const (
	SalaryTable     = "salary_info"
	RPMTable        = "espn_nba_rpm"
	PlayerLinkTable = "player_table"
)

// Reasons a player's metric pair is skipped.
const (
	skipIncomplete = "incomplete"
	skipSeasonGap  = "season_gap"
)

// Scraper fetches one table kind over a range of season end years.
type Scraper interface {
	Scrape(ctx context.Context, kind bbref.Kind, from, to int) (model.Table, error)
}

// Service orchestrates scraping and analysis.
type Service struct {
	store   repository.Store
	scraper Scraper
	deduper dedupe.Deduper

	metrics    []types.Metric
	minSeasons int

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		deduper:    dedupe.NewTradeDeduper(),
		metrics:    types.DefaultMetrics(),
		minSeasons: 1,
		logger:     logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Metrics returns the metrics compared by Analyze.
func (s *Service) Metrics() []types.Metric {
	out := make([]types.Metric, len(s.metrics))
	copy(out, s.metrics)
	return out
}

// Scrape fetches each kind over from..to and saves it to the store.
func (s *Service) Scrape(ctx context.Context, kinds []bbref.Kind, from, to int) error {
	if s.scraper == nil {
		return ErrNoScraper
	}
	if s.store == nil {
		return ErrNoStore
	}

	for _, kind := range kinds {
		start := time.Now()
		s.logger.Info(ctx, "scraping table",
			logger.String("table", string(kind)),
			logger.Int("from", from),
			logger.Int("to", to),
		)

		t, err := s.scraper.Scrape(ctx, kind, from, to)
		if err != nil {
			metrics.RecordErrorByComponent("service", "scrape")
			return fmt.Errorf("scrape %s: %w", kind, err)
		}
		if err := s.store.SaveTable(ctx, t); err != nil {
			metrics.RecordErrorByComponent("service", "save")
			return fmt.Errorf("save %s: %w", kind, err)
		}

		s.logger.Info(ctx, "table saved",
			logger.String("table", string(kind)),
			logger.Int("rows", len(t.Rows)),
			logger.Int("columns", len(t.Columns)),
			logger.Any("elapsed", time.Since(start)),
		)
	}
	return nil
}

// Result is the outcome of one analysis run.
type Result struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	Duration   time.Duration
	Metrics    []types.Metric
	Rows       int
	Players    int
	Join       dataset.Stats
	TradeDrops int64
	Gaps       int
	Population *aggregate.Population
}

// Pairs returns the pairs to report: all of them, or those led by focus.
func (r *Result) Pairs(focus types.Metric) []types.Pair {
	if focus == "" {
		return r.Population.Pairs()
	}
	return r.Population.Involving(focus)
}

// Analyze loads the stored tables, joins and deduplicates them, and builds the
// population histogram and peak-lag counts for every ordered metric pair.
func (s *Service) Analyze(ctx context.Context) (*Result, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	res := &Result{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
		Metrics:   s.Metrics(),
	}
	runField := logger.String("run_id", res.RunID.String())
	s.logger.Info(ctx, "analysis started", runField, logger.Any("metrics", res.Metrics))

	src, err := s.loadSources(ctx)
	if err != nil {
		return nil, err
	}
	rows, joinStats, err := dataset.Build(src)
	if err != nil {
		return nil, fmt.Errorf("join tables: %w", err)
	}
	res.Join = joinStats
	s.logger.Info(ctx, "tables joined", runField,
		logger.Int("rows", joinStats.Rows),
		logger.Int("salary_matched", joinStats.SalaryMatched),
		logger.Int("rpm_matched", joinStats.RPMMatched),
	)

	before := s.deduper.Dropped()
	rows = s.deduper.Dedupe(ctx, rows)
	res.TradeDrops = s.deduper.Dropped() - before
	res.Rows = len(rows)
	metrics.RecordTradeRowsDropped(res.TradeDrops)

	pairs := types.Pairs(res.Metrics)
	res.Population = aggregate.NewPopulation(pairs...)

	for _, career := range series.Extract(rows, res.Metrics) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if career.Seasons() < s.minSeasons {
			continue
		}
		if err := series.Consecutive(career.Labels()); err != nil {
			res.Gaps++
			s.logger.Debug(ctx, "career skipped", runField,
				logger.String("player", career.Player), logger.Error(err))
			for _, pair := range pairs {
				res.Population.Skip(pair)
				metrics.RecordPairSkipped(skipSeasonGap)
			}
			continue
		}
		res.Players++
		if err := accumulate(res.Population, career, pairs); err != nil {
			return nil, fmt.Errorf("player %s: %w", career.Player, err)
		}
	}

	res.Duration = time.Since(res.StartedAt)
	metrics.UpdatePlayersAnalyzed(res.Players)
	metrics.RecordAnalysisDuration(res.Duration)

	s.logger.Info(ctx, "analysis finished", runField,
		logger.Int("rows", res.Rows),
		logger.Int("players", res.Players),
		logger.Int("pairs", len(pairs)),
		logger.Any("trade_rows_dropped", res.TradeDrops),
		logger.Int("careers_with_gaps", res.Gaps),
		logger.Any("elapsed", res.Duration),
	)
	return res, nil
}

// accumulate adds one player's profile for every pair. Pairs with a missing
// season in either series are skipped for this player.
func accumulate(pop *aggregate.Population, career series.Career, pairs []types.Pair) error {
	for _, pair := range pairs {
		a, b, err := series.Align(career.Series[pair.First], career.Series[pair.Second])
		if err != nil {
			return err
		}
		if !series.Complete(a) || !series.Complete(b) {
			pop.Skip(pair)
			metrics.RecordPairSkipped(skipIncomplete)
			continue
		}

		lag, err := xcorr.PeakLag(a, b)
		if err != nil {
			return err
		}
		profile, err := xcorr.NormalizedProfile(a, b)
		if err != nil {
			return err
		}
		pop.Add(pair, align.Pad(profile), lag)
		metrics.RecordProfileComputed()
	}
	return nil
}

func (s *Service) loadSources(ctx context.Context) (dataset.Sources, error) {
	var src dataset.Sources
	for _, kind := range bbref.Kinds() {
		t, err := s.store.LoadTable(ctx, string(kind))
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn(ctx, "table missing, run scrape first", logger.String("table", string(kind)))
			continue
		}
		if err != nil {
			return src, fmt.Errorf("load %s: %w", kind, err)
		}
		src.Tables = append(src.Tables, t)
	}
	if len(src.Tables) == 0 {
		return src, ErrNoData
	}

	aux := []struct {
		name string
		dst  *[]dataset.Record
	}{
		{SalaryTable, &src.Salaries},
		{RPMTable, &src.RPM},
		{PlayerLinkTable, &src.Links},
	}
	for _, a := range aux {
		if !s.store.Exists(ctx, a.name) {
			s.logger.Debug(ctx, "optional source missing", logger.String("table", a.name))
			continue
		}
		recs, err := s.store.LoadRecords(ctx, a.name)
		if err != nil {
			return src, fmt.Errorf("load %s: %w", a.name, err)
		}
		*a.dst = recs
	}
	return src, nil
}
