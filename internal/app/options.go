package service

import (
	"github.com/okian/laglens/internal/adapters/repository"
	"github.com/okian/laglens/internal/domain/dedupe"
	"github.com/okian/laglens/internal/domain/types"
	"github.com/okian/laglens/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the table store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScraper sets the table scraper.
func WithScraper(scraper Scraper) Option {
	return func(s *Service) {
		if scraper != nil {
			s.scraper = scraper
		}
	}
}

// WithDeduper replaces the trade deduper.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithMetrics sets the metrics compared pairwise. Fewer than two are ignored.
func WithMetrics(metrics []types.Metric) Option {
	return func(s *Service) {
		if len(metrics) >= 2 {
			s.metrics = metrics
		}
	}
}

// WithMinSeasons sets the shortest career analyzed.
func WithMinSeasons(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minSeasons = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
