// Package bbref scrapes season summary tables from Basketball-Reference.
package bbref

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okian/laglens/internal/domain/model"
	"github.com/okian/laglens/internal/domain/types"
	"github.com/okian/laglens/pkg/logger"
	"github.com/okian/laglens/pkg/metrics"
)

// Defaults for a polite scrape.
const (
	DefaultBaseURL   = "https://www.basketball-reference.com"
	DefaultUserAgent = "laglens/1.0 (+https://github.com/okian/laglens)"
	DefaultTimeout   = 30 * time.Second
	DefaultDelayMin  = 10 * time.Second
	DefaultDelayMax  = 15 * time.Second
	DefaultRetries   = 0
)

// Scraper fetches season pages one at a time.
type Scraper struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	retries   int
	delayMin  time.Duration
	delayMax  time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	log       logger.Logger

	client *resty.Client
}

// New builds a Scraper.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		retries:   DefaultRetries,
		delayMin:  DefaultDelayMin,
		delayMax:  DefaultDelayMax,
		sleep:     sleepContext,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = resty.New().
		SetBaseURL(s.baseURL).
		SetTimeout(s.timeout).
		SetRetryCount(s.retries).
		SetRetryWaitTime(time.Second).
		SetHeader("User-Agent", s.userAgent).
		SetHeader("Accept", "text/html").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	return s
}

// Scrape fetches the kind's table for every season end year in from..to and
// concatenates the rows. The pause before each request honors ctx.
func (s *Scraper) Scrape(ctx context.Context, kind Kind, from, to int) (model.Table, error) {
	out := model.Table{Name: string(kind)}
	seen := make(map[types.Metric]bool)

	for year := from; year <= to; year++ {
		if err := s.pause(ctx); err != nil {
			return model.Table{}, err
		}
		t, err := s.FetchSeason(ctx, kind, year)
		if err != nil {
			return model.Table{}, err
		}
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				out.Columns = append(out.Columns, c)
			}
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out, nil
}

// FetchSeason downloads and parses one season page without pausing.
func (s *Scraper) FetchSeason(ctx context.Context, kind Kind, endYear int) (model.Table, error) {
	path := kind.Path(endYear)
	start := time.Now()

	resp, err := s.client.R().SetContext(ctx).Get(path)
	metrics.RecordFetchLatency(time.Since(start))
	if err != nil {
		metrics.RecordFetchError(string(kind))
		return model.Table{}, fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}
	if resp.IsError() {
		metrics.RecordFetchError(string(kind))
		return model.Table{}, fmt.Errorf("%w: %s: status %d", ErrFetch, path, resp.StatusCode())
	}
	metrics.RecordPageFetched(string(kind))

	t, err := Parse(bytes.NewReader(resp.Body()), kind, endYear)
	if err != nil {
		metrics.RecordErrorByComponent("bbref", "parse")
		return model.Table{}, err
	}
	metrics.RecordRowsScraped(string(kind), len(t.Rows))

	s.log.Info(ctx, "season page scraped",
		logger.String("table", string(kind)),
		logger.Int("season_end", endYear),
		logger.Int("rows", len(t.Rows)),
		logger.Any("elapsed", time.Since(start)),
	)
	return t, nil
}

func (s *Scraper) pause(ctx context.Context) error {
	if s.delayMax <= 0 {
		return ctx.Err()
	}
	d := s.delayMin
	if span := s.delayMax - s.delayMin; span > 0 {
		d += rand.N(span)
	}
	return s.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
