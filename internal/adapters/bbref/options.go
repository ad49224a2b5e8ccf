package bbref

import (
	"context"
	"time"

	"github.com/okian/laglens/pkg/logger"
)

// Option applies a configuration option to the Scraper.
type Option func(*Scraper)

// WithBaseURL sets the site root, e.g. "https://www.basketball-reference.com".
func WithBaseURL(u string) Option {
	return func(s *Scraper) {
		if u != "" {
			s.baseURL = u
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(s *Scraper) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// WithDelay sets the range of the random pause taken before each request.
// A zero max disables the pause.
func WithDelay(minDelay, maxDelay time.Duration) Option {
	return func(s *Scraper) {
		if minDelay < 0 || maxDelay < minDelay {
			return
		}
		s.delayMin, s.delayMax = minDelay, maxDelay
	}
}

// WithSleep replaces the pause implementation.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Scraper) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithLogger sets the logger used for per-page progress.
func WithLogger(l logger.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.log = l
		}
	}
}
