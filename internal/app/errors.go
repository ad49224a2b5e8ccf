package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoStore   = errors.New("service has no table store")
	ErrNoScraper = errors.New("service has no scraper")
	ErrNoData    = errors.New("no scraped tables in store")
)
