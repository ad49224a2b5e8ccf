// Package metrics provides Prometheus metrics for the laglens scraper and
// analysis runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for laglens.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Scraper Metrics
	pagesFetched *prometheus.CounterVec
	fetchErrors  *prometheus.CounterVec
	rowsScraped  *prometheus.CounterVec
	fetchLatency prometheus.Histogram

	// Store Metrics
	storeLatency *prometheus.HistogramVec

	// Analysis Metrics
	playersAnalyzed  prometheus.Gauge
	profilesComputed prometheus.Counter
	pairsSkipped     *prometheus.CounterVec
	tradeRowsDropped prometheus.Counter
	analysisDuration prometheus.Histogram

	// Report Metrics
	reportsWritten *prometheus.CounterVec

	// Error Metrics
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "laglens",
		subsystem:        "",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts(m.counterOpts(name, help))
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.pagesFetched = auto.NewCounterVec(
		m.counterOpts("pages_fetched_total", "Total number of season pages fetched by table kind"),
		[]string{"table"},
	)
	m.fetchErrors = auto.NewCounterVec(
		m.counterOpts("fetch_errors_total", "Total number of failed page fetches by table kind"),
		[]string{"table"},
	)
	m.rowsScraped = auto.NewCounterVec(
		m.counterOpts("rows_scraped_total", "Total number of player rows parsed by table kind"),
		[]string{"table"},
	)
	m.fetchLatency = auto.NewHistogram(
		m.histogramOpts("fetch_latency_milliseconds", "Histogram of page fetch latency in milliseconds"),
	)

	m.storeLatency = auto.NewHistogramVec(
		m.histogramOpts("store_operation_duration_milliseconds", "Table store operation duration in milliseconds"),
		[]string{"operation"},
	)

	m.playersAnalyzed = auto.NewGauge(
		m.gaugeOpts("players_analyzed", "Number of players with enough seasons in the last analysis run"),
	)
	m.profilesComputed = auto.NewCounter(
		m.counterOpts("profiles_computed_total", "Total number of per-player correlation profiles accumulated"),
	)
	m.pairsSkipped = auto.NewCounterVec(
		m.counterOpts("pairs_skipped_total", "Total number of player metric pairs skipped by reason"),
		[]string{"reason"},
	)
	m.tradeRowsDropped = auto.NewCounter(
		m.counterOpts("trade_rows_dropped_total", "Total number of partial-season rows dropped for traded players"),
	)
	m.analysisDuration = auto.NewHistogram(
		m.histogramOpts("analysis_duration_milliseconds", "Histogram of analysis run duration in milliseconds"),
	)

	m.reportsWritten = auto.NewCounterVec(
		m.counterOpts("reports_written_total", "Total number of reports written by format"),
		[]string{"format"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component and type"),
		[]string{"component", "error_type"},
	)
}

// Scraper Metrics Functions.

// RecordPageFetched increments the pages fetched counter for a table kind.
func RecordPageFetched(table string) {
	if !globalManager.enabled {
		return
	}
	globalManager.pagesFetched.WithLabelValues(table).Inc()
}

// RecordFetchError increments the fetch error counter for a table kind.
func RecordFetchError(table string) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchErrors.WithLabelValues(table).Inc()
}

// RecordRowsScraped adds parsed rows for a table kind.
func RecordRowsScraped(table string, rows int) {
	if !globalManager.enabled {
		return
	}
	globalManager.rowsScraped.WithLabelValues(table).Add(float64(rows))
}

// RecordFetchLatency records page fetch latency.
func RecordFetchLatency(d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchLatency.Observe(float64(d.Milliseconds()))
}

// RecordStoreOperation records how long a store operation took.
func RecordStoreOperation(operation string, d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeLatency.WithLabelValues(operation).Observe(float64(d.Milliseconds()))
}

// Analysis Metrics Functions.

// UpdatePlayersAnalyzed sets the number of players in the last run.
func UpdatePlayersAnalyzed(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.playersAnalyzed.Set(float64(count))
}

// RecordProfileComputed increments the accumulated profiles counter.
func RecordProfileComputed() {
	if !globalManager.enabled {
		return
	}
	globalManager.profilesComputed.Inc()
}

// RecordPairSkipped increments the skipped pair counter for a reason.
func RecordPairSkipped(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.pairsSkipped.WithLabelValues(reason).Inc()
}

// RecordTradeRowsDropped adds rows removed by trade dedupe.
func RecordTradeRowsDropped(n int64) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.tradeRowsDropped.Add(float64(n))
}

// RecordAnalysisDuration records an analysis run's duration.
func RecordAnalysisDuration(d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.analysisDuration.Observe(float64(d.Milliseconds()))
}

// RecordReportWritten increments the report counter for a format.
func RecordReportWritten(format string) {
	if !globalManager.enabled {
		return
	}
	globalManager.reportsWritten.WithLabelValues(format).Inc()
}

// RecordErrorByComponent records errors by component and type.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current state of the registry in the text
// exposition format, for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrWriteTextfile)
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
