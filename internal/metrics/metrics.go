// Package metrics provides Prometheus metrics for cardvault.
// Scrape these at /metrics for dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardvault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardvault_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Feed sync metrics
	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardvault_feed_fetches_total",
			Help: "Total feed fetch attempts by result",
		},
		[]string{"result"}, // "success", "fetch_error", "parse_error", "schema_error"
	)

	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cardvault_feed_fetch_duration_seconds",
			Help:    "Time taken to fetch the price feed",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	FeedEntriesSeen = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardvault_feed_entries_seen_total",
			Help: "Total feed entries seen across all ingestion runs",
		},
	)

	FeedEntriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardvault_feed_entries_skipped_total",
			Help: "Feed entries skipped because no product id could be resolved",
		},
	)

	PricesUpsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardvault_prices_upserted_total",
			Help: "Total daily price rows written",
		},
	)

	LastSyncInserted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardvault_last_sync_inserted",
			Help: "Rows written by the most recent ingestion run",
		},
	)

	// Portfolio metrics
	PortfolioValueEUR = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardvault_portfolio_value_eur",
			Help: "Current estimated portfolio value in EUR",
		},
	)

	PortfolioCardsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardvault_portfolio_cards_total",
			Help: "Total number of cards held",
		},
	)

	SnapshotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardvault_value_snapshots_total",
			Help: "Total portfolio value snapshots recorded",
		},
	)
)
