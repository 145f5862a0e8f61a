// Package metrics exposes prometheus collectors for the merge pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestDuration is the time spent reading a spreadsheet, in seconds.
	IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exmerge_ingest_duration_seconds",
			Help:    "Spreadsheet ingestion duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~16s
		},
		[]string{"status"},
	)

	// IngestedRows counts data rows kept after ingestion.
	IngestedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exmerge_ingested_rows_total",
			Help: "Total number of data rows ingested",
		},
	)

	// GeneratedEmails counts generated emails by recipient presence.
	GeneratedEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exmerge_generated_emails_total",
			Help: "Total number of emails generated",
		},
		[]string{"recipient"}, // recipient: present, missing
	)

	// GenerationCacheHits counts generation passes served from the session cache.
	GenerationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exmerge_generation_cache_hits_total",
			Help: "Total number of generation passes served from cache",
		},
	)

	// Exports counts exported batches by format.
	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exmerge_exports_total",
			Help: "Total number of exported batches",
		},
		[]string{"format"},
	)

	// HTTPRequestDuration is the HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exmerge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)
)

// RecordIngest records one ingestion attempt.
func RecordIngest(duration time.Duration, rows int, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	IngestDuration.WithLabelValues(status).Observe(duration.Seconds())
	if err == nil {
		IngestedRows.Add(float64(rows))
	}
}

// RecordGeneration records a freshly generated batch.
func RecordGeneration(withRecipient, withoutRecipient int) {
	GeneratedEmails.WithLabelValues("present").Add(float64(withRecipient))
	GeneratedEmails.WithLabelValues("missing").Add(float64(withoutRecipient))
}

// RecordExport records an exported batch.
func RecordExport(format string) {
	Exports.WithLabelValues(format).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, statusClass(status)).Observe(duration.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
