package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	expenseWrites             *prometheus.CounterVec
	reportExports             *prometheus.CounterVec
	reportDuration            prometheus.Histogram
	httpRequestDuration       prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		expenseWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expense_writes_total",
				Help: "Total number of expense create, update and delete operations",
			},
			[]string{"operation", "category"},
		),
		reportExports: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_exports_total",
				Help: "Total number of report exports by format",
			},
			[]string{"format"},
		),
		reportDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "report_render_duration_milliseconds",
				Help:    "Report rendering duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		httpRequestDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "expense_write":
		operation := tags["operation"]
		category := tags["category"]
		if operation != "" {
			m.expenseWrites.WithLabelValues(operation, category).Inc()
		}
	case "report_export":
		if format := tags["format"]; format != "" {
			m.reportExports.WithLabelValues(format).Inc()
		}
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "report_render":
		m.reportDuration.Observe(float64(duration.Milliseconds()))
	case "http_request":
		m.httpRequestDuration.Observe(duration.Seconds())
	}
}
