package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry
	service  string

	cleanupTotal    *prometheus.CounterVec
	cleanupDuration *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	cleanupTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tgb",
			Subsystem: "worker",
			Name:      "staging_cleanup_total",
			Help:      "Total staged file cleanups by status.",
		},
		[]string{"service", "status"},
	)
	cleanupDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tgb",
			Subsystem: "worker",
			Name:      "staging_cleanup_duration_seconds",
			Help:      "Staged file cleanup duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(cleanupTotal, cleanupDuration)

	return &WorkerMetrics{
		registry:        registry,
		service:         service,
		cleanupTotal:    cleanupTotal,
		cleanupDuration: cleanupDuration,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) FinishCleanup(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.cleanupTotal.WithLabelValues(m.service, status).Inc()
	m.cleanupDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
}
