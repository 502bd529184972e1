package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type BotMetrics struct {
	registry *prometheus.Registry
	service  string

	eventsTotal     *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	eventsInFlight  prometheus.Gauge
	sendErrorsTotal prometheus.Counter
}

func NewBotMetrics(service string) *BotMetrics {
	registry := prometheus.NewRegistry()

	eventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tgb",
			Subsystem: "bot",
			Name:      "events_total",
			Help:      "Total processed inbound events by kind.",
		},
		[]string{"service", "kind"},
	)
	eventDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tgb",
			Subsystem: "bot",
			Name:      "event_duration_seconds",
			Help:      "Event handling duration in seconds by kind.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "kind"},
	)
	eventsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tgb",
			Subsystem: "bot",
			Name:      "events_in_flight",
			Help:      "Number of events currently being handled.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	sendErrorsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tgb",
			Subsystem: "bot",
			Name:      "send_errors_total",
			Help:      "Total failed outbound message deliveries.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(eventsTotal, eventDuration, eventsInFlight, sendErrorsTotal)

	return &BotMetrics{
		registry:        registry,
		eventsTotal:     eventsTotal,
		eventDuration:   eventDuration,
		eventsInFlight:  eventsInFlight,
		sendErrorsTotal: sendErrorsTotal,
		service:         service,
	}
}

func (m *BotMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *BotMetrics) StartEvent() {
	m.eventsInFlight.Inc()
}

func (m *BotMetrics) FinishEvent(kind string, duration time.Duration) {
	m.eventsInFlight.Dec()
	m.eventsTotal.WithLabelValues(m.service, kind).Inc()
	m.eventDuration.WithLabelValues(m.service, kind).Observe(duration.Seconds())
}

func (m *BotMetrics) SendError() {
	m.sendErrorsTotal.Inc()
}
