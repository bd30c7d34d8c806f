// Package metrics provides Prometheus metrics for the playercards service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Matching
	logoResolutions *prometheus.CounterVec
	logoFallbacks   *prometheus.CounterVec
	priceMatches    *prometheus.CounterVec

	// Loading
	sourceLoads  *prometheus.CounterVec
	loadDuration prometheus.Histogram
	deckSize     prometheus.Gauge
	pricesMerged prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "playercards",
		subsystem:        "deck",
		histogramBuckets: prometheus.DefBuckets,
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

// NewMetricsManager is an alias of NewManager.
func NewMetricsManager(opts ...Option) *Manager { return NewManager(opts...) }

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.logoResolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "logo_resolutions_total",
		Help:        "Club logo lookups by the tier that answered them",
		ConstLabels: labels,
	}, []string{"tier"})

	m.logoFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "logo_fallbacks_total",
		Help:        "Team logo picks by source (club_map, team_image, placeholder)",
		ConstLabels: labels,
	}, []string{"source"})

	m.priceMatches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "price_matches_total",
		Help:        "Player to price row joins by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.sourceLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_loads_total",
		Help:        "Source loads by kind (players, prices, logos) and outcome",
		ConstLabels: labels,
	}, []string{"source", "outcome"})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_milliseconds",
		Help:        "Time to load sources and build the deck",
		Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		ConstLabels: labels,
	})

	m.deckSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "cards",
		Help:        "Number of cards in the published deck",
		ConstLabels: labels,
	})

	m.pricesMerged = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "prices_merged",
		Help:        "1 when the published deck carries prices from the price table",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "errors",
		Name:        "by_endpoint_total",
		Help:        "Error responses by endpoint",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "errors",
		Name:        "by_type_total",
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})
}

// RecordLogoResolution counts a logo lookup answered by tier.
func (m *Manager) RecordLogoResolution(tier string) {
	if !m.enabled {
		return
	}
	m.logoResolutions.WithLabelValues(tier).Inc()
}

// RecordLogoFallback counts which source supplied a team logo.
func (m *Manager) RecordLogoFallback(source string) {
	if !m.enabled {
		return
	}
	m.logoFallbacks.WithLabelValues(source).Inc()
}

// RecordPriceMatch counts a price join; matched selects the outcome label.
func (m *Manager) RecordPriceMatch(matched bool) {
	if !m.enabled {
		return
	}
	outcome := "unmatched"
	if matched {
		outcome = "matched"
	}
	m.priceMatches.WithLabelValues(outcome).Inc()
}

// RecordSourceLoad counts a source load attempt.
func (m *Manager) RecordSourceLoad(source string, err error) {
	if !m.enabled {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.sourceLoads.WithLabelValues(source, outcome).Inc()
}

// RecordLoadDuration records deck build time in milliseconds.
func (m *Manager) RecordLoadDuration(ms float64) {
	if !m.enabled {
		return
	}
	m.loadDuration.Observe(ms)
}

// UpdateDeck sets the deck gauges after a publish.
func (m *Manager) UpdateDeck(cards int, pricesMerged bool) {
	if !m.enabled {
		return
	}
	m.deckSize.Set(float64(cards))
	if pricesMerged {
		m.pricesMerged.Set(1)
	} else {
		m.pricesMerged.Set(0)
	}
}

// RecordHTTPRequest counts an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an error response for endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// Package-level helpers backed by the global manager.

// RecordLogoResolution counts a logo lookup answered by tier.
func RecordLogoResolution(tier string) { globalManager.RecordLogoResolution(tier) }

// RecordLogoFallback counts which source supplied a team logo.
func RecordLogoFallback(source string) { globalManager.RecordLogoFallback(source) }

// RecordPriceMatch counts a price join.
func RecordPriceMatch(matched bool) { globalManager.RecordPriceMatch(matched) }

// RecordSourceLoad counts a source load attempt.
func RecordSourceLoad(source string, err error) { globalManager.RecordSourceLoad(source, err) }

// RecordLoadDuration records deck build time in milliseconds.
func RecordLoadDuration(ms float64) { globalManager.RecordLoadDuration(ms) }

// UpdateDeck sets the deck gauges after a publish.
func UpdateDeck(cards int, pricesMerged bool) { globalManager.UpdateDeck(cards, pricesMerged) }

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint counts an error response for endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType, severity string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType, severity)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
