package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetricsCollector handles all kingdom store request metrics
type StoreMetricsCollector struct {
	// Request metrics
	storeRequestsTotal   *prometheus.CounterVec
	storeRequestDuration *prometheus.HistogramVec
	storeRateLimitWait   *prometheus.HistogramVec

	// Circuit breaker state, one series per state set to 1 for the current state
	circuitState *prometheus.GaugeVec
}

// NewStoreMetricsCollector creates a new store metrics collector
func NewStoreMetricsCollector() *StoreMetricsCollector {
	return &StoreMetricsCollector{
		// Total store requests by method, resource, and status code
		storeRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "store_requests_total",
				Help:      "Total number of kingdom store requests by method, resource, and status code",
			},
			[]string{"method", "resource", "status_code"},
		),

		// Store request duration histogram
		storeRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "store_request_duration_seconds",
				Help:      "Kingdom store request duration distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"method", "resource"},
		),

		// Rate limit wait time histogram
		storeRateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "store_rate_limit_wait_seconds",
				Help:      "Time spent waiting for the store rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"method", "resource"},
		),

		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "store_circuit_state",
				Help:      "Kingdom store circuit breaker state (1 for the active state)",
			},
			[]string{"state"},
		),
	}
}

// Register registers all store metrics with the Prometheus registry
func (c *StoreMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.storeRequestsTotal,
		c.storeRequestDuration,
		c.storeRateLimitWait,
		c.circuitState,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordStoreRequest records a store request completion.
// statusCode 0 means the request never got a response.
func (c *StoreMetricsCollector) RecordStoreRequest(
	method string,
	resource string,
	statusCode int,
	duration float64,
) {
	statusCodeStr := strconv.Itoa(statusCode)

	// Increment request counter
	c.storeRequestsTotal.WithLabelValues(method, resource, statusCodeStr).Inc()

	// Record request duration
	c.storeRequestDuration.WithLabelValues(method, resource).Observe(duration)
}

// RecordRateLimitWait records time spent waiting for rate limiter
func (c *StoreMetricsCollector) RecordRateLimitWait(
	method string,
	resource string,
	duration float64,
) {
	c.storeRateLimitWait.WithLabelValues(method, resource).Observe(duration)
}

// RecordCircuitState marks state as the active circuit breaker state
func (c *StoreMetricsCollector) RecordCircuitState(state string) {
	for _, s := range []string{"CLOSED", "OPEN", "HALF_OPEN"} {
		value := 0.0
		if s == state {
			value = 1
		}
		c.circuitState.WithLabelValues(s).Set(value)
	}
}
