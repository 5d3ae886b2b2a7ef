package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace for all metrics
	namespace = "domnus"
	// Subsystem for economy engine metrics
	subsystem = "economy"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalOrderCollector is the singleton order metrics collector
	// Set by SetGlobalOrderCollector() when metrics are enabled
	globalOrderCollector OrderMetricsRecorder

	// globalStoreCollector is the singleton kingdom store metrics collector
	// Set by SetGlobalStoreCollector() when metrics are enabled
	globalStoreCollector StoreMetricsRecorder
)

// OrderMetricsRecorder defines the interface for recording order outcomes
// This interface is used by application code to record metrics
type OrderMetricsRecorder interface {
	RecordOrder(category, outcome string, cost, fuelCost float64)
	RecordCommitFailure(category, stage string)
	RecordJournalReplay(category, state string)
}

// StoreMetricsRecorder defines the interface for recording kingdom store calls
type StoreMetricsRecorder interface {
	RecordStoreRequest(method, resource string, statusCode int, duration float64)
	RecordRateLimitWait(method, resource string, duration float64)
	RecordCircuitState(state string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Handler serves the registry in the Prometheus exposition format.
// Returns nil when metrics are not enabled.
func Handler() http.Handler {
	if Registry == nil {
		return nil
	}
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// SetGlobalOrderCollector sets the global order metrics collector
func SetGlobalOrderCollector(collector OrderMetricsRecorder) {
	globalOrderCollector = collector
}

// SetGlobalStoreCollector sets the global kingdom store metrics collector
func SetGlobalStoreCollector(collector StoreMetricsRecorder) {
	globalStoreCollector = collector
}

// RecordOrder records an order outcome globally
func RecordOrder(category, outcome string, cost, fuelCost float64) {
	if globalOrderCollector != nil {
		globalOrderCollector.RecordOrder(category, outcome, cost, fuelCost)
	}
}

// RecordCommitFailure records a failed store write during commit globally
func RecordCommitFailure(category, stage string) {
	if globalOrderCollector != nil {
		globalOrderCollector.RecordCommitFailure(category, stage)
	}
}

// RecordJournalReplay records a request-id replay globally
func RecordJournalReplay(category, state string) {
	if globalOrderCollector != nil {
		globalOrderCollector.RecordJournalReplay(category, state)
	}
}

// RecordStoreRequest records a kingdom store call globally
func RecordStoreRequest(method, resource string, statusCode int, duration float64) {
	if globalStoreCollector != nil {
		globalStoreCollector.RecordStoreRequest(method, resource, statusCode, duration)
	}
}

// RecordRateLimitWait records time spent waiting on the store rate limiter globally
func RecordRateLimitWait(method, resource string, duration float64) {
	if globalStoreCollector != nil {
		globalStoreCollector.RecordRateLimitWait(method, resource, duration)
	}
}

// RecordCircuitState records the store circuit breaker state globally
func RecordCircuitState(state string) {
	if globalStoreCollector != nil {
		globalStoreCollector.RecordCircuitState(state)
	}
}
