package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Order outcomes
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
	OutcomeReplayed  = "replayed"
)

// OrderMetricsCollector handles order placement metrics (outcomes, spend, commit failures)
type OrderMetricsCollector struct {
	ordersTotal    *prometheus.CounterVec
	moneySpent     *prometheus.CounterVec
	fuelSpent      *prometheus.CounterVec
	orderCost      *prometheus.HistogramVec
	commitFailures *prometheus.CounterVec
	journalReplays *prometheus.CounterVec
}

// NewOrderMetricsCollector creates a new order metrics collector
func NewOrderMetricsCollector() *OrderMetricsCollector {
	return &OrderMetricsCollector{
		// Order count by category and outcome
		ordersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_total",
				Help:      "Total number of orders by category and outcome",
			},
			[]string{"category", "outcome"},
		),

		moneySpent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "money_spent_total",
				Help:      "Money debited by committed orders",
			},
			[]string{"category"},
		),

		fuelSpent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fuel_spent_total",
				Help:      "Fuel debited by committed orders",
			},
			[]string{"category"},
		),

		// Order cost distribution
		orderCost: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_cost",
				Help:      "Money cost distribution of committed orders",
				Buckets:   prometheus.ExponentialBuckets(100, 4, 10),
			},
			[]string{"category"},
		),

		// Partial commits: debit or enqueue failed
		commitFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commit_failures_total",
				Help:      "Store writes that failed during commit, by stage",
			},
			[]string{"category", "stage"},
		),

		journalReplays: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "journal_replays_total",
				Help:      "Requests replayed by request id, by the journal state found",
			},
			[]string{"category", "state"},
		),
	}
}

// Register registers all order metrics with the Prometheus registry
func (c *OrderMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.ordersTotal,
		c.moneySpent,
		c.fuelSpent,
		c.orderCost,
		c.commitFailures,
		c.journalReplays,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordOrder records an order outcome; spend only counts for committed orders
func (c *OrderMetricsCollector) RecordOrder(category, outcome string, cost, fuelCost float64) {
	c.ordersTotal.WithLabelValues(category, outcome).Inc()

	if outcome != OutcomeCommitted {
		return
	}
	c.moneySpent.WithLabelValues(category).Add(cost)
	c.orderCost.WithLabelValues(category).Observe(cost)
	if fuelCost > 0 {
		c.fuelSpent.WithLabelValues(category).Add(fuelCost)
	}
}

// RecordCommitFailure records a failed store write
func (c *OrderMetricsCollector) RecordCommitFailure(category, stage string) {
	c.commitFailures.WithLabelValues(category, stage).Inc()
}

// RecordJournalReplay records a replayed request id
func (c *OrderMetricsCollector) RecordJournalReplay(category, state string) {
	c.journalReplays.WithLabelValues(category, state).Inc()
}
