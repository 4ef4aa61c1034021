package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SettlementMetrics records outcomes of settlement runs per entity type.
type SettlementMetrics struct {
	duration *prometheus.HistogramVec
	settled  *prometheus.CounterVec
	refunded *prometheus.CounterVec
	failure  *prometheus.CounterVec
	noop     *prometheus.CounterVec
}

// NewSettlementMetrics registers the settlement metrics on the provided
// registerer. A nil registerer yields a no-op recorder.
func NewSettlementMetrics(reg prometheus.Registerer) *SettlementMetrics {
	if reg == nil {
		return &SettlementMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "settlement_duration_seconds",
		Help:    "Duration of settlement runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity_type"})
	settled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_completed_total",
		Help: "Settlements that posted ledger entries.",
	}, []string{"entity_type"})
	refunded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_refunded_total",
		Help: "Cancellations that issued a refund.",
	}, []string{"entity_type"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_failure_total",
		Help: "Settlement runs that rolled back.",
	}, []string{"entity_type"})
	noop := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_noop_total",
		Help: "Settlement runs skipped because the entity was already settled.",
	}, []string{"entity_type"})
	reg.MustRegister(duration, settled, refunded, failure, noop)
	return &SettlementMetrics{
		duration: duration,
		settled:  settled,
		refunded: refunded,
		failure:  failure,
		noop:     noop,
	}
}

// ObserveDuration records how long a settlement run took.
func (m *SettlementMetrics) ObserveDuration(entityType string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(entityType)).Observe(duration.Seconds())
}

// IncSettled increments the completed settlements counter.
func (m *SettlementMetrics) IncSettled(entityType string) {
	if m == nil || m.settled == nil {
		return
	}
	m.settled.WithLabelValues(normalizeLabel(entityType)).Inc()
}

// IncRefunded increments the refunded cancellations counter.
func (m *SettlementMetrics) IncRefunded(entityType string) {
	if m == nil || m.refunded == nil {
		return
	}
	m.refunded.WithLabelValues(normalizeLabel(entityType)).Inc()
}

// IncFailure increments the rolled-back runs counter.
func (m *SettlementMetrics) IncFailure(entityType string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(entityType)).Inc()
}

// IncNoop increments the already-settled skip counter.
func (m *SettlementMetrics) IncNoop(entityType string) {
	if m == nil || m.noop == nil {
		return
	}
	m.noop.WithLabelValues(normalizeLabel(entityType)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
