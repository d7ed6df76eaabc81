package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the persistence contracts operators care about: lost-update
// conflicts, uniqueness races, audit volume and transaction latency.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	VersionConflicts    *prometheus.CounterVec
	UniqueConflicts     *prometheus.CounterVec
	AuditEntries        *prometheus.CounterVec
	ImmutableRejections prometheus.Counter
	TxDuration          *prometheus.HistogramVec
}

// New registers every metric with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VersionConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mealcare_version_conflicts_total",
			Help: "Optimistic updates rejected because the caller's version was stale",
		}, []string{"entity"}),
		UniqueConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mealcare_unique_conflicts_total",
			Help: "Creates rejected by a uniqueness constraint",
		}, []string{"entity"}),
		AuditEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mealcare_audit_entries_total",
			Help: "Audit records appended, by action",
		}, []string{"action"}),
		ImmutableRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "mealcare_audit_immutable_rejections_total",
			Help: "Attempts to modify or remove an audit record",
		}),
		TxDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mealcare_tx_duration_seconds",
			Help:    "Duration of database transactions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncVersionConflict(entity string) {
	if m == nil {
		return
	}
	m.VersionConflicts.WithLabelValues(entity).Inc()
}

func (m *Metrics) IncUniqueConflict(entity string) {
	if m == nil {
		return
	}
	m.UniqueConflicts.WithLabelValues(entity).Inc()
}

func (m *Metrics) IncAuditEntry(action string) {
	if m == nil {
		return
	}
	m.AuditEntries.WithLabelValues(action).Inc()
}

func (m *Metrics) IncImmutableRejection() {
	if m == nil {
		return
	}
	m.ImmutableRejections.Inc()
}

// ObserveTx records a finished transaction. It satisfies tx.Observer.
func (m *Metrics) ObserveTx(start time.Time, committed bool) {
	if m == nil {
		return
	}
	outcome := "rollback"
	if committed {
		outcome = "commit"
	}
	m.TxDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
