package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncVersionConflict("resident")
	m.IncVersionConflict("resident")
	m.IncUniqueConflict("meal_order")
	m.IncAuditEntry("update")
	m.IncImmutableRejection()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VersionConflicts.WithLabelValues("resident")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UniqueConflicts.WithLabelValues("meal_order")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditEntries.WithLabelValues("update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImmutableRejections))
}

func TestObserveTx(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTx(time.Now().Add(-10*time.Millisecond), true)
	m.ObserveTx(time.Now(), false)

	assert.Equal(t, 2, testutil.CollectAndCount(m.TxDuration))
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncVersionConflict("resident")
		m.IncUniqueConflict("tenant")
		m.IncAuditEntry("create")
		m.IncImmutableRejection()
		m.ObserveTx(time.Now(), true)
	})
}
