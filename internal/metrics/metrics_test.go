package metrics

import (
	"testing"

	"github.com/drakos74/multiview/internal/cotrain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.Observe(cotrain.Round{Iteration: 1, Active: cotrain.View2, Objective: 4.5, Clusters: 3})
	m.Observe(cotrain.Round{Iteration: 2, Active: cotrain.View1, Objective: 5, Clusters: 2, Evaluated: true, Stalls: [2]int{1, 3}})
	m.Observe(cotrain.Round{Iteration: 3, Active: cotrain.View2, Objective: 5.5, Clusters: 2})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.prometheus.Rounds.WithLabelValues("view1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.prometheus.Rounds.WithLabelValues("view2")))
	assert.Equal(t, 5.5, testutil.ToFloat64(m.prometheus.Objective.WithLabelValues("view2")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.prometheus.Clusters.WithLabelValues("view2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.prometheus.Stalls.WithLabelValues("view1")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.prometheus.Stalls.WithLabelValues("view2")))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := New(registry)
	require.NoError(t, err)
	_, err = New(registry)
	assert.Error(t, err)
}
