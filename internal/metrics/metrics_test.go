package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsAndExposes(t *testing.T) {
	m := New()
	m.ObserveOperation("add_activity", ResultChanged)
	m.ObserveOperation("add_activity", ResultChanged)
	m.ObserveOperation("remove_activity", ResultNoop)
	m.SetStored(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("add_activity", ResultChanged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("remove_activity", ResultNoop)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stored))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `activities_repository_operations_total{operation="add_activity",result="changed"} 2`)
	assert.Contains(t, rr.Body.String(), "activities_stored 2")
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("add_activity", ResultChanged)
		m.SetStored(1)
	})
}
