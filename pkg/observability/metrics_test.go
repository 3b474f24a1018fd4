package observability_test

import (
	"testing"
	"time"

	"github.com/openqs/heom/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := observability.NewCollector(reg)

	c.ObserveRun(10*time.Millisecond, 120, 3, false)
	c.ObserveRun(5*time.Millisecond, 40, 1, true)

	families, err := reg.Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			switch {
			case m.GetCounter() != nil:
				key := name
				for _, l := range m.GetLabel() {
					key += "{" + l.GetName() + "=" + l.GetValue() + "}"
				}
				got[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				got[name+"_count"] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	assert.Equal(t, float64(1), got["heom_solver_runs_total{status=ok}"])
	assert.Equal(t, float64(1), got["heom_solver_runs_total{status=error}"])
	assert.Equal(t, float64(160), got["heom_solver_steps_total"])
	assert.Equal(t, float64(4), got["heom_solver_step_rejections_total"])
	assert.Equal(t, float64(2), got["heom_solver_run_duration_seconds_count"])
}
