package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records solver run statistics as Prometheus metrics.
// It is safe for concurrent use.
type Collector struct {
	runs       *prometheus.CounterVec
	steps      prometheus.Counter
	rejections prometheus.Counter
	duration   prometheus.Histogram
}

// NewCollector creates the solver metric set and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heom_solver_runs_total",
			Help: "Completed solver runs by outcome.",
		}, []string{"status"}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heom_solver_steps_total",
			Help: "Accepted integrator steps across all runs.",
		}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heom_solver_step_rejections_total",
			Help: "Rejected integrator trial steps across all runs.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heom_solver_run_duration_seconds",
			Help:    "Wall-clock duration of solver runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.runs, c.steps, c.rejections, c.duration)
	return c
}

// ObserveRun implements solver.Metrics.
func (c *Collector) ObserveRun(d time.Duration, steps, rejections int, failed bool) {
	status := "ok"
	if failed {
		status = "error"
	}
	c.runs.WithLabelValues(status).Inc()
	c.steps.Add(float64(steps))
	c.rejections.Add(float64(rejections))
	c.duration.Observe(d.Seconds())
}
