package solver

import (
	"log/slog"
	"time"

	"github.com/openqs/heom/internal/logging"
	"github.com/openqs/heom/pkg/quantum"
)

// Metrics receives integration statistics after each Run. Implementations
// must be safe for concurrent use; the Prometheus-backed implementation
// lives in pkg/observability.
type Metrics interface {
	ObserveRun(d time.Duration, steps, rejections int, failed bool)
}

// nopMetrics discards all observations.
type nopMetrics struct{}

func (nopMetrics) ObserveRun(time.Duration, int, int, bool) {}

type namedOp struct {
	name string
	op   *quantum.Dense
}

type config struct {
	rtol        float64
	atol        float64
	maxSteps    int
	keepADOs    bool
	boundaryCut bool
	termQ       *quantum.Dense
	termDelta   complex128
	observables []namedOp
	logger      *slog.Logger
	metrics     Metrics
}

func defaultConfig() config {
	return config{
		rtol:     1e-6,
		atol:     1e-9,
		maxSteps: 1_000_000,
		logger:   logging.NewNop(),
		metrics:  nopMetrics{},
	}
}

// Option configures a Solver at construction.
type Option func(*config)

// WithRTol sets the relative integration tolerance (default 1e-6).
func WithRTol(rtol float64) Option {
	return func(c *config) {
		c.rtol = rtol
	}
}

// WithATol sets the absolute integration tolerance (default 1e-9).
func WithATol(atol float64) Option {
	return func(c *config) {
		c.atol = atol
	}
}

// WithMaxSteps bounds the number of integrator steps per Run
// (default 1e6). Exceeding it fails the run with ErrNotConverged.
func WithMaxSteps(n int) Option {
	return func(c *config) {
		c.maxSteps = n
	}
}

// WithObservable registers a named operator whose expectation value is
// recorded at every output time.
func WithObservable(name string, op *quantum.Dense) Option {
	return func(c *config) {
		c.observables = append(c.observables, namedOp{name: name, op: op})
	}
}

// WithADORetention keeps the full set of auxiliary density operators at
// every output time in the Result. Memory grows with hierarchy size times
// the number of output times.
func WithADORetention() Option {
	return func(c *config) {
		c.keepADOs = true
	}
}

// WithTerminator installs a Markovian closure -delta*[Q,[Q,rho]] that
// compensates for correlation function terms dropped by the truncation.
// The Drude-Lorentz bath computes delta via TerminatorDelta.
func WithTerminator(q *quantum.Dense, delta complex128) Option {
	return func(c *config) {
		c.termQ = q
		c.termDelta = delta
	}
}

// WithBoundaryCut asks NewDrudeLorentz to install the terminator computed
// from its own bath. It has no effect on solvers built directly with New;
// use WithTerminator there.
func WithBoundaryCut() Option {
	return func(c *config) {
		c.boundaryCut = true
	}
}

// WithLogger sets a structured logger for run progress (default: no-op).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink for integration statistics.
func WithMetrics(m Metrics) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}
