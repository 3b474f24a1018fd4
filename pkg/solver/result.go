package solver

import (
	"time"

	"github.com/openqs/heom/pkg/quantum"
)

// Stats summarises the numerical work of a Run.
type Stats struct {
	Steps      int
	Rejections int
	Duration   time.Duration
}

// Result is the time-resolved output of a Run.
type Result struct {
	// Times is the output grid, as passed to Run.
	Times []float64

	// States holds the reduced system density matrix at each time.
	States []*quantum.Dense

	// Expect maps observable names registered with WithObservable to
	// their expectation value trajectories.
	Expect map[string][]complex128

	// ADOs holds, when WithADORetention was set, the full hierarchy at
	// each time: ADOs[i][j] is auxiliary operator j at Times[i].
	ADOs [][]*quantum.Dense

	// Stats reports the integrator effort.
	Stats Stats
}
