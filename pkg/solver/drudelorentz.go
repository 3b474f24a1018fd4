package solver

import (
	"github.com/openqs/heom/pkg/bath"
	"github.com/openqs/heom/pkg/quantum"
)

// DrudeLorentzSolver is a convenience solver for a system coupled to a
// single Drude-Lorentz bath. It builds the bath from physical parameters
// and otherwise shares the general hierarchy propagation contract.
type DrudeLorentzSolver struct {
	*Solver

	bath *bath.DrudeLorentz
}

// NewDrudeLorentz constructs the solver from the Hamiltonian, the coupling
// operator and the Drude-Lorentz parameters (coupling strength lam, cutoff
// frequency gamma, temperature temp, nk Matsubara terms). WithBoundaryCut
// additionally installs the Markovian terminator computed from the
// truncated Matsubara tail.
func NewDrudeLorentz(ham, q *quantum.Dense, lam, gamma, temp float64, nk, depth int, opts ...Option) (*DrudeLorentzSolver, error) {
	b, err := bath.NewDrudeLorentz(q, lam, gamma, temp, nk)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.boundaryCut {
		opts = append(opts, WithTerminator(q, b.TerminatorDelta()))
	}

	inner, err := New(ham, []bath.Source{b}, depth, opts...)
	if err != nil {
		return nil, err
	}
	return &DrudeLorentzSolver{Solver: inner, bath: b}, nil
}

// Bath returns the internally constructed Drude-Lorentz bath.
func (s *DrudeLorentzSolver) Bath() *bath.DrudeLorentz { return s.bath }
