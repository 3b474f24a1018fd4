package heom

import (
	"github.com/openqs/heom/pkg/bath"
	"github.com/openqs/heom/pkg/quantum"
	"github.com/openqs/heom/pkg/solver"
)

// Version is the library version.
const Version = "0.1.0"

// The root package re-exports the bath and solver surface so that typical
// simulations only need a single import. The underlying packages remain
// available for finer control.
type (
	// BathExponent is one exponential term of a bath correlation expansion.
	BathExponent = bath.Exponent

	// Bath is an environment described directly by its exponents.
	Bath = bath.Bath

	// BosonicBath is a bosonic environment built from real and imaginary
	// correlation expansions.
	BosonicBath = bath.Bosonic

	// DrudeLorentzBath is an overdamped bosonic environment expanded in
	// Matsubara frequencies.
	DrudeLorentzBath = bath.DrudeLorentz

	// DrudeLorentzPadeBath is a Drude-Lorentz environment expanded with
	// the faster-converging Pade scheme.
	DrudeLorentzPadeBath = bath.DrudeLorentzPade

	// UnderDampedBath is an underdamped Brownian-oscillator environment.
	UnderDampedBath = bath.UnderDamped

	// FermionicBath is a fermionic environment described by paired "+"
	// and "-" expansions.
	FermionicBath = bath.Fermionic

	// HEOMSolver integrates the hierarchical equations of motion for an
	// arbitrary set of baths.
	HEOMSolver = solver.Solver

	// HSolverDL is a convenience solver for a single Drude-Lorentz bath.
	HSolverDL = solver.DrudeLorentzSolver
)

// NewBath builds an environment directly from correlation exponents.
func NewBath(exponents []BathExponent) (*Bath, error) {
	return bath.New(exponents)
}

// NewBosonicBath builds a bosonic environment from the exponential
// expansions of the real and imaginary parts of its correlation function.
func NewBosonicBath(q *quantum.Dense, ckReal, vkReal, ckImag, vkImag []complex128, opts ...bath.Option) (*BosonicBath, error) {
	return bath.NewBosonic(q, ckReal, vkReal, ckImag, vkImag, opts...)
}

// NewDrudeLorentzBath builds a Drude-Lorentz environment with nk Matsubara
// terms.
func NewDrudeLorentzBath(q *quantum.Dense, lam, gamma, temp float64, nk int, opts ...bath.Option) (*DrudeLorentzBath, error) {
	return bath.NewDrudeLorentz(q, lam, gamma, temp, nk, opts...)
}

// NewDrudeLorentzPadeBath builds a Drude-Lorentz environment using a
// [nk-1/nk] Pade expansion of the thermal factor.
func NewDrudeLorentzPadeBath(q *quantum.Dense, lam, gamma, temp float64, nk int, opts ...bath.Option) (*DrudeLorentzPadeBath, error) {
	return bath.NewDrudeLorentzPade(q, lam, gamma, temp, nk, opts...)
}

// NewUnderDampedBath builds an underdamped Brownian-oscillator environment.
func NewUnderDampedBath(q *quantum.Dense, lam, gamma, w0, temp float64, nk int, opts ...bath.Option) (*UnderDampedBath, error) {
	return bath.NewUnderDamped(q, lam, gamma, w0, temp, nk, opts...)
}

// NewFermionicBath builds a fermionic environment from paired "+" and "-"
// correlation expansions.
func NewFermionicBath(q *quantum.Dense, ckPlus, vkPlus, ckMinus, vkMinus []complex128, opts ...bath.Option) (*FermionicBath, error) {
	return bath.NewFermionic(q, ckPlus, vkPlus, ckMinus, vkMinus, opts...)
}

// NewHEOMSolver builds a hierarchy solver for a system Hamiltonian and a
// set of baths, truncated at the given depth.
func NewHEOMSolver(ham *quantum.Dense, baths []bath.Source, depth int, opts ...solver.Option) (*HEOMSolver, error) {
	return solver.New(ham, baths, depth, opts...)
}

// NewHSolverDL builds a solver for a single Drude-Lorentz bath directly
// from the physical bath parameters.
func NewHSolverDL(ham, q *quantum.Dense, lam, gamma, temp float64, nk, depth int, opts ...solver.Option) (*HSolverDL, error) {
	return solver.NewDrudeLorentz(ham, q, lam, gamma, temp, nk, depth, opts...)
}
