/*
Package heom simulates the dynamics of open quantum systems using the
hierarchical equations of motion (HEOM).

The method treats a small quantum system coupled to one or more harmonic
environments without assuming weak coupling or Markovian dynamics. The
environment influence enters through the bath correlation function, written
as a sum of decaying exponentials; each exponential spawns a ladder of
auxiliary density operators (ADOs) that the solver integrates alongside the
physical state.

# Concept

A simulation is assembled from three ingredients:

  - a system Hamiltonian and an initial density matrix (package quantum),
  - one or more baths describing the environments (package bath),
  - a solver that truncates and integrates the hierarchy (package solver).

Baths come in analytic families (Drude-Lorentz with Matsubara or Pade
expansions, underdamped Brownian oscillator, fermionic leads) or can be
built directly from correlation exponents when the expansion is computed
elsewhere.

# Usage

A spin coupled to an overdamped bosonic environment:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/openqs/heom"
		"github.com/openqs/heom/pkg/quantum"
		"github.com/openqs/heom/pkg/solver"
	)

	func main() {
		// System: a tunneling two-level system.
		ham := quantum.Scale(0.5, quantum.SigmaX())

		// Solver for a Drude-Lorentz bath coupled through sigma_z,
		// with 2 Matsubara terms and hierarchy depth 5.
		s, err := heom.NewHSolverDL(ham, quantum.SigmaZ(),
			0.025, 0.05, 1.0, 2, 5,
			solver.WithObservable("sz", quantum.SigmaZ()),
		)
		if err != nil {
			log.Fatal(err)
		}

		// Initial state |0><0|.
		rho0 := quantum.BasisState(2, 0)

		times := []float64{0, 1, 2, 3, 4, 5}
		res, err := s.Run(context.Background(), rho0, times)
		if err != nil {
			log.Fatal(err)
		}

		for i, t := range res.Times {
			fmt.Printf("t=%.1f  <sz>=%.6f\n", t, real(res.Expect["sz"][i]))
		}
	}

# Accuracy

The hierarchy is exact in the limit of infinite depth and a complete
exponential expansion. In practice convergence is checked by increasing the
truncation depth and the number of expansion terms until observables stop
changing. For the Drude-Lorentz bath a Markovian terminator
(solver.WithTerminator) compensates the discarded fast exponents and
usually permits a much shorter expansion.
*/
package heom
