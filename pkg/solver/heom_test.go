package solver_test

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/openqs/heom/pkg/bath"
	"github.com/openqs/heom/pkg/quantum"
	"github.com/openqs/heom/pkg/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linspace(start, stop float64, n int) []float64 {
	ts := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range ts {
		ts[i] = start + float64(i)*step
	}
	return ts
}

func plusState() *quantum.Dense {
	return quantum.NewDense(2, 2, []complex128{0.5, 0.5, 0.5, 0.5})
}

func TestNew_ConfigErrors(t *testing.T) {
	q := quantum.SigmaZ()
	dl, err := bath.NewDrudeLorentz(q, 0.05, 0.5, 1.0, 2)
	require.NoError(t, err)

	t.Run("no baths", func(t *testing.T) {
		_, err := solver.New(quantum.SigmaZ(), nil, 2)
		assert.ErrorIs(t, err, solver.ErrConfig)
	})

	t.Run("non-positive depth", func(t *testing.T) {
		_, err := solver.New(quantum.SigmaZ(), []bath.Source{dl}, 0)
		assert.ErrorIs(t, err, solver.ErrConfig)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		ham3 := quantum.Identity(3)
		_, err := solver.New(ham3, []bath.Source{dl}, 2)
		assert.ErrorIs(t, err, solver.ErrConfig)
	})

	t.Run("mixed statistics", func(t *testing.T) {
		fb, err := bath.NewFermionic(quantum.SigmaMinus(),
			[]complex128{0.1}, []complex128{1},
			[]complex128{0.1}, []complex128{1},
		)
		require.NoError(t, err)
		_, err = solver.New(quantum.SigmaZ(), []bath.Source{dl, fb}, 2)
		assert.ErrorIs(t, err, solver.ErrConfig)
	})

	t.Run("observable mismatch", func(t *testing.T) {
		_, err := solver.New(quantum.SigmaZ(), []bath.Source{dl}, 2,
			solver.WithObservable("n", quantum.Identity(3)))
		assert.ErrorIs(t, err, solver.ErrConfig)
	})
}

func TestRun_ArgumentErrors(t *testing.T) {
	q := quantum.SigmaZ()
	dl, err := bath.NewDrudeLorentz(q, 0.05, 0.5, 1.0, 2)
	require.NoError(t, err)
	s, err := solver.New(quantum.SigmaX(), []bath.Source{dl}, 2)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = s.Run(ctx, nil, linspace(0, 1, 3))
	assert.ErrorIs(t, err, solver.ErrConfig)

	_, err = s.Run(ctx, quantum.Identity(3), linspace(0, 1, 3))
	assert.ErrorIs(t, err, solver.ErrConfig)

	_, err = s.Run(ctx, plusState(), nil)
	assert.ErrorIs(t, err, solver.ErrConfig)

	_, err = s.Run(ctx, plusState(), []float64{1, 0.5})
	assert.ErrorIs(t, err, solver.ErrConfig)
}

// Pure dephasing (the coupling operator commutes with the Hamiltonian) has
// a closed-form solution: the coherence decays by exp(-4*Gamma(t)) with
// Gamma the double integral of the real part of the correlation function.
func TestRun_PureDephasingMatchesAnalytic(t *testing.T) {
	lam, gamma, temp := 0.025, 0.05, 1/0.95
	nk := 3

	q := quantum.SigmaZ()
	dl, err := bath.NewDrudeLorentz(q, lam, gamma, temp, nk)
	require.NoError(t, err)

	ham := quantum.Zeros(2, 2)
	s, err := solver.New(ham, []bath.Source{dl}, 6,
		solver.WithRTol(1e-8), solver.WithATol(1e-10))
	require.NoError(t, err)

	times := linspace(0, 10, 11)
	res, err := s.Run(context.Background(), plusState(), times)
	require.NoError(t, err)

	for i, tv := range times {
		// Gamma(t) summed over the real-part exponents.
		var g float64
		for _, e := range dl.Exponents() {
			a, nu := real(e.C), real(e.V)
			g += a * (math.Exp(-nu*tv) + nu*tv - 1) / (nu * nu)
		}
		want := 0.5 * math.Exp(-4*g)
		got := cmplx.Abs(res.States[i].At(0, 1))
		assert.InDeltaf(t, want, got, 5e-4, "coherence at t=%v", tv)
	}
}

func TestRun_SpinBosonPhysicality(t *testing.T) {
	q := quantum.SigmaZ()
	dl, err := bath.NewDrudeLorentz(q, 0.05, 0.5, 1.0, 2)
	require.NoError(t, err)

	// Tunnelling Hamiltonian: population relaxes instead of freezing.
	ham := quantum.Scale(0.5, quantum.SigmaX())
	s, err := solver.New(ham, []bath.Source{dl}, 4,
		solver.WithObservable("sz", quantum.SigmaZ()))
	require.NoError(t, err)

	rho0 := quantum.BasisState(2, 0)
	times := linspace(0, 20, 21)
	res, err := s.Run(context.Background(), rho0, times)
	require.NoError(t, err)

	require.Len(t, res.States, len(times))
	for i, rho := range res.States {
		assert.InDeltaf(t, 1.0, real(quantum.Trace(rho)), 1e-6, "trace at step %d", i)
		assert.Truef(t, rho.IsHermitian(1e-6), "hermiticity at step %d", i)
		for d := 0; d < 2; d++ {
			pop := real(rho.At(d, d))
			assert.GreaterOrEqualf(t, pop, -1e-6, "population %d at step %d", d, i)
			assert.LessOrEqualf(t, pop, 1+1e-6, "population %d at step %d", d, i)
		}
	}

	sz := res.Expect["sz"]
	require.Len(t, sz, len(times))
	assert.InDelta(t, 1.0, real(sz[0]), 1e-12)
	// The bath damps the coherent oscillation.
	assert.Less(t, math.Abs(real(sz[len(sz)-1])), 1.0)
}

func TestRun_FermionicPhysicality(t *testing.T) {
	// Single resonant level coupled to one fermionic exponent pair.
	ham := quantum.NewDense(2, 2, []complex128{0, 0, 0, 0.5})
	d := quantum.SigmaMinus()

	fb, err := bath.NewFermionic(d,
		[]complex128{0.025}, []complex128{0.5},
		[]complex128{0.025}, []complex128{0.5},
	)
	require.NoError(t, err)

	s, err := solver.New(ham, []bath.Source{fb}, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, s.NumADOs())

	rho0 := quantum.BasisState(2, 1)
	res, err := s.Run(context.Background(), rho0, linspace(0, 10, 11))
	require.NoError(t, err)

	for i, rho := range res.States {
		assert.InDeltaf(t, 1.0, real(quantum.Trace(rho)), 1e-6, "trace at step %d", i)
		assert.Truef(t, rho.IsHermitian(1e-6), "hermiticity at step %d", i)
	}
}

func TestRun_ADORetention(t *testing.T) {
	q := quantum.SigmaZ()
	dl, err := bath.NewDrudeLorentz(q, 0.05, 0.5, 1.0, 1)
	require.NoError(t, err)

	s, err := solver.New(quantum.SigmaX(), []bath.Source{dl}, 2, solver.WithADORetention())
	require.NoError(t, err)

	times := linspace(0, 1, 3)
	res, err := s.Run(context.Background(), plusState(), times)
	require.NoError(t, err)

	require.Len(t, res.ADOs, len(times))
	require.Len(t, res.ADOs[0], s.NumADOs())
	// The zeroth ADO is the physical state.
	assert.True(t, quantum.EqualApprox(res.ADOs[2][0], res.States[2], 1e-14))
	// Auxiliary operators start from zero and become populated.
	assert.InDelta(t, 0, res.ADOs[0][1].MaxAbs(), 1e-14)
}

func TestRun_StepBudget(t *testing.T) {
	q := quantum.SigmaZ()
	dl, err := bath.NewDrudeLorentz(q, 0.05, 0.5, 1.0, 2)
	require.NoError(t, err)

	s, err := solver.New(quantum.SigmaX(), []bath.Source{dl}, 3, solver.WithMaxSteps(2))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), plusState(), linspace(0, 50, 3))
	assert.ErrorIs(t, err, solver.ErrNotConverged)
}

func TestRun_ContextCancelled(t *testing.T) {
	q := quantum.SigmaZ()
	dl, err := bath.NewDrudeLorentz(q, 0.05, 0.5, 1.0, 2)
	require.NoError(t, err)

	s, err := solver.New(quantum.SigmaX(), []bath.Source{dl}, 3)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx, plusState(), linspace(0, 10, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_TerminatorImprovesTruncation(t *testing.T) {
	// With very few Matsubara terms the terminator compensates the
	// truncated tail; the corrected run must stay physical.
	q := quantum.SigmaZ()
	dl, err := bath.NewDrudeLorentz(q, 0.05, 0.5, 0.5, 1)
	require.NoError(t, err)

	s, err := solver.New(quantum.Scale(0.5, quantum.SigmaX()), []bath.Source{dl}, 4,
		solver.WithTerminator(q, dl.TerminatorDelta()))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), quantum.BasisState(2, 0), linspace(0, 10, 11))
	require.NoError(t, err)
	for _, rho := range res.States {
		assert.InDelta(t, 1.0, real(quantum.Trace(rho)), 1e-6)
		assert.True(t, rho.IsHermitian(1e-6))
	}
}
