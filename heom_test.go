package heom_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openqs/heom"
	"github.com/openqs/heom/pkg/bath"
	"github.com/openqs/heom/pkg/quantum"
)

// The facade exposes every bath family and both solvers under a single
// import.
func TestFacadeConstructors(t *testing.T) {
	q := quantum.SigmaZ()

	var b *heom.BosonicBath
	b, err := heom.NewBosonicBath(q,
		[]complex128{1}, []complex128{0.5}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())

	var dl *heom.DrudeLorentzBath
	dl, err = heom.NewDrudeLorentzBath(q, 0.025, 0.05, 1.0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, dl.Len())

	var pade *heom.DrudeLorentzPadeBath
	pade, err = heom.NewDrudeLorentzPadeBath(q, 0.025, 0.05, 1.0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, pade.Len())

	var ud *heom.UnderDampedBath
	ud, err = heom.NewUnderDampedBath(q, 0.1, 0.1, 1.0, 1.0, 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ud.Len(), 2)

	var fb *heom.FermionicBath
	fb, err = heom.NewFermionicBath(q,
		[]complex128{0.2}, []complex128{1}, []complex128{0.2}, []complex128{1})
	require.NoError(t, err)
	assert.True(t, fb.Fermionic())

	var raw *heom.Bath
	raw, err = heom.NewBath([]heom.BathExponent{
		{Kind: bath.KindReal, Q: q, C: 1, V: 0.5},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, raw.Len())

	ham := quantum.Scale(0.5, quantum.SigmaX())

	var s *heom.HEOMSolver
	s, err = heom.NewHEOMSolver(ham, []bath.Source{dl}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Dim())

	var sdl *heom.HSolverDL
	sdl, err = heom.NewHSolverDL(ham, q, 0.025, 0.05, 1.0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, s.NumADOs(), sdl.NumADOs())
}

func TestFacadeRun(t *testing.T) {
	ham := quantum.Scale(0.5, quantum.SigmaX())
	s, err := heom.NewHSolverDL(ham, quantum.SigmaZ(), 0.05, 0.1, 1.0, 1, 3)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), quantum.BasisState(2, 0), []float64{0, 0.5, 1})
	require.NoError(t, err)

	require.Len(t, res.States, 3)
	for _, rho := range res.States {
		assert.InDelta(t, 1.0, real(quantum.Trace(rho)), 1e-6)
	}
}
