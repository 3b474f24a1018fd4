package bath_test

import (
	"math/cmplx"
	"testing"

	"github.com/openqs/heom/pkg/bath"
	"github.com/openqs/heom/pkg/quantum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDrudeLorentzPade_Shape(t *testing.T) {
	q := quantum.SigmaZ()
	b, err := bath.NewDrudeLorentzPade(q, 0.05, 0.5, 0.25, 4)
	require.NoError(t, err)

	exps := b.Exponents()
	require.Len(t, exps, 5)
	assert.Equal(t, bath.KindRealImag, exps[0].Kind)

	// Padé poles are real, positive and ordered above the cutoff term.
	for k := 1; k < len(exps); k++ {
		assert.Greater(t, real(exps[k].V), 0.0)
		assert.InDelta(t, 0, imag(exps[k].V), 1e-12)
		if k > 1 {
			assert.Greater(t, real(exps[k].V), real(exps[k-1].V))
		}
	}
}

// At high truncation order the Padé and Matsubara expansions approximate
// the same correlation function, so they must agree closely.
func TestPadeMatchesMatsubara(t *testing.T) {
	q := quantum.SigmaZ()
	lam, gamma, temp := 0.05, 0.5, 1.0

	pade, err := bath.NewDrudeLorentzPade(q, lam, gamma, temp, 12)
	require.NoError(t, err)
	mats, err := bath.NewDrudeLorentz(q, lam, gamma, temp, 2000)
	require.NoError(t, err)

	for _, ts := range []float64{0.1, 0.5, 1.0, 2.0, 5.0} {
		cp := pade.CorrelationFunction(ts)
		cm := mats.CorrelationFunction(ts)
		assert.InDeltaf(t, 0, cmplx.Abs(cp-cm), 1e-5,
			"correlation mismatch at t=%v: pade=%v matsubara=%v", ts, cp, cm)
	}
}

func TestNewDrudeLorentzPade_Validation(t *testing.T) {
	q := quantum.SigmaZ()
	_, err := bath.NewDrudeLorentzPade(q, 0.05, 0.5, 1.0, 0)
	assert.ErrorIs(t, err, bath.ErrInvalidParam)
	_, err = bath.NewDrudeLorentzPade(q, -0.05, 0.5, 1.0, 2)
	assert.ErrorIs(t, err, bath.ErrInvalidParam)
}
