package bath_test

import (
	"testing"

	"github.com/openqs/heom/pkg/bath"
	"github.com/openqs/heom/pkg/quantum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBosonic_Combine(t *testing.T) {
	q := quantum.SigmaZ()

	// Real and imaginary terms share the frequency 0.5 and must merge.
	b, err := bath.NewBosonic(q,
		[]complex128{1, 2}, []complex128{0.5, 1.0},
		[]complex128{3}, []complex128{0.5},
	)
	require.NoError(t, err)

	exps := b.Exponents()
	require.Len(t, exps, 2)
	assert.Equal(t, bath.KindRealImag, exps[0].Kind)
	assert.Equal(t, complex128(1), exps[0].C)
	assert.Equal(t, complex128(3), exps[0].C2)
	assert.Equal(t, bath.KindReal, exps[1].Kind)
	assert.False(t, b.Fermionic())
}

func TestNewBosonic_NoCombine(t *testing.T) {
	q := quantum.SigmaZ()

	b, err := bath.NewBosonic(q,
		[]complex128{1}, []complex128{0.5},
		[]complex128{3}, []complex128{0.5},
		bath.WithoutCombine(),
	)
	require.NoError(t, err)

	exps := b.Exponents()
	require.Len(t, exps, 2)
	assert.Equal(t, bath.KindReal, exps[0].Kind)
	assert.Equal(t, bath.KindImag, exps[1].Kind)
}

func TestNewBosonic_Validation(t *testing.T) {
	q := quantum.SigmaZ()

	_, err := bath.NewBosonic(nil, []complex128{1}, []complex128{1}, nil, nil)
	assert.ErrorIs(t, err, bath.ErrInvalidParam)

	_, err = bath.NewBosonic(q, []complex128{1, 2}, []complex128{1}, nil, nil)
	assert.ErrorIs(t, err, bath.ErrInvalidParam)

	// Negative decay rate is rejected by exponent validation.
	_, err = bath.NewBosonic(q, []complex128{1}, []complex128{-1}, nil, nil)
	assert.ErrorIs(t, err, bath.ErrInvalidParam)
}

func TestNewBosonic_Tag(t *testing.T) {
	q := quantum.SigmaX()
	b, err := bath.NewBosonic(q, []complex128{1}, []complex128{1}, nil, nil, bath.WithTag("env-a"))
	require.NoError(t, err)
	assert.Equal(t, "env-a", b.Exponents()[0].Tag)
}

func TestCorrelationFunction(t *testing.T) {
	q := quantum.SigmaZ()
	b, err := bath.NewBosonic(q,
		[]complex128{2}, []complex128{1},
		[]complex128{-0.5}, []complex128{1},
	)
	require.NoError(t, err)

	// C(0) = 2 - 0.5i, and the single merged exponent decays at rate 1.
	c0 := b.CorrelationFunction(0)
	assert.InDelta(t, 2.0, real(c0), 1e-14)
	assert.InDelta(t, -0.5, imag(c0), 1e-14)

	c1 := b.CorrelationFunction(1)
	assert.InDelta(t, 2.0/2.718281828459045, real(c1), 1e-9)
}
