package solver

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepperExponentialDecay(t *testing.T) {
	decay := func(t float64, y, dydt []complex128) {
		for i := range y {
			dydt[i] = -y[i]
		}
	}

	y := []complex128{1, 2}
	st := newStepper(1e-8, 1e-10, 100000, len(y))
	err := st.advance(context.Background(), decay, 0, 1, y)
	require.NoError(t, err)

	assert.InDelta(t, math.Exp(-1), real(y[0]), 1e-7)
	assert.InDelta(t, 2*math.Exp(-1), real(y[1]), 1e-7)
	assert.Greater(t, st.steps, 0)
}

func TestStepperPhaseRotation(t *testing.T) {
	rotate := func(t float64, y, dydt []complex128) {
		dydt[0] = 1i * y[0]
	}

	y := []complex128{1}
	st := newStepper(1e-9, 1e-12, 100000, 1)
	err := st.advance(context.Background(), rotate, 0, math.Pi, y)
	require.NoError(t, err)

	// e^{i*pi} = -1, with unit magnitude preserved.
	assert.InDelta(t, -1, real(y[0]), 1e-7)
	assert.InDelta(t, 1, cmplx.Abs(y[0]), 1e-7)
}

func TestStepperSegmentsMatchSingleSpan(t *testing.T) {
	decay := func(t float64, y, dydt []complex128) {
		dydt[0] = -y[0]
	}

	a := []complex128{1}
	sa := newStepper(1e-8, 1e-10, 100000, 1)
	require.NoError(t, sa.advance(context.Background(), decay, 0, 2, a))

	b := []complex128{1}
	sb := newStepper(1e-8, 1e-10, 100000, 1)
	require.NoError(t, sb.advance(context.Background(), decay, 0, 1, b))
	require.NoError(t, sb.advance(context.Background(), decay, 1, 2, b))

	assert.InDelta(t, real(a[0]), real(b[0]), 1e-8)
}

func TestStepperBudgetExhaustion(t *testing.T) {
	decay := func(t float64, y, dydt []complex128) {
		dydt[0] = -y[0]
	}

	y := []complex128{1}
	st := newStepper(1e-12, 1e-14, 2, 1)
	err := st.advance(context.Background(), decay, 0, 100, y)
	assert.ErrorIs(t, err, ErrNotConverged)
}

func TestStepperContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	y := []complex128{1}
	st := newStepper(1e-8, 1e-10, 100000, 1)
	err := st.advance(ctx, func(t float64, y, dydt []complex128) {
		dydt[0] = -y[0]
	}, 0, 1, y)
	assert.ErrorIs(t, err, context.Canceled)
}
