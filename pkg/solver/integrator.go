package solver

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
)

// rhsFunc evaluates the time derivative of the flattened hierarchy state.
type rhsFunc func(t float64, y, dydt []complex128)

// stepper is an adaptive Dormand-Prince 5(4) integrator over a complex
// state vector. The step size persists across segments so that stepping to
// each output time does not restart the controller.
type stepper struct {
	rtol     float64
	atol     float64
	maxSteps int
	h        float64 // current step size, 0 until initialised

	steps    int
	rejected int

	k    [7][]complex128
	ytmp []complex128
	yerr []complex128
}

// Dormand-Prince tableau.
var (
	dpC = [7]float64{0, 1. / 5, 3. / 10, 4. / 5, 8. / 9, 1, 1}
	dpA = [7][6]float64{
		{},
		{1. / 5},
		{3. / 40, 9. / 40},
		{44. / 45, -56. / 15, 32. / 9},
		{19372. / 6561, -25360. / 2187, 64448. / 6561, -212. / 729},
		{9017. / 3168, -355. / 33, 46732. / 5247, 49. / 176, -5103. / 18656},
		{35. / 384, 0, 500. / 1113, 125. / 192, -2187. / 6784, 11. / 84},
	}
	// 5th order solution weights (row 7 of A) and the embedded 4th order
	// weights used for the error estimate.
	dpB  = [7]float64{35. / 384, 0, 500. / 1113, 125. / 192, -2187. / 6784, 11. / 84, 0}
	dpB4 = [7]float64{5179. / 57600, 0, 7571. / 16695, 393. / 640, -92097. / 339200, 187. / 2100, 1. / 40}
)

func newStepper(rtol, atol float64, maxSteps, dim int) *stepper {
	s := &stepper{
		rtol:     rtol,
		atol:     atol,
		maxSteps: maxSteps,
		ytmp:     make([]complex128, dim),
		yerr:     make([]complex128, dim),
	}
	for i := range s.k {
		s.k[i] = make([]complex128, dim)
	}
	return s
}

// advance integrates y in place from t0 to t1.
func (s *stepper) advance(ctx context.Context, f rhsFunc, t0, t1 float64, y []complex128) error {
	if t1 <= t0 {
		return nil
	}
	t := t0
	if s.h == 0 {
		s.h = (t1 - t0) / 100
	}
	hmin := 1e-14 * (t1 - t0)

	for t < t1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.steps >= s.maxSteps {
			return fmt.Errorf("%w: step budget of %d exhausted at t=%g", ErrNotConverged, s.maxSteps, t)
		}
		h := s.h
		if t+h > t1 {
			h = t1 - t
		}

		errNorm := s.step(f, t, h, y)
		s.steps++
		if errNorm <= 1 {
			// Accept: the 5th order solution is already in ytmp.
			copy(y, s.ytmp)
			t += h
			s.h = h * stepFactor(errNorm)
		} else {
			s.rejected++
			s.h = h * stepFactor(errNorm)
			if s.h < hmin {
				return fmt.Errorf("%w: step size underflow at t=%g", ErrNotConverged, t)
			}
		}
	}
	return nil
}

// step performs one trial step of size h and returns the scaled error norm.
// The candidate solution is left in s.ytmp.
func (s *stepper) step(f rhsFunc, t, h float64, y []complex128) float64 {
	f(t, y, s.k[0])
	for stage := 1; stage < 7; stage++ {
		for i := range s.ytmp {
			acc := y[i]
			for j := 0; j < stage; j++ {
				if a := dpA[stage][j]; a != 0 {
					acc += complex(h*a, 0) * s.k[j][i]
				}
			}
			s.ytmp[i] = acc
		}
		f(t+dpC[stage]*h, s.ytmp, s.k[stage])
	}

	// 5th order solution and the 5th/4th order difference.
	var sum float64
	for i := range s.ytmp {
		var y5, y4 complex128
		for j := 0; j < 7; j++ {
			if dpB[j] != 0 {
				y5 += complex(h*dpB[j], 0) * s.k[j][i]
			}
			if dpB4[j] != 0 {
				y4 += complex(h*dpB4[j], 0) * s.k[j][i]
			}
		}
		y5 += y[i]
		y4 += y[i]
		s.ytmp[i] = y5

		scale := s.atol + s.rtol*math.Max(cmplx.Abs(y[i]), cmplx.Abs(y5))
		e := cmplx.Abs(y5-y4) / scale
		sum += e * e
	}
	return math.Sqrt(sum / float64(len(s.ytmp)))
}

func stepFactor(errNorm float64) float64 {
	if errNorm == 0 {
		return 5
	}
	f := 0.9 * math.Pow(errNorm, -0.2)
	if f > 5 {
		return 5
	}
	if f < 0.2 {
		return 0.2
	}
	return f
}
