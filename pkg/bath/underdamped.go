package bath

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/openqs/heom/pkg/quantum"
)

// UnderDamped is a bosonic bath with the underdamped Brownian oscillator
// spectral density
//
//	J(w) = lam^2 * gamma * w / ((w^2 - w0^2)^2 + gamma^2*w^2)
//
// The expansion has two resonant terms oscillating at the damped frequency
// plus nk Matsubara modes.
type UnderDamped struct {
	Bosonic

	lam   float64
	gamma float64
	w0    float64
	temp  float64
	nk    int
}

// NewUnderDamped builds an underdamped bath from the coupling strength lam,
// the damping rate gamma, the resonance frequency w0 and the temperature
// temp, with nk Matsubara terms. The oscillator must actually be
// underdamped: gamma < 2*w0.
func NewUnderDamped(q *quantum.Dense, lam, gamma, w0, temp float64, nk int, opts ...Option) (*UnderDamped, error) {
	if err := checkPositive(map[string]float64{
		"coupling strength":   lam,
		"damping rate":        gamma,
		"resonance frequency": w0,
		"temperature":         temp,
	}); err != nil {
		return nil, err
	}
	if nk <= 0 {
		return nil, fmt.Errorf("%w: truncation order must be positive, got %d", ErrInvalidParam, nk)
	}
	if gamma >= 2*w0 {
		return nil, fmt.Errorf("%w: overdamped regime (gamma %v >= 2*w0 %v)", ErrInvalidParam, gamma, 2*w0)
	}

	beta := 1 / temp
	om := math.Sqrt(w0*w0 - gamma*gamma/4)
	g := gamma / 2
	pref := complex(lam*lam/(4*om), 0)

	// Resonant pair at +/- the damped frequency.
	ckReal := []complex128{
		pref * coth(complex(beta, 0) * (complex(om, g)) / 2),
		pref * coth(complex(beta, 0) * (complex(om, -g)) / 2),
	}
	vkReal := []complex128{
		complex(g, -om),
		complex(g, om),
	}

	// Matsubara corrections.
	for k := 1; k <= nk; k++ {
		vk := complex(2*math.Pi*float64(k)*temp, 0)
		num := complex(-2*lam*lam*gamma/beta, 0) * vk
		den := (complex(om, g)*complex(om, g) + vk*vk) * (complex(om, -g)*complex(om, -g) + vk*vk)
		ckReal = append(ckReal, num/den)
		vkReal = append(vkReal, vk)
	}

	ckImag := []complex128{
		1i * pref,
		-1i * pref,
	}
	vkImag := []complex128{
		complex(g, -om),
		complex(g, om),
	}

	bos, err := NewBosonic(q, ckReal, vkReal, ckImag, vkImag, opts...)
	if err != nil {
		return nil, err
	}
	return &UnderDamped{
		Bosonic: *bos,
		lam:     lam,
		gamma:   gamma,
		w0:      w0,
		temp:    temp,
		nk:      nk,
	}, nil
}

func coth(z complex128) complex128 {
	return 1 / cmplx.Tanh(z)
}
