package bath

import (
	"fmt"
	"math"

	"github.com/openqs/heom/pkg/quantum"
)

// DrudeLorentz is a bosonic bath with the Drude-Lorentz (overdamped)
// spectral density
//
//	J(w) = 2*lam*gamma*w / (w^2 + gamma^2)
//
// expanded via the Matsubara decomposition: a resonant term at the cutoff
// frequency plus nk Matsubara modes at multiples of 2*pi*T.
type DrudeLorentz struct {
	Bosonic

	lam   float64
	gamma float64
	temp  float64
	nk    int
}

// NewDrudeLorentz builds a Drude-Lorentz bath from the coupling strength
// lam, the cutoff frequency gamma, the temperature temp and the number of
// Matsubara terms nk. All physical parameters must be positive.
func NewDrudeLorentz(q *quantum.Dense, lam, gamma, temp float64, nk int, opts ...Option) (*DrudeLorentz, error) {
	if err := checkPositive(map[string]float64{
		"coupling strength": lam,
		"cutoff frequency":  gamma,
		"temperature":       temp,
	}); err != nil {
		return nil, err
	}
	if nk <= 0 {
		return nil, fmt.Errorf("%w: truncation order must be positive, got %d", ErrInvalidParam, nk)
	}

	ckReal := make([]complex128, 0, nk+1)
	vkReal := make([]complex128, 0, nk+1)

	ckReal = append(ckReal, complex(lam*gamma*cot(gamma/(2*temp)), 0))
	vkReal = append(vkReal, complex(gamma, 0))
	for k := 1; k <= nk; k++ {
		vk := 2 * math.Pi * float64(k) * temp
		ckReal = append(ckReal, complex(4*lam*gamma*temp*vk/(vk*vk-gamma*gamma), 0))
		vkReal = append(vkReal, complex(vk, 0))
	}

	ckImag := []complex128{complex(-lam*gamma, 0)}
	vkImag := []complex128{complex(gamma, 0)}

	bos, err := NewBosonic(q, ckReal, vkReal, ckImag, vkImag, opts...)
	if err != nil {
		return nil, err
	}
	return &DrudeLorentz{
		Bosonic: *bos,
		lam:     lam,
		gamma:   gamma,
		temp:    temp,
		nk:      nk,
	}, nil
}

// TerminatorDelta returns the Markovian closure coefficient for the
// Matsubara modes dropped by the truncation: the difference between the
// full correlation function integral 2*lam*T/gamma - i*lam and the integral
// of the retained exponents. The solver's terminator option applies
// -delta*[Q,[Q,rho]] to close the hierarchy.
func (b *DrudeLorentz) TerminatorDelta() complex128 {
	full := complex(2*b.lam*b.temp/b.gamma, -b.lam)
	var kept complex128
	for _, e := range b.Exponents() {
		kept += e.Coefficient() / e.V
	}
	return full - kept
}

func cot(x float64) float64 {
	return math.Cos(x) / math.Sin(x)
}

func checkPositive(params map[string]float64) error {
	for name, v := range params {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParam, name, v)
		}
	}
	return nil
}
