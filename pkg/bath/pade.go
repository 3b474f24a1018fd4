package bath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/openqs/heom/pkg/quantum"
)

// DrudeLorentzPade is a bosonic bath with the Drude-Lorentz spectral
// density expanded through the [nk-1/nk] Padé approximant of the Bose
// distribution instead of the Matsubara series. The Padé poles converge
// much faster at low temperature, so far fewer terms are needed for the
// same accuracy.
type DrudeLorentzPade struct {
	Bosonic

	lam   float64
	gamma float64
	temp  float64
	nk    int
}

// NewDrudeLorentzPade builds a Padé-expanded Drude-Lorentz bath. Parameters
// match NewDrudeLorentz; nk is the number of Padé terms beyond the resonant
// one and must be positive.
func NewDrudeLorentzPade(q *quantum.Dense, lam, gamma, temp float64, nk int, opts ...Option) (*DrudeLorentzPade, error) {
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

	beta := 1 / temp
	kappa, epsilon := kappaEpsilon(nk)

	ckReal := make([]complex128, 0, nk+1)
	vkReal := make([]complex128, 0, nk+1)

	ckReal = append(ckReal, complex(lam*gamma*cot(gamma*beta/2), 0))
	vkReal = append(vkReal, complex(gamma, 0))
	for k := 1; k <= nk; k++ {
		vk := epsilon[k] / beta
		ckReal = append(ckReal, complex((kappa[k]/beta)*4*lam*gamma*vk/(vk*vk-gamma*gamma), 0))
		vkReal = append(vkReal, complex(vk, 0))
	}

	ckImag := []complex128{complex(-lam*gamma, 0)}
	vkImag := []complex128{complex(gamma, 0)}

	bos, err := NewBosonic(q, ckReal, vkReal, ckImag, vkImag, opts...)
	if err != nil {
		return nil, err
	}
	return &DrudeLorentzPade{
		Bosonic: *bos,
		lam:     lam,
		gamma:   gamma,
		temp:    temp,
		nk:      nk,
	}, nil
}

// kappaEpsilon computes the Padé residues and poles for the [nk-1/nk]
// approximant of the Bose function (Hu, Xu & Yan, J. Chem. Phys. 133,
// 101106 (2010)). Both slices are 1-indexed to mirror the Matsubara sum;
// index 0 is unused.
func kappaEpsilon(nk int) ([]float64, []float64) {
	eps := padeRoots(2*nk, 5)
	chi := padeRoots(2*nk-1, 7)

	kappa := make([]float64, nk+1)
	prefactor := 0.5 * float64(nk) * (2*(float64(nk)+1) + 1)
	for j := 0; j < nk; j++ {
		term := prefactor
		for k := 0; k < nk-1; k++ {
			term *= (chi[k]*chi[k] - eps[j]*eps[j]) / (eps[k]*eps[k] - eps[j]*eps[j] + delta(j, k))
		}
		k := nk - 1
		term /= eps[k]*eps[k] - eps[j]*eps[j] + delta(j, k)
		kappa[j+1] = term
	}

	epsilon := make([]float64, nk+1)
	copy(epsilon[1:], eps)
	return kappa, epsilon
}

// padeRoots returns the positive roots -2/x of the lowest half of the
// eigenvalues of the size x size symmetric tridiagonal matrix with
// off-diagonal entries 1/sqrt((2k+base)*(2k+base-2)), k = 0..size-2.
func padeRoots(size, base int) []float64 {
	data := make([]float64, size*size)
	for k := 0; k < size-1; k++ {
		v := 1 / math.Sqrt(float64(2*k+base)*float64(2*k+base-2))
		data[k*size+k+1] = v
		data[(k+1)*size+k] = v
	}
	sym := mat.NewSymDense(size, data)

	var es mat.EigenSym
	if !es.Factorize(sym, false) {
		panic("bath: Padé eigendecomposition failed")
	}
	evals := es.Values(nil) // ascending

	roots := make([]float64, size/2)
	for i := range roots {
		roots[i] = -2 / evals[i]
	}
	return roots
}

func delta(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}
