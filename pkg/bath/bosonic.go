package bath

import (
	"fmt"
	"math/cmplx"

	"github.com/openqs/heom/pkg/quantum"
)

// matchTol is the frequency tolerance below which a real and an imaginary
// exponent are considered to share a decay mode and may be merged.
const matchTol = 1e-12

// Option configures bath construction.
type Option func(*options)

type options struct {
	tag       string
	noCombine bool
}

// WithTag labels every exponent produced by the constructor.
func WithTag(tag string) Option {
	return func(o *options) {
		o.tag = tag
	}
}

// WithoutCombine disables merging of real and imaginary exponents that
// share a decay frequency. Merging is on by default; disabling it keeps the
// raw expansion but enlarges the hierarchy.
func WithoutCombine() Option {
	return func(o *options) {
		o.noCombine = true
	}
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Bosonic is a bath with bosonic statistics, built from separate expansions
// of the real and imaginary parts of the correlation function:
//
//	C(t) = sum_k ckReal[k]*exp(-vkReal[k]*t) + i*sum_k ckImag[k]*exp(-vkImag[k]*t)
type Bosonic struct {
	Bath
}

// NewBosonic builds a bosonic bath from explicit expansion coefficients.
// ckReal/vkReal and ckImag/vkImag must be pairwise equal in length. Real and
// imaginary terms with matching frequencies are merged unless WithoutCombine
// is given.
func NewBosonic(q *quantum.Dense, ckReal, vkReal, ckImag, vkImag []complex128, opts ...Option) (*Bosonic, error) {
	o := applyOptions(opts)
	if q == nil || !q.IsSquare() {
		return nil, fmt.Errorf("%w: coupling operator must be a square matrix", ErrInvalidParam)
	}
	if len(ckReal) != len(vkReal) {
		return nil, fmt.Errorf("%w: ckReal and vkReal lengths differ (%d vs %d)",
			ErrInvalidParam, len(ckReal), len(vkReal))
	}
	if len(ckImag) != len(vkImag) {
		return nil, fmt.Errorf("%w: ckImag and vkImag lengths differ (%d vs %d)",
			ErrInvalidParam, len(ckImag), len(vkImag))
	}

	var exps []Exponent
	usedImag := make([]bool, len(ckImag))
	for k := range ckReal {
		e := Exponent{Kind: KindReal, Q: q, C: ckReal[k], V: vkReal[k], Tag: o.tag}
		if !o.noCombine {
			for m := range ckImag {
				if usedImag[m] {
					continue
				}
				if cmplx.Abs(vkImag[m]-vkReal[k]) < matchTol {
					e.Kind = KindRealImag
					e.C2 = ckImag[m]
					usedImag[m] = true
					break
				}
			}
		}
		exps = append(exps, e)
	}
	for m := range ckImag {
		if usedImag[m] {
			continue
		}
		exps = append(exps, Exponent{Kind: KindImag, Q: q, C: ckImag[m], V: vkImag[m], Tag: o.tag})
	}

	b, err := New(exps)
	if err != nil {
		return nil, err
	}
	return &Bosonic{Bath: *b}, nil
}
