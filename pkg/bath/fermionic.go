package bath

import (
	"fmt"

	"github.com/openqs/heom/pkg/quantum"
)

// Fermionic is a bath with fermionic statistics, described by the two
// correlation functions
//
//	C^{+}(t) = sum_k ckPlus[k]*exp(-vkPlus[k]*t)
//	C^{-}(t) = sum_k ckMinus[k]*exp(-vkMinus[k]*t)
//
// for absorption into and emission out of the environment. Exponents are
// stored interleaved (+, -, +, -, ...) so each term sits next to its
// conjugate partner; the solver relies on the partner offsets for the
// fermionic sign bookkeeping.
type Fermionic struct {
	Bath
}

// NewFermionic builds a fermionic bath. All four expansion lists must have
// the same length, pairing plus and minus terms positionally.
func NewFermionic(q *quantum.Dense, ckPlus, vkPlus, ckMinus, vkMinus []complex128, opts ...Option) (*Fermionic, error) {
	o := applyOptions(opts)
	if q == nil || !q.IsSquare() {
		return nil, fmt.Errorf("%w: coupling operator must be a square matrix", ErrInvalidParam)
	}
	if len(ckPlus) != len(vkPlus) || len(ckMinus) != len(vkMinus) || len(ckPlus) != len(ckMinus) {
		return nil, fmt.Errorf("%w: fermionic expansion lists must have equal lengths (got %d, %d, %d, %d)",
			ErrInvalidParam, len(ckPlus), len(vkPlus), len(ckMinus), len(vkMinus))
	}
	if len(ckPlus) == 0 {
		return nil, fmt.Errorf("%w: fermionic bath needs at least one exponent pair", ErrInvalidParam)
	}

	exps := make([]Exponent, 0, 2*len(ckPlus))
	for k := range ckPlus {
		exps = append(exps,
			Exponent{Kind: KindPlus, Q: q, C: ckPlus[k], V: vkPlus[k], PartnerOffset: +1, Tag: o.tag},
			Exponent{Kind: KindMinus, Q: q, C: ckMinus[k], V: vkMinus[k], PartnerOffset: -1, Tag: o.tag},
		)
	}

	b, err := New(exps)
	if err != nil {
		return nil, err
	}
	return &Fermionic{Bath: *b}, nil
}
