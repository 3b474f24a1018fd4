package bath

import (
	"fmt"
	"math/cmplx"
)

// Source is the view of a bath consumed by the solver layer: an ordered,
// stable exponent list over a single coupling operator dimension. All bath
// variants implement it by embedding Bath.
type Source interface {
	// Exponents returns the ordered exponent list. Callers must not
	// mutate the returned slice.
	Exponents() []Exponent

	// Dim returns the dimension of the coupling operators.
	Dim() int
}

// Bath is an ordered collection of correlation function exponents.
// The order is fixed at construction; hierarchy indices in the solver are
// positional over this list.
type Bath struct {
	exps []Exponent
	dim  int
}

// New assembles a Bath from explicit exponents, validating each term and
// checking that all coupling operators share one dimension.
func New(exps []Exponent) (*Bath, error) {
	if len(exps) == 0 {
		return nil, fmt.Errorf("%w: bath needs at least one exponent", ErrInvalidParam)
	}
	dim := -1
	for i, e := range exps {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("exponent %d: %w", i, err)
		}
		d, _ := e.Q.Dims()
		if dim == -1 {
			dim = d
		} else if d != dim {
			return nil, fmt.Errorf("%w: exponent %d coupling operator is %dx%d, bath dimension is %d",
				ErrInvalidParam, i, d, d, dim)
		}
	}
	for i, e := range exps {
		if !e.Kind.Fermionic() {
			continue
		}
		p := i + e.PartnerOffset
		if p < 0 || p >= len(exps) || !exps[p].Kind.Fermionic() {
			return nil, fmt.Errorf("%w: exponent %d has no conjugate partner at offset %d",
				ErrInvalidParam, i, e.PartnerOffset)
		}
	}
	b := &Bath{exps: append([]Exponent(nil), exps...), dim: dim}
	return b, nil
}

// Exponents returns the ordered exponent list. The slice is shared and must
// be treated as read-only.
func (b *Bath) Exponents() []Exponent { return b.exps }

// Dim returns the dimension of the coupling operators.
func (b *Bath) Dim() int { return b.dim }

// Len returns the number of exponents.
func (b *Bath) Len() int { return len(b.exps) }

// Fermionic reports whether the bath carries fermionic statistics.
func (b *Bath) Fermionic() bool {
	return len(b.exps) > 0 && b.exps[0].Kind.Fermionic()
}

// CorrelationFunction evaluates the expansion at time t >= 0.
func (b *Bath) CorrelationFunction(t float64) complex128 {
	var c complex128
	for _, e := range b.exps {
		c += e.Coefficient() * cmplx.Exp(-e.V*complex(t, 0))
	}
	return c
}
