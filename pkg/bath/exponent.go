package bath

import (
	"fmt"

	"github.com/openqs/heom/pkg/quantum"
)

// Kind classifies the role an exponent plays in the correlation function
// expansion.
type Kind int

const (
	// KindReal marks a term of the real part of a bosonic correlation
	// function.
	KindReal Kind = iota
	// KindImag marks a term of the imaginary part of a bosonic
	// correlation function.
	KindImag
	// KindRealImag marks a merged term contributing to both parts with a
	// shared frequency (C for the real part, C2 for the imaginary part).
	KindRealImag
	// KindPlus marks a term of the fermionic C^{+} correlation function.
	KindPlus
	// KindMinus marks a term of the fermionic C^{-} correlation function.
	KindMinus
)

func (k Kind) String() string {
	switch k {
	case KindReal:
		return "R"
	case KindImag:
		return "I"
	case KindRealImag:
		return "RI"
	case KindPlus:
		return "+"
	case KindMinus:
		return "-"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Fermionic reports whether the exponent belongs to a fermionic expansion.
func (k Kind) Fermionic() bool {
	return k == KindPlus || k == KindMinus
}

// Exponent is a single term C*exp(-V*t) of a bath correlation function
// expansion. Re(V) is the decay rate, Im(V) the oscillation frequency.
// Exponents are treated as immutable once a Bath has been constructed.
type Exponent struct {
	// Kind identifies the part of the correlation function this term
	// belongs to.
	Kind Kind

	// Q is the system-side coupling operator.
	Q *quantum.Dense

	// C is the expansion coefficient. For KindImag it is the (real)
	// coefficient of the imaginary part.
	C complex128

	// C2 is the imaginary-part coefficient of a KindRealImag term.
	// Zero for all other kinds.
	C2 complex128

	// V is the complex frequency of the decay.
	V complex128

	// PartnerOffset is the relative index of the conjugate partner of a
	// fermionic exponent within its bath (+1 for KindPlus, -1 for
	// KindMinus). Zero for bosonic exponents.
	PartnerOffset int

	// Tag is an optional label identifying the bath that produced this
	// exponent.
	Tag string
}

func (e Exponent) validate() error {
	if e.Q == nil {
		return fmt.Errorf("%w: exponent has no coupling operator", ErrInvalidParam)
	}
	if !e.Q.IsSquare() {
		return fmt.Errorf("%w: coupling operator is not square", ErrInvalidParam)
	}
	if real(e.V) < 0 {
		return fmt.Errorf("%w: negative decay rate %v", ErrInvalidParam, real(e.V))
	}
	if e.Kind.Fermionic() && e.PartnerOffset == 0 {
		return fmt.Errorf("%w: fermionic exponent without conjugate partner", ErrInvalidParam)
	}
	if !e.Kind.Fermionic() && e.PartnerOffset != 0 {
		return fmt.Errorf("%w: bosonic exponent with conjugate partner offset", ErrInvalidParam)
	}
	if e.Kind != KindRealImag && e.C2 != 0 {
		return fmt.Errorf("%w: C2 set on %s exponent", ErrInvalidParam, e.Kind)
	}
	return nil
}

// Coefficient returns the full complex coefficient of the term as it enters
// the correlation function: C for KindReal, i*C for KindImag and C + i*C2
// for KindRealImag. Fermionic exponents return C unchanged.
func (e Exponent) Coefficient() complex128 {
	switch e.Kind {
	case KindImag:
		return 1i * e.C
	case KindRealImag:
		return e.C + 1i*e.C2
	default:
		return e.C
	}
}
