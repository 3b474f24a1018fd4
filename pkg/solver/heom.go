package solver

import (
	"context"
	"fmt"
	"math/cmplx"
	"sort"
	"time"

	"github.com/openqs/heom/pkg/bath"
	"github.com/openqs/heom/pkg/quantum"
)

// term is one precomputed right-hand-side contribution
// dydt[dst] += alpha * left * y[src] * right, with nil standing for the
// identity on either side.
type term struct {
	src   int
	dst   int
	alpha complex128
	left  *quantum.Dense
	right *quantum.Dense
}

// Solver propagates the hierarchical equations of motion for a system
// Hamiltonian coupled to a set of bosonic or fermionic baths.
//
// The hierarchy structure and all coupling terms are precomputed at
// construction and are read-only afterwards, so a single Solver may serve
// concurrent Run calls.
type Solver struct {
	cfg   config
	ham   *quantum.Dense
	baths []bath.Source
	exps  []bath.Exponent

	dim       int
	depth     int
	fermionic bool

	hier  *hierarchy
	terms []term
}

// New constructs a solver from a Hamiltonian, a non-empty bath list and a
// maximum hierarchy depth.
func New(ham *quantum.Dense, baths []bath.Source, depth int, opts ...Option) (*Solver, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if ham == nil || !ham.IsSquare() {
		return nil, fmt.Errorf("%w: Hamiltonian must be a square matrix", ErrConfig)
	}
	if len(baths) == 0 {
		return nil, fmt.Errorf("%w: at least one bath is required", ErrConfig)
	}
	if depth <= 0 {
		return nil, fmt.Errorf("%w: hierarchy depth must be positive, got %d", ErrConfig, depth)
	}

	dim, _ := ham.Dims()
	var exps []bath.Exponent
	fermionic := false
	for i, b := range baths {
		if b.Dim() != dim {
			return nil, fmt.Errorf("%w: bath %d couples a %dx%d operator to a %dx%d Hamiltonian",
				ErrConfig, i, b.Dim(), b.Dim(), dim, dim)
		}
		bexps := b.Exponents()
		if i == 0 {
			fermionic = bexps[0].Kind.Fermionic()
		} else if bexps[0].Kind.Fermionic() != fermionic {
			return nil, fmt.Errorf("%w: cannot mix bosonic and fermionic baths", ErrConfig)
		}
		exps = append(exps, bexps...)
	}
	if cfg.termQ != nil {
		if r, _ := cfg.termQ.Dims(); r != dim {
			return nil, fmt.Errorf("%w: terminator operator dimension %d does not match Hamiltonian dimension %d",
				ErrConfig, r, dim)
		}
	}
	for _, o := range cfg.observables {
		if r, c := o.op.Dims(); r != dim || c != dim {
			return nil, fmt.Errorf("%w: observable %q dimension does not match Hamiltonian", ErrConfig, o.name)
		}
	}

	s := &Solver{
		cfg:       cfg,
		ham:       ham,
		baths:     baths,
		exps:      exps,
		dim:       dim,
		depth:     depth,
		fermionic: fermionic,
		hier:      newHierarchy(len(exps), depth, fermionic),
	}
	s.buildTerms()

	s.cfg.logger.Debug("hierarchy constructed",
		"exponents", len(exps), "depth", depth, "ados", s.hier.size(), "fermionic", fermionic)
	return s, nil
}

// NumADOs returns the number of auxiliary density operators in the cached
// hierarchy, the physical state included.
func (s *Solver) NumADOs() int { return s.hier.size() }

// Dim returns the system dimension.
func (s *Solver) Dim() int { return s.dim }

// MaxDepth returns the hierarchy truncation depth.
func (s *Solver) MaxDepth() int { return s.depth }

// buildTerms precomputes every right-hand-side contribution of the
// hierarchy: per-ADO damping and Hamiltonian commutator, the optional
// terminator, and the couplings to neighbouring tiers.
func (s *Solver) buildTerms() {
	daggers := make([]*quantum.Dense, len(s.exps))
	for k, e := range s.exps {
		daggers[k] = quantum.Dagger(e.Q)
	}
	var qq *quantum.Dense
	if s.cfg.termQ != nil {
		qq = quantum.Mul(s.cfg.termQ, s.cfg.termQ)
	}

	scratch := make([]int, len(s.exps))
	for i, label := range s.hier.labels {
		var nu complex128
		ne := 0
		for k, e := range s.exps {
			nu += complex(float64(label[k]), 0) * e.V
			ne += label[k]
		}
		s.terms = append(s.terms,
			term{src: i, dst: i, alpha: -nu},
			term{src: i, dst: i, alpha: -1i, left: s.ham},
			term{src: i, dst: i, alpha: 1i, right: s.ham},
		)
		if qq != nil {
			d := s.cfg.termDelta
			s.terms = append(s.terms,
				term{src: i, dst: i, alpha: -d, left: qq},
				term{src: i, dst: i, alpha: -d, right: qq},
				term{src: i, dst: i, alpha: 2 * d, left: s.cfg.termQ, right: s.cfg.termQ},
			)
		}

		for k, e := range s.exps {
			if j := s.hier.neighbor(i, k, +1, scratch); j >= 0 {
				s.appendNext(i, j, k, label, ne, e, daggers[k])
			}
			if j := s.hier.neighbor(i, k, -1, scratch); j >= 0 {
				s.appendPrev(i, j, k, label, ne, e, daggers[k])
			}
		}
	}
}

// appendNext couples ADO i to the deeper ADO j reached by exciting
// exponent k.
func (s *Solver) appendNext(i, j, k int, label []int, ne int, e bath.Exponent, qdag *quantum.Dense) {
	if !s.fermionic {
		// -i [Q, rho_next]
		s.terms = append(s.terms,
			term{src: j, dst: i, alpha: -1i, left: e.Q},
			term{src: j, dst: i, alpha: 1i, right: e.Q},
		)
		return
	}

	sign1 := signPow(ne + 1)
	sign2 := signPow(sumBefore(label, k))
	op := e.Q
	if e.Kind == bath.KindPlus {
		op = qdag
	}
	s.terms = append(s.terms,
		term{src: j, dst: i, alpha: -1i * sign2, left: op},
		term{src: j, dst: i, alpha: -1i * sign2 * sign1, right: op},
	)
}

// appendPrev couples ADO i to the shallower ADO j reached by de-exciting
// exponent k.
func (s *Solver) appendPrev(i, j, k int, label []int, ne int, e bath.Exponent, qdag *quantum.Dense) {
	if !s.fermionic {
		n := complex(float64(label[k]), 0)
		switch e.Kind {
		case bath.KindReal:
			s.terms = append(s.terms,
				term{src: j, dst: i, alpha: -1i * n * e.C, left: e.Q},
				term{src: j, dst: i, alpha: 1i * n * e.C, right: e.Q},
			)
		case bath.KindImag:
			s.terms = append(s.terms,
				term{src: j, dst: i, alpha: n * e.C, left: e.Q},
				term{src: j, dst: i, alpha: n * e.C, right: e.Q},
			)
		case bath.KindRealImag:
			s.terms = append(s.terms,
				term{src: j, dst: i, alpha: n * (-1i*e.C + e.C2), left: e.Q},
				term{src: j, dst: i, alpha: n * (1i*e.C + e.C2), right: e.Q},
			)
		}
		return
	}

	sign1 := signPow(ne - 1)
	sign2 := signPow(sumBefore(label, k))
	cbar := cmplx.Conj(s.exps[k+e.PartnerOffset].C)
	op := e.Q
	if e.Kind == bath.KindMinus {
		op = qdag
	}
	s.terms = append(s.terms,
		term{src: j, dst: i, alpha: -1i * sign2 * e.C, left: op},
		term{src: j, dst: i, alpha: 1i * sign2 * sign1 * cbar, right: op},
	)
}

// propagation holds the per-Run scratch space so that concurrent runs do
// not share mutable state.
type propagation struct {
	s        *Solver
	scratchA *quantum.Dense
	scratchB *quantum.Dense
}

func (p *propagation) rhs(t float64, y, dydt []complex128) {
	for i := range dydt {
		dydt[i] = 0
	}
	d := p.s.dim
	d2 := d * d
	for _, tm := range p.s.terms {
		src := y[tm.src*d2 : (tm.src+1)*d2]
		dst := dydt[tm.dst*d2 : (tm.dst+1)*d2]
		switch {
		case tm.left == nil && tm.right == nil:
			for i, v := range src {
				dst[i] += tm.alpha * v
			}
		case tm.right == nil:
			quantum.MulInto(p.scratchA, tm.left, quantum.AsDense(d, d, src))
			accumulate(dst, tm.alpha, p.scratchA.Raw())
		case tm.left == nil:
			quantum.MulInto(p.scratchA, quantum.AsDense(d, d, src), tm.right)
			accumulate(dst, tm.alpha, p.scratchA.Raw())
		default:
			quantum.MulInto(p.scratchA, tm.left, quantum.AsDense(d, d, src))
			quantum.MulInto(p.scratchB, p.scratchA, tm.right)
			accumulate(dst, tm.alpha, p.scratchB.Raw())
		}
	}
}

// Run propagates rho0 over the ascending time grid and returns the reduced
// system state at each requested time. The first grid point is the initial
// time; rho0 is recorded there unchanged.
func (s *Solver) Run(ctx context.Context, rho0 *quantum.Dense, times []float64) (*Result, error) {
	if rho0 == nil {
		return nil, fmt.Errorf("%w: initial state is nil", ErrConfig)
	}
	if r, c := rho0.Dims(); r != s.dim || c != s.dim {
		return nil, fmt.Errorf("%w: initial state is %dx%d, system dimension is %d", ErrConfig, r, c, s.dim)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: empty time grid", ErrConfig)
	}
	if !sort.Float64sAreSorted(times) {
		return nil, fmt.Errorf("%w: time grid must be ascending", ErrConfig)
	}

	d2 := s.dim * s.dim
	y := make([]complex128, s.hier.size()*d2)
	copy(y[:d2], rho0.Raw())

	p := &propagation{
		s:        s,
		scratchA: quantum.Zeros(s.dim, s.dim),
		scratchB: quantum.Zeros(s.dim, s.dim),
	}
	st := newStepper(s.cfg.rtol, s.cfg.atol, s.cfg.maxSteps, len(y))

	res := &Result{
		Times:  append([]float64(nil), times...),
		Expect: make(map[string][]complex128),
	}

	start := time.Now()
	s.record(res, y)
	for ti := 1; ti < len(times); ti++ {
		if err := st.advance(ctx, p.rhs, times[ti-1], times[ti], y); err != nil {
			s.cfg.metrics.ObserveRun(time.Since(start), st.steps, st.rejected, true)
			s.cfg.logger.Error("propagation failed", "err", err, "t", times[ti])
			return nil, err
		}
		s.record(res, y)
	}

	elapsed := time.Since(start)
	res.Stats = Stats{Steps: st.steps, Rejections: st.rejected, Duration: elapsed}
	s.cfg.metrics.ObserveRun(elapsed, st.steps, st.rejected, false)
	s.cfg.logger.Debug("propagation complete",
		"steps", st.steps, "rejections", st.rejected, "duration", elapsed)
	return res, nil
}

func (s *Solver) record(res *Result, y []complex128) {
	d2 := s.dim * s.dim
	rho := quantum.NewDense(s.dim, s.dim, y[:d2])
	res.States = append(res.States, rho)
	for _, o := range s.cfg.observables {
		res.Expect[o.name] = append(res.Expect[o.name], quantum.Expect(o.op, rho))
	}
	if s.cfg.keepADOs {
		ados := make([]*quantum.Dense, s.hier.size())
		for i := range ados {
			ados[i] = quantum.NewDense(s.dim, s.dim, y[i*d2:(i+1)*d2])
		}
		res.ADOs = append(res.ADOs, ados)
	}
}

func accumulate(dst []complex128, alpha complex128, src []complex128) {
	for i, v := range src {
		dst[i] += alpha * v
	}
}

func sumBefore(label []int, k int) int {
	n := 0
	for _, v := range label[:k] {
		n += v
	}
	return n
}

func signPow(n int) complex128 {
	if n&1 == 1 {
		return -1
	}
	return 1
}
