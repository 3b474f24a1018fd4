// Package config loads and validates simulation documents: YAML files
// describing the system Hamiltonian, the attached baths, the hierarchy
// truncation and the output time grid. The same documents are accepted as
// JSON by the HTTP adapter (YAML is a superset).
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/openqs/heom/pkg/bath"
	"github.com/openqs/heom/pkg/quantum"
	"github.com/openqs/heom/pkg/solver"
)

// ErrInvalidDocument is returned when a simulation document is malformed
// or internally inconsistent.
var ErrInvalidDocument = errors.New("invalid simulation document")

// Scalar is a complex number accepted either as a plain YAML number or as
// a Go-syntax complex string such as "0.5+0.1i".
type Scalar complex128

func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected a number, got a %v node", ErrInvalidDocument, value.Kind)
	}
	if f, err := strconv.ParseFloat(value.Value, 64); err == nil {
		*s = Scalar(complex(f, 0))
		return nil
	}
	if c, err := strconv.ParseComplex(value.Value, 128); err == nil {
		*s = Scalar(c)
		return nil
	}
	return fmt.Errorf("%w: %q is not a real or complex number", ErrInvalidDocument, value.Value)
}

// Matrix is a rectangular complex matrix literal.
type Matrix [][]Scalar

// Dense converts the literal to an operator.
func (m Matrix) Dense() (*quantum.Dense, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidDocument)
	}
	cols := len(m[0])
	data := make([]complex128, 0, len(m)*cols)
	for i, row := range m {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: matrix row %d has %d columns, expected %d",
				ErrInvalidDocument, i, len(row), cols)
		}
		for _, v := range row {
			data = append(data, complex128(v))
		}
	}
	return quantum.NewDense(len(m), cols, data), nil
}

// OperatorSpec is either the name of a standard operator ("sx", "sy",
// "sz", "sp", "sm") or an explicit matrix literal.
type OperatorSpec struct {
	Name   string
	Matrix Matrix
}

func (o *OperatorSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		o.Name = value.Value
		return nil
	case yaml.SequenceNode:
		return value.Decode(&o.Matrix)
	default:
		return fmt.Errorf("%w: operator must be a name or a matrix", ErrInvalidDocument)
	}
}

// Dense resolves the named or literal operator.
func (o OperatorSpec) Dense() (*quantum.Dense, error) {
	if o.Name == "" {
		return o.Matrix.Dense()
	}
	switch o.Name {
	case "sx":
		return quantum.SigmaX(), nil
	case "sy":
		return quantum.SigmaY(), nil
	case "sz":
		return quantum.SigmaZ(), nil
	case "sp":
		return quantum.SigmaPlus(), nil
	case "sm":
		return quantum.SigmaMinus(), nil
	}
	return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidDocument, o.Name)
}

// System describes the closed part of the model. State is the initial
// density matrix; when omitted the maximally mixed state is used.
type System struct {
	Hamiltonian OperatorSpec `yaml:"hamiltonian"`
	State       OperatorSpec `yaml:"state"`
}

// BathSpec names a spectral density model and its physical parameters.
type BathSpec struct {
	Model    string         `yaml:"model"`
	Coupling OperatorSpec   `yaml:"coupling"`
	Params   map[string]any `yaml:"params"`
}

// SolverSpec carries truncation and integration settings.
type SolverSpec struct {
	Depth      int     `yaml:"depth"`
	RTol       float64 `yaml:"rtol"`
	ATol       float64 `yaml:"atol"`
	MaxSteps   int     `yaml:"max_steps"`
	Terminator bool    `yaml:"terminator"`
}

// TimeGrid is a uniform output grid.
type TimeGrid struct {
	Start  float64 `yaml:"start"`
	Stop   float64 `yaml:"stop"`
	Points int     `yaml:"points"`
}

// Grid expands the description to the concrete time list.
func (g TimeGrid) Grid() []float64 {
	ts := make([]float64, g.Points)
	step := (g.Stop - g.Start) / float64(g.Points-1)
	for i := range ts {
		ts[i] = g.Start + float64(i)*step
	}
	return ts
}

// Document is a full simulation description.
type Document struct {
	System      System                  `yaml:"system"`
	Baths       []BathSpec              `yaml:"baths"`
	Solver      SolverSpec              `yaml:"solver"`
	Times       TimeGrid                `yaml:"times"`
	Observables map[string]OperatorSpec `yaml:"observables"`
}

// Parse decodes and validates a simulation document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(doc.Baths) == 0 {
		return nil, fmt.Errorf("%w: at least one bath is required", ErrInvalidDocument)
	}
	if doc.Solver.Depth <= 0 {
		return nil, fmt.Errorf("%w: solver depth must be positive", ErrInvalidDocument)
	}
	if doc.Times.Points < 2 {
		return nil, fmt.Errorf("%w: time grid needs at least two points", ErrInvalidDocument)
	}
	if doc.Times.Stop <= doc.Times.Start {
		return nil, fmt.Errorf("%w: time grid stop must exceed start", ErrInvalidDocument)
	}
	return &doc, nil
}

// Load reads and parses a simulation document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading simulation document: %w", err)
	}
	return Parse(data)
}

type drudeLorentzParams struct {
	Lambda      float64 `mapstructure:"lambda"`
	Cutoff      float64 `mapstructure:"cutoff"`
	Temperature float64 `mapstructure:"temperature"`
	Nk          int     `mapstructure:"nk"`
}

type underDampedParams struct {
	Lambda      float64 `mapstructure:"lambda"`
	Gamma       float64 `mapstructure:"gamma"`
	Frequency   float64 `mapstructure:"frequency"`
	Temperature float64 `mapstructure:"temperature"`
	Nk          int     `mapstructure:"nk"`
}

type bosonicParams struct {
	CkReal []float64 `mapstructure:"ck_real"`
	VkReal []float64 `mapstructure:"vk_real"`
	CkImag []float64 `mapstructure:"ck_imag"`
	VkImag []float64 `mapstructure:"vk_imag"`
}

type fermionicParams struct {
	CkPlus  []float64 `mapstructure:"ck_plus"`
	VkPlus  []float64 `mapstructure:"vk_plus"`
	CkMinus []float64 `mapstructure:"ck_minus"`
	VkMinus []float64 `mapstructure:"vk_minus"`
}

// decodeParams maps the free-form parameter block onto a typed model
// parameter struct, rejecting unknown keys so typos surface early.
func decodeParams(params map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

func toComplex(fs []float64) []complex128 {
	cs := make([]complex128, len(fs))
	for i, f := range fs {
		cs[i] = complex(f, 0)
	}
	return cs
}

// buildBath constructs the bath described by spec.
func buildBath(spec BathSpec) (bath.Source, error) {
	q, err := spec.Coupling.Dense()
	if err != nil {
		return nil, fmt.Errorf("bath %q coupling: %w", spec.Model, err)
	}

	switch spec.Model {
	case "drude-lorentz":
		var p drudeLorentzParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		return bath.NewDrudeLorentz(q, p.Lambda, p.Cutoff, p.Temperature, p.Nk)
	case "drude-lorentz-pade":
		var p drudeLorentzParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		return bath.NewDrudeLorentzPade(q, p.Lambda, p.Cutoff, p.Temperature, p.Nk)
	case "underdamped":
		var p underDampedParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		return bath.NewUnderDamped(q, p.Lambda, p.Gamma, p.Frequency, p.Temperature, p.Nk)
	case "bosonic":
		var p bosonicParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		return bath.NewBosonic(q, toComplex(p.CkReal), toComplex(p.VkReal), toComplex(p.CkImag), toComplex(p.VkImag))
	case "fermionic":
		var p fermionicParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		return bath.NewFermionic(q, toComplex(p.CkPlus), toComplex(p.VkPlus), toComplex(p.CkMinus), toComplex(p.VkMinus))
	}
	return nil, fmt.Errorf("%w: unknown bath model %q", ErrInvalidDocument, spec.Model)
}

// InitialState resolves the initial density matrix for a system of the
// given dimension. An omitted state defaults to the maximally mixed one.
func (d *Document) InitialState(dim int) (*quantum.Dense, error) {
	if d.System.State.Name == "" && len(d.System.State.Matrix) == 0 {
		return quantum.Scale(complex(1/float64(dim), 0), quantum.Identity(dim)), nil
	}
	rho, err := d.System.State.Dense()
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	if r, c := rho.Dims(); r != dim || c != dim {
		return nil, fmt.Errorf("%w: initial state is %dx%d, system dimension is %d",
			ErrInvalidDocument, r, c, dim)
	}
	return rho, nil
}

// Build assembles the solver and the time grid described by the document.
// Additional options (logger, metrics) are appended after the
// document-derived ones.
func (d *Document) Build(extra ...solver.Option) (*solver.Solver, []float64, error) {
	ham, err := d.System.Hamiltonian.Dense()
	if err != nil {
		return nil, nil, fmt.Errorf("hamiltonian: %w", err)
	}

	baths := make([]bath.Source, 0, len(d.Baths))
	for _, spec := range d.Baths {
		b, err := buildBath(spec)
		if err != nil {
			return nil, nil, err
		}
		baths = append(baths, b)
	}

	var opts []solver.Option
	if d.Solver.RTol > 0 {
		opts = append(opts, solver.WithRTol(d.Solver.RTol))
	}
	if d.Solver.ATol > 0 {
		opts = append(opts, solver.WithATol(d.Solver.ATol))
	}
	if d.Solver.MaxSteps > 0 {
		opts = append(opts, solver.WithMaxSteps(d.Solver.MaxSteps))
	}
	if d.Solver.Terminator {
		dl, ok := baths[0].(*bath.DrudeLorentz)
		if !ok || len(baths) != 1 {
			return nil, nil, fmt.Errorf("%w: terminator requires a single drude-lorentz bath", ErrInvalidDocument)
		}
		q, err := d.Baths[0].Coupling.Dense()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, solver.WithTerminator(q, dl.TerminatorDelta()))
	}

	names := make([]string, 0, len(d.Observables))
	for name := range d.Observables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		op, err := d.Observables[name].Dense()
		if err != nil {
			return nil, nil, fmt.Errorf("observable %q: %w", name, err)
		}
		opts = append(opts, solver.WithObservable(name, op))
	}

	opts = append(opts, extra...)
	s, err := solver.New(ham, baths, d.Solver.Depth, opts...)
	if err != nil {
		return nil, nil, err
	}
	return s, d.Times.Grid(), nil
}
