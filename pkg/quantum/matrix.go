// Package quantum provides the dense complex matrices and standard
// operators used to describe systems, couplings and states.
package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Dense is a dense complex matrix stored in row-major order.
// It is the operator representation used throughout the library:
// Hamiltonians, coupling operators and density matrices are all Dense.
type Dense struct {
	rows int
	cols int
	data []complex128
}

// NewDense creates a rows x cols matrix. If data is nil the matrix is
// zeroed; otherwise data is copied and must have rows*cols elements.
func NewDense(rows, cols int, data []complex128) *Dense {
	if rows <= 0 || cols <= 0 {
		panic("quantum: non-positive matrix dimension")
	}
	d := make([]complex128, rows*cols)
	if data != nil {
		if len(data) != rows*cols {
			panic(fmt.Sprintf("quantum: data length %d does not match %dx%d", len(data), rows, cols))
		}
		copy(d, data)
	}
	return &Dense{rows: rows, cols: cols, data: d}
}

// AsDense wraps an existing slice as a matrix without copying.
// The caller keeps ownership of the slice; mutations are shared.
func AsDense(rows, cols int, data []complex128) *Dense {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("quantum: data length %d does not match %dx%d", len(data), rows, cols))
	}
	return &Dense{rows: rows, cols: cols, data: data}
}

// Zeros creates a zeroed rows x cols matrix.
func Zeros(rows, cols int) *Dense {
	return NewDense(rows, cols, nil)
}

// Identity creates the n x n identity.
func Identity(n int) *Dense {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Dims returns the row and column counts.
func (m *Dense) Dims() (int, int) { return m.rows, m.cols }

// IsSquare reports whether the matrix is square.
func (m *Dense) IsSquare() bool { return m.rows == m.cols }

// At returns the element at (i, j).
func (m *Dense) At(i, j int) complex128 { return m.data[i*m.cols+j] }

// Set assigns the element at (i, j).
func (m *Dense) Set(i, j int, v complex128) { m.data[i*m.cols+j] = v }

// Raw returns the backing slice. Callers must treat it as read-only
// unless they own the matrix.
func (m *Dense) Raw() []complex128 { return m.data }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	return NewDense(m.rows, m.cols, m.data)
}

// Zero sets every element to zero in place.
func (m *Dense) Zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// AddScaled accumulates m += alpha*a in place.
func (m *Dense) AddScaled(alpha complex128, a *Dense) {
	if m.rows != a.rows || m.cols != a.cols {
		panic("quantum: dimension mismatch in AddScaled")
	}
	for i, v := range a.data {
		m.data[i] += alpha * v
	}
}

// MulInto computes dst = a*b, overwriting dst. dst must not alias a or b.
func MulInto(dst, a, b *Dense) {
	if a.cols != b.rows || dst.rows != a.rows || dst.cols != b.cols {
		panic("quantum: dimension mismatch in MulInto")
	}
	for i := 0; i < a.rows; i++ {
		di := dst.data[i*dst.cols : (i+1)*dst.cols]
		for k := range di {
			di[k] = 0
		}
		ai := a.data[i*a.cols : (i+1)*a.cols]
		for k, av := range ai {
			if av == 0 {
				continue
			}
			bk := b.data[k*b.cols : (k+1)*b.cols]
			for j, bv := range bk {
				di[j] += av * bv
			}
		}
	}
}

// Mul returns the product a*b.
func Mul(a, b *Dense) *Dense {
	dst := Zeros(a.rows, b.cols)
	MulInto(dst, a, b)
	return dst
}

// Add returns a + b.
func Add(a, b *Dense) *Dense {
	out := a.Clone()
	out.AddScaled(1, b)
	return out
}

// Sub returns a - b.
func Sub(a, b *Dense) *Dense {
	out := a.Clone()
	out.AddScaled(-1, b)
	return out
}

// Scale returns alpha*a.
func Scale(alpha complex128, a *Dense) *Dense {
	out := a.Clone()
	for i := range out.data {
		out.data[i] *= alpha
	}
	return out
}

// Dagger returns the conjugate transpose.
func Dagger(a *Dense) *Dense {
	out := Zeros(a.cols, a.rows)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			out.data[j*out.cols+i] = cmplx.Conj(a.data[i*a.cols+j])
		}
	}
	return out
}

// Commutator returns [a, b] = ab - ba.
func Commutator(a, b *Dense) *Dense {
	return Sub(Mul(a, b), Mul(b, a))
}

// Anticommutator returns {a, b} = ab + ba.
func Anticommutator(a, b *Dense) *Dense {
	return Add(Mul(a, b), Mul(b, a))
}

// Trace returns the sum of diagonal elements.
func Trace(a *Dense) complex128 {
	if !a.IsSquare() {
		panic("quantum: trace of non-square matrix")
	}
	var tr complex128
	for i := 0; i < a.rows; i++ {
		tr += a.data[i*a.cols+i]
	}
	return tr
}

// Expect returns Tr(op * rho), the expectation value of op in state rho.
func Expect(op, rho *Dense) complex128 {
	if op.cols != rho.rows || op.rows != rho.cols {
		panic("quantum: dimension mismatch in Expect")
	}
	var tr complex128
	for i := 0; i < op.rows; i++ {
		for k := 0; k < op.cols; k++ {
			tr += op.data[i*op.cols+k] * rho.data[k*rho.cols+i]
		}
	}
	return tr
}

// IsHermitian reports whether the matrix equals its conjugate transpose
// within tol, element-wise.
func (m *Dense) IsHermitian(tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for j := i; j < m.cols; j++ {
			d := m.data[i*m.cols+j] - cmplx.Conj(m.data[j*m.cols+i])
			if cmplx.Abs(d) > tol {
				return false
			}
		}
	}
	return true
}

// EqualApprox reports whether a and b agree element-wise within tol.
func EqualApprox(a, b *Dense, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if cmplx.Abs(a.data[i]-b.data[i]) > tol {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest element magnitude.
func (m *Dense) MaxAbs() float64 {
	max := 0.0
	for _, v := range m.data {
		if a := cmplx.Abs(v); a > max {
			max = a
		}
	}
	return max
}

// Norm returns the Frobenius norm.
func (m *Dense) Norm() float64 {
	var sum float64
	for _, v := range m.data {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}
