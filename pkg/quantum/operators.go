package quantum

import "math"

// Standard operators used to assemble spin and oscillator models.

// SigmaX returns the Pauli X matrix.
func SigmaX() *Dense {
	return NewDense(2, 2, []complex128{0, 1, 1, 0})
}

// SigmaY returns the Pauli Y matrix.
func SigmaY() *Dense {
	return NewDense(2, 2, []complex128{0, -1i, 1i, 0})
}

// SigmaZ returns the Pauli Z matrix.
func SigmaZ() *Dense {
	return NewDense(2, 2, []complex128{1, 0, 0, -1})
}

// SigmaPlus returns the raising operator |0><1|.
func SigmaPlus() *Dense {
	return NewDense(2, 2, []complex128{0, 1, 0, 0})
}

// SigmaMinus returns the lowering operator |1><0|.
func SigmaMinus() *Dense {
	return NewDense(2, 2, []complex128{0, 0, 1, 0})
}

// Destroy returns the n-dimensional truncated annihilation operator.
func Destroy(n int) *Dense {
	m := Zeros(n, n)
	for i := 1; i < n; i++ {
		m.Set(i-1, i, complex(math.Sqrt(float64(i)), 0))
	}
	return m
}

// Create returns the n-dimensional truncated creation operator.
func Create(n int) *Dense {
	return Dagger(Destroy(n))
}

// BasisState returns the density matrix |k><k| in dimension n.
func BasisState(n, k int) *Dense {
	m := Zeros(n, n)
	m.Set(k, k, 1)
	return m
}
