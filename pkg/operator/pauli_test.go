package operator

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermMul(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Term
		coeff complex128
		key   string
	}{
		{
			name:  "XY=iZ",
			a:     NewTerm(1, 1, map[int]Pauli{0: X}),
			b:     NewTerm(1, 1, map[int]Pauli{0: Y}),
			coeff: 1i,
			key:   "Z",
		},
		{
			name:  "YX=-iZ",
			a:     NewTerm(1, 1, map[int]Pauli{0: Y}),
			b:     NewTerm(1, 1, map[int]Pauli{0: X}),
			coeff: -1i,
			key:   "Z",
		},
		{
			name:  "ZZ=I",
			a:     NewTerm(2, 1, map[int]Pauli{0: Z}),
			b:     NewTerm(3, 1, map[int]Pauli{0: Z}),
			coeff: 6,
			key:   "I",
		},
		{
			name:  "two-qubit phases multiply",
			a:     NewTerm(1, 2, map[int]Pauli{0: X, 1: Y}),
			b:     NewTerm(1, 2, map[int]Pauli{0: Y, 1: Z}),
			coeff: -1, // (i Z0)(i X1) = -Z0 X1
			key:   "ZX",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.a.Mul(tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.key, got.Key())
			assert.InDelta(t, real(tc.coeff), real(got.Coeff), 1e-14)
			assert.InDelta(t, imag(tc.coeff), imag(got.Coeff), 1e-14)
		})
	}
}

func TestTermMulQubitMismatch(t *testing.T) {
	_, err := Identity(1, 2).Mul(Identity(1, 3))
	assert.Error(t, err)
}

func TestSumSimplify(t *testing.T) {
	s := NewSum(2)
	require.NoError(t, s.Add(NewTerm(0.5, 2, map[int]Pauli{0: Z})))
	require.NoError(t, s.Add(NewTerm(0.25, 2, map[int]Pauli{0: Z})))
	require.NoError(t, s.Add(NewTerm(0.75, 2, map[int]Pauli{1: X})))
	require.NoError(t, s.Add(NewTerm(-0.75, 2, map[int]Pauli{1: X})))
	s.Simplify(1e-12)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "ZI", s.Terms()[0].Key())
	assert.InDelta(t, 0.75, real(s.Terms()[0].Coeff), 1e-14)
}

func TestApplyToStateSingleQubit(t *testing.T) {
	// |0> on one qubit.
	psi := []complex128{1, 0}

	tests := []struct {
		name string
		p    Pauli
		want []complex128
	}{
		{name: "X|0>=|1>", p: X, want: []complex128{0, 1}},
		{name: "Y|0>=i|1>", p: Y, want: []complex128{0, 1i}},
		{name: "Z|0>=|0>", p: Z, want: []complex128{1, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst := make([]complex128, 2)
			NewTerm(1, 1, map[int]Pauli{0: tc.p}).ApplyToState(psi, dst)
			for i := range dst {
				assert.InDelta(t, real(tc.want[i]), real(dst[i]), 1e-14)
				assert.InDelta(t, imag(tc.want[i]), imag(dst[i]), 1e-14)
			}
		})
	}
}

func TestExpectationBellState(t *testing.T) {
	// (|00> + |11>)/sqrt(2): <XX> = <ZZ> = 1, <YY> = -1, <Z0> = 0.
	inv := complex(1/math.Sqrt2, 0)
	psi := []complex128{inv, 0, 0, inv}

	for _, tc := range []struct {
		factors map[int]Pauli
		want    float64
	}{
		{map[int]Pauli{0: X, 1: X}, 1},
		{map[int]Pauli{0: Z, 1: Z}, 1},
		{map[int]Pauli{0: Y, 1: Y}, -1},
		{map[int]Pauli{0: Z}, 0},
	} {
		s := NewSum(2)
		require.NoError(t, s.Add(NewTerm(1, 2, tc.factors)))
		e, err := s.Expectation(psi)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, real(e), 1e-12)
		assert.InDelta(t, 0, imag(e), 1e-12)
	}
}

func TestDenseMatchesApply(t *testing.T) {
	s := NewSum(2)
	require.NoError(t, s.Add(NewTerm(0.3, 2, map[int]Pauli{0: X, 1: Z})))
	require.NoError(t, s.Add(NewTerm(-1.1, 2, map[int]Pauli{0: Y})))
	require.NoError(t, s.Add(Identity(0.5, 2)))

	m, err := s.Dense()
	require.NoError(t, err)

	psi := []complex128{0.5, 0.5i, -0.5, 0.5}
	phi, err := s.ApplyToState(psi)
	require.NoError(t, err)

	dim := 4
	for row := 0; row < dim; row++ {
		var got complex128
		for col := 0; col < dim; col++ {
			got += m[row*dim+col] * psi[col]
		}
		assert.InDelta(t, real(phi[row]), real(got), 1e-12)
		assert.InDelta(t, imag(phi[row]), imag(got), 1e-12)
	}
}

func TestDenseHermitian(t *testing.T) {
	s := NewSum(2)
	require.NoError(t, s.Add(NewTerm(0.7, 2, map[int]Pauli{0: Y, 1: X})))
	require.NoError(t, s.Add(NewTerm(0.2, 2, map[int]Pauli{1: Z})))

	m, err := s.Dense()
	require.NoError(t, err)
	dim := 4
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			diff := m[r*dim+c] - cmplx.Conj(m[c*dim+r])
			assert.InDelta(t, 0, cmplx.Abs(diff), 1e-12)
		}
	}
}

func TestIsHermitian(t *testing.T) {
	s := NewSum(1)
	require.NoError(t, s.Add(NewTerm(1.5, 1, map[int]Pauli{0: Z})))
	assert.True(t, s.IsHermitian(1e-12))
	require.NoError(t, s.Add(NewTerm(1.5i, 1, map[int]Pauli{0: X})))
	assert.False(t, s.IsHermitian(1e-12))
}
