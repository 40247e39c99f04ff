/*
Copyright 2026 The varqe Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package operator implements Pauli-string algebra for qubit observables.
//
// Observables such as molecular Hamiltonians are represented as sums of
// weighted Pauli strings (tensor products of I, X, Y, Z over qubits). The
// package supports symbolic products with phase tracking, term merging,
// qubit-wise commutation grouping for measurement, and application of a
// Pauli string to a computational-basis statevector.
package operator

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"
)

// Pauli identifies a single-qubit Pauli operator.
type Pauli byte

const (
	I Pauli = iota
	X
	Y
	Z
)

// String returns the conventional single-letter name of the Pauli.
func (p Pauli) String() string {
	switch p {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Pauli(%d)", byte(p))
}

// mulTable[a][b] gives the product a*b of two single-qubit Paulis as
// (phase, result), where phase is a fourth root of unity encoded as an
// exponent k of i (a*b = i^k * result).
var mulTable = [4][4]struct {
	phase  int
	result Pauli
}{
	I: {I: {0, I}, X: {0, X}, Y: {0, Y}, Z: {0, Z}},
	X: {I: {0, X}, X: {0, I}, Y: {1, Z}, Z: {3, Y}},
	Y: {I: {0, Y}, X: {3, Z}, Y: {0, I}, Z: {1, X}},
	Z: {I: {0, Z}, X: {1, Y}, Y: {3, X}, Z: {0, I}},
}

// iPow returns i^k for k in 0..3.
func iPow(k int) complex128 {
	switch k & 3 {
	case 0:
		return 1
	case 1:
		return 1i
	case 2:
		return -1
	default:
		return -1i
	}
}

// Term is a weighted Pauli string. Ops[q] is the Pauli acting on qubit q,
// where qubit 0 corresponds to the least significant bit of a basis index.
type Term struct {
	Coeff complex128
	Ops   []Pauli
}

// NewTerm builds a term on nq qubits with the given single-qubit factors.
// Qubits not listed act as identity.
func NewTerm(coeff complex128, nq int, factors map[int]Pauli) Term {
	ops := make([]Pauli, nq)
	for q, p := range factors {
		ops[q] = p
	}
	return Term{Coeff: coeff, Ops: ops}
}

// Identity returns the identity term on nq qubits with the given weight.
func Identity(coeff complex128, nq int) Term {
	return Term{Coeff: coeff, Ops: make([]Pauli, nq)}
}

// NumQubits returns the number of qubits the term is defined on.
func (t Term) NumQubits() int { return len(t.Ops) }

// IsIdentity reports whether every factor of the term is the identity.
func (t Term) IsIdentity() bool {
	for _, p := range t.Ops {
		if p != I {
			return false
		}
	}
	return true
}

// Key returns the coefficient-independent label of the Pauli string,
// e.g. "XZII" for X on qubit 0 and Z on qubit 1 of a 4-qubit term.
func (t Term) Key() string {
	var b strings.Builder
	for _, p := range t.Ops {
		b.WriteString(p.String())
	}
	return b.String()
}

// String renders the term in the sparse "c * X0 Z2" convention.
func (t Term) String() string {
	parts := make([]string, 0, len(t.Ops))
	for q, p := range t.Ops {
		if p != I {
			parts = append(parts, fmt.Sprintf("%s%d", p, q))
		}
	}
	label := strings.Join(parts, " ")
	if label == "" {
		label = "I"
	}
	if imag(t.Coeff) == 0 {
		return fmt.Sprintf("%+.8f %s", real(t.Coeff), label)
	}
	return fmt.Sprintf("(%+.8f%+.8fi) %s", real(t.Coeff), imag(t.Coeff), label)
}

// Mul returns the product t*o, tracking the accumulated phase.
func (t Term) Mul(o Term) (Term, error) {
	if len(t.Ops) != len(o.Ops) {
		return Term{}, fmt.Errorf("qubit count mismatch: %d vs %d", len(t.Ops), len(o.Ops))
	}
	out := Term{Coeff: t.Coeff * o.Coeff, Ops: make([]Pauli, len(t.Ops))}
	phase := 0
	for q := range t.Ops {
		e := mulTable[t.Ops[q]][o.Ops[q]]
		phase += e.phase
		out.Ops[q] = e.result
	}
	out.Coeff *= iPow(phase)
	return out, nil
}

// masks returns the X-type and Z-type bitmasks of the string: xm has a bit set
// for every qubit carrying X or Y, zm for every qubit carrying Z or Y.
func (t Term) masks() (xm, zm uint64) {
	for q, p := range t.Ops {
		switch p {
		case X:
			xm |= 1 << uint(q)
		case Y:
			xm |= 1 << uint(q)
			zm |= 1 << uint(q)
		case Z:
			zm |= 1 << uint(q)
		}
	}
	return xm, zm
}

// ApplyToState accumulates t|psi> into dst. Both slices must have length
// 2^NumQubits. dst is not zeroed, so repeated calls sum contributions.
func (t Term) ApplyToState(psi, dst []complex128) {
	xm, _ := t.masks()
	n := len(psi)
	for i := 0; i < n; i++ {
		amp := psi[i]
		if amp == 0 {
			continue
		}
		j := uint64(i) ^ xm
		dst[j] += t.Coeff * t.basisPhase(uint64(i)) * amp
	}
}

// basisPhase returns the phase picked up when the string acts on basis
// state |i>: Z contributes (-1)^bit, Y contributes i for bit 0 and -i for
// bit 1, X contributes 1.
func (t Term) basisPhase(i uint64) complex128 {
	phase := complex128(1)
	for q, p := range t.Ops {
		bit := (i >> uint(q)) & 1
		switch p {
		case Z:
			if bit == 1 {
				phase = -phase
			}
		case Y:
			if bit == 0 {
				phase *= 1i
			} else {
				phase *= -1i
			}
		}
	}
	return phase
}

// Sum is a linear combination of Pauli strings over a fixed qubit count.
type Sum struct {
	nq    int
	terms []Term
}

// NewSum creates an empty sum on nq qubits.
func NewSum(nq int) *Sum {
	return &Sum{nq: nq}
}

// NumQubits returns the qubit count of the sum.
func (s *Sum) NumQubits() int { return s.nq }

// Terms returns the terms of the sum. The slice is owned by the sum and
// must not be mutated.
func (s *Sum) Terms() []Term { return s.terms }

// Len returns the number of terms.
func (s *Sum) Len() int { return len(s.terms) }

// Add appends a term to the sum.
func (s *Sum) Add(t Term) error {
	if len(t.Ops) != s.nq {
		return fmt.Errorf("term on %d qubits added to sum on %d qubits", len(t.Ops), s.nq)
	}
	s.terms = append(s.terms, t)
	return nil
}

// AddSum appends all terms of o to the sum.
func (s *Sum) AddSum(o *Sum) error {
	for _, t := range o.terms {
		if err := s.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// Simplify merges terms with identical Pauli strings and drops terms whose
// coefficient magnitude falls below tol. Terms are left in a deterministic
// order (sorted by string label).
func (s *Sum) Simplify(tol float64) {
	merged := make(map[string]Term, len(s.terms))
	for _, t := range s.terms {
		key := t.Key()
		if acc, ok := merged[key]; ok {
			acc.Coeff += t.Coeff
			merged[key] = acc
		} else {
			cp := Term{Coeff: t.Coeff, Ops: append([]Pauli(nil), t.Ops...)}
			merged[key] = cp
		}
	}
	keys := make([]string, 0, len(merged))
	for k, t := range merged {
		if cmplx.Abs(t.Coeff) <= tol {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Term, 0, len(keys))
	for _, k := range keys {
		out = append(out, merged[k])
	}
	s.terms = out
}

// Mul returns the product s*o as a new simplified sum.
func (s *Sum) Mul(o *Sum) (*Sum, error) {
	if s.nq != o.nq {
		return nil, fmt.Errorf("qubit count mismatch: %d vs %d", s.nq, o.nq)
	}
	out := NewSum(s.nq)
	for _, a := range s.terms {
		for _, b := range o.terms {
			p, err := a.Mul(b)
			if err != nil {
				return nil, err
			}
			out.terms = append(out.terms, p)
		}
	}
	out.Simplify(0)
	return out, nil
}

// Scale multiplies every coefficient by c.
func (s *Sum) Scale(c complex128) {
	for i := range s.terms {
		s.terms[i].Coeff *= c
	}
}

// IsHermitian reports whether every coefficient is real to within tol.
// Sums built from physical observables must satisfy this.
func (s *Sum) IsHermitian(tol float64) bool {
	for _, t := range s.terms {
		if math.Abs(imag(t.Coeff)) > tol {
			return false
		}
	}
	return true
}

// ApplyToState computes s|psi> into a freshly allocated vector.
func (s *Sum) ApplyToState(psi []complex128) ([]complex128, error) {
	if len(psi) != 1<<uint(s.nq) {
		return nil, fmt.Errorf("statevector length %d does not match %d qubits", len(psi), s.nq)
	}
	dst := make([]complex128, len(psi))
	for _, t := range s.terms {
		t.ApplyToState(psi, dst)
	}
	return dst, nil
}

// Expectation computes <psi|s|psi>.
func (s *Sum) Expectation(psi []complex128) (complex128, error) {
	phi, err := s.ApplyToState(psi)
	if err != nil {
		return 0, err
	}
	var e complex128
	for i := range psi {
		e += cmplx.Conj(psi[i]) * phi[i]
	}
	return e, nil
}

// Dense expands the sum into a dense 2^n x 2^n matrix in row-major order,
// dense[row*dim+col]. Intended for small qubit counts only.
func (s *Sum) Dense() ([]complex128, error) {
	if s.nq > 14 {
		return nil, fmt.Errorf("refusing dense expansion for %d qubits", s.nq)
	}
	dim := 1 << uint(s.nq)
	m := make([]complex128, dim*dim)
	for _, t := range s.terms {
		xm, _ := t.masks()
		for col := 0; col < dim; col++ {
			row := int(uint64(col) ^ xm)
			m[row*dim+col] += t.Coeff * t.basisPhase(uint64(col))
		}
	}
	return m, nil
}

// String renders the sum one term per line.
func (s *Sum) String() string {
	lines := make([]string, 0, len(s.terms))
	for _, t := range s.terms {
		lines = append(lines, t.String())
	}
	return strings.Join(lines, "\n")
}
