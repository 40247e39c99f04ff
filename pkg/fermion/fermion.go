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

// Package fermion represents second-quantized fermionic operators and builds
// molecular electronic Hamiltonians from orbital integrals.
//
// Spin orbitals are indexed in the interleaved convention: spatial orbital p
// with spin sigma (0 = alpha, 1 = beta) maps to spin orbital 2p+sigma.
package fermion

import (
	"fmt"
	"strings"
)

// Op is a single creation or annihilation operator acting on a spin orbital.
type Op struct {
	Orbital  int
	Creation bool
}

// String renders the operator in "p^" / "p" notation.
func (o Op) String() string {
	if o.Creation {
		return fmt.Sprintf("%d^", o.Orbital)
	}
	return fmt.Sprintf("%d", o.Orbital)
}

// Term is a weighted product of creation/annihilation operators, applied
// right to left. An empty product is a constant.
type Term struct {
	Coeff complex128
	Ops   []Op
}

// String renders the term, e.g. "+0.25 [2^ 3^ 1 0]".
func (t Term) String() string {
	parts := make([]string, 0, len(t.Ops))
	for _, op := range t.Ops {
		parts = append(parts, op.String())
	}
	return fmt.Sprintf("%+.8f [%s]", real(t.Coeff), strings.Join(parts, " "))
}

// Operator is a sum of fermionic terms.
type Operator struct {
	terms []Term
}

// NewOperator returns an empty operator.
func NewOperator() *Operator {
	return &Operator{}
}

// Add appends a term with the given weight and operator product.
func (f *Operator) Add(coeff complex128, ops ...Op) {
	f.terms = append(f.terms, Term{Coeff: coeff, Ops: ops})
}

// AddConstant appends a constant (identity) term.
func (f *Operator) AddConstant(c complex128) {
	f.terms = append(f.terms, Term{Coeff: c})
}

// Terms returns the terms of the operator. The slice is owned by the
// operator and must not be mutated.
func (f *Operator) Terms() []Term { return f.terms }

// Len returns the number of terms.
func (f *Operator) Len() int { return len(f.terms) }

// MaxOrbital returns the highest spin-orbital index referenced, or -1 for a
// purely constant operator.
func (f *Operator) MaxOrbital() int {
	max := -1
	for _, t := range f.terms {
		for _, op := range t.Ops {
			if op.Orbital > max {
				max = op.Orbital
			}
		}
	}
	return max
}

// SpinOrbital maps a spatial orbital and spin to the interleaved
// spin-orbital index.
func SpinOrbital(spatial, spin int) int {
	return 2*spatial + spin
}

// MolecularHamiltonian assembles the electronic Hamiltonian
//
//	H = E_nuc
//	  + sum_pq h[p][q] a†_{p,s} a_{q,s}
//	  + 1/2 sum_pqrs (pq|rs) a†_{p,s} a†_{r,t} a_{s-orb,t} a_{q-orb,s}
//
// from spatial-orbital integrals: h is the one-electron core matrix and g the
// two-electron repulsion tensor in chemist notation, g[p][q][r][s] = (pq|rs).
// Spin sums run over both values for each distinct spatial index pair.
func MolecularHamiltonian(h [][]float64, g [][][][]float64, eNuc float64) (*Operator, error) {
	n := len(h)
	if n == 0 {
		return nil, fmt.Errorf("empty one-electron integral matrix")
	}
	for i := range h {
		if len(h[i]) != n {
			return nil, fmt.Errorf("one-electron integral matrix is not square")
		}
	}
	if len(g) != n {
		return nil, fmt.Errorf("two-electron tensor rank %d does not match %d orbitals", len(g), n)
	}

	f := NewOperator()
	f.AddConstant(complex(eNuc, 0))

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if h[p][q] == 0 {
				continue
			}
			for spin := 0; spin < 2; spin++ {
				f.Add(complex(h[p][q], 0),
					Op{Orbital: SpinOrbital(p, spin), Creation: true},
					Op{Orbital: SpinOrbital(q, spin)},
				)
			}
		}
	}

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					if g[p][q][r][s] == 0 {
						continue
					}
					coeff := complex(0.5*g[p][q][r][s], 0)
					for s1 := 0; s1 < 2; s1++ {
						for s2 := 0; s2 < 2; s2++ {
							f.Add(coeff,
								Op{Orbital: SpinOrbital(p, s1), Creation: true},
								Op{Orbital: SpinOrbital(r, s2), Creation: true},
								Op{Orbital: SpinOrbital(s, s2)},
								Op{Orbital: SpinOrbital(q, s1)},
							)
						}
					}
				}
			}
		}
	}

	return f, nil
}
