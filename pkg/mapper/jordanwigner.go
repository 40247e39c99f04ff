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

// Package mapper transforms fermionic operators into qubit observables.
// Only the Jordan-Wigner encoding is implemented: spin orbital p maps to
// qubit p, with a Z string over lower-index qubits carrying the fermionic
// antisymmetry.
package mapper

import (
	"fmt"

	"github.com/varqe-dev/varqe/pkg/fermion"
	"github.com/varqe-dev/varqe/pkg/operator"
)

// coefficient magnitude below which mapped terms are discarded.
const dropTol = 1e-12

// ladder returns the Jordan-Wigner image of a single ladder operator:
//
//	a_p  = Z_0 ... Z_{p-1} (X_p + iY_p)/2
//	a†_p = Z_0 ... Z_{p-1} (X_p - iY_p)/2
func ladder(op fermion.Op, nq int) *operator.Sum {
	xFactors := map[int]operator.Pauli{op.Orbital: operator.X}
	yFactors := map[int]operator.Pauli{op.Orbital: operator.Y}
	for j := 0; j < op.Orbital; j++ {
		xFactors[j] = operator.Z
		yFactors[j] = operator.Z
	}

	yCoeff := complex128(0.5i)
	if op.Creation {
		yCoeff = -0.5i
	}

	s := operator.NewSum(nq)
	// Error cannot occur: factors are built for nq qubits.
	_ = s.Add(operator.NewTerm(0.5, nq, xFactors))
	_ = s.Add(operator.NewTerm(yCoeff, nq, yFactors))
	return s
}

// JordanWigner maps a fermionic operator on nq spin orbitals to a qubit
// Pauli sum on nq qubits. The result is simplified and checked for
// hermiticity when the input is a physical Hamiltonian; callers mapping
// non-Hermitian operators (e.g. bare excitations) should ignore that check
// via the returned sum directly.
func JordanWigner(f *fermion.Operator, nq int) (*operator.Sum, error) {
	if max := f.MaxOrbital(); max >= nq {
		return nil, fmt.Errorf("operator references spin orbital %d but only %d qubits requested", max, nq)
	}

	out := operator.NewSum(nq)
	for _, t := range f.Terms() {
		mapped := operator.NewSum(nq)
		if err := mapped.Add(operator.Identity(t.Coeff, nq)); err != nil {
			return nil, err
		}
		for _, op := range t.Ops {
			next, err := mapped.Mul(ladder(op, nq))
			if err != nil {
				return nil, err
			}
			mapped = next
		}
		if err := out.AddSum(mapped); err != nil {
			return nil, err
		}
	}
	out.Simplify(dropTol)
	return out, nil
}
