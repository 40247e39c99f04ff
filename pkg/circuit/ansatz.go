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

package circuit

import (
	"fmt"

	"github.com/varqe-dev/varqe/pkg/operator"
)

// AnsatzKind identifies a variational circuit family.
type AnsatzKind string

const (
	// AnsatzUCCDoubles is the single-parameter unitary coupled-cluster
	// double-excitation ansatz for a two-electron system in four spin
	// orbitals. It spans the exact ground state of minimal-basis H2.
	AnsatzUCCDoubles AnsatzKind = "ucc-doubles"

	// AnsatzTwoLocal is a hardware-efficient ansatz of RY rotation layers
	// alternating with a CZ entangling chain.
	AnsatzTwoLocal AnsatzKind = "two-local"
)

// HartreeFock prepares the Hartree-Fock reference determinant by flipping
// the occupied spin-orbital qubits of the all-zeros register.
func HartreeFock(nq int, occupied []int) (*Circuit, error) {
	c := New(nq)
	for _, q := range occupied {
		if q < 0 || q >= nq {
			return nil, fmt.Errorf("occupied orbital %d out of range [0,%d)", q, nq)
		}
		c.X(q)
	}
	return c, nil
}

// UCCDoubles builds the one-parameter pair-double-excitation ansatz on four
// spin-orbital qubits: the Hartree-Fock state |0011> followed by
// exp(-i*theta/2 * Y0 X1 X2 X3), which rotates amplitude between the
// reference and the doubly excited determinant |1100>.
func UCCDoubles() (*Circuit, error) {
	c, err := HartreeFock(4, []int{0, 1})
	if err != nil {
		return nil, err
	}
	excitation := operator.NewTerm(1, 4, map[int]operator.Pauli{
		0: operator.Y, 1: operator.X, 2: operator.X, 3: operator.X,
	})
	if err := c.PauliEvolution(excitation, 0); err != nil {
		return nil, err
	}
	return c, nil
}

// TwoLocal builds a hardware-efficient ansatz: reps+1 layers of per-qubit RY
// rotations with a linear CZ entangling chain between layers. The circuit has
// nq*(reps+1) free parameters.
func TwoLocal(nq, reps int) (*Circuit, error) {
	if nq < 1 {
		return nil, fmt.Errorf("two-local ansatz needs at least one qubit, got %d", nq)
	}
	if reps < 1 {
		return nil, fmt.Errorf("two-local ansatz needs at least one repetition, got %d", reps)
	}
	c := New(nq)
	p := 0
	for layer := 0; layer <= reps; layer++ {
		for q := 0; q < nq; q++ {
			c.RYParam(q, p)
			p++
		}
		if layer < reps {
			for q := 0; q+1 < nq; q++ {
				c.CZ(q, q+1)
			}
		}
	}
	return c, nil
}

// BuildAnsatz constructs the requested ansatz for an nq-qubit problem.
// The reps argument applies to the two-local family only.
func BuildAnsatz(kind AnsatzKind, nq, reps int) (*Circuit, error) {
	switch kind {
	case AnsatzUCCDoubles:
		if nq != 4 {
			return nil, fmt.Errorf("ucc-doubles ansatz is defined on 4 qubits, problem has %d", nq)
		}
		return UCCDoubles()
	case AnsatzTwoLocal:
		return TwoLocal(nq, reps)
	default:
		return nil, fmt.Errorf("unsupported ansatz kind %q", kind)
	}
}
