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

// Package backend executes bound quantum circuits. The only implementation
// is an in-process statevector simulator; the Backend interface keeps the
// estimator decoupled from how circuits are run.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/varqe-dev/varqe/pkg/circuit"
)

// ErrUnboundCircuit is returned when a circuit still carrying free
// parameters is submitted for execution.
var ErrUnboundCircuit = errors.New("circuit has unbound parameters")

// Counts maps measured bitstrings to occurrence counts. Bitstrings are
// written most significant qubit first, so qubit 0 is the rightmost
// character.
type Counts map[string]int

// Shots returns the total number of shots recorded in the counts.
func (c Counts) Shots() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// BitstringKey formats a basis index as a counts key for nq qubits.
func BitstringKey(index uint64, nq int) string {
	var b strings.Builder
	for q := nq - 1; q >= 0; q-- {
		if (index>>uint(q))&1 == 1 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParityBit returns 1 when the counts key has odd parity over the qubits in
// mask, 0 otherwise. Used to turn sampled bitstrings into Pauli-Z
// eigenvalues.
func ParityBit(key string, mask uint64) (int, error) {
	nq := len(key)
	parity := 0
	for q := 0; q < nq; q++ {
		if mask&(1<<uint(q)) == 0 {
			continue
		}
		switch key[nq-1-q] {
		case '1':
			parity ^= 1
		case '0':
		default:
			return 0, fmt.Errorf("counts key %q contains non-binary digit", key)
		}
	}
	return parity, nil
}

// Backend runs bound circuits (circuits with no remaining free parameters).
// Statevector returns the full final state; Sample measures all qubits in
// the computational basis.
type Backend interface {
	// Name identifies the backend in logs and results.
	Name() string

	// MaxQubits is the largest register the backend accepts.
	MaxQubits() int

	// Statevector simulates the circuit and returns the final state as
	// amplitudes indexed by basis state, qubit 0 least significant.
	Statevector(ctx context.Context, c *circuit.Circuit) ([]complex128, error)

	// Sample simulates the circuit and draws shots measurement outcomes.
	Sample(ctx context.Context, c *circuit.Circuit, shots int) (Counts, error)
}
