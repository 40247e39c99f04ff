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

// Package reference computes exact ground-state energies by dense
// diagonalization, giving optimization runs an independent answer to
// compare against.
package reference

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/varqe-dev/varqe/pkg/operator"
)

// maxQubits caps the dense solve; the embedded real matrix has
// dimension 2^(n+1).
const maxQubits = 12

// embed builds the real symmetric matrix whose spectrum doubles that of
// the complex Hermitian observable. For H = A + iB the embedding is
//
//	[ A -B ]
//	[ B  A ]
//
// which lets gonum's real symmetric eigensolver handle complex input.
func embed(obs *operator.Sum) (*mat.SymDense, error) {
	if obs == nil || obs.Len() == 0 {
		return nil, fmt.Errorf("empty observable")
	}
	nq := obs.NumQubits()
	if nq > maxQubits {
		return nil, fmt.Errorf("dense diagonalization capped at %d qubits, observable has %d", maxQubits, nq)
	}
	if !obs.IsHermitian(1e-9) {
		return nil, fmt.Errorf("observable is not Hermitian")
	}

	h, err := obs.Dense()
	if err != nil {
		return nil, err
	}

	dim := 1 << nq
	emb := mat.NewSymDense(2*dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			// Symmetrize so numerical residue in the input cannot
			// break the embedding.
			a := 0.5 * (real(h[i*dim+j]) + real(h[j*dim+i]))
			emb.SetSym(i, j, a)
			emb.SetSym(dim+i, dim+j, a)
		}
		for j := 0; j < dim; j++ {
			b := 0.5 * (imag(h[i*dim+j]) - imag(h[j*dim+i]))
			emb.SetSym(i, dim+j, -b)
		}
	}
	return emb, nil
}

func eigenvalues(obs *operator.Sum) ([]float64, error) {
	emb, err := embed(obs)
	if err != nil {
		return nil, err
	}
	var eig mat.EigenSym
	if !eig.Factorize(emb, false) {
		return nil, fmt.Errorf("eigendecomposition failed")
	}
	return eig.Values(nil), nil
}

// GroundEnergy returns the smallest eigenvalue of the observable.
func GroundEnergy(obs *operator.Sum) (float64, error) {
	vals, err := eigenvalues(obs)
	if err != nil {
		return 0, err
	}
	// Ascending order, minimum first.
	return vals[0], nil
}

// Spectrum returns all eigenvalues of the observable in ascending order.
// The embedding doubles every eigenvalue, so each pair collapses to one
// entry.
func Spectrum(obs *operator.Sum) ([]float64, error) {
	vals, err := eigenvalues(obs)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		out = append(out, vals[i])
	}
	return out, nil
}
