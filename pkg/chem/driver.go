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

package chem

import (
	"fmt"
	"math"
)

// Integrals holds the molecular-orbital electron integrals a second
// quantized Hamiltonian is built from. Core is h_pq and ERI is the
// chemist-notation (pq|rs) tensor, both over spatial orbitals.
type Integrals struct {
	Core             [][]float64
	ERI              [][][][]float64
	NuclearRepulsion float64
	Electrons        int
	SpatialOrbitals  int
}

// ComputeIntegrals runs the full electronic structure pipeline for a
// homonuclear diatomic in the minimal basis: STO-3G integrals over the two
// atomic 1s functions, symmetry-adapted molecular orbitals, and the
// four-index transform into the MO basis.
//
// For two identical atoms the bonding and antibonding combinations are
// fixed by symmetry, so no self-consistent iteration is needed:
//
//	|g> = (|1> + |2>) / sqrt(2(1+S12))
//	|u> = (|1> - |2>) / sqrt(2(1-S12))
func ComputeIntegrals(mol Molecule) (Integrals, error) {
	if len(mol.Atoms) != 2 {
		return Integrals{}, fmt.Errorf("expected a diatomic molecule, got %d atoms", len(mol.Atoms))
	}
	if mol.Atoms[0].Symbol != mol.Atoms[1].Symbol {
		return Integrals{}, fmt.Errorf("heteronuclear diatomic %s-%s requires an SCF solver",
			mol.Atoms[0].Symbol, mol.Atoms[1].Symbol)
	}

	basis, err := minimalBasis(mol)
	if err != nil {
		return Integrals{}, err
	}

	s, hcore, eriAO := aoMatrices(basis, mol)

	s12 := s[0][1]
	if math.Abs(s12) >= 1 {
		return Integrals{}, fmt.Errorf("unphysical overlap %.6f, atoms may coincide", s12)
	}
	cg := 1 / math.Sqrt(2*(1+s12))
	cu := 1 / math.Sqrt(2*(1-s12))

	// MO coefficient matrix, column p is orbital p over the AO basis.
	c := [][]float64{
		{cg, cu},
		{cg, -cu},
	}

	n := len(basis)
	core := squareMatrix(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			var sum float64
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					sum += c[i][p] * c[j][q] * hcore[i][j]
				}
			}
			core[p][q] = sum
		}
	}

	eri := transformERI(eriAO, c)

	return Integrals{
		Core:             core,
		ERI:              eri,
		NuclearRepulsion: mol.NuclearRepulsion(),
		Electrons:        mol.NumElectrons(),
		SpatialOrbitals:  n,
	}, nil
}

// transformERI applies the four-index transformation (pq|rs) =
// sum_ijkl C_ip C_jq C_kr C_ls (ij|kl). The naive eight-fold loop is fine
// at minimal-basis sizes.
func transformERI(ao [][][][]float64, c [][]float64) [][][][]float64 {
	n := len(ao)
	mo := make([][][][]float64, n)
	for p := range mo {
		mo[p] = make([][][]float64, n)
		for q := range mo[p] {
			mo[p][q] = make([][]float64, n)
			for r := range mo[p][q] {
				mo[p][q][r] = make([]float64, n)
				for s := range mo[p][q][r] {
					var sum float64
					for i := 0; i < n; i++ {
						for j := 0; j < n; j++ {
							for k := 0; k < n; k++ {
								for l := 0; l < n; l++ {
									sum += c[i][p] * c[j][q] * c[k][r] * c[l][s] * ao[i][j][k][l]
								}
							}
						}
					}
					mo[p][q][r][s] = sum
				}
			}
		}
	}
	return mo
}
