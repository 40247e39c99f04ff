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

// Package chem computes minimal-basis electronic-structure inputs for small
// diatomic molecules: STO-3G orbital integrals, molecular-orbital
// transformation, and the nuclear repulsion energy. The output feeds the
// second-quantized Hamiltonian builder in pkg/fermion.
package chem

import (
	"fmt"
	"math"
	"strings"
)

// BohrPerAngstrom converts bond lengths to atomic units.
const BohrPerAngstrom = 1.8897259886

// Atom is a point nucleus. Position is in bohr.
type Atom struct {
	Symbol   string
	Z        int
	Position [3]float64
}

// Molecule is a collection of nuclei with a total charge.
type Molecule struct {
	Name   string
	Atoms  []Atom
	Charge int
}

// nuclearCharges lists the elements the minimal driver knows about.
var nuclearCharges = map[string]int{
	"H":  1,
	"HE": 2,
	"LI": 3,
}

// Diatomic builds a homonuclear diatomic molecule of the given element with
// the nuclei on the z axis, bond length in angstrom.
func Diatomic(symbol string, bondLength float64) (Molecule, error) {
	if bondLength <= 0 {
		return Molecule{}, fmt.Errorf("bond length must be positive, got %g", bondLength)
	}
	z, ok := nuclearCharges[strings.ToUpper(symbol)]
	if !ok {
		return Molecule{}, fmt.Errorf("unknown element %q", symbol)
	}
	r := bondLength * BohrPerAngstrom
	return Molecule{
		Name: symbol + "2",
		Atoms: []Atom{
			{Symbol: symbol, Z: z, Position: [3]float64{0, 0, 0}},
			{Symbol: symbol, Z: z, Position: [3]float64{0, 0, r}},
		},
	}, nil
}

// NumElectrons returns the electron count of the molecule.
func (m Molecule) NumElectrons() int {
	n := 0
	for _, a := range m.Atoms {
		n += a.Z
	}
	return n - m.Charge
}

// NuclearRepulsion returns the point-charge repulsion energy in hartree.
func (m Molecule) NuclearRepulsion() float64 {
	e := 0.0
	for i := 0; i < len(m.Atoms); i++ {
		for j := i + 1; j < len(m.Atoms); j++ {
			e += float64(m.Atoms[i].Z*m.Atoms[j].Z) / dist(m.Atoms[i].Position, m.Atoms[j].Position)
		}
	}
	return e
}

func dist(a, b [3]float64) float64 {
	return math.Sqrt(dist2(a, b))
}

func dist2(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}
