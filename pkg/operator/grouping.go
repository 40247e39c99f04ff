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

package operator

// Group is a set of qubit-wise commuting terms together with the shared
// measurement basis: Basis[q] is the non-identity Pauli measured on qubit q,
// or I when no term in the group touches that qubit.
type Group struct {
	Basis []Pauli
	Terms []Term
}

// qubitWiseCompatible reports whether the term can join a group measured in
// the given basis: on every qubit the term must either act as identity or
// agree with the basis choice already made for that qubit.
func qubitWiseCompatible(basis []Pauli, t Term) bool {
	for q, p := range t.Ops {
		if p == I || basis[q] == I || basis[q] == p {
			continue
		}
		return false
	}
	return true
}

// GroupQubitWise partitions the terms of the sum into qubit-wise commuting
// groups using first-fit greedy assignment. Identity terms (constant energy
// offsets) are collected into a group with an all-identity basis so callers
// can account for them without measuring.
//
// All terms in a group can be estimated from one measured circuit after
// rotating each basis qubit into the Z eigenbasis.
func GroupQubitWise(s *Sum) []Group {
	var groups []Group
	for _, t := range s.Terms() {
		placed := false
		for gi := range groups {
			if !qubitWiseCompatible(groups[gi].Basis, t) {
				continue
			}
			for q, p := range t.Ops {
				if p != I {
					groups[gi].Basis[q] = p
				}
			}
			groups[gi].Terms = append(groups[gi].Terms, t)
			placed = true
			break
		}
		if !placed {
			g := Group{Basis: make([]Pauli, s.NumQubits())}
			for q, p := range t.Ops {
				if p != I {
					g.Basis[q] = p
				}
			}
			g.Terms = append(g.Terms, t)
			groups = append(groups, g)
		}
	}
	return groups
}
