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

import "math"

// Closed-form one- and two-electron integrals over s-type Gaussian
// primitives, following the standard Gaussian product theorem. Only
// zero-angular-momentum functions are handled, which is all a minimal
// hydrogen or helium basis needs.

// boysF0 is the zeroth-order Boys function, F0(t) = (1/2) sqrt(pi/t) erf(sqrt(t)),
// with the t -> 0 limit of 1.
func boysF0(t float64) float64 {
	if t < 1e-12 {
		return 1
	}
	return 0.5 * math.Sqrt(math.Pi/t) * math.Erf(math.Sqrt(t))
}

// gaussProduct combines two s primitives into their product Gaussian,
// returning the combined exponent p, the prefactor K = exp(-a*b/p * |A-B|^2),
// and the product center P.
func gaussProduct(a, b float64, ra, rb [3]float64) (p, k float64, rp [3]float64) {
	p = a + b
	k = math.Exp(-a * b / p * dist2(ra, rb))
	for i := 0; i < 3; i++ {
		rp[i] = (a*ra[i] + b*rb[i]) / p
	}
	return p, k, rp
}

func overlapPrim(a, b float64, ra, rb [3]float64) float64 {
	p, k, _ := gaussProduct(a, b, ra, rb)
	return math.Pow(math.Pi/p, 1.5) * k
}

func kineticPrim(a, b float64, ra, rb [3]float64) float64 {
	p, k, _ := gaussProduct(a, b, ra, rb)
	ab := a * b / p
	return ab * (3 - 2*ab*dist2(ra, rb)) * math.Pow(math.Pi/p, 1.5) * k
}

// nuclearPrim is the attraction of the (a,RA)x(b,RB) charge distribution to
// a unit point charge at RC. The caller supplies the nuclear charge.
func nuclearPrim(a, b float64, ra, rb, rc [3]float64) float64 {
	p, k, rp := gaussProduct(a, b, ra, rb)
	return -2 * math.Pi / p * k * boysF0(p*dist2(rp, rc))
}

// eriPrim is the (ab|cd) two-electron repulsion integral in chemist
// notation over four s primitives.
func eriPrim(a, b, c, d float64, ra, rb, rc, rd [3]float64) float64 {
	p, kab, rp := gaussProduct(a, b, ra, rb)
	q, kcd, rq := gaussProduct(c, d, rc, rd)
	return 2 * math.Pow(math.Pi, 2.5) / (p * q * math.Sqrt(p+q)) *
		kab * kcd * boysF0(p*q/(p+q)*dist2(rp, rq))
}

// overlapAO contracts the primitive overlaps for two basis functions.
func overlapAO(bi, bj basisFunction) float64 {
	var s float64
	for m, am := range bi.exps {
		for n, an := range bj.exps {
			s += bi.coeffs[m] * bj.coeffs[n] * overlapPrim(am, an, bi.center, bj.center)
		}
	}
	return s
}

func kineticAO(bi, bj basisFunction) float64 {
	var t float64
	for m, am := range bi.exps {
		for n, an := range bj.exps {
			t += bi.coeffs[m] * bj.coeffs[n] * kineticPrim(am, an, bi.center, bj.center)
		}
	}
	return t
}

// nuclearAO sums the attraction of the (i,j) distribution to every nucleus
// in the molecule, weighted by its charge.
func nuclearAO(bi, bj basisFunction, mol Molecule) float64 {
	var v float64
	for m, am := range bi.exps {
		for n, an := range bj.exps {
			cc := bi.coeffs[m] * bj.coeffs[n]
			for _, atom := range mol.Atoms {
				v += cc * float64(atom.Z) * nuclearPrim(am, an, bi.center, bj.center, atom.Position)
			}
		}
	}
	return v
}

func eriAO(bi, bj, bk, bl basisFunction) float64 {
	var g float64
	for m, am := range bi.exps {
		for n, an := range bj.exps {
			for o, ao := range bk.exps {
				for q, aq := range bl.exps {
					g += bi.coeffs[m] * bj.coeffs[n] * bk.coeffs[o] * bl.coeffs[q] *
						eriPrim(am, an, ao, aq, bi.center, bj.center, bk.center, bl.center)
				}
			}
		}
	}
	return g
}

// aoMatrices assembles the overlap, core Hamiltonian (kinetic plus nuclear
// attraction), and the full chemist-notation ERI tensor in the AO basis.
func aoMatrices(basis []basisFunction, mol Molecule) (s, hcore [][]float64, eri [][][][]float64) {
	n := len(basis)
	s = squareMatrix(n)
	hcore = squareMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s[i][j] = overlapAO(basis[i], basis[j])
			hcore[i][j] = kineticAO(basis[i], basis[j]) + nuclearAO(basis[i], basis[j], mol)
		}
	}

	eri = make([][][][]float64, n)
	for i := range eri {
		eri[i] = make([][][]float64, n)
		for j := range eri[i] {
			eri[i][j] = make([][]float64, n)
			for k := range eri[i][j] {
				eri[i][j][k] = make([]float64, n)
				for l := range eri[i][j][k] {
					eri[i][j][k][l] = eriAO(basis[i], basis[j], basis[k], basis[l])
				}
			}
		}
	}
	return s, hcore, eri
}

func squareMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
