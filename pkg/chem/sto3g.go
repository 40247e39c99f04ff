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
	"strings"
)

// sto3gParams holds the 1s STO-3G contraction for an element: three
// primitive Gaussian exponents with contraction coefficients. Exponents
// include the standard Slater-zeta scaling (zeta = 1.24 for hydrogen).
type sto3gParams struct {
	exponents    [3]float64
	coefficients [3]float64
}

var sto3g = map[string]sto3gParams{
	"H": {
		exponents:    [3]float64{3.42525091, 0.62391373, 0.16885540},
		coefficients: [3]float64{0.15432897, 0.53532814, 0.44463454},
	},
	"HE": {
		exponents:    [3]float64{6.36242139, 1.15892300, 0.31364979},
		coefficients: [3]float64{0.15432897, 0.53532814, 0.44463454},
	},
}

// basisFunction is a contracted s-type Gaussian centered on a nucleus. The
// stored coefficients fold in primitive normalization and a final contracted
// normalization so that the self-overlap is exactly one.
type basisFunction struct {
	center [3]float64
	exps   []float64
	coeffs []float64
}

// primitiveNorm is the normalization constant of an s-type Gaussian
// primitive, (2*alpha/pi)^(3/4).
func primitiveNorm(alpha float64) float64 {
	return math.Pow(2*alpha/math.Pi, 0.75)
}

// newBasisFunction builds the normalized contracted 1s function for the
// element at the given center.
func newBasisFunction(symbol string, center [3]float64) (basisFunction, error) {
	params, ok := sto3g[strings.ToUpper(symbol)]
	if !ok {
		return basisFunction{}, fmt.Errorf("no STO-3G 1s parameters for element %q", symbol)
	}
	bf := basisFunction{center: center}
	for i := range params.exponents {
		bf.exps = append(bf.exps, params.exponents[i])
		bf.coeffs = append(bf.coeffs, params.coefficients[i]*primitiveNorm(params.exponents[i]))
	}

	// Renormalize the contraction.
	self := overlapAO(bf, bf)
	scale := 1 / math.Sqrt(self)
	for i := range bf.coeffs {
		bf.coeffs[i] *= scale
	}
	return bf, nil
}

// minimalBasis builds the one-1s-per-atom basis for the molecule.
func minimalBasis(m Molecule) ([]basisFunction, error) {
	basis := make([]basisFunction, 0, len(m.Atoms))
	for _, a := range m.Atoms {
		bf, err := newBasisFunction(a.Symbol, a.Position)
		if err != nil {
			return nil, err
		}
		basis = append(basis, bf)
	}
	return basis, nil
}
