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

package driver

import (
	"context"
	"fmt"

	"github.com/varqe-dev/varqe/api/v1alpha1"
)

// ScanResult is a bond-length sweep: one converged run per geometry.
type ScanResult struct {
	// Lengths are the bond lengths in Angstrom, ascending.
	Lengths []float64

	// Energies are the best variational energies per geometry.
	Energies []float64

	// ExactEnergies are the dense reference energies, parallel to
	// Lengths. Empty when the problem was too large to diagonalize.
	ExactEnergies []float64

	// Runs are the per-geometry results.
	Runs []*RunResult
}

// Scan sweeps the configured bond-length range. Each geometry warm
// starts from the previous one's best parameters, which keeps the
// optimizer on the same branch of the energy surface across the curve.
func (p *Pipeline) Scan(ctx context.Context, exp *v1alpha1.Experiment) (*ScanResult, error) {
	if exp == nil || exp.Spec.Scan == nil {
		return nil, fmt.Errorf("experiment has no scan section")
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}

	s := exp.Spec.Scan
	out := &ScanResult{}
	x0 := exp.Spec.Minimizer.InitialPoint

	step := (s.StopAngstrom - s.StartAngstrom) / float64(s.Points-1)
	for i := 0; i < s.Points; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		length := s.StartAngstrom + float64(i)*step

		res, err := p.runGeometry(ctx, exp, length, x0)
		if err != nil {
			return nil, fmt.Errorf("geometry %d at %.4f A: %w", i, length, err)
		}

		out.Lengths = append(out.Lengths, length)
		out.Energies = append(out.Energies, res.BestEnergy)
		if res.ExactKnown {
			out.ExactEnergies = append(out.ExactEnergies, res.ExactEnergy)
		}
		out.Runs = append(out.Runs, res)
		x0 = res.BestParams
	}
	return out, nil
}
