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

package minimizer

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/varqe-dev/varqe/internal/history"
)

// nelderMead adapts gonum's simplex implementation. The objective handed
// to gonum cannot return an error, so failures are latched and surfaced
// after the run; the poisoned +Inf value steers the simplex away in the
// meantime.
type nelderMead struct {
	cfg Config
}

func newNelderMead(cfg Config) *nelderMead {
	return &nelderMead{cfg: cfg}
}

func (n *nelderMead) Name() string { return StrategyNelderMead }

func (n *nelderMead) Minimize(ctx context.Context, obj Objective, x0 []float64, rec *history.Recorder) (Result, error) {
	if len(x0) == 0 {
		return Result{}, fmt.Errorf("empty initial point")
	}
	if rec == nil {
		rec = history.NewRecorder(0)
	}

	var evalErr error
	wrapped := func(x []float64) float64 {
		if evalErr != nil {
			return math.Inf(1)
		}
		if err := ctx.Err(); err != nil {
			evalErr = err
			return math.Inf(1)
		}
		v, err := obj(ctx, x)
		if err != nil {
			evalErr = err
			return math.Inf(1)
		}
		rec.Record(x, v)
		return v
	}

	problem := optimize.Problem{Func: wrapped}
	settings := &optimize.Settings{
		MajorIterations: n.cfg.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   n.cfg.Tolerance,
			Iterations: 10,
		},
	}

	res, err := optimize.Minimize(problem, append([]float64(nil), x0...), settings, &optimize.NelderMead{})
	if evalErr != nil {
		return Result{}, evalErr
	}
	if err != nil && res == nil {
		return Result{}, fmt.Errorf("nelder-mead failed: %w", err)
	}

	best, ok := rec.Best()
	if !ok {
		return Result{}, fmt.Errorf("optimizer made no evaluations")
	}
	return Result{
		BestParams:  best.Params,
		BestEnergy:  best.Energy,
		Iterations:  res.Stats.MajorIterations,
		Evaluations: rec.Len(),
		Converged:   res.Status == optimize.FunctionConvergence,
	}, nil
}
