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
	"math/rand"

	"github.com/varqe-dev/varqe/internal/history"
)

// spsa implements simultaneous perturbation stochastic approximation
// with the standard Spall gain sequences. Two objective evaluations per
// iteration approximate the gradient along a random Rademacher direction,
// which tolerates the shot noise of a sampling estimator far better than
// a simplex does.
type spsa struct {
	cfg Config

	// Gain sequence parameters, a_k = a/(k+1+A)^alpha and
	// c_k = c/(k+1)^gamma.
	a, c, bigA, alpha, gamma float64
}

func newSPSA(cfg Config) *spsa {
	return &spsa{
		cfg:   cfg,
		a:     0.2,
		c:     0.1,
		bigA:  float64(cfg.MaxIterations) / 10,
		alpha: 0.602,
		gamma: 0.101,
	}
}

func (s *spsa) Name() string { return StrategySPSA }

func (s *spsa) Minimize(ctx context.Context, obj Objective, x0 []float64, rec *history.Recorder) (Result, error) {
	if len(x0) == 0 {
		return Result{}, fmt.Errorf("empty initial point")
	}
	if rec == nil {
		rec = history.NewRecorder(0)
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	theta := append([]float64(nil), x0...)
	n := len(theta)
	plus := make([]float64, n)
	minus := make([]float64, n)
	delta := make([]float64, n)

	eval := func(x []float64) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		v, err := obj(ctx, x)
		if err != nil {
			return 0, err
		}
		rec.Record(x, v)
		return v, nil
	}

	// Converged when the running best has not improved by more than the
	// tolerance for this many consecutive iterations.
	const patience = 10
	stale := 0
	prevBest := math.Inf(1)
	converged := false

	iters := 0
	for k := 0; k < s.cfg.MaxIterations; k++ {
		ak := s.a / math.Pow(float64(k+1)+s.bigA, s.alpha)
		ck := s.c / math.Pow(float64(k+1), s.gamma)

		for i := 0; i < n; i++ {
			if rng.Intn(2) == 0 {
				delta[i] = 1
			} else {
				delta[i] = -1
			}
			plus[i] = theta[i] + ck*delta[i]
			minus[i] = theta[i] - ck*delta[i]
		}

		fp, err := eval(plus)
		if err != nil {
			return Result{}, err
		}
		fm, err := eval(minus)
		if err != nil {
			return Result{}, err
		}

		for i := 0; i < n; i++ {
			theta[i] -= ak * (fp - fm) / (2 * ck * delta[i])
		}
		iters = k + 1

		best, _ := rec.Best()
		if prevBest-best.Energy <= s.cfg.Tolerance {
			stale++
		} else {
			stale = 0
		}
		prevBest = best.Energy
		if stale >= patience {
			converged = true
			break
		}
	}

	// Evaluate the final iterate so the returned best reflects it.
	if _, err := eval(theta); err != nil {
		return Result{}, err
	}

	best, ok := rec.Best()
	if !ok {
		return Result{}, fmt.Errorf("optimizer made no evaluations")
	}
	return Result{
		BestParams:  best.Params,
		BestEnergy:  best.Energy,
		Iterations:  iters,
		Evaluations: rec.Len(),
		Converged:   converged,
	}, nil
}
