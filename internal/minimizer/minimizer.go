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

// Package minimizer wraps derivative-free optimizers behind a common
// interface. Every objective evaluation is written to a history recorder,
// and the returned result always carries the best iterate seen, whether
// or not the run converged.
package minimizer

import (
	"context"
	"fmt"

	"github.com/varqe-dev/varqe/internal/history"
)

// Strategies accepted by New.
const (
	StrategyNelderMead = "nelder-mead"
	StrategySPSA       = "spsa"
)

// Objective is the function being minimized. Implementations may be
// expensive; the minimizer calls it once per candidate point.
type Objective func(ctx context.Context, params []float64) (float64, error)

// Result summarizes a finished minimization.
type Result struct {
	// BestParams is the lowest-energy iterate observed.
	BestParams []float64

	// BestEnergy is the objective value at BestParams.
	BestEnergy float64

	// Iterations is the number of optimizer iterations performed.
	Iterations int

	// Evaluations is the number of objective evaluations performed.
	Evaluations int

	// Converged reports whether the tolerance criterion was met before
	// the iteration budget ran out.
	Converged bool
}

// Minimizer drives an optimization run to completion.
type Minimizer interface {
	Name() string

	// Minimize runs from x0 until convergence or budget exhaustion,
	// recording every evaluation. A non-converged run is not an error:
	// the best iterate comes back with Converged set to false.
	Minimize(ctx context.Context, obj Objective, x0 []float64, rec *history.Recorder) (Result, error)
}

// Config selects and tunes a minimizer.
type Config struct {
	// Strategy names the algorithm, one of the Strategy constants.
	Strategy string

	// MaxIterations bounds optimizer iterations. Zero picks a default.
	MaxIterations int

	// Tolerance is the absolute objective-change threshold treated as
	// converged. Zero picks a default.
	Tolerance float64

	// Seed drives any stochastic choices the algorithm makes.
	Seed int64
}

const (
	defaultMaxIterations = 200
	defaultTolerance     = 1e-6
)

func (c *Config) applyDefaults() {
	if c.MaxIterations <= 0 {
		c.MaxIterations = defaultMaxIterations
	}
	if c.Tolerance <= 0 {
		c.Tolerance = defaultTolerance
	}
}

// New is a factory that creates a minimizer for the configured strategy.
func New(cfg Config) (Minimizer, error) {
	cfg.applyDefaults()
	switch cfg.Strategy {
	case StrategyNelderMead, "":
		return newNelderMead(cfg), nil
	case StrategySPSA:
		return newSPSA(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported minimizer strategy: %q", cfg.Strategy)
	}
}
