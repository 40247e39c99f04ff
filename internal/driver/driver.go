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

// Package driver wires the full pipeline: electronic structure, qubit
// mapping, ansatz construction, energy estimation, and classical
// minimization, with every evaluation recorded for later reporting.
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/varqe-dev/varqe/api/v1alpha1"
	"github.com/varqe-dev/varqe/internal/backend"
	"github.com/varqe-dev/varqe/internal/estimator"
	"github.com/varqe-dev/varqe/internal/history"
	"github.com/varqe-dev/varqe/internal/logging"
	"github.com/varqe-dev/varqe/internal/minimizer"
	"github.com/varqe-dev/varqe/internal/reference"
	"github.com/varqe-dev/varqe/internal/report"
	"github.com/varqe-dev/varqe/pkg/chem"
	"github.com/varqe-dev/varqe/pkg/circuit"
	"github.com/varqe-dev/varqe/pkg/fermion"
	"github.com/varqe-dev/varqe/pkg/mapper"
	"github.com/varqe-dev/varqe/pkg/operator"
)

// exactDiagLimit is the qubit count up to which runs also compute the
// dense reference energy.
const exactDiagLimit = 12

// Pipeline runs experiments. Construct with New; the zero value logs
// nowhere and carries no metrics.
type Pipeline struct {
	log     logr.Logger
	metrics *report.Metrics
}

// New builds a pipeline. metrics may be nil.
func New(log logr.Logger, metrics *report.Metrics) *Pipeline {
	return &Pipeline{log: log, metrics: metrics}
}

// RunResult is the outcome of one geometry.
type RunResult struct {
	// RunID uniquely identifies the run in logs and filenames.
	RunID string

	// Molecule and BondLength echo the geometry that was solved.
	Molecule   string
	BondLength float64

	// NumQubits is the size of the mapped problem.
	NumQubits int

	// BestEnergy is the lowest estimated energy, in Hartree.
	BestEnergy float64

	// BestParams is the parameter vector at BestEnergy.
	BestParams []float64

	// ExactEnergy is the dense-diagonalization ground energy, valid
	// only when ExactKnown is set.
	ExactEnergy float64
	ExactKnown  bool

	// Iterations and Evaluations count optimizer work.
	Iterations  int
	Evaluations int

	// Converged reports whether the tolerance was met in budget.
	Converged bool

	// Duration is wall-clock time for the geometry.
	Duration time.Duration

	// Trace is the full convergence history.
	Trace []history.Evaluation
}

// problem is a fully assembled variational problem for one geometry.
type problem struct {
	hamiltonian *operator.Sum
	ansatz      *circuit.Circuit
	numQubits   int
}

// assemble builds the qubit Hamiltonian and ansatz for a bond length.
func assemble(exp *v1alpha1.Experiment, bondLength float64) (*problem, error) {
	mol, err := chem.Diatomic(exp.Spec.Molecule.Symbol, bondLength)
	if err != nil {
		return nil, err
	}
	ints, err := chem.ComputeIntegrals(mol)
	if err != nil {
		return nil, fmt.Errorf("electronic structure for %s at %.4f A: %w", mol.Name, bondLength, err)
	}

	f, err := fermion.MolecularHamiltonian(ints.Core, ints.ERI, ints.NuclearRepulsion)
	if err != nil {
		return nil, err
	}
	nq := 2 * ints.SpatialOrbitals
	h, err := mapper.JordanWigner(f, nq)
	if err != nil {
		return nil, fmt.Errorf("qubit mapping: %w", err)
	}

	ansatz, err := circuit.BuildAnsatz(circuit.AnsatzKind(exp.Spec.Ansatz.Kind), nq, exp.Spec.Ansatz.Reps)
	if err != nil {
		return nil, err
	}
	return &problem{hamiltonian: h, ansatz: ansatz, numQubits: nq}, nil
}

// Run solves the experiment at its configured bond length.
func (p *Pipeline) Run(ctx context.Context, exp *v1alpha1.Experiment) (*RunResult, error) {
	if exp == nil {
		return nil, fmt.Errorf("nil experiment")
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return p.runGeometry(ctx, exp, exp.Spec.Molecule.BondLengthAngstrom, exp.Spec.Minimizer.InitialPoint)
}

func (p *Pipeline) runGeometry(ctx context.Context, exp *v1alpha1.Experiment, bondLength float64, x0 []float64) (*RunResult, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := p.log.WithValues("run", runID, "molecule", exp.Spec.Molecule.Symbol, "bondLength", bondLength)

	prob, err := assemble(exp, bondLength)
	if err != nil {
		return nil, err
	}
	log.V(logging.DEBUG).Info("Assembled problem",
		"qubits", prob.numQubits,
		"hamiltonianTerms", prob.hamiltonian.Len(),
		"ansatzParams", prob.ansatz.NumParams)

	est, err := p.buildEstimator(exp)
	if err != nil {
		return nil, err
	}

	min, err := minimizer.New(minimizer.Config{
		Strategy:      exp.Spec.Minimizer.Strategy,
		MaxIterations: exp.Spec.Minimizer.MaxIterations,
		Tolerance:     exp.Spec.Minimizer.Tolerance,
		Seed:          exp.Spec.Estimator.Seed,
	})
	if err != nil {
		return nil, err
	}

	if len(x0) == 0 {
		x0 = make([]float64, prob.ansatz.NumParams)
	}
	if len(x0) != prob.ansatz.NumParams {
		return nil, fmt.Errorf("initial point has %d parameters, ansatz needs %d",
			len(x0), prob.ansatz.NumParams)
	}

	rec := history.NewRecorder(0)
	objective := func(ctx context.Context, params []float64) (float64, error) {
		bound, err := prob.ansatz.Bind(params)
		if err != nil {
			return 0, err
		}
		e, err := est.Expectation(ctx, bound, prob.hamiltonian)
		if err != nil {
			return 0, err
		}
		log.V(logging.TRACE).Info("Evaluated objective", "energy", e)
		return e, nil
	}

	res, err := min.Minimize(ctx, objective, x0, rec)
	if err != nil {
		return nil, err
	}

	out := &RunResult{
		RunID:       runID,
		Molecule:    exp.Spec.Molecule.Symbol + "2",
		BondLength:  bondLength,
		NumQubits:   prob.numQubits,
		BestEnergy:  res.BestEnergy,
		BestParams:  res.BestParams,
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		Converged:   res.Converged,
		Trace:       rec.Evaluations(),
	}

	if prob.numQubits <= exactDiagLimit {
		exact, err := reference.GroundEnergy(prob.hamiltonian)
		if err != nil {
			return nil, fmt.Errorf("reference diagonalization: %w", err)
		}
		out.ExactEnergy = exact
		out.ExactKnown = true
	}

	out.Duration = time.Since(started)
	if p.metrics != nil {
		p.metrics.BestEnergy.Set(out.BestEnergy)
		p.metrics.ObserveRun(out.Converged)
	}
	log.Info("Run finished",
		"bestEnergy", out.BestEnergy,
		"converged", out.Converged,
		"evaluations", out.Evaluations,
		"duration", out.Duration.String())
	return out, nil
}

// Exact computes only the dense reference energy for the experiment's
// geometry, without any optimization.
func (p *Pipeline) Exact(ctx context.Context, exp *v1alpha1.Experiment) (float64, error) {
	if exp == nil {
		return 0, fmt.Errorf("nil experiment")
	}
	if err := exp.Validate(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prob, err := assemble(exp, exp.Spec.Molecule.BondLengthAngstrom)
	if err != nil {
		return 0, err
	}
	return reference.GroundEnergy(prob.hamiltonian)
}

func (p *Pipeline) buildEstimator(exp *v1alpha1.Experiment) (estimator.Estimator, error) {
	sim := backend.NewSimulator(exp.Spec.Estimator.Seed)
	opts := []estimator.Option{estimator.WithShots(exp.Spec.Estimator.Shots)}
	if p.metrics != nil {
		opts = append(opts, estimator.WithEvaluationCounter(p.metrics.Evaluations))
	}
	return estimator.New(exp.Spec.Estimator.Strategy, sim, opts...)
}
