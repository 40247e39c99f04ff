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

// Package estimator turns a bound circuit and a Pauli observable into an
// energy estimate. The exact strategy contracts the simulated statevector
// with the observable; the sampling strategy emulates hardware by drawing
// shots from measurement circuits, one per qubit-wise commuting group.
package estimator

import (
	"context"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/varqe-dev/varqe/internal/backend"
	"github.com/varqe-dev/varqe/pkg/circuit"
	"github.com/varqe-dev/varqe/pkg/operator"
)

// Strategies accepted by New.
const (
	StrategyExact    = "exact"
	StrategySampling = "sampling"
)

// hermTol bounds both the Hermiticity check on observables and the
// imaginary residue tolerated in an exact expectation value.
const hermTol = 1e-9

// Estimator produces the expectation value of a Hermitian observable in
// the state prepared by a fully bound circuit.
type Estimator interface {
	Name() string
	Expectation(ctx context.Context, bound *circuit.Circuit, obs *operator.Sum) (float64, error)
}

// Option tweaks estimator construction.
type Option func(*options)

type options struct {
	shots       int
	evalCounter prometheus.Counter
}

// WithShots sets the shot budget per measurement circuit for the sampling
// strategy. The exact strategy ignores it.
func WithShots(shots int) Option {
	return func(o *options) { o.shots = shots }
}

// WithEvaluationCounter registers a counter incremented once per
// Expectation call.
func WithEvaluationCounter(c prometheus.Counter) Option {
	return func(o *options) { o.evalCounter = c }
}

// New builds an estimator for the named strategy on the given backend.
func New(strategy string, b backend.Backend, opts ...Option) (Estimator, error) {
	o := options{shots: 4096}
	for _, opt := range opts {
		opt(&o)
	}
	switch strategy {
	case StrategyExact:
		return &exactEstimator{backend: b, evalCounter: o.evalCounter}, nil
	case StrategySampling:
		if o.shots <= 0 {
			return nil, fmt.Errorf("sampling estimator needs a positive shot count, got %d", o.shots)
		}
		return &samplingEstimator{backend: b, shots: o.shots, evalCounter: o.evalCounter}, nil
	default:
		return nil, fmt.Errorf("unknown estimator strategy %q", strategy)
	}
}

func checkInputs(bound *circuit.Circuit, obs *operator.Sum) error {
	if bound == nil || obs == nil {
		return fmt.Errorf("nil circuit or observable")
	}
	if bound.NumQubits != obs.NumQubits() {
		return fmt.Errorf("circuit acts on %d qubits but observable on %d",
			bound.NumQubits, obs.NumQubits())
	}
	if !obs.IsHermitian(hermTol) {
		return fmt.Errorf("observable is not Hermitian")
	}
	return nil
}

// exactEstimator contracts <psi|H|psi> against the simulated statevector.
type exactEstimator struct {
	backend     backend.Backend
	evalCounter prometheus.Counter
}

func (e *exactEstimator) Name() string { return StrategyExact }

func (e *exactEstimator) Expectation(ctx context.Context, bound *circuit.Circuit, obs *operator.Sum) (float64, error) {
	if err := checkInputs(bound, obs); err != nil {
		return 0, err
	}
	psi, err := e.backend.Statevector(ctx, bound)
	if err != nil {
		return 0, err
	}
	ev, err := obs.Expectation(psi)
	if err != nil {
		return 0, err
	}
	if math.Abs(imag(ev)) > hermTol {
		return 0, fmt.Errorf("expectation has imaginary residue %g", imag(ev))
	}
	if e.evalCounter != nil {
		e.evalCounter.Inc()
	}
	return real(ev), nil
}

// samplingEstimator measures each qubit-wise commuting group of the
// observable with a finite shot budget and combines parity-weighted
// frequencies.
type samplingEstimator struct {
	backend     backend.Backend
	shots       int
	evalCounter prometheus.Counter
}

func (e *samplingEstimator) Name() string { return StrategySampling }

func (e *samplingEstimator) Expectation(ctx context.Context, bound *circuit.Circuit, obs *operator.Sum) (float64, error) {
	if err := checkInputs(bound, obs); err != nil {
		return 0, err
	}

	var energy float64
	for _, g := range operator.GroupQubitWise(obs) {
		if allIdentity(g.Basis) {
			for _, t := range g.Terms {
				energy += real(t.Coeff)
			}
			continue
		}

		mc := measurementCircuit(bound, g.Basis)
		counts, err := e.backend.Sample(ctx, mc, e.shots)
		if err != nil {
			return 0, err
		}
		total := counts.Shots()
		if total == 0 {
			return 0, fmt.Errorf("backend returned no shots")
		}

		for _, t := range g.Terms {
			if t.IsIdentity() {
				energy += real(t.Coeff)
				continue
			}
			ev, err := parityExpectation(counts, supportMask(t), total)
			if err != nil {
				return 0, err
			}
			energy += real(t.Coeff) * ev
		}
	}

	if e.evalCounter != nil {
		e.evalCounter.Inc()
	}
	return energy, nil
}

func allIdentity(basis []operator.Pauli) bool {
	for _, p := range basis {
		if p != operator.I {
			return false
		}
	}
	return true
}

// supportMask marks the qubits a term acts on non-trivially.
func supportMask(t operator.Term) uint64 {
	var mask uint64
	for q, p := range t.Ops {
		if p != operator.I {
			mask |= 1 << q
		}
	}
	return mask
}

// measurementCircuit appends the basis change that maps each measured
// Pauli onto Z: H for X, S-dagger then H for Y.
func measurementCircuit(bound *circuit.Circuit, basis []operator.Pauli) *circuit.Circuit {
	mc := circuit.New(bound.NumQubits)
	mc.NumParams = bound.NumParams
	mc.Instructions = append(mc.Instructions, bound.Instructions...)
	for q, p := range basis {
		switch p {
		case operator.X:
			mc.H(q)
		case operator.Y:
			mc.Sdg(q)
			mc.H(q)
		}
	}
	return mc
}

// parityExpectation averages (-1)^parity over the sampled bitstrings,
// restricted to the term's support.
func parityExpectation(counts backend.Counts, mask uint64, total int) (float64, error) {
	var sum float64
	for key, n := range counts {
		parity, err := backend.ParityBit(key, mask)
		if err != nil {
			return 0, err
		}
		sum += float64(1-2*parity) * float64(n)
	}
	return sum / float64(total), nil
}
