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

// Package history records the convergence trace of an optimization run:
// one entry per objective evaluation, with the running best energy.
package history

import (
	"math"
	"sync"
	"time"
)

// Evaluation is a single objective evaluation.
type Evaluation struct {
	// Index is the zero-based position of this evaluation in the run.
	Index int `json:"index"`

	// Params is the parameter vector the objective was evaluated at.
	Params []float64 `json:"params"`

	// Energy is the estimated energy at Params.
	Energy float64 `json:"energy"`

	// Best is the lowest energy seen up to and including this evaluation.
	Best float64 `json:"best"`

	// Timestamp is when the evaluation completed.
	Timestamp time.Time `json:"timestamp"`
}

// Recorder accumulates evaluations in order. It is safe for concurrent
// use; optimizers that evaluate candidates in parallel share one recorder.
type Recorder struct {
	mu        sync.Mutex
	evals     []Evaluation
	best      Evaluation
	hasBest   bool
	maxPoints int
}

// NewRecorder creates an empty recorder. maxPoints bounds the stored
// trace (0 = unlimited); when the bound is hit the oldest entries are
// dropped, but the running best is kept exact.
func NewRecorder(maxPoints int) *Recorder {
	return &Recorder{
		best:      Evaluation{Energy: math.Inf(1)},
		maxPoints: maxPoints,
	}
}

// Record appends an evaluation and returns the stored entry. The params
// slice is copied, so callers may reuse their scratch buffer.
func (r *Recorder) Record(params []float64, energy float64) Evaluation {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev := Evaluation{
		Index:     r.nextIndex(),
		Params:    append([]float64(nil), params...),
		Energy:    energy,
		Timestamp: time.Now(),
	}
	if energy < r.best.Energy {
		r.best = ev
		r.best.Best = energy
		r.hasBest = true
	}
	ev.Best = r.best.Energy
	r.evals = append(r.evals, ev)
	if r.maxPoints > 0 && len(r.evals) > r.maxPoints {
		r.evals = r.evals[len(r.evals)-r.maxPoints:]
	}
	return ev
}

func (r *Recorder) nextIndex() int {
	if len(r.evals) == 0 {
		return 0
	}
	return r.evals[len(r.evals)-1].Index + 1
}

// Len returns the number of evaluations recorded so far, counting any
// entries dropped by the maxPoints bound.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.evals) == 0 {
		return 0
	}
	return r.evals[len(r.evals)-1].Index + 1
}

// Evaluations returns a copy of the stored trace in evaluation order.
func (r *Recorder) Evaluations() []Evaluation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Evaluation, len(r.evals))
	copy(out, r.evals)
	return out
}

// Latest returns the most recent evaluation, or false if none exist.
func (r *Recorder) Latest() (Evaluation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.evals) == 0 {
		return Evaluation{}, false
	}
	return r.evals[len(r.evals)-1], true
}

// Best returns the lowest-energy evaluation seen so far, or false if
// nothing has been recorded. The entry survives even if the trace bound
// has dropped it.
func (r *Recorder) Best() (Evaluation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.best, r.hasBest
}

// BestSeries returns the running-best energy per evaluation, which is
// non-increasing by construction.
func (r *Recorder) BestSeries() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.evals))
	for i, ev := range r.evals {
		out[i] = ev.Best
	}
	return out
}
