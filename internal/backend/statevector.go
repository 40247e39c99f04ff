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

package backend

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"sync"

	"github.com/varqe-dev/varqe/pkg/circuit"
)

// DefaultMaxQubits bounds the simulator register; a statevector at this size
// takes 2^24 complex amplitudes (256 MiB).
const DefaultMaxQubits = 24

// Simulator is a dense statevector simulator. It is safe for concurrent use;
// sampling draws from a seeded source guarded by a mutex so that runs with a
// fixed seed are reproducible.
type Simulator struct {
	maxQubits int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a simulator whose sampling stream is seeded with seed.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{
		maxQubits: DefaultMaxQubits,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Name implements Backend.
func (s *Simulator) Name() string { return "statevector" }

// MaxQubits implements Backend.
func (s *Simulator) MaxQubits() int { return s.maxQubits }

// Statevector implements Backend.
func (s *Simulator) Statevector(ctx context.Context, c *circuit.Circuit) ([]complex128, error) {
	if err := s.check(c); err != nil {
		return nil, err
	}
	state := make([]complex128, 1<<uint(c.NumQubits))
	state[0] = 1
	for i, in := range c.Instructions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := apply(state, in); err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", i, in.Gate, err)
		}
	}
	return state, nil
}

// Sample implements Backend.
func (s *Simulator) Sample(ctx context.Context, c *circuit.Circuit, shots int) (Counts, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}
	state, err := s.Statevector(ctx, c)
	if err != nil {
		return nil, err
	}

	// Cumulative distribution over basis states.
	cdf := make([]float64, len(state))
	acc := 0.0
	for i, amp := range state {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		acc += p
		cdf[i] = acc
	}
	if math.Abs(acc-1) > 1e-9 {
		return nil, fmt.Errorf("statevector norm deviates from 1 by %.3e", math.Abs(acc-1))
	}

	counts := make(Counts)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < shots; i++ {
		r := s.rng.Float64() * acc
		idx := sort.SearchFloat64s(cdf, r)
		if idx >= len(state) {
			idx = len(state) - 1
		}
		counts[BitstringKey(uint64(idx), c.NumQubits)]++
	}
	return counts, nil
}

func (s *Simulator) check(c *circuit.Circuit) error {
	if c.NumQubits < 1 || c.NumQubits > s.maxQubits {
		return fmt.Errorf("qubit count %d outside supported range [1,%d]", c.NumQubits, s.maxQubits)
	}
	for _, in := range c.Instructions {
		if in.Parameterized() {
			return ErrUnboundCircuit
		}
	}
	return c.Validate()
}

// apply mutates state in place according to the instruction. Gate kernels
// follow the usual bit-pairing scheme: for a target bit t, amplitudes are
// updated in (i, i|t) pairs over indices with the t bit clear.
func apply(state []complex128, in circuit.Instruction) error {
	n := len(state)
	bit := 1 << uint(in.Target)

	switch in.Gate {
	case circuit.GateH:
		inv := complex(1/math.Sqrt2, 0)
		for i := 0; i < n; i++ {
			if i&bit == 0 {
				j := i | bit
				a, b := state[i], state[j]
				state[i] = inv * (a + b)
				state[j] = inv * (a - b)
			}
		}
	case circuit.GateX:
		for i := 0; i < n; i++ {
			if i&bit == 0 {
				j := i | bit
				state[i], state[j] = state[j], state[i]
			}
		}
	case circuit.GateY:
		for i := 0; i < n; i++ {
			if i&bit == 0 {
				j := i | bit
				state[i], state[j] = -1i*state[j], 1i*state[i]
			}
		}
	case circuit.GateZ:
		for i := 0; i < n; i++ {
			if i&bit != 0 {
				state[i] = -state[i]
			}
		}
	case circuit.GateS:
		for i := 0; i < n; i++ {
			if i&bit != 0 {
				state[i] *= 1i
			}
		}
	case circuit.GateSdg:
		for i := 0; i < n; i++ {
			if i&bit != 0 {
				state[i] *= -1i
			}
		}
	case circuit.GateRX:
		cos := complex(math.Cos(in.Angle/2), 0)
		isin := complex(0, -math.Sin(in.Angle/2))
		for i := 0; i < n; i++ {
			if i&bit == 0 {
				j := i | bit
				a, b := state[i], state[j]
				state[i] = cos*a + isin*b
				state[j] = isin*a + cos*b
			}
		}
	case circuit.GateRY:
		cos := complex(math.Cos(in.Angle/2), 0)
		sin := complex(math.Sin(in.Angle/2), 0)
		for i := 0; i < n; i++ {
			if i&bit == 0 {
				j := i | bit
				a, b := state[i], state[j]
				state[i] = cos*a - sin*b
				state[j] = sin*a + cos*b
			}
		}
	case circuit.GateRZ:
		phase := cmplx.Exp(complex(0, in.Angle/2))
		conj := cmplx.Conj(phase)
		for i := 0; i < n; i++ {
			if i&bit != 0 {
				state[i] *= phase
			} else {
				state[i] *= conj
			}
		}
	case circuit.GateCX:
		cbit := 1 << uint(in.Control)
		for i := 0; i < n; i++ {
			if i&cbit != 0 && i&bit == 0 {
				j := i | bit
				state[i], state[j] = state[j], state[i]
			}
		}
	case circuit.GateCZ:
		cbit := 1 << uint(in.Control)
		for i := 0; i < n; i++ {
			if i&cbit != 0 && i&bit != 0 {
				state[i] = -state[i]
			}
		}
	default:
		return fmt.Errorf("unsupported gate %q", in.Gate)
	}
	return nil
}
