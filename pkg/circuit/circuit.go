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

// Package circuit provides a gate-model representation of parameterized
// quantum circuits and the variational ansatz builders used by the solver.
//
// A Circuit is an ordered list of instructions over a fixed qubit register.
// Rotation angles may be bound to free parameters by index; Bind resolves
// them against a concrete parameter vector before execution on a backend.
package circuit

import (
	"fmt"

	"github.com/varqe-dev/varqe/pkg/operator"
)

// Gate identifies a gate type.
type Gate int

const (
	GateH Gate = iota
	GateX
	GateY
	GateZ
	GateS
	GateSdg
	GateRX
	GateRY
	GateRZ
	GateCX
	GateCZ
)

// String returns the conventional lower-case gate mnemonic.
func (g Gate) String() string {
	switch g {
	case GateH:
		return "h"
	case GateX:
		return "x"
	case GateY:
		return "y"
	case GateZ:
		return "z"
	case GateS:
		return "s"
	case GateSdg:
		return "sdg"
	case GateRX:
		return "rx"
	case GateRY:
		return "ry"
	case GateRZ:
		return "rz"
	case GateCX:
		return "cx"
	case GateCZ:
		return "cz"
	}
	return fmt.Sprintf("gate(%d)", int(g))
}

// noParam marks an instruction whose angle is fixed (or absent).
const noParam = -1

// Instruction is a single gate application. Control is -1 for single-qubit
// gates. For rotation gates, Param >= 0 selects a free parameter by index
// and Angle is then an additive offset; otherwise Angle is the full angle.
type Instruction struct {
	Gate    Gate
	Target  int
	Control int
	Angle   float64
	Param   int
}

// Parameterized reports whether the instruction references a free parameter.
func (in Instruction) Parameterized() bool { return in.Param != noParam }

// Circuit is an ordered gate sequence over NumQubits qubits with NumParams
// free rotation parameters.
type Circuit struct {
	NumQubits    int
	NumParams    int
	Instructions []Instruction
}

// New creates an empty circuit on nq qubits.
func New(nq int) *Circuit {
	return &Circuit{NumQubits: nq}
}

func (c *Circuit) add(in Instruction) *Circuit {
	c.Instructions = append(c.Instructions, in)
	return c
}

// H appends a Hadamard on qubit q.
func (c *Circuit) H(q int) *Circuit { return c.add(Instruction{Gate: GateH, Target: q, Control: -1, Param: noParam}) }

// X appends a Pauli-X on qubit q.
func (c *Circuit) X(q int) *Circuit { return c.add(Instruction{Gate: GateX, Target: q, Control: -1, Param: noParam}) }

// Y appends a Pauli-Y on qubit q.
func (c *Circuit) Y(q int) *Circuit { return c.add(Instruction{Gate: GateY, Target: q, Control: -1, Param: noParam}) }

// Z appends a Pauli-Z on qubit q.
func (c *Circuit) Z(q int) *Circuit { return c.add(Instruction{Gate: GateZ, Target: q, Control: -1, Param: noParam}) }

// S appends the phase gate on qubit q.
func (c *Circuit) S(q int) *Circuit { return c.add(Instruction{Gate: GateS, Target: q, Control: -1, Param: noParam}) }

// Sdg appends the inverse phase gate on qubit q.
func (c *Circuit) Sdg(q int) *Circuit {
	return c.add(Instruction{Gate: GateSdg, Target: q, Control: -1, Param: noParam})
}

// RX appends a fixed-angle X rotation.
func (c *Circuit) RX(q int, angle float64) *Circuit {
	return c.add(Instruction{Gate: GateRX, Target: q, Control: -1, Angle: angle, Param: noParam})
}

// RY appends a fixed-angle Y rotation.
func (c *Circuit) RY(q int, angle float64) *Circuit {
	return c.add(Instruction{Gate: GateRY, Target: q, Control: -1, Angle: angle, Param: noParam})
}

// RZ appends a fixed-angle Z rotation.
func (c *Circuit) RZ(q int, angle float64) *Circuit {
	return c.add(Instruction{Gate: GateRZ, Target: q, Control: -1, Angle: angle, Param: noParam})
}

// RYParam appends a Y rotation bound to free parameter p.
func (c *Circuit) RYParam(q, p int) *Circuit {
	c.trackParam(p)
	return c.add(Instruction{Gate: GateRY, Target: q, Control: -1, Param: p})
}

// RZParam appends a Z rotation bound to free parameter p.
func (c *Circuit) RZParam(q, p int) *Circuit {
	c.trackParam(p)
	return c.add(Instruction{Gate: GateRZ, Target: q, Control: -1, Param: p})
}

// CX appends a controlled-X with the given control and target.
func (c *Circuit) CX(control, target int) *Circuit {
	return c.add(Instruction{Gate: GateCX, Target: target, Control: control, Param: noParam})
}

// CZ appends a controlled-Z between two qubits.
func (c *Circuit) CZ(control, target int) *Circuit {
	return c.add(Instruction{Gate: GateCZ, Target: target, Control: control, Param: noParam})
}

func (c *Circuit) trackParam(p int) {
	if p+1 > c.NumParams {
		c.NumParams = p + 1
	}
}

// Bind resolves all free parameters against params and returns a concrete
// circuit sharing no instruction state with the receiver.
func (c *Circuit) Bind(params []float64) (*Circuit, error) {
	if len(params) != c.NumParams {
		return nil, fmt.Errorf("bound %d parameters, circuit expects %d", len(params), c.NumParams)
	}
	out := &Circuit{NumQubits: c.NumQubits, Instructions: make([]Instruction, len(c.Instructions))}
	for i, in := range c.Instructions {
		if in.Parameterized() {
			in.Angle += params[in.Param]
			in.Param = noParam
		}
		out.Instructions[i] = in
	}
	return out, nil
}

// Validate checks qubit indices against the register size.
func (c *Circuit) Validate() error {
	for i, in := range c.Instructions {
		if in.Target < 0 || in.Target >= c.NumQubits {
			return fmt.Errorf("instruction %d: target qubit %d out of range [0,%d)", i, in.Target, c.NumQubits)
		}
		if in.Control != -1 {
			if in.Control < 0 || in.Control >= c.NumQubits {
				return fmt.Errorf("instruction %d: control qubit %d out of range [0,%d)", i, in.Control, c.NumQubits)
			}
			if in.Control == in.Target {
				return fmt.Errorf("instruction %d: control equals target (%d)", i, in.Target)
			}
		}
	}
	return nil
}

// PauliEvolution appends gates implementing exp(-i*theta/2 * P) for the Pauli
// string of term, with theta bound to free parameter p. The standard
// construction rotates each support qubit into the Z basis, entangles the
// support with a CX chain, applies RZ on the last support qubit and
// uncomputes.
func (c *Circuit) PauliEvolution(term operator.Term, p int) error {
	if term.NumQubits() != c.NumQubits {
		return fmt.Errorf("term on %d qubits applied to %d-qubit circuit", term.NumQubits(), c.NumQubits)
	}
	support := make([]int, 0, term.NumQubits())
	for q, op := range term.Ops {
		if op != operator.I {
			support = append(support, q)
		}
	}
	if len(support) == 0 {
		// exp(-i*theta/2 * I) is a global phase.
		return nil
	}

	basisIn := func(q int, op operator.Pauli) {
		switch op {
		case operator.X:
			c.H(q)
		case operator.Y:
			c.Sdg(q)
			c.H(q)
		}
	}
	basisOut := func(q int, op operator.Pauli) {
		switch op {
		case operator.X:
			c.H(q)
		case operator.Y:
			c.H(q)
			c.S(q)
		}
	}

	for _, q := range support {
		basisIn(q, term.Ops[q])
	}
	for i := 0; i+1 < len(support); i++ {
		c.CX(support[i], support[i+1])
	}
	last := support[len(support)-1]
	c.RZParam(last, p)
	for i := len(support) - 2; i >= 0; i-- {
		c.CX(support[i], support[i+1])
	}
	for _, q := range support {
		basisOut(q, term.Ops[q])
	}
	return nil
}
