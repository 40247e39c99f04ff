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

// Package v1alpha1 defines the versioned experiment document, the YAML
// file users hand to the CLI to describe a run.
package v1alpha1

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// APIVersion identifies this schema revision.
	APIVersion = "varqe.dev/v1alpha1"

	// KindExperiment is the only document kind this version defines.
	KindExperiment = "Experiment"
)

// Experiment is a complete run description: the molecule, the ansatz,
// how energies are estimated, and how parameters are optimized.
type Experiment struct {
	// APIVersion must equal "varqe.dev/v1alpha1".
	APIVersion string `yaml:"apiVersion" json:"apiVersion"`

	// Kind must equal "Experiment".
	Kind string `yaml:"kind" json:"kind"`

	// Metadata names the experiment for reports and metric labels.
	Metadata Metadata `yaml:"metadata" json:"metadata"`

	// Spec holds the run parameters.
	Spec ExperimentSpec `yaml:"spec" json:"spec"`
}

// Metadata carries identifying information.
type Metadata struct {
	// Name is a short identifier, used in filenames and logs.
	Name string `yaml:"name" json:"name"`
}

// ExperimentSpec defines the desired run.
type ExperimentSpec struct {
	// Molecule selects the physical system.
	Molecule MoleculeSpec `yaml:"molecule" json:"molecule"`

	// Ansatz selects the parameterized circuit family.
	Ansatz AnsatzSpec `yaml:"ansatz" json:"ansatz"`

	// Estimator configures energy estimation.
	Estimator EstimatorSpec `yaml:"estimator" json:"estimator"`

	// Minimizer configures the classical optimizer.
	Minimizer MinimizerSpec `yaml:"minimizer" json:"minimizer"`

	// Scan, when present, sweeps the bond length instead of running a
	// single geometry.
	Scan *ScanSpec `yaml:"scan,omitempty" json:"scan,omitempty"`
}

// MoleculeSpec describes a homonuclear diatomic.
type MoleculeSpec struct {
	// Symbol is the element symbol, e.g. "H".
	Symbol string `yaml:"symbol" json:"symbol"`

	// BondLengthAngstrom is the internuclear distance.
	BondLengthAngstrom float64 `yaml:"bondLengthAngstrom" json:"bondLengthAngstrom"`
}

// AnsatzSpec selects and sizes the circuit family.
type AnsatzSpec struct {
	// Kind is "ucc-doubles" or "two-local".
	Kind string `yaml:"kind" json:"kind"`

	// Reps is the layer count for ansatz kinds that repeat, ignored
	// otherwise.
	Reps int `yaml:"reps,omitempty" json:"reps,omitempty"`
}

// EstimatorSpec configures expectation-value estimation.
type EstimatorSpec struct {
	// Strategy is "exact" or "sampling".
	Strategy string `yaml:"strategy" json:"strategy"`

	// Shots is the per-circuit measurement budget for the sampling
	// strategy.
	Shots int `yaml:"shots,omitempty" json:"shots,omitempty"`

	// Seed makes sampling runs reproducible.
	Seed int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// MinimizerSpec configures the classical optimizer.
type MinimizerSpec struct {
	// Strategy is "nelder-mead" or "spsa".
	Strategy string `yaml:"strategy" json:"strategy"`

	// MaxIterations bounds optimizer iterations.
	MaxIterations int `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`

	// Tolerance is the absolute convergence threshold on the objective.
	Tolerance float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`

	// InitialPoint seeds the parameter vector. When omitted the run
	// starts from all zeros, which for the UCC ansatz is the
	// Hartree-Fock state.
	InitialPoint []float64 `yaml:"initialPoint,omitempty" json:"initialPoint,omitempty"`
}

// ScanSpec sweeps bond lengths to trace a dissociation curve.
type ScanSpec struct {
	// StartAngstrom is the first bond length.
	StartAngstrom float64 `yaml:"startAngstrom" json:"startAngstrom"`

	// StopAngstrom is the last bond length, inclusive.
	StopAngstrom float64 `yaml:"stopAngstrom" json:"stopAngstrom"`

	// Points is the number of geometries, at least 2.
	Points int `yaml:"points" json:"points"`
}

// Load reads and validates an experiment document, applying defaults.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults, and validates an experiment document.
func Parse(data []byte) (*Experiment, error) {
	var e Experiment
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parsing experiment: %w", err)
	}
	e.ApplyDefaults()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// ApplyDefaults fills optional fields with working values.
func (e *Experiment) ApplyDefaults() {
	if e.Spec.Ansatz.Kind == "" {
		e.Spec.Ansatz.Kind = "ucc-doubles"
	}
	if e.Spec.Ansatz.Reps <= 0 {
		e.Spec.Ansatz.Reps = 1
	}
	if e.Spec.Estimator.Strategy == "" {
		e.Spec.Estimator.Strategy = "exact"
	}
	if e.Spec.Estimator.Shots <= 0 {
		e.Spec.Estimator.Shots = 4096
	}
	if e.Spec.Minimizer.Strategy == "" {
		e.Spec.Minimizer.Strategy = "nelder-mead"
	}
	if e.Spec.Minimizer.MaxIterations <= 0 {
		e.Spec.Minimizer.MaxIterations = 200
	}
	if e.Spec.Minimizer.Tolerance <= 0 {
		e.Spec.Minimizer.Tolerance = 1e-6
	}
}

// Validate checks the document for structural errors. It does not touch
// the filesystem or build any circuits.
func (e *Experiment) Validate() error {
	if e.APIVersion != APIVersion {
		return fmt.Errorf("unsupported apiVersion %q, want %q", e.APIVersion, APIVersion)
	}
	if e.Kind != KindExperiment {
		return fmt.Errorf("unsupported kind %q, want %q", e.Kind, KindExperiment)
	}
	if e.Metadata.Name == "" {
		return fmt.Errorf("metadata.name must not be empty")
	}
	if e.Spec.Molecule.Symbol == "" {
		return fmt.Errorf("spec.molecule.symbol must not be empty")
	}
	if e.Spec.Molecule.BondLengthAngstrom <= 0 && e.Spec.Scan == nil {
		return fmt.Errorf("spec.molecule.bondLengthAngstrom must be positive, got %g",
			e.Spec.Molecule.BondLengthAngstrom)
	}
	switch e.Spec.Ansatz.Kind {
	case "ucc-doubles", "two-local":
	default:
		return fmt.Errorf("spec.ansatz.kind must be ucc-doubles or two-local, got %q", e.Spec.Ansatz.Kind)
	}
	switch e.Spec.Estimator.Strategy {
	case "exact", "sampling":
	default:
		return fmt.Errorf("spec.estimator.strategy must be exact or sampling, got %q", e.Spec.Estimator.Strategy)
	}
	switch e.Spec.Minimizer.Strategy {
	case "nelder-mead", "spsa":
	default:
		return fmt.Errorf("spec.minimizer.strategy must be nelder-mead or spsa, got %q", e.Spec.Minimizer.Strategy)
	}
	if s := e.Spec.Scan; s != nil {
		if s.Points < 2 {
			return fmt.Errorf("spec.scan.points must be at least 2, got %d", s.Points)
		}
		if s.StartAngstrom <= 0 || s.StopAngstrom <= s.StartAngstrom {
			return fmt.Errorf("spec.scan range must satisfy 0 < start < stop, got [%g, %g]",
				s.StartAngstrom, s.StopAngstrom)
		}
	}
	return nil
}
