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

package e2e

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/varqe-dev/varqe/api/v1alpha1"
	"github.com/varqe-dev/varqe/internal/driver"
	"github.com/varqe-dev/varqe/internal/logging"
	"github.com/varqe-dev/varqe/internal/report"
)

const h2Document = `
apiVersion: varqe.dev/v1alpha1
kind: Experiment
metadata:
  name: h2-e2e
spec:
  molecule:
    symbol: H
    bondLengthAngstrom: 0.7414
  ansatz:
    kind: ucc-doubles
  estimator:
    strategy: exact
  minimizer:
    strategy: nelder-mead
    maxIterations: 300
    tolerance: 1.0e-8
`

var _ = Describe("H2 ground state", func() {
	var pipeline *driver.Pipeline

	BeforeEach(func() {
		pipeline = driver.New(logging.Logger(), nil)
	})

	loadExperiment := func() *v1alpha1.Experiment {
		path := filepath.Join(GinkgoT().TempDir(), "h2.yaml")
		Expect(os.WriteFile(path, []byte(h2Document), 0o644)).To(Succeed())
		exp, err := v1alpha1.Load(path)
		Expect(err).NotTo(HaveOccurred())
		return exp
	}

	It("reaches the full CI energy at the experimental geometry", func() {
		res, err := pipeline.Run(context.Background(), loadExperiment())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.ExactKnown).To(BeTrue())
		Expect(res.ExactEnergy).To(BeNumerically("~", -1.1373, 1e-3))
		Expect(res.BestEnergy).To(BeNumerically("~", res.ExactEnergy, 1e-6))
		Expect(res.Converged).To(BeTrue())
	})

	It("improves monotonically in the recorded best energy", func() {
		res, err := pipeline.Run(context.Background(), loadExperiment())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Trace).NotTo(BeEmpty())
		for i := 1; i < len(res.Trace); i++ {
			Expect(res.Trace[i].Best).To(BeNumerically("<=", res.Trace[i-1].Best))
		}
	})

	It("writes a trace and a convergence plot", func() {
		res, err := pipeline.Run(context.Background(), loadExperiment())
		Expect(err).NotTo(HaveOccurred())

		dir := GinkgoT().TempDir()
		csvPath := filepath.Join(dir, "trace.csv")
		f, err := os.Create(csvPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.WriteCSV(f, res.Trace)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		pngPath := filepath.Join(dir, "convergence.png")
		exact := res.ExactEnergy
		Expect(report.SaveConvergencePlot(pngPath, "h2", res.Trace, &exact)).To(Succeed())

		Expect(csvPath).To(BeARegularFile())
		Expect(pngPath).To(BeARegularFile())
	})

	It("recovers the same ground state from sampled measurements", func() {
		exp := loadExperiment()
		exp.Spec.Estimator.Strategy = "sampling"
		exp.Spec.Estimator.Shots = 8192
		exp.Spec.Estimator.Seed = 17
		exp.Spec.Minimizer.Strategy = "spsa"
		exp.Spec.Minimizer.MaxIterations = 150

		res, err := pipeline.Run(context.Background(), exp)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.BestEnergy).To(BeNumerically("~", res.ExactEnergy, 0.05))
	})

	It("traces a dissociation curve with its minimum near equilibrium", func() {
		exp := loadExperiment()
		exp.Spec.Scan = &v1alpha1.ScanSpec{StartAngstrom: 0.4, StopAngstrom: 1.6, Points: 7}

		scan, err := pipeline.Scan(context.Background(), exp)
		Expect(err).NotTo(HaveOccurred())
		Expect(scan.Lengths).To(HaveLen(7))

		minIdx := 0
		for i, e := range scan.Energies {
			if e < scan.Energies[minIdx] {
				minIdx = i
			}
		}
		Expect(scan.Lengths[minIdx]).To(BeNumerically("~", 0.8, 0.21))

		for i := range scan.Energies {
			Expect(scan.Energies[i]).To(BeNumerically("~", scan.ExactEnergies[i], 1e-5))
		}
	})
})
