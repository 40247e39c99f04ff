package chem

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// Reference values for H2 in STO-3G at R = 1.4 bohr are from Szabo and
// Ostlund, "Modern Quantum Chemistry", section 3.5.2.
var _ = Describe("ComputeIntegrals", func() {

	h2At := func(bohr float64) Molecule {
		mol, err := Diatomic("H", bohr/BohrPerAngstrom)
		Expect(err).NotTo(HaveOccurred())
		return mol
	}

	Context("for H2 at 1.4 bohr", func() {
		var (
			mol   Molecule
			basis []basisFunction
		)

		BeforeEach(func() {
			mol = h2At(1.4)
			var err error
			basis, err = minimalBasis(mol)
			Expect(err).NotTo(HaveOccurred())
		})

		It("normalizes the contracted functions", func() {
			Expect(overlapAO(basis[0], basis[0])).To(BeNumerically("~", 1.0, 1e-10))
			Expect(overlapAO(basis[1], basis[1])).To(BeNumerically("~", 1.0, 1e-10))
		})

		It("reproduces the textbook overlap", func() {
			Expect(overlapAO(basis[0], basis[1])).To(BeNumerically("~", 0.6593, 1e-3))
		})

		It("reproduces the textbook kinetic energy", func() {
			Expect(kineticAO(basis[0], basis[0])).To(BeNumerically("~", 0.7600, 1e-3))
		})

		It("reproduces the textbook core Hamiltonian diagonal", func() {
			h11 := kineticAO(basis[0], basis[0]) + nuclearAO(basis[0], basis[0], mol)
			Expect(h11).To(BeNumerically("~", -1.1204, 1e-3))
		})

		It("reproduces the textbook on-site repulsion", func() {
			Expect(eriAO(basis[0], basis[0], basis[0], basis[0])).To(BeNumerically("~", 0.7746, 1e-3))
		})

		It("produces the bonding orbital core energy", func() {
			ints, err := ComputeIntegrals(mol)
			Expect(err).NotTo(HaveOccurred())
			Expect(ints.Core[0][0]).To(BeNumerically("~", -1.2528, 1e-3))
		})

		It("leaves the core Hamiltonian diagonal in the MO basis", func() {
			// Symmetry-adapted orbitals diagonalize any symmetric
			// one-electron operator of a homonuclear diatomic.
			ints, err := ComputeIntegrals(mol)
			Expect(err).NotTo(HaveOccurred())
			Expect(ints.Core[0][1]).To(BeNumerically("~", 0.0, 1e-10))
			Expect(ints.Core[1][0]).To(BeNumerically("~", 0.0, 1e-10))
		})

		It("keeps the ERI tensor eightfold symmetric", func() {
			ints, err := ComputeIntegrals(mol)
			Expect(err).NotTo(HaveOccurred())
			g := ints.ERI
			Expect(g[0][0][1][1]).To(BeNumerically("~", g[1][1][0][0], 1e-10))
			Expect(g[0][1][0][1]).To(BeNumerically("~", g[1][0][1][0], 1e-10))
			Expect(g[0][1][0][1]).To(BeNumerically("~", g[0][1][1][0], 1e-10))
		})

		It("reports two electrons in two spatial orbitals", func() {
			ints, err := ComputeIntegrals(mol)
			Expect(err).NotTo(HaveOccurred())
			Expect(ints.Electrons).To(Equal(2))
			Expect(ints.SpatialOrbitals).To(Equal(2))
		})
	})

	Context("at the experimental bond length", func() {
		It("computes the nuclear repulsion", func() {
			mol := h2At(0.7414 * BohrPerAngstrom)
			r := 0.7414 * BohrPerAngstrom
			ints, err := ComputeIntegrals(mol)
			Expect(err).NotTo(HaveOccurred())
			Expect(ints.NuclearRepulsion).To(BeNumerically("~", 1/r, 1e-10))
		})
	})

	Context("with invalid geometries", func() {
		It("rejects a non-diatomic", func() {
			_, err := ComputeIntegrals(Molecule{Name: "H", Atoms: []Atom{{Symbol: "H", Z: 1}}})
			Expect(err).To(HaveOccurred())
		})

		It("rejects heteronuclear pairs", func() {
			mol := Molecule{
				Name: "HeH",
				Atoms: []Atom{
					{Symbol: "H", Z: 1},
					{Symbol: "HE", Z: 2, Position: [3]float64{0, 0, 1.4}},
				},
			}
			_, err := ComputeIntegrals(mol)
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("boysF0", func() {
	It("matches the small argument limit", func() {
		Expect(boysF0(0)).To(Equal(1.0))
		Expect(boysF0(1e-14)).To(Equal(1.0))
	})

	It("matches the closed form at t = 1", func() {
		want := 0.5 * math.Sqrt(math.Pi) * math.Erf(1)
		Expect(boysF0(1)).To(BeNumerically("~", want, 1e-12))
	})
})
