package turing_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rdsim/internal/turing"
)

type forwardEuler struct{}

func (forwardEuler) Name() string { return "euler" }
func (forwardEuler) Advance(dst, old, r, d turing.Field, dt float64) {
	for i := range old.Data {
		dst.Data[i] = old.Data[i] + dt*(r.Data[i]+d.Data[i])
	}
}

// rotor rotates (A, B) by w per unit time and diffuses both species.
type rotor struct {
	scheme turing.Scheme
	drop   string
}

func (m rotor) Info() turing.Info {
	return turing.Info{
		Name:    "rotor",
		Species: []string{"A", "B"},
		Parameters: []turing.Parameter{
			{Name: "w", Value: 1, Min: 0, Max: 10, Exponent: 1},
			{Name: "mu", Value: 0, Min: 0, Max: 1, Exponent: 1},
			{Name: turing.NbPos, Value: 0, Min: 0, Max: 100, Exponent: 1, DType: turing.Integer},
		},
		Tunable:     []string{"w", "mu", turing.NbPos},
		DefaultSize: 4,
		DefaultDx:   1,
		DefaultDy:   1,
		DefaultDt:   0.1,
		Scheme:      m.scheme,
	}
}

func (m rotor) Laws() map[string]turing.Law {
	laws := map[string]turing.Law{
		"A": {
			Reaction: func(s *turing.State, out turing.Field) {
				w := s.Params.Float("w")
				for i, b := range s.Fields["B"].Data {
					out.Data[i] = -w * b
				}
			},
			Diffusion: func(s *turing.State, out turing.Field) { s.Diffuse(out, s.Fields["A"], s.Params.Float("mu")) },
			Init: func(_ *turing.State, f turing.Field, p turing.Perturbation) {
				f.Fill(1)
				p.Add(f, 1)
			},
		},
		"B": {
			Reaction: func(s *turing.State, out turing.Field) {
				w := s.Params.Float("w")
				for i, a := range s.Fields["A"].Data {
					out.Data[i] = w * a
				}
			},
			Diffusion: func(s *turing.State, out turing.Field) { s.Diffuse(out, s.Fields["B"], s.Params.Float("mu")) },
			Init: func(_ *turing.State, f turing.Field, _ turing.Perturbation) {
				f.Fill(1)
			},
		},
	}
	delete(laws, m.drop)
	return laws
}

func newRotor(opts ...turing.Option) *turing.Pattern {
	p, err := turing.New(rotor{scheme: forwardEuler{}}, opts...)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Pattern", func() {
	Describe("construction", func() {
		It("takes defaults from the model", func() {
			p := newRotor()
			Expect(p.Size()).To(Equal(4))
			Expect(p.Dt()).To(Equal(0.1))
			Expect(p.Kernel().Total()).To(Equal(4.0))
			Expect(p.Species()).To(Equal([]string{"A", "B"}))
			Expect(p.Initialized()).To(BeFalse())
		})

		It("applies options", func() {
			p := newRotor(turing.WithSize(9), turing.WithSpacing(0.5, 0.25), turing.WithTimeStep(0.01), turing.WithParam("w", 3))
			Expect(p.Size()).To(Equal(9))
			Expect(p.Dx()).To(Equal(0.5))
			Expect(p.Dy()).To(Equal(0.25))
			Expect(p.Dt()).To(Equal(0.01))
			Expect(p.Param("w")).To(Equal(3.0))
		})

		DescribeTable("rejects bad configuration",
			func(m turing.Model, opts ...turing.Option) {
				_, err := turing.New(m, opts...)
				Expect(err).To(MatchError(turing.ErrConfiguration))
			},
			Entry("negative size", rotor{scheme: forwardEuler{}}, turing.WithSize(-1)),
			Entry("zero dt", rotor{scheme: forwardEuler{}}, turing.WithTimeStep(0)),
			Entry("zero dx", rotor{scheme: forwardEuler{}}, turing.WithSpacing(0, 1)),
			Entry("unknown parameter", rotor{scheme: forwardEuler{}}, turing.WithParam("q", 1)),
			Entry("parameter above max", rotor{scheme: forwardEuler{}}, turing.WithParam("w", 11)),
			Entry("parameter below min", rotor{scheme: forwardEuler{}}, turing.WithParam("w", -0.1)),
			Entry("no scheme", rotor{}),
			Entry("missing law", rotor{scheme: forwardEuler{}, drop: "B"}),
		)

		It("accepts degenerate grids", func() {
			for _, n := range []int{0, 1} {
				p := newRotor(turing.WithSize(n), turing.WithParam(turing.NbPos, 10), turing.WithSeed(1))
				Expect(p.InitConcentrations()).To(Succeed())
				Expect(p.Step()).To(Succeed())
				f, err := p.Field("A")
				Expect(err).NotTo(HaveOccurred())
				Expect(f.Data).To(HaveLen(n * n))
			}
		})
	})

	Describe("initialization", func() {
		It("fails reads and steps before init", func() {
			p := newRotor()
			Expect(p.Step()).To(MatchError(turing.ErrUninitialized))
			_, err := p.Field("A")
			Expect(err).To(MatchError(turing.ErrUninitialized))
			_, err = p.Reaction("A")
			Expect(err).To(MatchError(turing.ErrUninitialized))
			_, err = p.Fields()
			Expect(err).To(MatchError(turing.ErrUninitialized))
		})

		It("initializes a single species on request", func() {
			p := newRotor()
			Expect(p.Uninitialized()).To(Equal([]string{"A", "B"}))
			Expect(p.InitConcentrations("A")).To(Succeed())
			_, err := p.Field("A")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Initialized()).To(BeFalse())
			Expect(p.Uninitialized()).To(Equal([]string{"B"}))
			Expect(p.Step()).To(MatchError(turing.ErrUninitialized))

			Expect(p.InitConcentrations("B")).To(Succeed())
			Expect(p.Initialized()).To(BeTrue())
			Expect(p.Uninitialized()).To(BeEmpty())
			Expect(p.Step()).To(Succeed())
		})

		It("rejects unknown species", func() {
			p := newRotor()
			err := p.InitConcentrations("A", "Q")
			Expect(err).To(MatchError(turing.ErrUnknownSpecies))
			var use *turing.UnknownSpeciesError
			Expect(err).To(BeAssignableToTypeOf(use))
			_, ferr := p.Field("A")
			Expect(ferr).To(MatchError(turing.ErrUninitialized))
		})

		It("samples with replacement and accumulates offsets", func() {
			const seed, count = 11, 5
			p := newRotor(turing.WithSize(1), turing.WithParam(turing.NbPos, count), turing.WithSeed(seed))
			Expect(p.InitConcentrations()).To(Succeed())

			r := rand.New(rand.NewSource(seed))
			for i := 0; i < 2*count; i++ {
				r.Float64()
			}
			want := 1.0
			for i := 0; i < count; i++ {
				want += r.Float64()
			}

			a, _ := p.Field("A")
			Expect(a.Data[0]).To(BeNumerically("~", want, 1e-12))
		})

		It("draws different perturbations without a seed", func() {
			a := newRotor(turing.WithSize(32), turing.WithParam(turing.NbPos, 50), turing.WithRand(rand.New(rand.NewSource(1))))
			b := newRotor(turing.WithSize(32), turing.WithParam(turing.NbPos, 50), turing.WithRand(rand.New(rand.NewSource(2))))
			Expect(a.InitConcentrations()).To(Succeed())
			Expect(b.InitConcentrations()).To(Succeed())
			fa, _ := a.Field("A")
			fb, _ := b.Field("A")
			Expect(fa.Data).NotTo(Equal(fb.Data))
		})
	})

	Describe("stepping", func() {
		It("advances every species from the same time point", func() {
			p := newRotor(turing.WithSize(2))
			Expect(p.InitConcentrations()).To(Succeed())
			Expect(p.Step()).To(Succeed())

			a, _ := p.Field("A")
			b, _ := p.Field("B")
			Expect(a.Data[0]).To(BeNumerically("~", 0.9, 1e-12))
			Expect(b.Data[0]).To(BeNumerically("~", 1.1, 1e-12))
			Expect(p.Steps()).To(Equal(1))
			Expect(p.Time()).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("uses parameter changes made between steps", func() {
			p := newRotor(turing.WithSize(2))
			Expect(p.InitConcentrations()).To(Succeed())
			Expect(p.SetParam("w", 0)).To(Succeed())
			Expect(p.Step()).To(Succeed())
			a, _ := p.Field("A")
			Expect(a.Data[0]).To(Equal(1.0))

			Expect(p.SetParam("w", 20)).To(MatchError(turing.ErrConfiguration))
			Expect(p.Param("w")).To(Equal(0.0))
		})

		It("returns copies of the fields", func() {
			p := newRotor()
			Expect(p.InitConcentrations()).To(Succeed())
			f, _ := p.Field("A")
			f.Fill(42)
			g, _ := p.Field("A")
			Expect(g.Max()).To(Equal(1.0))
		})

		It("keeps shapes across steps", func() {
			p := newRotor(turing.WithSize(6), turing.WithParam("mu", 0.2), turing.WithParam(turing.NbPos, 3), turing.WithSeed(5))
			Expect(p.InitConcentrations()).To(Succeed())
			for i := 0; i < 20; i++ {
				Expect(p.Step()).To(Succeed())
			}
			fields, err := p.Fields()
			Expect(err).NotTo(HaveOccurred())
			for _, f := range fields {
				Expect(f.Size).To(Equal(6))
				Expect(f.Data).To(HaveLen(36))
				Expect(f.IsValid()).To(BeTrue())
			}
		})
	})
})
