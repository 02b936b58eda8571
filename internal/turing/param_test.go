package turing_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rdsim/internal/turing"
)

var _ = Describe("Parameter", func() {
	base := func() turing.Parameter {
		return turing.Parameter{Name: "A", Value: 1, Min: 0.1, Max: 5, Exponent: 1}
	}

	DescribeTable("Validate",
		func(mutate func(*turing.Parameter), ok bool) {
			p := base()
			mutate(&p)
			err := p.Validate()
			if ok {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(turing.ErrConfiguration))
			}
		},
		Entry("defaults", func(*turing.Parameter) {}, true),
		Entry("value at min", func(p *turing.Parameter) { p.Value = p.Min }, true),
		Entry("value at max", func(p *turing.Parameter) { p.Value = p.Max }, true),
		Entry("value below min", func(p *turing.Parameter) { p.Value = 0.05 }, false),
		Entry("value above max", func(p *turing.Parameter) { p.Value = 5.01 }, false),
		Entry("min equal to max", func(p *turing.Parameter) { p.Min, p.Max, p.Value = 1, 1, 1 }, false),
		Entry("min above max", func(p *turing.Parameter) { p.Min, p.Max = 6, 5 }, false),
		Entry("non-positive exponent", func(p *turing.Parameter) { p.Exponent = 0 }, false),
		Entry("NaN value", func(p *turing.Parameter) { p.Value = math.NaN() }, false),
		Entry("empty name", func(p *turing.Parameter) { p.Name = "" }, false),
	)

	It("rounds integer values before checking bounds", func() {
		p := turing.Parameter{Name: "n", Value: 1, Min: 0, Max: 10, Exponent: 1, DType: turing.Integer}
		Expect(p.Set(3.6)).To(Succeed())
		Expect(p.Value).To(Equal(4.0))
		Expect(p.Set(10.4)).To(Succeed())
		Expect(p.Value).To(Equal(10.0))
		Expect(p.Set(10.6)).To(MatchError(turing.ErrConfiguration))
		Expect(p.Value).To(Equal(10.0))
	})

	It("keeps the previous value when Set fails", func() {
		p := base()
		Expect(p.Set(7)).To(MatchError(turing.ErrConfiguration))
		Expect(p.Value).To(Equal(1.0))
	})

	It("maps slider positions through the exponent", func() {
		p := turing.Parameter{Name: "mu", Value: 1, Min: 0, Max: 100, Exponent: 0.5}
		Expect(p.Scaled(0)).To(Equal(0.0))
		Expect(p.Scaled(1)).To(Equal(100.0))
		Expect(p.Scaled(0.5)).To(BeNumerically("~", 25, 1e-9))

		p.Value = p.Scaled(0.3)
		Expect(p.Position()).To(BeNumerically("~", 0.3, 1e-9))
	})
})

var _ = Describe("Parameters", func() {
	table := []turing.Parameter{
		{Name: "A", Value: 1, Min: 0, Max: 2, Exponent: 1},
		{Name: "n", Value: 2, Min: 0, Max: 9, Exponent: 1, DType: turing.Integer},
	}

	It("copies the table per instance", func() {
		a, err := turing.NewParameters(table)
		Expect(err).NotTo(HaveOccurred())
		b, err := turing.NewParameters(table)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Set("A", 1.5)).To(Succeed())
		Expect(b.Float("A")).To(Equal(1.0))
		Expect(table[0].Value).To(Equal(1.0))

		c := a.Clone()
		Expect(c.Set("A", 0.5)).To(Succeed())
		Expect(a.Float("A")).To(Equal(1.5))
	})

	It("keeps declaration order", func() {
		ps, _ := turing.NewParameters(table)
		Expect(ps.Names()).To(Equal([]string{"A", "n"}))
		Expect(ps.Values()).To(HaveKeyWithValue("n", 2.0))
		Expect(ps.Int("n")).To(Equal(2))
	})

	It("rejects unknown names and duplicates", func() {
		ps, _ := turing.NewParameters(table)
		_, err := ps.Get("B")
		Expect(err).To(MatchError(turing.ErrConfiguration))
		Expect(ps.Set("B", 1)).To(MatchError(turing.ErrConfiguration))

		_, err = turing.NewParameters(append(table, table[0]))
		Expect(err).To(MatchError(turing.ErrConfiguration))
	})

	It("rounds integer defaults before checking bounds", func() {
		ps, err := turing.NewParameters([]turing.Parameter{
			{Name: "n", Value: 9.4, Min: 0, Max: 9, Exponent: 1, DType: turing.Integer},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(ps.Float("n")).To(Equal(9.0))

		_, err = turing.NewParameters([]turing.Parameter{
			{Name: "n", Value: 9.6, Min: 0, Max: 9, Exponent: 1, DType: turing.Integer},
		})
		Expect(err).To(MatchError(turing.ErrConfiguration))
	})
})
