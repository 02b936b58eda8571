package turing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rdsim/internal/turing"
)

func fieldOf(size int, values ...float64) turing.Field {
	f := turing.NewField(size)
	copy(f.Data, values)
	return f
}

var _ = Describe("Kernel", func() {
	It("counts neighbours", func() {
		Expect(turing.VonNeumann().Total()).To(Equal(4.0))
		Expect(turing.Moore().Total()).To(Equal(8.0))
	})

	It("convolves with zero padding", func() {
		src := fieldOf(3,
			1, 2, 3,
			4, 5, 6,
			7, 8, 9,
		)
		dst := turing.NewField(3)
		turing.Convolve(dst, src, turing.VonNeumann())

		Expect(dst.Data).To(Equal([]float64{
			2 + 4, 1 + 3 + 5, 2 + 6,
			1 + 5 + 7, 2 + 4 + 6 + 8, 3 + 5 + 9,
			4 + 8, 5 + 7 + 9, 6 + 8,
		}))
	})

	It("is a convolution, not a correlation", func() {
		k := turing.Kernel{Size: 3, Weights: []float64{
			0, 0, 0,
			1, 0, 0,
			0, 0, 0,
		}}
		src := fieldOf(3, 0, 0, 0, 0, 1, 0, 0, 0, 0)
		dst := turing.NewField(3)
		turing.Convolve(dst, src, k)
		// An impulse convolved with k reproduces k; correlation would mirror it.
		Expect(dst.At(1, 0)).To(Equal(1.0))
		Expect(dst.At(1, 2)).To(Equal(0.0))
	})

	It("handles degenerate grids", func() {
		for _, n := range []int{0, 1} {
			src := turing.NewField(n)
			src.Fill(3)
			dst := turing.NewField(n)
			Expect(func() { turing.Convolve(dst, src, turing.VonNeumann()) }).NotTo(Panic())
			for _, v := range dst.Data {
				Expect(v).To(Equal(0.0))
			}
		}
	})
})

var _ = Describe("Diffuse", func() {
	It("is the scaled discrete Laplacian", func() {
		arr := fieldOf(3,
			0, 0, 0,
			0, 1, 0,
			0, 0, 0,
		)
		out := turing.NewField(3)
		turing.Diffuse(out, arr, 0.5, 1, 2, turing.VonNeumann())

		Expect(out.At(1, 1)).To(BeNumerically("~", 0.5*(0-4)/2, 1e-12))
		Expect(out.At(0, 1)).To(BeNumerically("~", 0.5*1/2, 1e-12))
		Expect(out.At(0, 0)).To(Equal(0.0))
	})

	It("drains a uniform field only at the absorbing edge", func() {
		arr := turing.NewField(4)
		arr.Fill(1)
		out := turing.NewField(4)
		turing.Diffuse(out, arr, 1, 1, 1, turing.VonNeumann())

		Expect(out.At(1, 1)).To(Equal(0.0))
		Expect(out.At(0, 1)).To(Equal(-1.0))
		Expect(out.At(0, 0)).To(Equal(-2.0))
	})

	It("does not touch its input", func() {
		arr := fieldOf(2, 1, 2, 3, 4)
		before := arr.Clone()
		turing.Diffuse(turing.NewField(2), arr, 1, 1, 1, turing.VonNeumann())
		Expect(arr.Data).To(Equal(before.Data))
	})
})
