package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rdsim/internal/turing"
)

// RadialSpectrum returns the power of f binned by integer radial
// wavenumber. Bin k collects the modes with round(sqrt(kx²+ky²)) == k for
// k up to Size/2; bin 0 holds the mean.
func RadialSpectrum(f turing.Field) []float64 {
	n := f.Size
	if n == 0 {
		return nil
	}

	freq := fft.FFT2Real(f.Rows())
	bins := make([]float64, n/2+1)
	for i, row := range freq {
		ky := fold(i, n)
		for j, c := range row {
			kx := fold(j, n)
			k := int(math.Round(math.Hypot(float64(kx), float64(ky))))
			if k >= len(bins) {
				continue
			}
			a := cmplx.Abs(c)
			bins[k] += a * a
		}
	}
	return bins
}

// DominantWavelength returns the wavelength, in units of dx, carrying the
// most power outside the mean. A field with no spatial variation yields 0.
func DominantWavelength(f turing.Field, dx float64) float64 {
	bins := RadialSpectrum(f)
	if len(bins) < 2 {
		return 0
	}
	k := floats.MaxIdx(bins[1:]) + 1
	if bins[k] <= 1e-12*floats.Sum(bins) {
		return 0
	}
	return float64(f.Size) * dx / float64(k)
}

// fold maps an FFT index onto a signed wavenumber.
func fold(i, n int) int {
	if i > n/2 {
		return i - n
	}
	return i
}
