package turing

// Kernel is an odd-sized square convolution stencil, row-major.
type Kernel struct {
	Size    int
	Weights []float64
}

// VonNeumann is the 4-neighbour cross used for the discrete Laplacian.
func VonNeumann() Kernel {
	return Kernel{Size: 3, Weights: []float64{
		0, 1, 0,
		1, 0, 1,
		0, 1, 0,
	}}
}

// Moore is the 8-neighbour ring used for neighbour counts.
func Moore() Kernel {
	return Kernel{Size: 3, Weights: []float64{
		1, 1, 1,
		1, 0, 1,
		1, 1, 1,
	}}
}

// Total is the summed weight, i.e. the neighbour count of an interior cell.
func (k Kernel) Total() float64 {
	sum := 0.0
	for _, w := range k.Weights {
		sum += w
	}
	return sum
}

func (k Kernel) valid() bool {
	return k.Size > 0 && k.Size%2 == 1 && len(k.Weights) == k.Size*k.Size
}

// Convolve writes src convolved with k into dst. Cells outside the grid
// count as zero. dst must not alias src.
func Convolve(dst, src Field, k Kernel) {
	n := src.Size
	half := k.Size / 2
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			sum := 0.0
			for i := 0; i < k.Size; i++ {
				// flipped kernel index: true convolution
				sr := r + half - i
				if sr < 0 || sr >= n {
					continue
				}
				row := src.Data[sr*n : (sr+1)*n]
				for j := 0; j < k.Size; j++ {
					w := k.Weights[i*k.Size+j]
					if w == 0 {
						continue
					}
					sc := c + half - j
					if sc < 0 || sc >= n {
						continue
					}
					sum += w * row[sc]
				}
			}
			dst.Data[r*n+c] = sum
		}
	}
}

// Diffuse computes mu * (convolve(arr, k) - k.Total()*arr) / (dx*dy) into out.
func Diffuse(out, arr Field, mu, dx, dy float64, k Kernel) {
	Convolve(out, arr, k)
	nb := k.Total()
	scale := mu / (dx * dy)
	for i, v := range arr.Data {
		out.Data[i] = scale * (out.Data[i] - nb*v)
	}
}
