package analysis

import (
	"context"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rdsim/internal/turing"
)

// BifurcationPoint holds the distinct concentration levels of one species
// after settling at a given parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// PatternFactory builds a fresh pattern with the swept parameter set to v.
type PatternFactory func(v float64) (*turing.Pattern, error)

// BifurcationDiagram sweeps a parameter over [paramMin, paramMax], runs each
// instance for transient steps and records the distinct levels (quantized
// to 1e-3) of species across the final grid. A homogeneous steady state
// shows up as a single level; a pattern as a spread of levels.
func BifurcationDiagram(
	ctx context.Context,
	build PatternFactory,
	species string,
	paramMin, paramMax float64,
	paramSteps int,
	transient int,
) ([]BifurcationPoint, error) {
	if paramSteps <= 1 {
		paramSteps = 2
	}
	// The last value must be paramMax exactly or a sweep over a descriptor's
	// bounds is rejected at the top end.
	values := floats.Span(make([]float64, paramSteps), paramMin, paramMax)
	values[paramSteps-1] = paramMax

	results := make([]BifurcationPoint, 0, paramSteps)
	for _, param := range values {
		p, err := build(param)
		if err != nil {
			return results, err
		}
		if err := p.InitConcentrations(); err != nil {
			return results, err
		}
		for s := 0; s < transient; s++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			if err := p.Step(); err != nil {
				return results, err
			}
		}

		f, err := p.Field(species)
		if err != nil {
			return results, err
		}
		results = append(results, BifurcationPoint{Param: param, Values: levels(f.Data)})
	}
	return results, nil
}

func levels(data []float64) []float64 {
	values := make([]float64, 0, 16)
	seen := make(map[int64]bool)
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		key := int64(math.Round(v * 1000))
		if !seen[key] {
			seen[key] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}

// BifurcationToASCII converts bifurcation data to ASCII art.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if !foundFirst {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := newCanvas(width, height)
	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return render(canvas)
}

func newCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func render(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
