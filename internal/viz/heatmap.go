package viz

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rdsim/internal/turing"
)

// Downsample averages f onto a grid of at most maxSize cells per side.
// Fields that already fit are returned unchanged.
func Downsample(f turing.Field, maxSize int) turing.Field {
	if maxSize <= 0 || f.Size <= maxSize {
		return f
	}
	stride := int(math.Ceil(float64(f.Size) / float64(maxSize)))
	n := (f.Size + stride - 1) / stride
	out := turing.NewField(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			sum, count := 0.0, 0
			for i := r * stride; i < min((r+1)*stride, f.Size); i++ {
				for j := c * stride; j < min((c+1)*stride, f.Size); j++ {
					sum += f.At(i, j)
					count++
				}
			}
			out.Set(r, c, sum/float64(count))
		}
	}
	return out
}

// Normalize maps v into [0, 1] using the contrast limits lo and hi.
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return clamp01((v - lo) / (hi - lo))
}

// Heatmap renders f with half-block characters, two grid rows per text
// line, colored by theme between the contrast limits. The field is
// downsampled to at most maxSize cells per side first.
func Heatmap(f turing.Field, limits [2]float64, theme Theme, maxSize int) string {
	f = Downsample(f, maxSize)
	n := f.Size
	if n == 0 {
		return ""
	}

	var b strings.Builder
	for r := 0; r < n; r += 2 {
		for c := 0; c < n; c++ {
			top := theme.At(Normalize(f.At(r, c), limits[0], limits[1]))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(top.Hex()))
			if r+1 < n {
				bottom := theme.At(Normalize(f.At(r+1, c), limits[0], limits[1]))
				style = style.Background(lipgloss.Color(bottom.Hex()))
			}
			b.WriteString(style.Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Colorbar renders a horizontal legend of the theme with its limits.
func Colorbar(limits [2]float64, theme Theme, width int) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		c := theme.At(float64(i) / float64(max(width-1, 1)))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
	}
	return MetricLabel.Render(formatLimit(limits[0])+" ") + b.String() + MetricLabel.Render(" "+formatLimit(limits[1]))
}

func formatLimit(v float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 3, 64), "0"), ".")
}
