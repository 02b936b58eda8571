package analysis

import (
	"github.com/san-kum/rdsim/internal/sim"
)

// Point is one sample of a phase portrait.
type Point struct{ X, Y float64 }

// PhasePortrait2D is the trajectory of the spatial means of two species.
type PhasePortrait2D struct {
	XSpecies, YSpecies string
	Points             []Point
}

// GeneratePhasePortrait pairs the sampled means of two species of a run.
// It returns nil when either species was never sampled.
func GeneratePhasePortrait(r *sim.Result, xSpecies, ySpecies string) *PhasePortrait2D {
	xs := r.Series(xSpecies, "mean")
	ys := r.Series(ySpecies, "mean")
	n := min(len(xs), len(ys))
	if n == 0 {
		return nil
	}

	portrait := &PhasePortrait2D{
		XSpecies: xSpecies,
		YSpecies: ySpecies,
		Points:   make([]Point, n),
	}
	for i := range portrait.Points {
		portrait.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := newCanvas(width, height)
	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Mark the starting point.
	first := portrait.Points[0]
	col := int((first.X - minX) / rangeX * float64(width-1))
	row := height - 1 - int((first.Y-minY)/rangeY*float64(height-1))
	if row >= 0 && row < height && col >= 0 && col < width {
		canvas[row][col] = 'o'
	}

	return render(canvas)
}
