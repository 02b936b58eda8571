package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/rdsim/internal/sim"
	"github.com/san-kum/rdsim/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws one species as a heatmap whenever the simulator
// samples a frame, at most frameRate times per second. It is a
// non-interactive alternative to the Bubble Tea app for plain runs.
type LiveRenderer struct {
	out       io.Writer
	model     string
	species   string
	limits    [2]float64
	theme     viz.Theme
	maxSize   int
	frameRate int
	lastFrame time.Time
}

func NewLiveRenderer(out io.Writer, model, species string, limits [2]float64, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 10
	}
	return &LiveRenderer{
		out:       out,
		model:     model,
		species:   species,
		limits:    limits,
		theme:     viz.CurrentTheme,
		maxSize:   64,
		frameRate: frameRate,
	}
}

func (r *LiveRenderer) OnFrame(f sim.Frame) {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	field, ok := f.Fields[r.species]
	if !ok {
		return
	}

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  %s  step=%d  t=%.3f\n\n", viz.Title.Render(r.model), r.species, f.Step, f.Time)
	for _, line := range strings.Split(strings.TrimRight(viz.Heatmap(field, r.limits, r.theme, r.maxSize), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	s := sim.Summarize(field)
	fmt.Fprintf(&b, "\n  %s %.4f  %s %.4f  %s [%.4f, %.4f]\n",
		viz.MetricLabel.Render("mean"), s.Mean,
		viz.MetricLabel.Render("std"), s.Std,
		viz.MetricLabel.Render("range"), s.Min, s.Max)
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
