package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/rdsim/internal/turing"
)

func filled(size int, v float64) turing.Field {
	f := turing.NewField(size)
	f.Fill(v)
	return f
}

func TestEulerDecay(t *testing.T) {
	integ := NewEuler()
	dt := 0.01
	steps := 100

	x := filled(3, 1)
	next := turing.NewField(3)
	reaction := turing.NewField(3)
	diffusion := turing.NewField(3)

	for i := 0; i < steps; i++ {
		for j, v := range x.Data {
			reaction.Data[j] = -v
		}
		integ.Advance(next, x, reaction, diffusion, dt)
		x, next = next, x
	}

	want := math.Pow(1-dt, float64(steps))
	for i, v := range x.Data {
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("cell %d: got %.12f, want %.12f", i, v, want)
		}
	}
	if math.Abs(x.Data[0]-math.Exp(-1)) > 2e-3 {
		t.Errorf("decay too far from exp(-1): got %.6f", x.Data[0])
	}
}

func TestEulerSumsRates(t *testing.T) {
	dst := turing.NewField(2)
	NewEuler().Advance(dst, filled(2, 1), filled(2, 2), filled(2, -0.5), 0.1)
	for i, v := range dst.Data {
		if math.Abs(v-1.15) > 1e-12 {
			t.Errorf("cell %d: got %g, want 1.15", i, v)
		}
	}
}

func TestDiscreteIgnoresOldAndDt(t *testing.T) {
	dst := turing.NewField(2)
	NewDiscrete().Advance(dst, filled(2, 7), filled(2, 1), filled(2, 0), 123)
	for i, v := range dst.Data {
		if v != 1 {
			t.Errorf("cell %d: got %g, want 1", i, v)
		}
	}
}

func TestNames(t *testing.T) {
	if NewEuler().Name() != "euler" || NewDiscrete().Name() != "discrete" {
		t.Error("unexpected scheme names")
	}
}
