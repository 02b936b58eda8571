package integrators

import "github.com/san-kum/rdsim/internal/turing"

// Euler is the explicit forward Euler scheme:
// dst = old + dt*(reaction + diffusion).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Advance(dst, old, reaction, diffusion turing.Field, dt float64) {
	for i := range old.Data {
		dst.Data[i] = old.Data[i] + dt*(reaction.Data[i]+diffusion.Data[i])
	}
}
