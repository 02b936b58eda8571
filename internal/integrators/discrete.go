package integrators

import "github.com/san-kum/rdsim/internal/turing"

// Discrete is used by cellular automata whose reaction term already is the
// next generation. dt is ignored: dst = reaction + diffusion.
type Discrete struct{}

func NewDiscrete() *Discrete {
	return &Discrete{}
}

func (d *Discrete) Name() string { return "discrete" }

func (d *Discrete) Advance(dst, _, reaction, diffusion turing.Field, _ float64) {
	for i := range reaction.Data {
		dst.Data[i] = reaction.Data[i] + diffusion.Data[i]
	}
}
