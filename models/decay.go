package models

import (
	"fmt"

	"github.com/PREDICT-EPFL/yakf/ode"
)

// Decay is first-order exponential decay: dx/dt = -lambda * x,
// component-wise. Its exact solution x0*exp(-lambda*t) makes it the
// standard reference system for accuracy checks.
type Decay struct {
	Lambda float64
}

func NewDecay() *Decay {
	return &Decay{Lambda: 1.0}
}

func (d *Decay) Derive(x ode.Vec[float64]) ode.Vec[float64] {
	return x.Scale(-d.Lambda)
}

func (d *Decay) DefaultState() ode.Vec[float64] {
	return ode.Vec[float64]{1.0}
}

func (d *Decay) Params() map[string]float64 {
	return map[string]float64{"lambda": d.Lambda}
}

func (d *Decay) SetParam(name string, value float64) error {
	if name != "lambda" {
		return fmt.Errorf("unknown param: %s", name)
	}
	d.Lambda = value
	return nil
}
