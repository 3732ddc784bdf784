package models

import (
	"fmt"

	"github.com/PREDICT-EPFL/yakf/ode"
)

// Oscillator is the undamped harmonic oscillator with natural frequency
// omega: state {position, velocity}, dx/dt = {v, -omega² x}.
type Oscillator struct {
	Omega float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega: 1.0}
}

func (o *Oscillator) Derive(x ode.Vec[float64]) ode.Vec[float64] {
	return ode.Vec[float64]{x[1], -o.Omega * o.Omega * x[0]}
}

func (o *Oscillator) DefaultState() ode.Vec[float64] {
	return ode.Vec[float64]{1.0, 0.0}
}

// Energy is conserved by the exact dynamics; drift measures integrator error.
func (o *Oscillator) Energy(x ode.Vec[float64]) float64 {
	return 0.5 * (o.Omega*o.Omega*x[0]*x[0] + x[1]*x[1])
}

func (o *Oscillator) Params() map[string]float64 {
	return map[string]float64{"omega": o.Omega}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	if name != "omega" {
		return fmt.Errorf("unknown param: %s", name)
	}
	o.Omega = value
	return nil
}
