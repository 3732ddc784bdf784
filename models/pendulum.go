package models

import (
	"fmt"
	"math"

	"github.com/PREDICT-EPFL/yakf/ode"
)

// Pendulum is a damped pendulum with an optional constant drive torque:
// state {theta, omega}. The torque is a captured parameter of the
// evaluator, not an input to the integrator.
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
	Torque  float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Derive(x ode.Vec[float64]) ode.Vec[float64] {
	theta := x[0]
	omega := x[1]

	alpha := (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta) + p.Torque) / (p.Mass * p.Length * p.Length)

	return ode.Vec[float64]{omega, alpha}
}

func (p *Pendulum) DefaultState() ode.Vec[float64] {
	return ode.Vec[float64]{0.5, 0.0}
}

func (p *Pendulum) Energy(x ode.Vec[float64]) float64 {
	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := p.Length * x[1]
	ke := 0.5 * p.Mass * v * v
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

func (p *Pendulum) Params() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
		"torque":  p.Torque,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	case "torque":
		p.Torque = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
