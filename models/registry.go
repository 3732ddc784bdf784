package models

import (
	"fmt"
	"sort"

	"github.com/PREDICT-EPFL/yakf/ode"
)

// System is a named dynamical system usable from scenarios and the
// command line: a derivative evaluator plus a sensible initial state.
type System interface {
	ode.Derivative[ode.Vec[float64], float64]
	DefaultState() ode.Vec[float64]
}

// Configurable is implemented by systems with adjustable parameters.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

var registry = map[string]func() System{
	"decay":      func() System { return NewDecay() },
	"oscillator": func() System { return NewOscillator() },
	"pendulum":   func() System { return NewPendulum() },
	"lorenz":     func() System { return NewLorenz() },
}

// New returns a fresh instance of the named system.
func New(name string) (System, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

// List returns the registered model names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
