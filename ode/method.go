package ode

import "fmt"

// Method selects the stepping scheme. It is fixed when the integrator is
// constructed and never changes afterwards.
type Method int

const (
	// Euler is the explicit first-order forward Euler method.
	Euler Method = iota
	// RungeKutta is the classical explicit 4th-order Runge-Kutta method.
	RungeKutta
)

func (m Method) String() string {
	switch m {
	case Euler:
		return "euler"
	case RungeKutta:
		return "rk4"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod resolves a method name as used in config files and on the
// command line. Recognized names: "euler", "rk4", "rungekutta".
func ParseMethod(name string) (Method, error) {
	switch name {
	case "euler":
		return Euler, nil
	case "rk4", "rungekutta":
		return RungeKutta, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
	}
}
