// Package ode provides fixed-step numerical integration of ordinary
// differential equations dx/dt = f(x).
//
// The package is generic over the state representation and the scalar
// precision:
//
//   - [Float]: scalar constraint (float32 or float64)
//   - [State]: constraint on state types, anything supporting addition
//     and scaling by a scalar
//   - [Vec]: the stock state type, a slice of scalars
//   - [Derivative]: the caller-supplied right-hand side f(x)
//   - [Integrator]: advances a state over a time span in fixed steps
//
// Two classical explicit methods are available, selected once at
// construction: forward Euler (first order) and the classical 4th-order
// Runge-Kutta scheme.
//
// # Example
//
//	decay := ode.DerivativeFunc[ode.Vec[float64], float64](func(x ode.Vec[float64]) ode.Vec[float64] {
//	    return x.Scale(-1)
//	})
//	integ, err := ode.New(decay, 0.1, ode.RungeKutta)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	x, _ := integ.Integrate(1.0, ode.Vec[float64]{1.0})
//
// # Stepping semantics
//
// Integrate counts the remaining span down by the step size h and stops
// once it reaches zero or below. A span that is not an exact multiple of
// h is therefore overshot: the final step still advances by the full h,
// so the state always reflects ceil(span/h) whole steps. The step size
// is never adapted; choosing h small enough for the dynamics at hand is
// the caller's responsibility.
//
// # Thread safety
//
// An Integrator holds no mutable state across calls. The same instance
// may be used from multiple goroutines as long as the supplied
// derivative evaluator is itself safe for concurrent use.
package ode
