package ode

import "errors"

// Domain errors for integrator construction and stepping.
var (
	// ErrInvalidStepSize indicates a zero, negative or non-finite step size.
	ErrInvalidStepSize = errors.New("ode: step size must be positive")

	// ErrInvalidMode indicates an integration method outside the
	// recognized set {Euler, RungeKutta}.
	ErrInvalidMode = errors.New("ode: unknown integration method")

	// ErrNilDerivative indicates a nil derivative evaluator.
	ErrNilDerivative = errors.New("ode: derivative evaluator is nil")

	// ErrNonFinite indicates the integrated state produced NaN or Inf.
	// Only reported when the Strict option is set.
	ErrNonFinite = errors.New("ode: state is no longer finite (NaN or Inf)")
)
