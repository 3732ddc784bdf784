package ode

import "fmt"

// Option configures optional integrator behavior.
type Option func(*settings)

type settings struct {
	strict bool
}

// Strict enables a per-step finite check. When the state type implements
// [Validatable], Integrate fails with [ErrNonFinite] as soon as the state
// stops being finite instead of letting NaN/Inf propagate arithmetically.
func Strict() Option {
	return func(s *settings) { s.strict = true }
}

// Integrator advances a state over a time span in fixed steps of size h,
// using the stepping method bound at construction. The step size, the
// derivative evaluator and the method are immutable for the integrator's
// lifetime; repeated Integrate calls are independent of each other.
type Integrator[S State[S, T], T Float] struct {
	h       T
	f       Derivative[S, T]
	stepper Stepper[S, T]
	strict  bool
}

// New builds an integrator with the given evaluator, step size and
// method. It fails fast on a non-positive (or NaN) step size and on a
// method outside {Euler, RungeKutta}.
func New[S State[S, T], T Float](f Derivative[S, T], h T, method Method, opts ...Option) (*Integrator[S, T], error) {
	var stepper Stepper[S, T]
	switch method {
	case Euler:
		stepper = NewForwardEuler[S, T]()
	case RungeKutta:
		stepper = NewRK4[S, T]()
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(method))
	}
	return NewWithStepper(f, h, stepper, opts...)
}

// NewWithStepper builds an integrator around a caller-supplied stepping
// scheme. Most callers want [New]; this exists for custom steppers.
func NewWithStepper[S State[S, T], T Float](f Derivative[S, T], h T, stepper Stepper[S, T], opts ...Option) (*Integrator[S, T], error) {
	if f == nil {
		return nil, ErrNilDerivative
	}
	if !(h > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidStepSize, h)
	}
	if stepper == nil {
		return nil, fmt.Errorf("%w: nil stepper", ErrInvalidMode)
	}

	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Integrator[S, T]{h: h, f: f, stepper: stepper, strict: cfg.strict}, nil
}

// StepSize returns the fixed step size h.
func (in *Integrator[S, T]) StepSize() T { return in.h }

// Steps returns the number of steps Integrate will take for the given
// span: the count of the same remaining-span countdown the stepping loop
// runs, i.e. ceil(span/h). Zero for span ≤ 0.
func (in *Integrator[S, T]) Steps(span T) int {
	n := 0
	for t := span; t > 0; t -= in.h {
		n++
	}
	return n
}

// Integrate advances x0 over the given time span and returns the
// terminal state. The remaining span is counted down by h each step and
// the loop stops once it is ≤ 0; the final step is not clipped, so a
// span that is not an exact multiple of h is overshot. A span ≤ 0 takes
// zero steps and returns x0 unchanged.
//
// The input state is never mutated. The only error condition is
// [ErrNonFinite], and only when the integrator was built with [Strict].
func (in *Integrator[S, T]) Integrate(span T, x0 S) (S, error) {
	x := x0
	step := 0
	for t := span; t > 0; t -= in.h {
		x = in.stepper.Step(in.f, x, in.h)
		step++
		if in.strict && !stateValid(x) {
			return x, fmt.Errorf("%w: step %d", ErrNonFinite, step)
		}
	}
	return x, nil
}

func stateValid[S any](x S) bool {
	if v, ok := any(x).(Validatable); ok {
		return v.IsValid()
	}
	return true
}
