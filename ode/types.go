package ode

// Float is the scalar constraint for time, span and step arithmetic.
type Float interface {
	~float32 | ~float64
}

// State constrains the state representation: a value type supporting
// addition with its own kind and scaling by a scalar. These are the only
// two operations the integrator performs on a state.
type State[S any, T Float] interface {
	Add(S) S
	Scale(T) S
}

// Derivative evaluates the right-hand side of the ODE: given the current
// state it returns dx/dt. Implementations may capture system parameters
// (masses, gains, control inputs) but must not mutate shared state
// between calls within one integration run.
type Derivative[S State[S, T], T Float] interface {
	Derive(x S) S
}

// DerivativeFunc adapts a plain function to the Derivative interface.
type DerivativeFunc[S State[S, T], T Float] func(x S) S

func (f DerivativeFunc[S, T]) Derive(x S) S { return f(x) }

// Stepper advances a state by one step of size h.
type Stepper[S State[S, T], T Float] interface {
	Step(f Derivative[S, T], x S, h T) S
}

// Validatable is implemented by state types that can report whether they
// still hold finite values. [Vec] implements it; the [Strict] option uses
// it to detect numerical blow-up.
type Validatable interface {
	IsValid() bool
}
