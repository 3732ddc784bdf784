package ode

// ForwardEuler is the explicit first-order method: x' = x + h*f(x).
// Local truncation error is O(h²) per step, global error O(h).
type ForwardEuler[S State[S, T], T Float] struct{}

func NewForwardEuler[S State[S, T], T Float]() *ForwardEuler[S, T] {
	return &ForwardEuler[S, T]{}
}

func (*ForwardEuler[S, T]) Step(f Derivative[S, T], x S, h T) S {
	dx := f.Derive(x)
	return x.Add(dx.Scale(h))
}
