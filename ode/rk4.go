package ode

// RK4 is the classical explicit 4th-order Runge-Kutta method. The two
// midpoint stages use an intermediate step size of exactly h/2; global
// error is O(h⁴). The four stages are evaluated in strict sequence since
// each depends on the previous one.
type RK4[S State[S, T], T Float] struct{}

func NewRK4[S State[S, T], T Float]() *RK4[S, T] {
	return &RK4[S, T]{}
}

func (*RK4[S, T]) Step(f Derivative[S, T], x S, h T) S {
	half := h / 2

	k1 := f.Derive(x)
	k2 := f.Derive(x.Add(k1.Scale(half)))
	k3 := f.Derive(x.Add(k2.Scale(half)))
	k4 := f.Derive(x.Add(k3.Scale(h)))

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return x.Add(sum.Scale(h / 6))
}
