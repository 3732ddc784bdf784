package ode

import "math"

// Vec is the stock state type: a vector of scalars. It satisfies
// State[Vec[T], T]; all operations return fresh slices and never mutate
// their receiver.
type Vec[T Float] []T

func (v Vec[T]) Clone() Vec[T] {
	c := make(Vec[T], len(v))
	copy(c, v)
	return c
}

func (v Vec[T]) Add(other Vec[T]) Vec[T] {
	result := make(Vec[T], len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] + other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vec[T]) Sub(other Vec[T]) Vec[T] {
	result := make(Vec[T], len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] - other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vec[T]) Scale(factor T) Vec[T] {
	result := make(Vec[T], len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

func (v Vec[T]) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// IsValid reports whether every component is finite.
func (v Vec[T]) IsValid() bool {
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
