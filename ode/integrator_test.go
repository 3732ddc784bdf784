package ode

import (
	"errors"
	"math"
	"testing"
)

// countingDecay implements f(x) = -lambda*x and counts evaluations.
type countingDecay struct {
	lambda float64
	calls  int
}

func (c *countingDecay) Derive(x Vec[float64]) Vec[float64] {
	c.calls++
	return x.Scale(-c.lambda)
}

// constant implements f(x) = c regardless of x.
type constant struct {
	c Vec[float64]
}

func (k *constant) Derive(x Vec[float64]) Vec[float64] {
	return k.c.Clone()
}

func TestNew_InvalidStepSize(t *testing.T) {
	f := &countingDecay{lambda: 1.0}
	for _, h := range []float64{0, -0.1, math.NaN()} {
		_, err := New[Vec[float64], float64](f, h, Euler)
		if !errors.Is(err, ErrInvalidStepSize) {
			t.Errorf("h=%v: expected ErrInvalidStepSize, got %v", h, err)
		}
	}
}

func TestNew_InvalidMethod(t *testing.T) {
	f := &countingDecay{lambda: 1.0}
	_, err := New[Vec[float64], float64](f, 0.1, Method(42))
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
}

func TestNew_NilDerivative(t *testing.T) {
	_, err := New[Vec[float64], float64](nil, 0.1, Euler)
	if !errors.Is(err, ErrNilDerivative) {
		t.Errorf("expected ErrNilDerivative, got %v", err)
	}
}

func TestIntegrate_NonPositiveSpan(t *testing.T) {
	for _, method := range []Method{Euler, RungeKutta} {
		f := &countingDecay{lambda: 1.0}
		integ, err := New[Vec[float64], float64](f, 0.1, method)
		if err != nil {
			t.Fatal(err)
		}

		x0 := Vec[float64]{1.0, -2.0}
		for _, span := range []float64{0, -1.0} {
			x, err := integ.Integrate(span, x0)
			if err != nil {
				t.Fatal(err)
			}
			if x[0] != x0[0] || x[1] != x0[1] {
				t.Errorf("%v span=%v: state changed: %v", method, span, x)
			}
		}
		if f.calls != 0 {
			t.Errorf("%v: evaluator called %d times for non-positive spans", method, f.calls)
		}
	}
}

func TestIntegrate_ConstantDerivativeExact(t *testing.T) {
	// A constant-derivative system is linear, so both methods are exact:
	// x = x0 + c * (h * steps), including the overshot final step. Step
	// sizes are binary-representable so the countdown counts are exact.
	c := Vec[float64]{2.0, -0.5}
	f := &constant{c: c}

	cases := []struct {
		h, span float64
		steps   int
	}{
		{0.125, 1.0, 8},
		{0.3, 1.0, 4}, // 1.0 is not a multiple of 0.3: overshoot to 1.2
		{3.0, 10.0, 4},
		{0.5, 0.5, 1},
	}

	for _, method := range []Method{Euler, RungeKutta} {
		for _, tc := range cases {
			integ, err := New[Vec[float64], float64](f, tc.h, method)
			if err != nil {
				t.Fatal(err)
			}
			if n := integ.Steps(tc.span); n != tc.steps {
				t.Errorf("%v h=%v span=%v: Steps=%d, expected %d", method, tc.h, tc.span, n, tc.steps)
			}

			x0 := Vec[float64]{1.0, 1.0}
			x, err := integ.Integrate(tc.span, x0)
			if err != nil {
				t.Fatal(err)
			}

			advanced := tc.h * float64(tc.steps)
			for i := range x {
				want := x0[i] + c[i]*advanced
				if math.Abs(x[i]-want) > 1e-12 {
					t.Errorf("%v h=%v span=%v: x[%d]=%.15f, expected %.15f", method, tc.h, tc.span, i, x[i], want)
				}
			}
		}
	}
}

func TestIntegrate_StepCountCeiling(t *testing.T) {
	// span=10, h=3 counts down 10, 7, 4, 1, -2: exactly 4 steps.
	f := &countingDecay{lambda: 0.01}
	integ, err := New[Vec[float64], float64](f, 3.0, Euler)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := integ.Integrate(10.0, Vec[float64]{1.0}); err != nil {
		t.Fatal(err)
	}
	if f.calls != 4 {
		t.Errorf("expected 4 evaluations (ceiling behavior), got %d", f.calls)
	}
}

func TestIntegrate_ModeIsolation(t *testing.T) {
	// Euler evaluates once per step, RK4 four times. Neither method may
	// invoke the other's recurrence.
	const (
		h     = 0.25
		steps = 5
	)

	fe := &countingDecay{lambda: 1.0}
	euler, _ := New[Vec[float64], float64](fe, h, Euler)
	if _, err := euler.Integrate(h*steps, Vec[float64]{1.0}); err != nil {
		t.Fatal(err)
	}
	if fe.calls != steps {
		t.Errorf("euler: %d evaluations for %d steps, expected %d", fe.calls, steps, steps)
	}

	fr := &countingDecay{lambda: 1.0}
	rk, _ := New[Vec[float64], float64](fr, h, RungeKutta)
	if _, err := rk.Integrate(h*steps, Vec[float64]{1.0}); err != nil {
		t.Fatal(err)
	}
	if fr.calls != 4*steps {
		t.Errorf("rk4: %d evaluations for %d steps, expected %d", fr.calls, steps, 4*steps)
	}
}

func TestIntegrate_ExponentialDecayScenario(t *testing.T) {
	// f(x) = -x, x0 = 1, integrated over one time unit in 16 steps.
	const h = 0.0625

	f := &countingDecay{lambda: 1.0}

	euler, _ := New[Vec[float64], float64](f, h, Euler)
	x, err := euler.Integrate(1.0, Vec[float64]{1.0})
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pow(1-h, 16) // ≈ 0.3561
	if math.Abs(x[0]-want) > 1e-12 {
		t.Errorf("euler: got %.10f, expected %.10f", x[0], want)
	}

	rk, _ := New[Vec[float64], float64](f, h, RungeKutta)
	x, err = rk.Integrate(1.0, Vec[float64]{1.0})
	if err != nil {
		t.Fatal(err)
	}
	exact := math.Exp(-1)
	if math.Abs(x[0]-exact) > 1e-6 {
		t.Errorf("rk4: got %.10f, expected ≈ %.10f", x[0], exact)
	}
}

func TestIntegrate_InputNotMutated(t *testing.T) {
	f := &countingDecay{lambda: 1.0}
	integ, _ := New[Vec[float64], float64](f, 0.125, RungeKutta)

	x0 := Vec[float64]{1.0, 2.0}
	first, err := integ.Integrate(1.0, x0)
	if err != nil {
		t.Fatal(err)
	}
	if x0[0] != 1.0 || x0[1] != 2.0 {
		t.Errorf("initial state mutated: %v", x0)
	}

	// Calls are independent: a fresh integration from the same x0 must
	// reproduce the same result.
	second, err := integ.Integrate(1.0, x0)
	if err != nil {
		t.Fatal(err)
	}
	if first[0] != second[0] || first[1] != second[1] {
		t.Errorf("repeated calls diverged: %v vs %v", first, second)
	}
}

type exploding struct{}

func (exploding) Derive(x Vec[float64]) Vec[float64] {
	return x.Scale(math.Inf(1))
}

func TestIntegrate_StrictNonFinite(t *testing.T) {
	strict, _ := New[Vec[float64], float64](exploding{}, 0.1, Euler, Strict())
	_, err := strict.Integrate(1.0, Vec[float64]{1.0})
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("strict: expected ErrNonFinite, got %v", err)
	}

	// Default policy lets non-finite values flow through arithmetically.
	lax, _ := New[Vec[float64], float64](exploding{}, 0.1, Euler)
	x, err := lax.Integrate(1.0, Vec[float64]{1.0})
	if err != nil {
		t.Errorf("default: unexpected error %v", err)
	}
	if x.IsValid() {
		t.Errorf("default: expected non-finite state, got %v", x)
	}
}

func TestIntegrate_Float32(t *testing.T) {
	f := DerivativeFunc[Vec[float32], float32](func(x Vec[float32]) Vec[float32] {
		return Vec[float32]{1.0}
	})
	integ, err := New[Vec[float32], float32](f, 0.25, RungeKutta)
	if err != nil {
		t.Fatal(err)
	}
	x, err := integ.Integrate(1.0, Vec[float32]{0})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(x[0])-1.0) > 1e-5 {
		t.Errorf("float32: got %v, expected 1.0", x[0])
	}
}

func TestParseMethod(t *testing.T) {
	cases := []struct {
		name string
		want Method
		ok   bool
	}{
		{"euler", Euler, true},
		{"rk4", RungeKutta, true},
		{"rungekutta", RungeKutta, true},
		{"dopri", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseMethod(tc.name)
		if tc.ok && (err != nil || m != tc.want) {
			t.Errorf("ParseMethod(%q) = %v, %v", tc.name, m, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidMode) {
			t.Errorf("ParseMethod(%q): expected ErrInvalidMode, got %v", tc.name, err)
		}
	}
}
