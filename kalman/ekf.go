// Package kalman implements an extended Kalman filter whose prediction
// step propagates the state mean through an [ode.Integrator].
package kalman

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/PREDICT-EPFL/yakf/ode"
)

// Dynamics describes the process model dx/dt = f(x, u): the continuous
// derivative, its Jacobian with respect to x, and the process noise
// covariance Q accumulated over one prediction step.
type Dynamics interface {
	Derive(x ode.Vec[float64], u []float64) ode.Vec[float64]
	Jacobian(x ode.Vec[float64], u []float64) *mat.Dense
	ProcessNoise() *mat.SymDense
	StateDim() int
}

// Observation describes the measurement model z = h(x): the predicted
// measurement, its Jacobian, and the measurement noise covariance R.
type Observation interface {
	Observe(x ode.Vec[float64]) []float64
	Jacobian(x ode.Vec[float64]) *mat.Dense
	NoiseCov() *mat.SymDense
	Dim() int
}

// drive adapts Dynamics to the integrator's derivative contract by
// capturing the control input active during one Predict call.
type drive struct {
	dyn Dynamics
	u   []float64
}

func (d *drive) Derive(x ode.Vec[float64]) ode.Vec[float64] {
	return d.dyn.Derive(x, d.u)
}

// EKF is an extended Kalman filter over float64 state vectors. It is not
// safe for concurrent use.
type EKF struct {
	dyn      Dynamics
	obs      Observation
	method   ode.Method
	substeps int
	drive    *drive

	x ode.Vec[float64]
	p *mat.Dense
}

// Option configures filter construction.
type Option func(*EKF)

// WithMethod selects the integration method used by Predict.
// The default is Euler.
func WithMethod(m ode.Method) Option {
	return func(f *EKF) { f.method = m }
}

// WithSubsteps sets how many integrator steps one prediction interval is
// divided into. The default is 10.
func WithSubsteps(n int) Option {
	return func(f *EKF) { f.substeps = n }
}

// New builds a filter from a process model, a measurement model, the
// initial state estimate and its covariance.
func New(dyn Dynamics, obs Observation, x0 ode.Vec[float64], p0 *mat.SymDense, opts ...Option) (*EKF, error) {
	n := dyn.StateDim()
	if len(x0) != n {
		return nil, fmt.Errorf("%w: state has %d components, dynamics expects %d", ErrDimensionMismatch, len(x0), n)
	}
	if r, _ := p0.Dims(); r != n {
		return nil, fmt.Errorf("%w: covariance is %dx%d, dynamics expects %dx%d", ErrDimensionMismatch, r, r, n, n)
	}

	f := &EKF{
		dyn:      dyn,
		obs:      obs,
		method:   ode.Euler,
		substeps: 10,
		drive:    &drive{dyn: dyn},
		x:        x0.Clone(),
		p:        mat.DenseCopyOf(p0),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.substeps < 1 {
		return nil, fmt.Errorf("kalman: substeps must be at least 1, got %d", f.substeps)
	}
	switch f.method {
	case ode.Euler, ode.RungeKutta:
	default:
		return nil, fmt.Errorf("%w: %d", ode.ErrInvalidMode, int(f.method))
	}
	return f, nil
}

// Predict propagates the estimate over dt under control input u. The
// mean is advanced by numerical integration of the full nonlinear
// dynamics; the covariance uses the linearization A = I + dt*J about the
// pre-update state.
func (f *EKF) Predict(u []float64, dt float64) error {
	if !(dt > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeStep, dt)
	}
	n := f.dyn.StateDim()

	a := mat.NewDense(n, n, nil)
	a.Scale(dt, f.dyn.Jacobian(f.x, u))
	for i := 0; i < n; i++ {
		a.Set(i, i, a.At(i, i)+1)
	}

	f.drive.u = u
	integ, err := ode.New[ode.Vec[float64], float64](f.drive, dt/float64(f.substeps), f.method)
	if err != nil {
		return err
	}
	x, err := integ.Integrate(dt, f.x)
	if err != nil {
		return err
	}
	f.x = x

	// P = A P Aᵀ + Q
	var ap, apat mat.Dense
	ap.Mul(a, f.p)
	apat.Mul(&ap, a.T())
	f.p.Add(&apat, f.dyn.ProcessNoise())
	return nil
}

// Correct folds the measurement z into the estimate. The gain is
// computed through a Cholesky solve of the innovation covariance and the
// covariance update uses the Joseph form, which stays symmetric positive
// semi-definite under roundoff.
func (f *EKF) Correct(z []float64) error {
	nz := f.obs.Dim()
	if len(z) != nz {
		return fmt.Errorf("%w: measurement has %d components, observation expects %d", ErrDimensionMismatch, len(z), nz)
	}
	n := f.dyn.StateDim()

	h := f.obs.Jacobian(f.x)
	r := f.obs.NoiseCov()

	// S = H P Hᵀ + R
	var hp, s mat.Dense
	hp.Mul(h, f.p)
	s.Mul(&hp, h.T())
	s.Add(&s, r)

	// K = P Hᵀ S⁻¹, via the transpose of the solution of S X = H P.
	var chol mat.Cholesky
	if !chol.Factorize(symmetrize(&s)) {
		return ErrNotPositiveDefinite
	}
	var sol mat.Dense
	if err := chol.SolveTo(&sol, &hp); err != nil {
		return err
	}
	gain := mat.DenseCopyOf(sol.T())

	// x += K (z - h(x))
	predicted := f.obs.Observe(f.x)
	y := mat.NewVecDense(nz, nil)
	for i := 0; i < nz; i++ {
		y.SetVec(i, z[i]-predicted[i])
	}
	var dx mat.VecDense
	dx.MulVec(gain, y)
	for i := 0; i < n; i++ {
		f.x[i] += dx.AtVec(i)
	}

	// P = (I - KH) P (I - KH)ᵀ + K R Kᵀ
	var kh mat.Dense
	kh.Mul(gain, h)
	ikh := mat.NewDense(n, n, nil)
	ikh.Scale(-1, &kh)
	for i := 0; i < n; i++ {
		ikh.Set(i, i, ikh.At(i, i)+1)
	}

	var ikhp, joseph, kr, krkt mat.Dense
	ikhp.Mul(ikh, f.p)
	joseph.Mul(&ikhp, ikh.T())
	kr.Mul(gain, r)
	krkt.Mul(&kr, gain.T())
	f.p.Add(&joseph, &krkt)
	return nil
}

// Update runs one predict/correct cycle and returns the new estimate.
func (f *EKF) Update(u, z []float64, dt float64) (ode.Vec[float64], error) {
	if err := f.Predict(u, dt); err != nil {
		return nil, err
	}
	if err := f.Correct(z); err != nil {
		return nil, err
	}
	return f.State(), nil
}

// State returns a copy of the current estimate.
func (f *EKF) State() ode.Vec[float64] { return f.x.Clone() }

// Covariance returns a copy of the current estimate covariance.
func (f *EKF) Covariance() *mat.Dense { return mat.DenseCopyOf(f.p) }

// symmetrize averages a matrix with its transpose so Cholesky sees an
// exactly symmetric input.
func symmetrize(a *mat.Dense) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s
}
