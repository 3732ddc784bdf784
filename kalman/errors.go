package kalman

import "errors"

var (
	// ErrDimensionMismatch indicates state, covariance or measurement
	// dimensions that disagree with the supplied models.
	ErrDimensionMismatch = errors.New("kalman: dimension mismatch")

	// ErrNotPositiveDefinite indicates an innovation covariance whose
	// Cholesky factorization failed.
	ErrNotPositiveDefinite = errors.New("kalman: innovation covariance not positive definite")

	// ErrInvalidTimeStep indicates a zero or negative prediction step.
	ErrInvalidTimeStep = errors.New("kalman: prediction time step must be positive")
)
