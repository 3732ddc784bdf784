// Package models provides example dynamical systems for the ode
// integrator. Each model implements [ode.Derivative] over
// ode.Vec[float64] and carries its parameters internally; models with
// adjustable parameters also implement [Configurable].
package models
