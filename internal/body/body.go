// Package body defines the point-mass record shared by every system
// generator and force evaluator.
package body

import (
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// Body is a point mass with a name, for diagnostics and catalog loading.
// Mass is immutable for the lifetime of a simulation step; Position and
// Velocity are mutated only by the Simulator currently bound to the
// System that owns this Body.
type Body[T scalar.Scalar[T]] struct {
	Mass     T
	Position vec3.Vec3[T]
	Velocity vec3.Vec3[T]
	Name     string
}

// New builds a Body, panicking if mass is not strictly positive — every
// System generator is expected to construct only valid bodies, so a
// non-positive mass here is a programmer error rather than a runtime
// condition to recover from.
func New[T scalar.Scalar[T]](mass T, pos, vel vec3.Vec3[T], name string) Body[T] {
	if mass.Float64() <= 0 {
		panic("body: mass must be strictly positive")
	}
	return Body[T]{Mass: mass, Position: pos, Velocity: vel, Name: name}
}
