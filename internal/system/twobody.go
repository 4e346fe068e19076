package system

import (
	"github.com/postusername/n-body-problem/internal/body"
	"github.com/postusername/n-body-problem/internal/kepler"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// Two-body generation constants, spec.md 4.D: central mass 10^3, semi-major
// axis a = 1. The satellite mass is not pinned by the spec table; 1 is the
// value the original's TwoBodySystem uses too.
const (
	twoBodyCentralMass   = 1000.0
	twoBodySemiMajorAxis = 1.0
)

// twoBodyPositionTolerance bounds how far the satellite's numerically
// integrated separation from the primary may drift from kepler.ExactTwoBody's
// closed-form solution before IsValid reports divergence, spec.md 4.D component I's
// "Exact-Kepler validator". It is deliberately loose relative to the tight
// energy-conservation bound spec.md 8's Kepler-oracle scenario tests
// end-to-end: IsValid's job during a Run is to catch genuine blow-up, not
// to enforce that scenario's per-period tolerance.
const twoBodyPositionTolerance = 0.1 // fraction of the semi-major axis

// TwoBody is the two-body Kepler scenario: a central mass that starts at
// rest and a satellite on an eccentric orbit, matching the original's
// TwoBodySystem (the primary gets no recoil velocity at generation; a bound
// Simulator then moves it under the satellite's pull). Validity is checked
// against the closed-form Kepler solution rather than against
// center-of-mass or momentum bounds, since the primary carries none of the
// satellite's momentum by construction.
type TwoBody[T scalar.Scalar[T]] struct {
	e, g   T
	m1, a  T
	t      T
	bodies []body.Body[T]
}

// NewTwoBody builds a TwoBody generator for eccentricity e and
// gravitational constant g, and immediately calls Generate.
func NewTwoBody[T scalar.Scalar[T]](e, g T) *TwoBody[T] {
	s := &TwoBody[T]{e: e, g: g}
	s.Generate()
	return s
}

// Generate (re)populates the two bodies from the scenario's eccentricity
// and gravitational constant, per spec.md 4.D: satellite at
// (a(1-e), 0, 0) with tangential speed sqrt(G m1 (2/r - 1/a)); the primary
// sits at the origin at rest.
func (s *TwoBody[T]) Generate() {
	zero := zeroOf[T]()
	m1 := zero.FromFloat64(twoBodyCentralMass)
	m2 := zero.FromFloat64(1)
	a := zero.FromFloat64(twoBodySemiMajorAxis)
	r := a.Mul(zero.FromFloat64(1).Sub(s.e))

	two := zero.FromFloat64(2)
	speed := s.g.Mul(m1).Mul(two.Div(r).Sub(zero.FromFloat64(1).Div(a))).Sqrt()

	satellitePos := vec3.New(r, zero, zero)
	satelliteVel := vec3.New(zero, speed, zero)

	s.m1, s.a, s.t = m1, a, zero
	s.bodies = []body.Body[T]{
		body.New(m1, vec3.Zero(zero), vec3.Zero(zero), "primary"),
		body.New(m2, satellitePos, satelliteVel, "satellite"),
	}
}

func (s *TwoBody[T]) Bodies() []body.Body[T] { return s.bodies }
func (s *TwoBody[T]) Size() int              { return len(s.bodies) }

// SetTime records the elapsed simulation time a bound Simulator has
// advanced to, satisfying system.TimeAware so IsValid can compare against
// the exact solution at the right point on the orbit.
func (s *TwoBody[T]) SetTime(t T) { s.t = t }

// IsValid compares the satellite's current separation from the primary
// against kepler.ExactTwoBody's closed-form solution at the same elapsed
// time, spec.md 4.D component I. The relative orbit is that of the pair's
// total mass m1+m2, with its semi-major axis and eccentricity derived from
// the generated separation and speed; the satellite starts on an apsis of
// it, so its initial mean anomaly is zero.
func (s *TwoBody[T]) IsValid() bool {
	if !allMassesPositive(s.bodies) || !allFinite(s.bodies) {
		return false
	}
	zero := zeroOf[T]()
	one := zero.FromFloat64(1)
	two := zero.FromFloat64(2)
	mTotal := s.m1.Add(s.bodies[1].Mass)
	r0 := s.a.Mul(one.Sub(s.e))
	v0sq := s.g.Mul(s.m1).Mul(two.Div(r0).Sub(one.Div(s.a)))
	relA := one.Div(two.Div(r0).Sub(v0sq.Div(s.g.Mul(mTotal))))
	relE := one.Sub(r0.Div(relA))
	exactPos, _ := kepler.ExactTwoBody(relA, relE, zero, mTotal, s.g, s.t)
	diff := s.bodies[1].Position.Sub(s.bodies[0].Position).Sub(exactPos)
	return diff.Magnitude().Float64() <= twoBodyPositionTolerance*s.a.Float64()
}

func (s *TwoBody[T]) GraphValue() T {
	return pairwiseSoftenedEnergy(s.bodies, s.g, 1e-15)
}
