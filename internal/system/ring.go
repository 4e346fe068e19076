package system

import (
	"math"
	"strconv"

	"github.com/postusername/n-body-problem/internal/body"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// ringMass is the common mass of every body on the ring; spec.md 4.D leaves
// it unnamed beyond "equal masses", so 1 keeps the tangential-speed formula
// dimensionally simple.
const ringMass = 1.0

// ringComTolerance and ringMomentumTolerance are the "center of mass
// magnitude < 0.5, total momentum magnitude < 0.5" bounds from spec.md 8's
// Ring generator testable property.
const (
	ringComTolerance      = 0.5
	ringMomentumTolerance = 0.5
)

// Ring is the equal-mass-on-a-circle scenario: k bodies spaced evenly on a
// unit-radius circle, each moving tangentially fast enough to orbit the
// ring's own combined gravity without collapsing (spec.md 4.D, 8).
type Ring[T scalar.Scalar[T]] struct {
	k      int
	g      T
	bodies []body.Body[T]
}

// NewRing builds a Ring generator of k equal masses under gravitational
// constant g and immediately calls Generate. k must be at least 3, the
// smallest count spec.md 8's testable property is stated for.
func NewRing[T scalar.Scalar[T]](k int, g T) *Ring[T] {
	if k < 3 {
		panic("system: ring requires at least 3 bodies")
	}
	s := &Ring[T]{k: k, g: g}
	s.Generate()
	return s
}

// Generate (re)populates the ring at radius 1 with tangential speed
// sqrt(G*k*m/(3.625*r)), spec.md 4.D.
func (s *Ring[T]) Generate() {
	zero := zeroOf[T]()
	one := zero.FromFloat64(1)
	m := zero.FromFloat64(ringMass)
	radius := one

	k := zero.FromFloat64(float64(s.k))
	speed := s.g.Mul(k).Mul(m).Div(zero.FromFloat64(3.625).Mul(radius)).Sqrt()

	bodies := make([]body.Body[T], s.k)
	for i := 0; i < s.k; i++ {
		angle := 2 * math.Pi * float64(i) / float64(s.k)
		theta := zero.FromFloat64(angle)
		sinT, cosT := theta.Sin(), theta.Cos()

		pos := vec3.New(radius.Mul(cosT), radius.Mul(sinT), zero)
		vel := vec3.New(sinT.Neg().Mul(speed), cosT.Mul(speed), zero)

		bodies[i] = body.New(m, pos, vel, "ring-"+strconv.Itoa(i))
	}
	s.bodies = bodies
}

func (s *Ring[T]) Bodies() []body.Body[T] { return s.bodies }
func (s *Ring[T]) Size() int              { return len(s.bodies) }

func (s *Ring[T]) IsValid() bool {
	if !allMassesPositive(s.bodies) || !allFinite(s.bodies) {
		return false
	}
	if centerOfMass(s.bodies).Magnitude().Float64() > ringComTolerance {
		return false
	}
	return totalMomentum(s.bodies).Magnitude().Float64() <= ringMomentumTolerance
}

func (s *Ring[T]) GraphValue() T {
	return pairwiseSoftenedEnergy(s.bodies, s.g, 1e-15)
}
