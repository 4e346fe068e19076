package system

import (
	"math"
	"strconv"

	"github.com/postusername/n-body-problem/internal/body"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// keplerRingMass is the common mass of every body on the ring, matching the
// original's RingSystem which hardcodes mass = 1 per body.
const keplerRingMass = 1.0

// keplerRingComTolerance and keplerRingMomentumTolerance are the original
// RingSystem's is_valid() epsilon, 0.01 for both bounds — noticeably
// tighter than Ring's 0.5.
const (
	keplerRingComTolerance      = 0.01
	keplerRingMomentumTolerance = 0.01
)

// KeplerRing is the equal-mass-on-a-circle scenario grounded on the
// original's RingSystem, distinct from Ring (which follows CircleSystem):
// tangential speed is sqrt(G*totalMass/radius) with no 3.625 divisor, the
// circular-orbit speed about a single point mass equal to the ring's total
// mass at the centre. That is faster than the speed at which the bodies'
// mutual gravity balances the centripetal force (the speed Ring's 3.625
// divisor approximates), so the ring does not hold a circular shape.
type KeplerRing[T scalar.Scalar[T]] struct {
	k      int
	g      T
	bodies []body.Body[T]
}

// NewKeplerRing builds a KeplerRing generator of k equal masses under
// gravitational constant g and immediately calls Generate. k must be at
// least 3, mirroring Ring's minimum.
func NewKeplerRing[T scalar.Scalar[T]](k int, g T) *KeplerRing[T] {
	if k < 3 {
		panic("system: kepler ring requires at least 3 bodies")
	}
	s := &KeplerRing[T]{k: k, g: g}
	s.Generate()
	return s
}

// Generate (re)populates the ring at radius 1 with tangential speed
// sqrt(G*totalMass/radius), the original RingSystem's orbit_velocity.
func (s *KeplerRing[T]) Generate() {
	zero := zeroOf[T]()
	m := zero.FromFloat64(keplerRingMass)
	radius := zero.FromFloat64(1)
	totalMass := m.Mul(zero.FromFloat64(float64(s.k)))
	speed := s.g.Mul(totalMass).Div(radius).Sqrt()

	bodies := make([]body.Body[T], s.k)
	for i := 0; i < s.k; i++ {
		angle := 2 * math.Pi * float64(i) / float64(s.k)
		theta := zero.FromFloat64(angle)
		sinT, cosT := theta.Sin(), theta.Cos()

		pos := vec3.New(radius.Mul(cosT), radius.Mul(sinT), zero)
		vel := vec3.New(sinT.Neg().Mul(speed), cosT.Mul(speed), zero)

		bodies[i] = body.New(m, pos, vel, "keplerring-"+strconv.Itoa(i))
	}
	s.bodies = bodies
}

func (s *KeplerRing[T]) Bodies() []body.Body[T] { return s.bodies }
func (s *KeplerRing[T]) Size() int              { return len(s.bodies) }

func (s *KeplerRing[T]) IsValid() bool {
	if !allMassesPositive(s.bodies) || !allFinite(s.bodies) {
		return false
	}
	if centerOfMass(s.bodies).Magnitude().Float64() > keplerRingComTolerance {
		return false
	}
	return totalMomentum(s.bodies).Magnitude().Float64() <= keplerRingMomentumTolerance
}

func (s *KeplerRing[T]) GraphValue() T {
	return pairwiseSoftenedEnergy(s.bodies, s.g, 1e-15)
}
