package system

import (
	"github.com/postusername/n-body-problem/internal/body"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// threeBodyComTolerance and threeBodyMomentumTolerance bound this
// scenario's center-of-mass and momentum drift. threeBodyMomentumTolerance
// is spec.md 8's own explicit testable property for the figure-eight
// choreography: "total momentum drift satisfies |sum m_i v_i| < 10^-1
// throughout". _examples/original_source/systems/ThreeBodySystem.hpp's
// own is_valid() uses a tighter 0.01 (momentum only, no center-of-mass
// check); spec.md's binding testable property governs here since it is
// looser and more directly on point than the original's per-step gate.
// The "0.5" figure in spec.md 9's closing diagnostic-tolerances aside
// belongs to the Ring/CircleSystem.hpp scenario, not this one — see
// internal/system/ring.go.
const (
	threeBodyComTolerance      = 0.01
	threeBodyMomentumTolerance = 0.1
)

// ThreeBody is the Chenciner-Montgomery figure-eight choreography: three
// equal masses chasing each other around a common lemniscate, spec.md 4.D.
type ThreeBody[T scalar.Scalar[T]] struct {
	g      T
	bodies []body.Body[T]
}

// NewThreeBody builds the figure-eight scenario for gravitational constant
// g and immediately calls Generate.
func NewThreeBody[T scalar.Scalar[T]](g T) *ThreeBody[T] {
	s := &ThreeBody[T]{g: g}
	s.Generate()
	return s
}

// Generate (re)populates the three equal-mass bodies at the
// Chenciner-Montgomery initial condition: body3 at the origin with
// v3 = (-0.93240737, -0.86473146, 0); bodies 1 and 2 at
// +-(-0.97000436, 0.24308753, 0) with v = -v3/2.
func (s *ThreeBody[T]) Generate() {
	zero := zeroOf[T]()
	mass := zero.FromFloat64(1)

	px := zero.FromFloat64(-0.97000436)
	py := zero.FromFloat64(0.24308753)
	pos1 := vec3.New(px, py, zero)
	pos2 := pos1.Neg()
	pos3 := vec3.Zero(zero)

	v3 := vec3.New(
		zero.FromFloat64(-0.93240737),
		zero.FromFloat64(-0.86473146),
		zero,
	)
	half := zero.FromFloat64(0.5)
	v1 := v3.Scale(half).Neg()
	v2 := v1

	s.bodies = []body.Body[T]{
		body.New(mass, pos1, v1, "body-1"),
		body.New(mass, pos2, v2, "body-2"),
		body.New(mass, pos3, v3, "body-3"),
	}
}

func (s *ThreeBody[T]) Bodies() []body.Body[T] { return s.bodies }
func (s *ThreeBody[T]) Size() int              { return len(s.bodies) }

func (s *ThreeBody[T]) IsValid() bool {
	if !allMassesPositive(s.bodies) || !allFinite(s.bodies) {
		return false
	}
	if centerOfMass(s.bodies).Magnitude().Float64() > threeBodyComTolerance {
		return false
	}
	return totalMomentum(s.bodies).Magnitude().Float64() <= threeBodyMomentumTolerance
}

func (s *ThreeBody[T]) GraphValue() T {
	return pairwiseSoftenedEnergy(s.bodies, s.g, 1e-15)
}
