package system

import (
	"math"
	"testing"

	"github.com/postusername/n-body-problem/internal/scalar"
)

func TestTwoBodyPrimaryIsStationary(t *testing.T) {
	s := NewTwoBody[scalar.F64](0.5, 1.0)
	if !s.IsValid() {
		t.Fatal("expected freshly generated TwoBody to be valid")
	}
	primary := s.Bodies()[0]
	if primary.Velocity.Magnitude().Float64() != 0 {
		t.Errorf("expected stationary primary, got velocity %v", primary.Velocity)
	}
}

func TestTwoBodyIsValidDetectsDivergence(t *testing.T) {
	s := NewTwoBody[scalar.F64](0.5, 1.0)
	bodies := s.Bodies()
	bodies[1].Position = bodies[1].Position.Add(bodies[1].Position)
	if s.IsValid() {
		t.Fatal("expected IsValid to reject a satellite displaced far from the exact solution")
	}
}

func TestTwoBodySatelliteSpeedMatchesVisViva(t *testing.T) {
	s := NewTwoBody[scalar.F64](0.5, 1.0)
	bodies := s.Bodies()
	satellite := bodies[1]
	r := satellite.Position.Magnitude().Float64()
	m1 := bodies[0].Mass.Float64()
	want := math.Sqrt(m1 * (2/r - 1/twoBodySemiMajorAxis))
	got := satellite.Velocity.Magnitude().Float64()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected satellite speed %v, got %v", want, got)
	}
}

func TestThreeBodyFigureEightSymmetry(t *testing.T) {
	s := NewThreeBody[scalar.F64](1.0)
	if !s.IsValid() {
		t.Fatal("expected figure-eight initial condition to be valid")
	}
	bodies := s.Bodies()
	sum := bodies[0].Position.Add(bodies[1].Position)
	if sum.Magnitude().Float64() > 1e-9 {
		t.Errorf("expected bodies 1 and 2 symmetric about origin, got sum %v", sum)
	}
}

func TestRingInvariants(t *testing.T) {
	s := NewRing[scalar.F64](5, 1.0)
	if !s.IsValid() {
		t.Fatal("expected freshly generated ring to be valid")
	}
	com := centerOfMass(s.Bodies())
	if com.Magnitude().Float64() >= ringComTolerance {
		t.Errorf("expected center of mass magnitude < %v, got %v", ringComTolerance, com.Magnitude())
	}
	p := totalMomentum(s.Bodies())
	if p.Magnitude().Float64() >= ringMomentumTolerance {
		t.Errorf("expected momentum magnitude < %v, got %v", ringMomentumTolerance, p.Magnitude())
	}
}

func TestRingRequiresAtLeastThreeBodies(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for k < 3")
		}
	}()
	NewRing[scalar.F64](2, 1.0)
}

func TestKeplerRingInvariants(t *testing.T) {
	s := NewKeplerRing[scalar.F64](5, 1.0)
	if !s.IsValid() {
		t.Fatal("expected freshly generated kepler ring to be valid")
	}
	com := centerOfMass(s.Bodies())
	if com.Magnitude().Float64() >= keplerRingComTolerance {
		t.Errorf("expected center of mass magnitude < %v, got %v", keplerRingComTolerance, com.Magnitude())
	}
	p := totalMomentum(s.Bodies())
	if p.Magnitude().Float64() >= keplerRingMomentumTolerance {
		t.Errorf("expected momentum magnitude < %v, got %v", keplerRingMomentumTolerance, p.Magnitude())
	}
}

func TestKeplerRingSpeedMatchesEquilibrium(t *testing.T) {
	s := NewKeplerRing[scalar.F64](6, 1.0)
	bodies := s.Bodies()
	totalMass := float64(len(bodies)) * keplerRingMass
	want := math.Sqrt(totalMass / 1.0)
	got := bodies[0].Velocity.Magnitude().Float64()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected orbit speed %v, got %v", want, got)
	}
}

func TestKeplerRingRequiresAtLeastThreeBodies(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for k < 3")
		}
	}()
	NewKeplerRing[scalar.F64](2, 1.0)
}

func TestSolarSystemHasAtLeastNineBodies(t *testing.T) {
	s := NewSolarSystem[scalar.F64](4*math.Pi*math.Pi, nil)
	if s.Size() < 9 {
		t.Fatalf("expected at least 9 bodies (sun + 8 planets), got %d", s.Size())
	}
	if !s.IsValid() {
		t.Fatal("expected freshly generated solar system to be valid")
	}
}

func TestSolarSystemIsBarycentric(t *testing.T) {
	s := NewSolarSystem[scalar.F64](4*math.Pi*math.Pi, nil)
	p := totalMomentum(s.Bodies())
	if p.Magnitude().Float64() > 1e-6 {
		t.Errorf("expected near-zero total momentum, got %v", p.Magnitude())
	}
}

func TestAllMassesPositiveDetectsViolation(t *testing.T) {
	s := NewRing[scalar.F64](3, 1.0)
	bodies := s.Bodies()
	bodies[0].Mass = 0
	if allMassesPositive(bodies) {
		t.Fatal("expected zero mass to fail allMassesPositive")
	}
}
