package system

import (
	"math"

	"github.com/postusername/n-body-problem/internal/body"
	"github.com/postusername/n-body-problem/internal/catalog"
	"github.com/postusername/n-body-problem/internal/kepler"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// planetElement is one row of the fixed 8-planet table SolarSystem seeds
// itself from: semi-major axis in AU, mass in solar masses, angles in
// degrees, mean anomaly at the reference epoch in degrees. Values are
// standard J2000 osculating elements, adequate for a scenario generator
// (not an ephemeris).
type planetElement struct {
	name             string
	massRatioToSun   float64
	a, e             float64
	iDeg, omegaDeg   float64
	wDeg, meanAnomDeg float64
}

var solarSystemPlanets = []planetElement{
	{"Mercury", 1.66e-7, 0.387098, 0.205630, 7.005, 48.331, 29.124, 174.796},
	{"Venus", 2.45e-6, 0.723332, 0.006772, 3.39458, 76.680, 54.884, 50.115},
	{"Earth", 3.003e-6, 1.000000, 0.016709, 0.00005, -11.26064, 114.20783, 358.617},
	{"Mars", 3.227e-7, 1.523679, 0.093400, 1.850, 49.558, 286.502, 19.373},
	{"Jupiter", 9.545e-4, 5.204267, 0.048498, 1.303, 100.464, 273.867, 20.020},
	{"Saturn", 2.858e-4, 9.582017, 0.055509, 2.485, 113.665, 339.392, 317.020},
	{"Uranus", 4.366e-5, 19.229411, 0.046295, 0.773, 74.006, 96.998, 142.238},
	{"Neptune", 5.151e-5, 30.103661, 0.008988, 1.770, 131.784, 273.187, 256.228},
}

// solarSystemComTolerance and solarSystemMomentumTolerance are loose
// bounds appropriate to a barycentric multi-body system spanning tens of
// AU; spec.md 9 only pins numeric epsilons for ring and three-body.
const (
	solarSystemComTolerance      = 1.0
	solarSystemMomentumTolerance = 1.0
)

// degToRad converts a plain float64 degree value to radians, used only for
// building the FromFloat64 seed of a generic angle, so every orbital angle
// carries float64 precision however precise T is.
func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// SolarSystem is the Sun-centered scenario: the Sun plus the eight major
// planets placed via Kepler's equation, optionally extended with
// minor bodies loaded from a catalog.Entry slice, finally shifted into
// the barycentric frame (spec.md 4.D).
type SolarSystem[T scalar.Scalar[T]] struct {
	g          T
	minorBodies []catalog.Entry
	bodies     []body.Body[T]
}

// NewSolarSystem builds the Sun-plus-eight-planets scenario under
// gravitational constant g (conventionally 4*pi^2 in AU/year/solar-mass
// units, matching Kepler's third law in that system) and immediately
// calls Generate. minorBodies may be nil.
func NewSolarSystem[T scalar.Scalar[T]](g T, minorBodies []catalog.Entry) *SolarSystem[T] {
	s := &SolarSystem[T]{g: g, minorBodies: minorBodies}
	s.Generate()
	return s
}

// Generate (re)populates the Sun, the eight planets and any configured
// minor bodies from their orbital elements, then shifts every velocity so
// total momentum is zero (the barycentric frame spec.md 4.D specifies).
func (s *SolarSystem[T]) Generate() {
	zero := zeroOf[T]()
	sunMass := zero.FromFloat64(1)
	mu := s.g.Mul(sunMass)

	bodies := make([]body.Body[T], 0, len(solarSystemPlanets)+len(s.minorBodies)+1)
	bodies = append(bodies, body.New(sunMass, vec3.Zero(zero), vec3.Zero(zero), "Sun"))

	for _, p := range solarSystemPlanets {
		pos, vel := keplerBody(zero, mu, p.a, p.e, p.iDeg, p.omegaDeg, p.wDeg, p.meanAnomDeg)
		mass := zero.FromFloat64(p.massRatioToSun)
		bodies = append(bodies, body.New(mass, pos, vel, p.name))
	}

	for _, m := range s.minorBodies {
		// Catalog rows carry no mean anomaly (spec.md 6's 8-field format
		// stops at omega); placing every minor body at pericenter (M=0)
		// is the documented simplification (see DESIGN.md).
		pos, vel := keplerBody(zero, mu, m.A, m.E, m.I, m.Omega, m.W, 0)
		mass := zero.FromFloat64(m.MassSolar)
		if mass.Float64() <= 0 {
			continue
		}
		bodies = append(bodies, body.New(mass, pos, vel, m.Name))
	}

	shiftToBarycenter(bodies)
	s.bodies = bodies
}

// keplerBody converts one set of orbital elements (AU, degrees) into a
// heliocentric position/velocity pair via internal/kepler, per spec.md 4.D.
func keplerBody[T scalar.Scalar[T]](zero, mu T, a, e, iDeg, omegaDeg, wDeg, mDeg float64) (vec3.Vec3[T], vec3.Vec3[T]) {
	el := kepler.Elements[T]{
		A:     zero.FromFloat64(a),
		E:     zero.FromFloat64(e),
		I:     zero.FromFloat64(degToRad(iDeg)),
		Omega: zero.FromFloat64(degToRad(omegaDeg)),
		W:     zero.FromFloat64(degToRad(wDeg)),
		M:     zero.FromFloat64(degToRad(mDeg)),
	}
	return kepler.ToCartesian(el, mu)
}

// shiftToBarycenter subtracts the mass-weighted mean velocity from every
// body so total momentum becomes zero, without moving any position — the
// standard way to place a heliocentric construction into the barycentric
// frame spec.md 4.D calls for.
func shiftToBarycenter[T scalar.Scalar[T]](bodies []body.Body[T]) {
	if len(bodies) == 0 {
		return
	}
	totalMass := zeroOf[T]()
	for _, b := range bodies {
		totalMass = totalMass.Add(b.Mass)
	}
	if totalMass.Float64() == 0 {
		return
	}
	p := totalMomentum(bodies)
	meanVel := p.Scale(totalMass.FromFloat64(1).Div(totalMass))
	for i := range bodies {
		bodies[i].Velocity = bodies[i].Velocity.Sub(meanVel)
	}
}

func (s *SolarSystem[T]) Bodies() []body.Body[T] { return s.bodies }
func (s *SolarSystem[T]) Size() int              { return len(s.bodies) }

func (s *SolarSystem[T]) IsValid() bool {
	if !allMassesPositive(s.bodies) || !allFinite(s.bodies) {
		return false
	}
	if centerOfMass(s.bodies).Magnitude().Float64() > solarSystemComTolerance {
		return false
	}
	return totalMomentum(s.bodies).Magnitude().Float64() <= solarSystemMomentumTolerance
}

func (s *SolarSystem[T]) GraphValue() T {
	return pairwiseSoftenedEnergy(s.bodies, s.g, 1e-15)
}
