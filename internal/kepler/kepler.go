// Package kepler solves Kepler's equation and converts orbital elements
// to Cartesian state, generic over the scalar precision (float64 or
// internal/dd.DD) used elsewhere in the simulator. It backs both the
// SolarSystem and TwoBody generators and the exact two-body oracle used
// to validate the direct integrator.
package kepler

import (
	"math"

	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// MaxIterations and Tolerance bound the Newton solve for eccentric
// anomaly; both are kept at the reference implementation's values for
// bit-compatibility with the documented testable properties.
const (
	MaxIterations = 10000
	Tolerance     = 1e-10
)

// SolveKepler solves M = E - e*sin(E) for the eccentric anomaly E by
// Newton iteration starting from E0 = M.
func SolveKepler[T scalar.Scalar[T]](M, e T) T {
	one := M.FromFloat64(1)
	E := M
	for i := 0; i < MaxIterations; i++ {
		f := E.Sub(e.Mul(E.Sin())).Sub(M)
		fPrime := one.Sub(e.Mul(E.Cos()))
		delta := f.Div(fPrime)
		E = E.Sub(delta)
		if math.Abs(delta.Float64()) < Tolerance {
			break
		}
	}
	return E
}

// TrueAnomaly returns the true anomaly nu and radius r for eccentric
// anomaly E and eccentricity e at semi-major axis a.
func TrueAnomaly[T scalar.Scalar[T]](E, e, a T) (nu, r T) {
	one := E.FromFloat64(1)
	half := E.FromFloat64(0.5)
	Ehalf := E.Mul(half)

	sqrtOnePlusE := one.Add(e).Sqrt()
	sqrtOneMinusE := one.Sub(e).Sqrt()

	y := sqrtOnePlusE.Mul(Ehalf.Sin())
	x := sqrtOneMinusE.Mul(Ehalf.Cos())
	two := E.FromFloat64(2)
	nu = y.Atan2(x).Mul(two)

	r = a.Mul(one.Sub(e.Mul(E.Cos())))
	return
}

func rotateZ[T scalar.Scalar[T]](v vec3.Vec3[T], angle T) vec3.Vec3[T] {
	s, c := angle.Sin(), angle.Cos()
	return vec3.Vec3[T]{
		X: v.X.Mul(c).Sub(v.Y.Mul(s)),
		Y: v.X.Mul(s).Add(v.Y.Mul(c)),
		Z: v.Z,
	}
}

func rotateX[T scalar.Scalar[T]](v vec3.Vec3[T], angle T) vec3.Vec3[T] {
	s, c := angle.Sin(), angle.Cos()
	return vec3.Vec3[T]{
		X: v.X,
		Y: v.Y.Mul(c).Sub(v.Z.Mul(s)),
		Z: v.Y.Mul(s).Add(v.Z.Mul(c)),
	}
}

// Elements is a classical orbital element set: semi-major axis A,
// eccentricity E, inclination I, longitude of ascending node Omega and
// argument of periapsis W, plus mean anomaly M at the epoch of interest.
type Elements[T scalar.Scalar[T]] struct {
	A, E, I, Omega, W, M T
}

// ToCartesian converts orbital elements plus the standard gravitational
// parameter mu = G*Mcentral into a position/velocity pair in the
// reference frame, applying the orbital-plane rotation Rz(Omega)*Rx(I)*Rz(W)
// described in spec.md 4.D.
func ToCartesian[T scalar.Scalar[T]](el Elements[T], mu T) (pos, vel vec3.Vec3[T]) {
	one := el.A.FromFloat64(1)
	E := SolveKepler(el.M, el.E)
	nu, r := TrueAnomaly(E, el.E, el.A)

	p := el.A.Mul(one.Sub(el.E.Mul(el.E)))
	sqrtMuOverP := mu.Div(p).Sqrt()
	sinNu, cosNu := nu.Sin(), nu.Cos()

	posOrbital := vec3.Vec3[T]{X: r.Mul(cosNu), Y: r.Mul(sinNu), Z: r.FromFloat64(0)}
	velOrbital := vec3.Vec3[T]{
		X: sqrtMuOverP.Mul(sinNu).Neg(),
		Y: sqrtMuOverP.Mul(el.E.Add(cosNu)),
		Z: r.FromFloat64(0),
	}

	pos = rotateZ(rotateX(rotateZ(posOrbital, el.W), el.I), el.Omega)
	vel = rotateZ(rotateX(rotateZ(velOrbital, el.W), el.I), el.Omega)
	return
}
