package kepler

import (
	"github.com/postusername/n-body-problem/internal/dd"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// Period returns the orbital period T = 2*pi*sqrt(a^3/(G*m1)) for a body
// of negligible mass orbiting a primary of mass m1, spec.md 8's Kepler
// oracle test property.
func Period[T scalar.Scalar[T]](a, m1, g T) T {
	one := a.FromFloat64(1)
	a3 := a.Mul(a).Mul(a)
	n := g.Mul(m1).Div(a3).Sqrt()
	return twoPiOf(one).Div(n)
}

// twoPiOf derives 2*pi generically. For the dd.DD path it reuses
// dd.TwoPi's hand-tuned low limb instead of a float64 seed, keeping the
// oracle's own precision on par with the DirectSimulator trajectory it
// validates against.
func twoPiOf[T scalar.Scalar[T]](one T) T {
	if _, ok := any(one).(dd.DD); ok {
		return any(dd.TwoPi).(T)
	}
	return one.FromFloat64(6.283185307179586476925286766559)
}

// MeanAnomalyAtTime returns M(t) = M0 + n*t for a body with mean motion
// n = sqrt(G*m1/a^3), the mean-anomaly propagation the exact two-body
// oracle uses to advance the closed-form solution independently of any
// Simulator (spec.md 4.D, 8's Kepler oracle property).
func MeanAnomalyAtTime[T scalar.Scalar[T]](m0, a, m1, g, t T) T {
	a3 := a.Mul(a).Mul(a)
	n := g.Mul(m1).Div(a3).Sqrt()
	return m0.Add(n.Mul(t))
}

// ExactTwoBody returns the closed-form heliocentric position and velocity
// of a body on a Keplerian orbit (semi-major axis a, eccentricity e,
// initial mean anomaly m0) at time t around a primary of mass m1 under
// gravitational constant g — the oracle spec.md 8's Kepler test compares
// DirectSimulator's numerically integrated trajectory against.
func ExactTwoBody[T scalar.Scalar[T]](a, e, m0, m1, g, t T) (pos, vel vec3.Vec3[T]) {
	mu := g.Mul(m1)
	M := MeanAnomalyAtTime(m0, a, m1, g, t)
	el := Elements[T]{A: a, E: e, I: a.FromFloat64(0), Omega: a.FromFloat64(0), W: a.FromFloat64(0), M: M}
	return ToCartesian(el, mu)
}
