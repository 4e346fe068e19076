// Package system defines the System[T] contract (spec.md 3, "System<T>")
// and the concrete generators bound to it: TwoBody, ThreeBody, Ring,
// KeplerRing and SolarSystem (spec.md 4.D). A System owns its Body sequence outright; the
// Simulator that steps it only ever borrows that sequence for the duration
// of one step, mirroring the ownership split spec.md 3 draws between the
// two roles.
package system

import (
	"github.com/postusername/n-body-problem/internal/body"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// System is the contract every scenario generator satisfies: a mutable
// Body sequence, a validity check over the invariants spec.md 8 assigns to
// each variant, and a scalar graph value (by convention total mechanical
// energy) drivers plot for conservation diagnostics.
type System[T scalar.Scalar[T]] interface {
	// Bodies returns the live body sequence. Callers — principally a bound
	// Simulator — may mutate Position and Velocity in place through the
	// returned slice; Mass and Name are not to be mutated after Generate.
	Bodies() []body.Body[T]

	// Size returns len(Bodies()).
	Size() int

	// IsValid reports whether the system's invariants still hold: every
	// mass positive, every coordinate finite, and any variant-specific
	// bound on center-of-mass and total momentum drift.
	IsValid() bool

	// GraphValue returns the scalar a driver plots for conservation
	// diagnostics — total mechanical energy unless documented otherwise.
	GraphValue() T
}

// TimeAware is an optional extension a System variant implements when its
// validity check depends on elapsed simulation time rather than just the
// current body state — TwoBody's Kepler-oracle comparison is the only
// variant that currently needs it. A bound Simulator calls NotifyTime after
// every step; variants that don't implement TimeAware are unaffected.
type TimeAware[T scalar.Scalar[T]] interface {
	SetTime(t T)
}

// NotifyTime informs sys of the current simulation time if it implements
// TimeAware, and is a no-op otherwise.
func NotifyTime[T scalar.Scalar[T]](sys System[T], t T) {
	if ta, ok := sys.(TimeAware[T]); ok {
		ta.SetTime(t)
	}
}

// zeroOf returns the zero value of T using T's own FromFloat64, needed
// because generic code over an interface constraint cannot spell T{}.
func zeroOf[T scalar.Scalar[T]]() T {
	var z T
	return z.FromFloat64(0)
}

// centerOfMass returns Sum(m_i * x_i) / Sum(m_i).
func centerOfMass[T scalar.Scalar[T]](bodies []body.Body[T]) vec3.Vec3[T] {
	zero := zeroOf[T]()
	num := vec3.Zero(zero)
	totalMass := zero
	for _, b := range bodies {
		num = num.Add(b.Position.Scale(b.Mass))
		totalMass = totalMass.Add(b.Mass)
	}
	if totalMass.Float64() == 0 {
		return vec3.Zero(zero)
	}
	return num.Scale(zero.FromFloat64(1).Div(totalMass))
}

// totalMomentum returns Sum(m_i * v_i).
func totalMomentum[T scalar.Scalar[T]](bodies []body.Body[T]) vec3.Vec3[T] {
	zero := zeroOf[T]()
	p := vec3.Zero(zero)
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// allFinite reports whether every position and velocity component of every
// body is finite, the "body coordinate non-finite" divergence spec.md 7.2
// names.
func allFinite[T scalar.Scalar[T]](bodies []body.Body[T]) bool {
	for _, b := range bodies {
		for _, f := range []float64{
			b.Position.X.Float64(), b.Position.Y.Float64(), b.Position.Z.Float64(),
			b.Velocity.X.Float64(), b.Velocity.Y.Float64(), b.Velocity.Z.Float64(),
		} {
			if f != f || f > maxFinite || f < -maxFinite {
				return false
			}
		}
	}
	return true
}

const maxFinite = 1.0e300

// allMassesPositive reports whether every mass in bodies is strictly
// positive, the base invariant spec.md 3 assigns to every System<T>.
func allMassesPositive[T scalar.Scalar[T]](bodies []body.Body[T]) bool {
	for _, b := range bodies {
		if b.Mass.Float64() <= 0 {
			return false
		}
	}
	return true
}

// pairwiseSoftenedEnergy computes kinetic plus potential energy over
// bodies under gravitational constant g, skipping the potential
// contribution of any pair whose squared separation falls under
// softeningSq — the same skip rule DirectSimulator's force evaluator
// applies (spec.md 4.F). Every System here passes 1e-15, the threshold the
// float64 DirectSimulator uses, so a float64 run's graph_value stays
// consistent with the energy the bound DirectSimulator is conserving; a
// dd.DD DirectSimulator uses 1e-20 instead.
func pairwiseSoftenedEnergy[T scalar.Scalar[T]](bodies []body.Body[T], g T, softeningSq float64) T {
	zero := zeroOf[T]()
	half := zero.FromFloat64(0.5)
	energy := zero

	for i, bi := range bodies {
		speedSq := bi.Velocity.MagnitudeSquared()
		energy = energy.Add(half.Mul(bi.Mass).Mul(speedSq))

		for j := i + 1; j < len(bodies); j++ {
			bj := bodies[j]
			diff := bj.Position.Sub(bi.Position)
			r2 := diff.MagnitudeSquared()
			if r2.Float64() < softeningSq {
				continue
			}
			r := r2.Sqrt()
			energy = energy.Sub(g.Mul(bi.Mass).Mul(bj.Mass).Div(r))
		}
	}
	return energy
}
