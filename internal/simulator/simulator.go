// Package simulator defines the Simulator contract spec.md 4.E fixes and
// the DirectSimulator implementation of spec.md 4.F: O(N^2) pairwise
// gravity advanced with a velocity-Verlet kick-drift-kick step. Grounded on
// internal/physics/nbody.go's pairwise accumulation pattern and
// internal/integrators/verlet.go's kick-drift-kick split in the teacher
// repo, generalized from a flat []float64 state vector to system.System[T].
package simulator

import (
	"math"

	"github.com/postusername/n-body-problem/internal/body"
	"github.com/postusername/n-body-problem/internal/dynamo"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/system"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// StepCallback is invoked once per successful step during Run, receiving
// the step index and current simulation time; used by drivers such as
// internal/live to sample the graph value without polling every step.
type StepCallback[T scalar.Scalar[T]] func(step int, t T, sys system.System[T])

// Simulator is the abstract contract spec.md 4.E fixes: bind a System,
// fix dt and G, and advance it one step at a time.
type Simulator[T scalar.Scalar[T]] interface {
	SetSystem(sys system.System[T])
	SetDt(dt T) error
	SetG(g T)
	Dt() T
	CurrentTime() T
	StepsPerFrame() int
	Step() bool
	Run(maxSteps int, cb StepCallback[T]) int
}

// DirectSimulator evaluates gravity by direct O(N^2) pairwise summation
// and advances the bound System with velocity-Verlet, spec.md 4.F.
type DirectSimulator[T scalar.Scalar[T]] struct {
	sys system.System[T]
	dt  T
	g   T
	t   T

	// softeningSq is the squared-distance floor under which a pairwise
	// contribution is dropped entirely (spec.md 4.F): 10^-15 for the
	// double-precision path, 10^-20 in the high-precision (dd) variant.
	softeningSq float64

	accel []vec3.Vec3[T]
}

// NewDirectSimulator builds an unbound DirectSimulator. softeningSq should
// be 1e-15 for float64 scalars or 1e-20 for dd.DD, per spec.md 4.F.
func NewDirectSimulator[T scalar.Scalar[T]](softeningSq float64) *DirectSimulator[T] {
	return &DirectSimulator[T]{softeningSq: softeningSq}
}

func (d *DirectSimulator[T]) SetSystem(sys system.System[T]) {
	d.sys = sys
	d.accel = make([]vec3.Vec3[T], sys.Size())
}

func (d *DirectSimulator[T]) SetDt(dt T) error {
	if dt.Float64() <= 0 {
		return dynamo.ErrNonPositiveDt
	}
	d.dt = dt
	return nil
}

func (d *DirectSimulator[T]) SetG(g T) { d.g = g }
func (d *DirectSimulator[T]) Dt() T    { return d.dt }
func (d *DirectSimulator[T]) CurrentTime() T { return d.t }

// StepsPerFrame returns round(10^-2/dt), spec.md 4.E.
func (d *DirectSimulator[T]) StepsPerFrame() int {
	if d.dt.Float64() == 0 {
		return 0
	}
	return int(math.Round(0.01 / d.dt.Float64()))
}

// Step advances the bound System by one velocity-Verlet kick-drift-kick,
// spec.md 4.F. It returns false iff no System is bound.
func (d *DirectSimulator[T]) Step() bool {
	if d.sys == nil {
		return false
	}
	bodies := d.sys.Bodies()
	if len(d.accel) != len(bodies) {
		d.accel = make([]vec3.Vec3[T], len(bodies))
	}

	d.accelerate(bodies)
	half := d.dt.FromFloat64(0.5)
	halfDt := half.Mul(d.dt)

	for i := range bodies {
		bodies[i].Velocity = bodies[i].Velocity.Add(d.accel[i].Scale(halfDt))
	}
	for i := range bodies {
		bodies[i].Position = bodies[i].Position.Add(bodies[i].Velocity.Scale(d.dt))
	}

	d.accelerate(bodies)
	for i := range bodies {
		bodies[i].Velocity = bodies[i].Velocity.Add(d.accel[i].Scale(halfDt))
	}

	d.t = d.t.Add(d.dt)
	system.NotifyTime(d.sys, d.t)
	return true
}

// accelerate fills d.accel with a_i = sum_j G*m_j*(x_j-x_i)/|x_j-x_i|^3,
// iterating i<j and accumulating both sides symmetrically (spec.md 4.F),
// the same accumulate-both-sides shortcut internal/physics/nbody.go's
// computeForcesCPU uses.
func (d *DirectSimulator[T]) accelerate(bodies []body.Body[T]) {
	zero := d.dt.FromFloat64(0)
	for i := range d.accel {
		d.accel[i] = vec3.Zero(zero)
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			diff := bodies[j].Position.Sub(bodies[i].Position)
			r2 := diff.MagnitudeSquared()
			if r2.Float64() < d.softeningSq {
				continue
			}
			r := r2.Sqrt()
			r3 := r.Mul(r2)
			gOverR3 := d.g.Div(r3)

			d.accel[i] = d.accel[i].Add(diff.Scale(gOverR3.Mul(bodies[j].Mass)))
			d.accel[j] = d.accel[j].Sub(diff.Scale(gOverR3.Mul(bodies[i].Mass)))
		}
	}
}

// Run calls Step up to maxSteps times, invoking cb after every successful
// step, stopping early if Step returns false or the bound System's
// IsValid returns false (spec.md 4.E).
func (d *DirectSimulator[T]) Run(maxSteps int, cb StepCallback[T]) int {
	taken := 0
	for i := 0; i < maxSteps; i++ {
		if !d.Step() {
			break
		}
		taken++
		if cb != nil {
			cb(i, d.t, d.sys)
		}
		if !d.sys.IsValid() {
			break
		}
	}
	return taken
}
