package metrics

import (
	"math"

	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/system"
)

// MomentumDrift tracks the maximum growth of |total momentum| relative to
// its value at the first observed step, complementing System.IsValid's own
// fixed-tolerance momentum check (spec.md 3) with a value a driver can plot
// over the course of a run.
type MomentumDrift[T scalar.Scalar[T]] struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift[T scalar.Scalar[T]]() *MomentumDrift[T] {
	return &MomentumDrift[T]{}
}

func (m *MomentumDrift[T]) Name() string { return "momentum_drift" }

func (m *MomentumDrift[T]) Observe(step int, t T, sys system.System[T]) {
	px, py, pz := 0.0, 0.0, 0.0
	for _, b := range sys.Bodies() {
		vx, vy, vz := b.Velocity.Floats()
		mass := b.Mass.Float64()
		px += mass * vx
		py += mass * vy
		pz += mass * vz
	}
	mag := math.Sqrt(px*px + py*py + pz*pz)

	if m.samples == 0 {
		m.initial = mag
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Abs(mag-m.initial))
}

func (m *MomentumDrift[T]) Value() float64 { return m.maxDrift }

func (m *MomentumDrift[T]) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// CenterOfMassDrift tracks the maximum displacement of the mass-weighted
// centroid from its position at the first observed step, the quantity
// spec.md 3's center-of-mass invariant bounds per scenario (spec.md 8).
type CenterOfMassDrift[T scalar.Scalar[T]] struct {
	initialX, initialY, initialZ float64
	maxDrift                     float64
	samples                      int
}

func NewCenterOfMassDrift[T scalar.Scalar[T]]() *CenterOfMassDrift[T] {
	return &CenterOfMassDrift[T]{}
}

func (c *CenterOfMassDrift[T]) Name() string { return "center_of_mass_drift" }

func (c *CenterOfMassDrift[T]) Observe(step int, t T, sys system.System[T]) {
	var cx, cy, cz, totalMass float64
	for _, b := range sys.Bodies() {
		x, y, z := b.Position.Floats()
		mass := b.Mass.Float64()
		cx += mass * x
		cy += mass * y
		cz += mass * z
		totalMass += mass
	}
	if totalMass > 0 {
		cx, cy, cz = cx/totalMass, cy/totalMass, cz/totalMass
	}

	if c.samples == 0 {
		c.initialX, c.initialY, c.initialZ = cx, cy, cz
	}
	c.samples++

	dx, dy, dz := cx-c.initialX, cy-c.initialY, cz-c.initialZ
	drift := math.Sqrt(dx*dx + dy*dy + dz*dz)
	c.maxDrift = math.Max(c.maxDrift, drift)
}

func (c *CenterOfMassDrift[T]) Value() float64 { return c.maxDrift }

func (c *CenterOfMassDrift[T]) Reset() {
	c.initialX, c.initialY, c.initialZ = 0, 0, 0
	c.maxDrift = 0
	c.samples = 0
}
