// Package pm implements the Particle-Mesh Poisson solver spec.md 4.G
// specifies: Cloud-in-Cell mass assignment onto a regular grid, a
// Green's-function convolution in Fourier space via a 3-D FFT, a finite-
// difference potential-to-force conversion, and CIC force interpolation
// back onto particles, coupled to a first-order kick-drift integrator.
// Grounded on internal/audio/audio.go's use of github.com/mjibson/go-dsp/fft
// in the teacher repo (the only FFT precedent in the retrieval pack) and
// on internal/physics/nbody.go's pattern of a Simulator-owned scratch
// buffer sized once and reused across steps.
package pm

import (
	"math"

	"github.com/postusername/n-body-problem/internal/body"
	"github.com/postusername/n-body-problem/internal/dynamo"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/simulator"
	"github.com/postusername/n-body-problem/internal/system"
	"github.com/postusername/n-body-problem/internal/vec3"
)

// ForceMode selects between eagerly evaluating every grid force after the
// Poisson solve (Precomputed) or evaluating and memoizing forces lazily as
// bodies need them (Lazy), spec.md 4.G Phase 4.
type ForceMode int

const (
	Precomputed ForceMode = iota
	Lazy
)

// Default cell-size clamp and out-of-bounds adaptation threshold fraction,
// spec.md 4.G Phase 1/2.
const (
	defaultMinCellSize      = 1e-3
	defaultMaxCellSize      = 1e6
	outOfBoundsFractionAlarm = 0.25
	softeningCellSizeFactor  = 2.8
)

// PMSimulator advances a bound System with the Particle-Mesh method,
// spec.md 4.G. Grid arithmetic is carried out in plain float64 regardless
// of the System's scalar type T, following spec.md 9's note that "the PM
// path is performance-critical in double"; T only appears at the
// System/Body boundary.
type PMSimulator[T scalar.Scalar[T]] struct {
	sys system.System[T]
	dt  T
	g   float64
	t   T

	n int // grid side length

	boxMin, boxMax [3]float64
	cellSize       float64
	softening      float64
	minCellSize    float64
	maxCellSize    float64
	adaptive       bool
	boxInitialized bool
	needsAdapt     bool

	forceMode ForceMode

	density   []float64 // n^3
	potential []float64 // n^3
	spectrum  []complex128

	forceGrid  [][3]float64 // n^3, valid entries depend on forceMode
	forceKnown []bool       // Lazy mode memoization flags, reset each step

	outOfBoundsCount int
}

// NewPMSimulator builds a PMSimulator for an n x n x n grid (n should be a
// power of two in practice, spec.md 3) under gravitational constant g.
func NewPMSimulator[T scalar.Scalar[T]](n int, g float64) *PMSimulator[T] {
	if n < 2 {
		panic("pm: grid size must be at least 2")
	}
	return &PMSimulator[T]{
		n:           n,
		g:           g,
		minCellSize: defaultMinCellSize,
		maxCellSize: defaultMaxCellSize,
		adaptive:    true,
		forceMode:   Precomputed,
		density:     make([]float64, n*n*n),
		potential:   make([]float64, n*n*n),
		spectrum:    make([]complex128, n*n*n),
		forceGrid:   make([][3]float64, n*n*n),
		forceKnown:  make([]bool, n*n*n),
	}
}

func (p *PMSimulator[T]) SetSystem(sys system.System[T]) { p.sys = sys }

func (p *PMSimulator[T]) SetDt(dt T) error {
	if dt.Float64() <= 0 {
		return dynamo.ErrNonPositiveDt
	}
	p.dt = dt
	return nil
}

func (p *PMSimulator[T]) SetG(g T)          { p.g = g.Float64() }
func (p *PMSimulator[T]) Dt() T             { return p.dt }
func (p *PMSimulator[T]) CurrentTime() T    { return p.t }
func (p *PMSimulator[T]) SetAdaptiveBox(b bool)  { p.adaptive = b }
func (p *PMSimulator[T]) SetForceModePrecomputed() { p.forceMode = Precomputed }
func (p *PMSimulator[T]) SetForceModeLazy()        { p.forceMode = Lazy }

func (p *PMSimulator[T]) SetCellSizeLimits(min, max float64) {
	p.minCellSize, p.maxCellSize = min, max
}

// SetBoxSize forces the box to a fixed half-width around the origin,
// disabling adaptation until re-enabled.
func (p *PMSimulator[T]) SetBoxSize(halfWidth float64) {
	p.boxMin = [3]float64{-halfWidth, -halfWidth, -halfWidth}
	p.boxMax = [3]float64{halfWidth, halfWidth, halfWidth}
	p.recomputeCellSize()
	p.boxInitialized = true
	p.adaptive = false
}

func (p *PMSimulator[T]) StepsPerFrame() int {
	if p.dt.Float64() == 0 {
		return 0
	}
	return int(math.Round(0.01 / p.dt.Float64()))
}

// Grid inspection surface consumed by a visualizer, spec.md 6.
func (p *PMSimulator[T]) GetDensityGrid() []float64   { return p.density }
func (p *PMSimulator[T]) GetPotentialGrid() []float64 { return p.potential }
func (p *PMSimulator[T]) GetGridSize() int            { return p.n }
func (p *PMSimulator[T]) GetCellSize() float64        { return p.cellSize }
func (p *PMSimulator[T]) GetBoxMin() [3]float64       { return p.boxMin }
func (p *PMSimulator[T]) GetBoxMax() [3]float64       { return p.boxMax }
func (p *PMSimulator[T]) GetSoftening() float64       { return p.softening }
func (p *PMSimulator[T]) GetOutOfBoundsCount() int    { return p.outOfBoundsCount }

// Step advances the bound System by one PM kick-drift step, spec.md 4.G.
// It returns false iff no System is bound or it is empty.
func (p *PMSimulator[T]) Step() bool {
	if p.sys == nil || p.sys.Size() == 0 {
		return false
	}
	bodies := p.sys.Bodies()

	if !p.boxInitialized || p.needsAdapt {
		p.selectBox(bodies)
	}

	p.assignMass(bodies)
	p.solvePoisson()

	for i := range p.forceKnown {
		p.forceKnown[i] = false
	}
	if p.forceMode == Precomputed {
		p.precomputeForces()
	}

	p.integrate(bodies)

	p.t = p.t.Add(p.dt)
	system.NotifyTime(p.sys, p.t)
	return true
}

// selectBox implements spec.md 4.G Phase 1: center of mass, maximum
// distance from it, axis-aligned span, and the resulting cubic box.
func (p *PMSimulator[T]) selectBox(bodies []body.Body[T]) {
	var cx, cy, cz, totalMass float64
	for _, b := range bodies {
		x, y, z := b.Position.Floats()
		m := b.Mass.Float64()
		cx += m * x
		cy += m * y
		cz += m * z
		totalMass += m
	}
	if totalMass > 0 {
		cx, cy, cz = cx/totalMass, cy/totalMass, cz/totalMass
	}

	var dMax float64
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, b := range bodies {
		x, y, z := b.Position.Floats()
		d := math.Sqrt((x-cx)*(x-cx) + (y-cy)*(y-cy) + (z-cz)*(z-cz))
		if d > dMax {
			dMax = d
		}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		minZ, maxZ = math.Min(minZ, z), math.Max(maxZ, z)
	}
	span := math.Max(maxX-minX, math.Max(maxY-minY, maxZ-minZ))
	systemSize := math.Max(span, 2*dMax)
	if systemSize == 0 {
		systemSize = 1
	}
	L := 2 * systemSize

	cellSize := L / float64(p.n)
	clamped := math.Min(math.Max(cellSize, p.minCellSize), p.maxCellSize)
	if clamped != cellSize {
		L = clamped * float64(p.n)
	}

	p.boxMin = [3]float64{cx - L/2, cy - L/2, cz - L/2}
	p.boxMax = [3]float64{cx + L/2, cy + L/2, cz + L/2}
	p.recomputeCellSize()
	p.boxInitialized = true
	p.needsAdapt = false
}

func (p *PMSimulator[T]) recomputeCellSize() {
	L := p.boxMax[0] - p.boxMin[0]
	p.cellSize = L / float64(p.n)
	p.softening = softeningCellSizeFactor * p.cellSize
}

func (p *PMSimulator[T]) boxSide() float64 {
	return p.boxMax[0] - p.boxMin[0]
}

// assignMass implements spec.md 4.G Phase 2: Cloud-in-Cell deposit of
// every body's mass onto the eight surrounding grid vertices, tracking how
// many bodies fall outside the current box.
func (p *PMSimulator[T]) assignMass(bodies []body.Body[T]) {
	for i := range p.density {
		p.density[i] = 0
	}
	n := p.n
	cellVolume := p.cellSize * p.cellSize * p.cellSize
	p.outOfBoundsCount = 0

	for _, b := range bodies {
		x, y, z := b.Position.Floats()
		mass := b.Mass.Float64()

		if x < p.boxMin[0] || x > p.boxMax[0] ||
			y < p.boxMin[1] || y > p.boxMax[1] ||
			z < p.boxMin[2] || z > p.boxMax[2] {
			p.outOfBoundsCount++
		}

		ux := (x - p.boxMin[0]) / p.cellSize
		uy := (y - p.boxMin[1]) / p.cellSize
		uz := (z - p.boxMin[2]) / p.cellSize

		i0, fx := splitFloor(ux)
		j0, fy := splitFloor(uy)
		k0, fz := splitFloor(uz)

		for di := 0; di < 2; di++ {
			wx := fx
			if di == 0 {
				wx = 1 - fx
			}
			for dj := 0; dj < 2; dj++ {
				wy := fy
				if dj == 0 {
					wy = 1 - fy
				}
				for dk := 0; dk < 2; dk++ {
					wz := fz
					if dk == 0 {
						wz = 1 - fz
					}
					weight := wx * wy * wz
					idx := idx3(wrapIndex(i0+di, n), wrapIndex(j0+dj, n), wrapIndex(k0+dk, n), n)
					p.density[idx] += mass * weight / cellVolume
				}
			}
		}
	}

	if len(bodies) > 0 && p.adaptive && p.outOfBoundsCount > len(bodies)/4 {
		p.needsAdapt = true
	}
}

// splitFloor returns the integer floor and fractional remainder of u,
// spec.md 4.G Phase 2's (i, fx) = (floor(u), u-floor(u)) decomposition.
func splitFloor(u float64) (int, float64) {
	i := int(math.Floor(u))
	return i, u - float64(i)
}

// solvePoisson implements spec.md 4.G Phase 3: forward FFT, Green's
// function multiplication, backward FFT.
func (p *PMSimulator[T]) solvePoisson() {
	n := p.n
	for i, rho := range p.density {
		p.spectrum[i] = complex(rho, 0)
	}

	forwardFFT3D(p.spectrum, n)

	L := p.boxSide()
	k0 := 2 * math.Pi / L
	for ix := 0; ix < n; ix++ {
		kx := float64(waveNumberIndex(ix, n)) * k0
		for iy := 0; iy < n; iy++ {
			ky := float64(waveNumberIndex(iy, n)) * k0
			for iz := 0; iz < n; iz++ {
				kz := float64(waveNumberIndex(iz, n)) * k0
				k2 := kx*kx + ky*ky + kz*kz
				idx := idx3(ix, iy, iz, n)
				if k2 == 0 {
					p.spectrum[idx] = 0
					continue
				}
				greens := complex(-4*math.Pi*p.g/k2, 0)
				p.spectrum[idx] *= greens
			}
		}
	}

	backwardFFT3D(p.spectrum, n)

	for i := range p.potential {
		p.potential[i] = real(p.spectrum[i])
	}
}

// forceAt returns the finite-difference force at grid point (i,j,k),
// spec.md 4.G Phase 4, memoizing the result when running in Lazy mode.
func (p *PMSimulator[T]) forceAt(i, j, k int) [3]float64 {
	n := p.n
	idx := idx3(i, j, k, n)
	if p.forceMode == Lazy && p.forceKnown[idx] {
		return p.forceGrid[idx]
	}

	ip, im := wrapIndex(i+1, n), wrapIndex(i-1, n)
	jp, jm := wrapIndex(j+1, n), wrapIndex(j-1, n)
	kp, km := wrapIndex(k+1, n), wrapIndex(k-1, n)

	h := p.cellSize
	fx := -(p.potential[idx3(ip, j, k, n)] - p.potential[idx3(im, j, k, n)]) / (2 * h)
	fy := -(p.potential[idx3(i, jp, k, n)] - p.potential[idx3(i, jm, k, n)]) / (2 * h)
	fz := -(p.potential[idx3(i, j, kp, n)] - p.potential[idx3(i, j, km, n)]) / (2 * h)

	f := [3]float64{fx, fy, fz}
	p.forceGrid[idx] = f
	p.forceKnown[idx] = true
	return f
}

func (p *PMSimulator[T]) precomputeForces() {
	n := p.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				idx := idx3(i, j, k, n)
				p.forceGrid[idx] = p.forceAtDirect(i, j, k)
				p.forceKnown[idx] = true
			}
		}
	}
}

// forceAtDirect computes the finite-difference force without consulting
// the memoization cache, used by precomputeForces to fill the whole grid
// unconditionally.
func (p *PMSimulator[T]) forceAtDirect(i, j, k int) [3]float64 {
	n := p.n
	ip, im := wrapIndex(i+1, n), wrapIndex(i-1, n)
	jp, jm := wrapIndex(j+1, n), wrapIndex(j-1, n)
	kp, km := wrapIndex(k+1, n), wrapIndex(k-1, n)
	h := p.cellSize
	return [3]float64{
		-(p.potential[idx3(ip, j, k, n)] - p.potential[idx3(im, j, k, n)]) / (2 * h),
		-(p.potential[idx3(i, jp, k, n)] - p.potential[idx3(i, jm, k, n)]) / (2 * h),
		-(p.potential[idx3(i, j, kp, n)] - p.potential[idx3(i, j, km, n)]) / (2 * h),
	}
}

// integrate implements spec.md 4.G Phase 5 (CIC force interpolation) and
// Phase 6 (simple kick-drift, not velocity-Verlet — see spec.md 4.G).
func (p *PMSimulator[T]) integrate(bodies []body.Body[T]) {
	n := p.n
	dtF := p.dt.Float64()
	zero := p.dt.FromFloat64(0)

	for i := range bodies {
		x, y, z := bodies[i].Position.Floats()

		ux := (x - p.boxMin[0]) / p.cellSize
		uy := (y - p.boxMin[1]) / p.cellSize
		uz := (z - p.boxMin[2]) / p.cellSize

		i0, fx := splitFloor(ux)
		j0, fy := splitFloor(uy)
		k0, fz := splitFloor(uz)

		var ax, ay, az float64
		for di := 0; di < 2; di++ {
			wx := fx
			if di == 0 {
				wx = 1 - fx
			}
			for dj := 0; dj < 2; dj++ {
				wy := fy
				if dj == 0 {
					wy = 1 - fy
				}
				for dk := 0; dk < 2; dk++ {
					wz := fz
					if dk == 0 {
						wz = 1 - fz
					}
					weight := wx * wy * wz
					f := p.forceAt(wrapIndex(i0+di, n), wrapIndex(j0+dj, n), wrapIndex(k0+dk, n))
					ax += weight * f[0]
					ay += weight * f[1]
					az += weight * f[2]
				}
			}
		}

		dv := vec3.FromFloats(zero, ax*dtF, ay*dtF, az*dtF)
		bodies[i].Velocity = bodies[i].Velocity.Add(dv)
		bodies[i].Position = bodies[i].Position.Add(bodies[i].Velocity.Scale(p.dt))
	}
}

// Run calls Step up to maxSteps times, invoking cb after every successful
// step, stopping early if Step returns false or the bound System's
// IsValid returns false, spec.md 4.E. It implements simulator.Simulator.
func (p *PMSimulator[T]) Run(maxSteps int, cb simulator.StepCallback[T]) int {
	taken := 0
	for i := 0; i < maxSteps; i++ {
		if !p.Step() {
			break
		}
		taken++
		if cb != nil {
			cb(i, p.t, p.sys)
		}
		if !p.sys.IsValid() {
			break
		}
	}
	return taken
}

var _ simulator.Simulator[scalar.F64] = (*PMSimulator[scalar.F64])(nil)
