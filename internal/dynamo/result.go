package dynamo

// Result summarizes a completed (or aborted) simulation run. It is the
// shape internal/store persists and exports and the CLI's run report prints,
// following the teacher's dynamo.Result/storage.RunMetadata split but
// collapsed into one record sized for the gravity domain instead of a
// generic state/control trajectory.
type Result struct {
	Scenario          string
	SimulatorKind     string
	Dt                float64
	G                 float64
	StepsRequested    int
	StepsTaken        int
	FinalTime         float64
	InitialEnergy     float64
	FinalEnergy       float64
	EnergyDrift       float64
	MomentumDrift     float64
	CenterOfMassDrift float64
	Stability         float64
	Diverged          bool
	DivergeReason     string
}

// EnergyDriftRatio returns |E(T)-E(0)|/|E(0)|, the quantity spec.md 8 bounds
// for the figure-eight and Kepler scenarios. It returns 0 when the initial
// energy is exactly zero to avoid a division by zero on a degenerate system.
func (r Result) EnergyDriftRatio() float64 {
	if r.InitialEnergy == 0 {
		return 0
	}
	d := r.FinalEnergy - r.InitialEnergy
	if d < 0 {
		d = -d
	}
	base := r.InitialEnergy
	if base < 0 {
		base = -base
	}
	return d / base
}
