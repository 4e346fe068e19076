// Command nbodysim is the CLI driver over internal/simulator, internal/pm
// and internal/system: run a scenario, list past runs, benchmark the two
// Simulator implementations against each other, and inspect presets.
// Modeled on cmd/dynsim/main.go's cobra command tree and flag-override
// pattern in the teacher repo, cut down to the five scenarios and two
// simulator kinds this domain has instead of dynsim's open registry of
// dynamical models.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/postusername/n-body-problem/internal/catalog"
	"github.com/postusername/n-body-problem/internal/config"
	"github.com/postusername/n-body-problem/internal/dd"
	"github.com/postusername/n-body-problem/internal/dynamo"
	"github.com/postusername/n-body-problem/internal/live"
	"github.com/postusername/n-body-problem/internal/metrics"
	"github.com/postusername/n-body-problem/internal/pm"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/simulator"
	"github.com/postusername/n-body-problem/internal/store"
	"github.com/postusername/n-body-problem/internal/system"
)

var (
	dataDir string

	dt             float64
	duration       float64
	g              float64
	simulatorKind  string
	precision      string
	eccentricity   float64
	ringBodies     int
	catalogPath    string
	catalogBelt    string
	gridSize       int
	adaptiveBox    bool
	lazyForce      bool
	configFile     string
	preset         string
	liveMode       bool

	benchSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nbodysim",
		Short: "gravitational n-body simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbodysim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario (twobody, threebody, ring, keplerring, solarsystem)",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	runCmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	runCmd.Flags().StringVar(&simulatorKind, "simulator", "direct", "simulator: direct or pm")
	runCmd.Flags().StringVar(&precision, "precision", "f64", "precision: f64 or dd")
	runCmd.Flags().Float64Var(&eccentricity, "eccentricity", config.DefaultEccentricity, "orbital eccentricity (twobody)")
	runCmd.Flags().IntVar(&ringBodies, "ring-bodies", config.DefaultRingBodies, "number of bodies (ring)")
	runCmd.Flags().StringVar(&catalogPath, "catalog", "", "minor body catalog CSV path (solarsystem)")
	runCmd.Flags().StringVar(&catalogBelt, "catalog-belt", "main_belt", "catalog belt: main_belt or kuiper")
	runCmd.Flags().IntVar(&gridSize, "grid-size", config.DefaultGridSize, "PM grid size per axis")
	runCmd.Flags().BoolVar(&adaptiveBox, "adaptive-box", true, "PM adaptive box sizing")
	runCmd.Flags().BoolVar(&lazyForce, "lazy-force", false, "PM lazy (memoized-on-demand) force evaluation")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&liveMode, "live", false, "run with a live bubbletea view instead of persisting to disk")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list past runs",
		RunE:  listRuns,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "compare direct and PM simulator wall-clock cost",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 2000, "steps taken by each simulator")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's metadata and trajectory as one JSON document",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}

	rootCmd.AddCommand(runCmd, listCmd, benchCmd, presetsCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig builds a Config for scenario from, in increasing priority,
// the default, a named preset, a config file, and CLI flags explicitly
// set on cmd — the same preset-then-file-then-flags precedence
// runSimulation follows in the teacher repo.
func resolveConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario

	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Scenario = scenario
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("g") {
		cfg.G = g
	}
	if cmd.Flags().Changed("simulator") {
		cfg.Simulator = simulatorKind
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = precision
	}
	if cmd.Flags().Changed("eccentricity") {
		cfg.Init.Eccentricity = eccentricity
	}
	if cmd.Flags().Changed("ring-bodies") {
		cfg.Init.RingBodies = ringBodies
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Init.CatalogPath = catalogPath
	}
	if cmd.Flags().Changed("catalog-belt") {
		cfg.Init.CatalogBelt = catalogBelt
	}
	if cmd.Flags().Changed("grid-size") {
		cfg.PM.GridSize = gridSize
	}
	if cmd.Flags().Changed("adaptive-box") {
		cfg.PM.AdaptiveBox = adaptiveBox
	}
	if cmd.Flags().Changed("lazy-force") {
		cfg.PM.LazyForce = lazyForce
	}

	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Printf("running %s (%s/%s)...\n", cfg.Scenario, cfg.Simulator, cfg.Precision)
	start := time.Now()

	var result dynamo.Result
	var samples []store.StateSample
	if cfg.Precision == "dd" {
		result, samples, err = runWithPrecision[dd.DD](cfg)
	} else {
		result, samples, err = runWithPrecision[scalar.F64](cfg)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if liveMode {
		fmt.Printf("live run finished in %v\n", elapsed)
		return nil
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(result, samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d / %d\n", result.StepsTaken, result.StepsRequested)
	fmt.Printf("final time: %.6f\n", result.FinalTime)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Printf("momentum drift: %.3e\n", result.MomentumDrift)
	fmt.Printf("center of mass drift: %.3e\n", result.CenterOfMassDrift)
	fmt.Printf("stability: %.3f\n", result.Stability)
	if result.Diverged {
		fmt.Printf("diverged: %s\n", result.DivergeReason)
	}
	return nil
}

// buildSystem constructs the System[T] cfg.Scenario names. Only
// solarsystem consults cfg.Init.CatalogPath; the other generators take no
// external data.
func buildSystem[T scalar.Scalar[T]](cfg *config.Config) (system.System[T], error) {
	var zero T
	switch cfg.Scenario {
	case "twobody":
		return system.NewTwoBody[T](zero.FromFloat64(cfg.Init.Eccentricity), zero.FromFloat64(cfg.G)), nil
	case "threebody":
		return system.NewThreeBody[T](zero.FromFloat64(cfg.G)), nil
	case "ring":
		return system.NewRing[T](cfg.Init.RingBodies, zero.FromFloat64(cfg.G)), nil
	case "keplerring":
		return system.NewKeplerRing[T](cfg.Init.RingBodies, zero.FromFloat64(cfg.G)), nil
	case "solarsystem":
		var minor []catalog.Entry
		if cfg.Init.CatalogPath != "" {
			belt := catalog.MainBelt
			if cfg.Init.CatalogBelt == "kuiper" {
				belt = catalog.Kuiper
			}
			var err error
			minor, err = catalog.Load(cfg.Init.CatalogPath, belt)
			if err != nil {
				return nil, fmt.Errorf("failed to load catalog: %w", err)
			}
		}
		return system.NewSolarSystem[T](zero.FromFloat64(cfg.G), minor), nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", cfg.Scenario)
	}
}

// buildSimulator constructs the Simulator[T] cfg.Simulator names, applying
// the PM tuning knobs in cfg.PM when the pm kind is chosen. dd.DD carries
// a tighter softening floor than float64, spec.md 4.F.
func buildSimulator[T scalar.Scalar[T]](cfg *config.Config) simulator.Simulator[T] {
	if cfg.Simulator == "pm" {
		p := pm.NewPMSimulator[T](cfg.PM.GridSize, cfg.G)
		p.SetAdaptiveBox(cfg.PM.AdaptiveBox)
		if !cfg.PM.AdaptiveBox && cfg.PM.FixedBoxHalf > 0 {
			p.SetBoxSize(cfg.PM.FixedBoxHalf)
		}
		if cfg.PM.MinCellSize > 0 && cfg.PM.MaxCellSize > 0 {
			p.SetCellSizeLimits(cfg.PM.MinCellSize, cfg.PM.MaxCellSize)
		}
		if cfg.PM.LazyForce {
			p.SetForceModeLazy()
		} else {
			p.SetForceModePrecomputed()
		}
		return p
	}

	softeningSq := 1e-15
	if cfg.Precision == "dd" {
		softeningSq = 1e-20
	}
	return simulator.NewDirectSimulator[T](softeningSq)
}

// runWithPrecision instantiates System/Simulator at precision T, runs
// cfg.Steps() steps, and returns a Result plus the sampled trajectory
// (nil when running live, since the bubbletea view owns the loop instead).
func runWithPrecision[T scalar.Scalar[T]](cfg *config.Config) (dynamo.Result, []store.StateSample, error) {
	sys, err := buildSystem[T](cfg)
	if err != nil {
		return dynamo.Result{}, nil, err
	}
	sim := buildSimulator[T](cfg)
	sim.SetSystem(sys)

	var zero T
	if err := sim.SetDt(zero.FromFloat64(cfg.Dt)); err != nil {
		return dynamo.Result{}, nil, err
	}
	sim.SetG(zero.FromFloat64(cfg.G))

	steps := cfg.Steps()

	if liveMode {
		m := live.NewModel[T](sim, sys, cfg.Scenario, sim.StepsPerFrame(), steps)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			return dynamo.Result{}, nil, err
		}
		return dynamo.Result{Scenario: cfg.Scenario, SimulatorKind: cfg.Simulator, Dt: cfg.Dt, G: cfg.G}, nil, nil
	}

	initialEnergy := sys.GraphValue().Float64()

	sampleEvery := 1
	if steps > 2000 {
		sampleEvery = steps / 2000
	}
	samples := make([]store.StateSample, 0, steps/sampleEvery+1)
	samples = append(samples, sampleState(0, sys))

	energyDrift := metrics.NewEnergyDrift[T]()
	momentumDrift := metrics.NewMomentumDrift[T]()
	comDrift := metrics.NewCenterOfMassDrift[T]()
	stability := metrics.NewStability[T](stabilityThreshold(sys))
	energyDrift.Observe(0, zero, sys)
	momentumDrift.Observe(0, zero, sys)
	comDrift.Observe(0, zero, sys)
	stability.Observe(0, zero, sys)

	taken := sim.Run(steps, func(step int, t T, s system.System[T]) {
		energyDrift.Observe(step, t, s)
		momentumDrift.Observe(step, t, s)
		comDrift.Observe(step, t, s)
		stability.Observe(step, t, s)
		if (step+1)%sampleEvery == 0 {
			samples = append(samples, sampleState(t.Float64(), s))
		}
	})

	diverged := taken < steps || !sys.IsValid()
	result := dynamo.Result{
		Scenario:          cfg.Scenario,
		SimulatorKind:     cfg.Simulator,
		Dt:                cfg.Dt,
		G:                 cfg.G,
		StepsRequested:    steps,
		StepsTaken:        taken,
		FinalTime:         sim.CurrentTime().Float64(),
		InitialEnergy:     initialEnergy,
		FinalEnergy:       sys.GraphValue().Float64(),
		EnergyDrift:       energyDrift.Value(),
		MomentumDrift:     momentumDrift.Value(),
		CenterOfMassDrift: comDrift.Value(),
		Stability:         stability.Value(),
		Diverged:          diverged,
	}
	if diverged {
		result.DivergeReason = "system invariants violated before reaching the requested step count"
	}
	return result, samples, nil
}

// stabilityThreshold picks a bound distance from the origin for
// metrics.Stability, scaled to the scenario's own initial extent rather
// than a fixed constant, since a Ring's radius-1 orbit and a SolarSystem's
// tens-of-AU orbits have nothing in common to compare against.
func stabilityThreshold[T scalar.Scalar[T]](sys system.System[T]) float64 {
	maxDist := 0.0
	for _, b := range sys.Bodies() {
		if d := b.Position.Magnitude().Float64(); d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		return 10.0
	}
	return 10.0 * maxDist
}

func sampleState[T scalar.Scalar[T]](t float64, sys system.System[T]) store.StateSample {
	bodies := sys.Bodies()
	out := make([][6]float64, len(bodies))
	for i, b := range bodies {
		x, y, z := b.Position.Floats()
		vx, vy, vz := b.Velocity.Floats()
		out[i] = [6]float64{x, y, z, vx, vy, vz}
	}
	return store.StateSample{Time: t, Bodies: out}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tSIM\tTIMESTAMP\tDT\tSTEPS\tE-DRIFT\tP-DRIFT\tCOM-DRIFT\tSTABILITY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.6f\t%d\t%.3e\t%.3e\t%.3e\t%.3f\n",
			run.ID,
			run.Scenario,
			run.SimulatorKind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dt,
			run.StepsTaken,
			run.EnergyDrift,
			run.MomentumDrift,
			run.CenterOfMassDrift,
			run.Stability,
		)
	}
	return w.Flush()
}

// benchScenario times a matched-step run of DirectSimulator against
// PMSimulator on the same scenario, following benchModel's structure in
// the teacher repo — applied here to comparing the two force evaluation
// strategies rather than sweeping dt/duration over one model.
func benchScenario(cmd *cobra.Command, args []string) error {
	scenario := args[0]

	fmt.Printf("benchmarking %s over %d steps\n\n", scenario, benchSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIMULATOR\tSTEPS\tTIME\tSTEPS/SEC")

	for _, kind := range []string{"direct", "pm"} {
		cfg := config.DefaultConfig()
		cfg.Scenario = scenario
		cfg.Simulator = kind
		if err := cfg.Validate(); err != nil {
			return err
		}

		sys, err := buildSystem[scalar.F64](cfg)
		if err != nil {
			return err
		}
		sim := buildSimulator[scalar.F64](cfg)
		sim.SetSystem(sys)
		var zero scalar.F64
		if err := sim.SetDt(zero.FromFloat64(cfg.Dt)); err != nil {
			return err
		}
		sim.SetG(zero.FromFloat64(cfg.G))

		start := time.Now()
		taken := sim.Run(benchSteps, nil)
		elapsed := time.Since(start)

		rate := float64(taken) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%v\t%.1f\n", kind, taken, elapsed, rate)
	}

	return w.Flush()
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := dynamo.Result{
		Scenario:          meta.Scenario,
		SimulatorKind:     meta.SimulatorKind,
		Dt:                meta.Dt,
		G:                 meta.G,
		StepsRequested:    meta.StepsRequested,
		StepsTaken:        meta.StepsTaken,
		FinalTime:         meta.FinalTime,
		InitialEnergy:     meta.InitialEnergy,
		FinalEnergy:       meta.FinalEnergy,
		EnergyDrift:       meta.EnergyDrift,
		MomentumDrift:     meta.MomentumDrift,
		CenterOfMassDrift: meta.CenterOfMassDrift,
		Stability:         meta.Stability,
		Diverged:          meta.Diverged,
		DivergeReason:     meta.DivergeReason,
	}
	return store.ExportJSONStdout(result, states)
}
