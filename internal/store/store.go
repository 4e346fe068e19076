// Package store persists completed runs to disk: JSON run metadata plus a
// per-step CSV state dump, following internal/storage/store.go in the
// teacher repo field-for-field, adapted from a flat []float64 state vector
// to the fixed per-body Position/Velocity columns a system.System[T]
// produces.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/postusername/n-body-problem/internal/dynamo"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the JSON sidecar written next to a run's state dump,
// following storage.RunMetadata verbatim but sourced from dynamo.Result
// instead of a Metrics map keyed by ad hoc string names.
type RunMetadata struct {
	ID                string    `json:"id"`
	Scenario          string    `json:"scenario"`
	SimulatorKind     string    `json:"simulator_kind"`
	Timestamp         time.Time `json:"timestamp"`
	Dt                float64   `json:"dt"`
	G                 float64   `json:"g"`
	StepsRequested    int       `json:"steps_requested"`
	StepsTaken        int       `json:"steps_taken"`
	FinalTime         float64   `json:"final_time"`
	InitialEnergy     float64   `json:"initial_energy"`
	FinalEnergy       float64   `json:"final_energy"`
	EnergyDrift       float64   `json:"energy_drift"`
	MomentumDrift     float64   `json:"momentum_drift"`
	CenterOfMassDrift float64   `json:"center_of_mass_drift"`
	Stability         float64   `json:"stability"`
	Diverged          bool      `json:"diverged"`
	DivergeReason     string    `json:"diverge_reason,omitempty"`
}

// StateSample is one recorded step of a run: simulation time plus every
// body's position and velocity, flattened in body order.
type StateSample struct {
	Time   float64
	Bodies [][6]float64 // x, y, z, vx, vy, vz per body
}

// Save writes metadata.json and states.csv for one run under a fresh
// directory named after the scenario and current time, and returns the
// generated run ID.
func (s *Store) Save(result dynamo.Result, samples []StateSample) (string, error) {
	runID := fmt.Sprintf("%s_%d", result.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:                runID,
		Scenario:          result.Scenario,
		SimulatorKind:     result.SimulatorKind,
		Timestamp:         time.Now(),
		Dt:                result.Dt,
		G:                 result.G,
		StepsRequested:    result.StepsRequested,
		StepsTaken:        result.StepsTaken,
		FinalTime:         result.FinalTime,
		InitialEnergy:     result.InitialEnergy,
		FinalEnergy:       result.FinalEnergy,
		EnergyDrift:       result.EnergyDrift,
		MomentumDrift:     result.MomentumDrift,
		CenterOfMassDrift: result.CenterOfMassDrift,
		Stability:         result.Stability,
		Diverged:          result.Diverged,
		DivergeReason:     result.DivergeReason,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeStatesCSV(runDir, samples); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeStatesCSV(runDir string, samples []StateSample) error {
	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(samples) == 0 {
		return nil
	}

	numBodies := len(samples[0].Bodies)
	header := []string{"time"}
	for i := 0; i < numBodies; i++ {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i), fmt.Sprintf("z%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i), fmt.Sprintf("vz%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, sample := range samples {
		row := []string{strconv.FormatFloat(sample.Time, 'g', -1, 64)}
		for _, b := range sample.Bodies {
			for _, v := range b {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back a run's states.csv, tolerating a variable body
// count by inferring it from the header row.
func (s *Store) LoadStates(runID string) ([]StateSample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []StateSample{}, nil
	}

	numBodies := (len(records[0]) - 1) / 6
	samples := make([]StateSample, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 1 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		sample := StateSample{Time: t, Bodies: make([][6]float64, 0, numBodies)}
		for b := 0; b < numBodies; b++ {
			base := 1 + b*6
			if base+6 > len(record) {
				break
			}
			var body [6]float64
			ok := true
			for c := 0; c < 6; c++ {
				v, err := strconv.ParseFloat(record[base+c], 64)
				if err != nil {
					ok = false
					break
				}
				body[c] = v
			}
			if !ok {
				continue
			}
			sample.Bodies = append(sample.Bodies, body)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
