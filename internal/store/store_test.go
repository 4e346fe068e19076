package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/postusername/n-body-problem/internal/dynamo"
)

func sampleResult() dynamo.Result {
	return dynamo.Result{
		Scenario:       "twobody",
		SimulatorKind:  "direct",
		Dt:             0.01,
		G:              1.0,
		StepsRequested: 2,
		StepsTaken:     2,
		FinalTime:      0.02,
		InitialEnergy:  -0.5,
		FinalEnergy:    -0.5,
	}
}

func sampleStates() []StateSample {
	return []StateSample{
		{Time: 0.0, Bodies: [][6]float64{{-1, 0, 0, 0, 0.1, 0}, {1, 0, 0, 0, -0.1, 0}}},
		{Time: 0.01, Bodies: [][6]float64{{-1, 0.001, 0, 0, 0.1, 0}, {1, -0.001, 0, 0, -0.1, 0}}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleResult(), sampleStates())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "twobody" {
		t.Errorf("expected scenario 'twobody', got '%s'", meta.Scenario)
	}
	if meta.StepsTaken != 2 {
		t.Errorf("expected 2 steps taken, got %d", meta.StepsTaken)
	}

	samples, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("expected 2 samples, got %d", len(samples))
	}
	if len(samples[0].Bodies) != 2 {
		t.Errorf("expected 2 bodies per sample, got %d", len(samples[0].Bodies))
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(sampleResult(), sampleStates()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleResult(), sampleStates())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "states.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		t.Error("states.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "run.json")

	if err := ExportJSON(path, sampleResult(), sampleStates()); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected export file to be created")
	}
}
