package store

import (
	"encoding/json"
	"os"

	"github.com/postusername/n-body-problem/internal/dynamo"
)

// ExportData bundles a run's metadata and full state trajectory into one
// JSON document, for external plotting tools that don't want to parse the
// CSV/JSON pair states.csv/metadata.json normally split across.
type ExportData struct {
	RunMetadata
	Samples []StateSample `json:"samples"`
}

func ExportJSON(path string, result dynamo.Result, samples []StateSample) error {
	data := exportData(result, samples)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONStdout(result dynamo.Result, samples []StateSample) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(result, samples))
}

func exportData(result dynamo.Result, samples []StateSample) ExportData {
	return ExportData{
		RunMetadata: RunMetadata{
			Scenario:       result.Scenario,
			SimulatorKind:  result.SimulatorKind,
			Dt:             result.Dt,
			G:              result.G,
			StepsRequested: result.StepsRequested,
			StepsTaken:     result.StepsTaken,
			FinalTime:      result.FinalTime,
			InitialEnergy:  result.InitialEnergy,
			FinalEnergy:    result.FinalEnergy,
			EnergyDrift:    result.EnergyDrift,
			MomentumDrift:     result.MomentumDrift,
			CenterOfMassDrift: result.CenterOfMassDrift,
			Stability:         result.Stability,
			Diverged:       result.Diverged,
			DivergeReason:  result.DivergeReason,
		},
		Samples: samples,
	}
}
