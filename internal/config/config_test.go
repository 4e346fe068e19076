package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "twobody" {
		t.Errorf("expected scenario twobody, got %s", cfg.Scenario)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("twobody", "eccentric")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Init.Eccentricity != 0.5 {
		t.Errorf("expected eccentricity 0.5, got %f", cfg.Init.Eccentricity)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	cfg := GetPreset("twobody", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "eccentric")
	if cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("ring")
	if len(presets) == 0 {
		t.Error("expected presets for ring")
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestValidateRejectsUnknownScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestValidateRejectsSmallRing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "ring"
	cfg.Init.RingBodies = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for a ring with fewer than 3 bodies")
	}
}

func TestSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0
	if got := cfg.Steps(); got != 10 {
		t.Errorf("expected 10 steps, got %d", got)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")

	cfg := GetPreset("ring", "tight")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Scenario != cfg.Scenario || loaded.Init.RingBodies != cfg.Init.RingBodies {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/scenario.yaml"); err == nil {
		t.Error("expected error loading a missing file")
	}
}
