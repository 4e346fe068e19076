package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, rows string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "minor.csv")
	if err := os.WriteFile(path, []byte(rows), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadSkipsShortRows(t *testing.T) {
	path := writeCatalog(t, "name,unused,e,a,i,omega,gm,w\n"+
		"Ceres,x,0.0758,2.7691,10.593,80.393,62.6284,73.597\n"+
		"TooShort,x,0.1\n")

	entries, err := Load(path, MainBelt)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "Ceres" {
		t.Errorf("expected Ceres, got %q", entries[0].Name)
	}
}

func TestLoadSkipsInvalidElements(t *testing.T) {
	path := writeCatalog(t, "name,unused,e,a,i,omega,gm,w\n"+
		"Negative-a,x,0.1,-1.0,0,0,null,0\n"+
		"Hyperbolic-e,x,1.2,2.0,0,0,null,0\n"+
		"Valid,x,0.1,2.0,0,0,null,0\n")

	entries, err := Load(path, MainBelt)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Valid" {
		t.Fatalf("expected only Valid to survive, got %+v", entries)
	}
}

func TestLoadLeadingDotField(t *testing.T) {
	path := writeCatalog(t, "name,unused,e,a,i,omega,gm,w\n"+
		"DotField,x,.05,1.5,0,0,null,0\n")

	entries, err := Load(path, MainBelt)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].E != 0.05 {
		t.Errorf("expected e=0.05, got %v", entries[0].E)
	}
}

func TestLoadMassFallbackChain(t *testing.T) {
	path := writeCatalog(t, "name,unused,e,a,i,omega,gm,w\n"+
		"HasGM,x,0.1,2.0,0,0,62.6284,0\n"+
		"NoGMMainBelt,x,0.1,2.0,0,0,null,0\n")

	entries, err := Load(path, MainBelt)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].MassSolar <= 0 {
		t.Errorf("expected positive mass from GM, got %v", entries[0].MassSolar)
	}
	wantFallback := mainBeltAverageMassKg / solarMassKg
	if entries[1].MassSolar != wantFallback {
		t.Errorf("expected main-belt fallback mass %v, got %v", wantFallback, entries[1].MassSolar)
	}
}

func TestLoadKuiperFallbackDiffersFromMainBelt(t *testing.T) {
	path := writeCatalog(t, "name,unused,e,a,i,omega,gm,w\n"+
		"NoGM,x,0.1,40.0,0,0,null,0\n")

	entries, err := Load(path, Kuiper)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := kuiperAverageMassKg / solarMassKg
	if entries[0].MassSolar != want {
		t.Errorf("expected kuiper fallback mass %v, got %v", want, entries[0].MassSolar)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv"), MainBelt); err == nil {
		t.Fatal("expected error opening missing file")
	}
}
