package ml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoad_RoundTripAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "model.json")

	m, _, err := Train(context.Background(), sampleExamples(), DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if err := Save(path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := Features{Rating: 4, Budget: 22000, Days: 5, TravelType: "leisure", DestinationLikeRate: 0.8}
	p1, _ := m.PredictProbability(f)
	p2, _ := got.PredictProbability(f)
	if p1 != p2 {
		t.Fatalf("prediction changed after round trip: %v vs %v", p1, p2)
	}

	// second save replaces the file and leaves no temp files behind
	m.Bias += 1
	if err := Save(path, m); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 || entries[0].Name() != "model.json" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected files in model dir: %v", names)
	}
	again, _ := Load(path)
	if again.Bias != m.Bias {
		t.Fatalf("expected overwritten bias %v, got %v", m.Bias, again.Bias)
	}
}

func TestSave_RejectsInvalidModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	if err := Save(path, &Model{Version: ModelVersion}); !errors.Is(err, ErrCorruptModel) {
		t.Fatalf("expected ErrCorruptModel, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no file should be written for an invalid model")
	}
}

func TestLoad_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrCorruptModel) {
		t.Fatalf("expected ErrCorruptModel, got %v", err)
	}
}
