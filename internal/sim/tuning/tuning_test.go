package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	raw := []byte(`
protocol_version: "1"
galaxy_width: 30
galaxy_height: 20
turn_interval_sec: 60
snapshot_every_turns: 5
fan_out_width: 8
morale_drift_rate: 1
trade:
  pop_default: 150
  source_mult: 1.0
  target_mult: 0.5
  pop_requirements:
    ALPHA: 100
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tn, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tn.GalaxyWidth != 30 || tn.GalaxyHeight != 20 {
		t.Fatalf("galaxy: got %dx%d want 30x20", tn.GalaxyWidth, tn.GalaxyHeight)
	}
	if tn.Trade.PopDefault != 150 {
		t.Fatalf("trade pop default: got %d want 150", tn.Trade.PopDefault)
	}
	if got := tn.Trade.PopRequirements["ALPHA"]; got != 100 {
		t.Fatalf("trade pop requirement: got %d want 100", got)
	}
	if tn.SnapshotEveryTurn != 5 {
		t.Fatalf("snapshot cadence: got %d want 5", tn.SnapshotEveryTurn)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
