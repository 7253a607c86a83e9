package catalogs

import (
	"testing"

	"astrodominion.ai/internal/sim/game"
)

func TestLoadConfigs(t *testing.T) {
	cats, err := Load("../../../configs")
	if err != nil {
		t.Fatalf("load configs: %v", err)
	}

	d, ok := cats.Designs.Defs["PATROL_CRUISER"]
	if !ok {
		t.Fatal("PATROL_CRUISER missing from designs.json")
	}
	bd, err := d.BuildDesign()
	if err != nil {
		t.Fatalf("build design: %v", err)
	}
	if !bd.IsShip || bd.Category != game.ShipCruiser {
		t.Fatalf("PATROL_CRUISER = %+v", bd)
	}
	if bd.ResourceCost[game.ResDilithium] != 2 {
		t.Fatalf("dilithium cost = %d, want 2", bd.ResourceCost[game.ResDilithium])
	}

	if cats.Designs.Defs["COMMAND_SHIP"].BuildLimit != 1 {
		t.Fatal("COMMAND_SHIP should be build-limited")
	}
	if !cats.Civs.Defs["TERRAN"].IsEmpire {
		t.Fatal("TERRAN should be an empire")
	}
	if cats.Designs.Digest == "" || cats.Civs.Digest == "" {
		t.Fatal("digests not computed")
	}
	if len(cats.Designs.Keys) != len(cats.Designs.Defs) {
		t.Fatalf("keys/defs mismatch: %d vs %d", len(cats.Designs.Keys), len(cats.Designs.Defs))
	}
}

func TestBuildDesignRejectsUnknownCategory(t *testing.T) {
	d := DesignDef{Key: "X", IsShip: true, Category: "battleship"}
	if _, err := d.BuildDesign(); err == nil {
		t.Fatal("unknown category accepted")
	}
}
