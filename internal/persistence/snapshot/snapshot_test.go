package snapshot

import (
	"path/filepath"
	"testing"

	"astrodominion.ai/internal/sim/encoding"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turns", "t12.snap.zst")

	snap := SnapshotV1{
		Header:       Header{Version: 1, GameID: "dominion-1", Turn: 12},
		Seed:         1337,
		GalaxyWidth:  20,
		GalaxyHeight: 15,
		TurnNumber:   12,
		NextID:       42,
		Civilizations: []CivilizationV1{
			{ID: 0, Key: "ALPHA", Name: "Alpha Dominion", IsEmpire: true, BaseMoraleLevel: 100},
		},
		Managers: []ManagerV1{
			{
				CivID:            0,
				Credits:          MeterV1{Min: -1 << 40, Max: 1 << 40, Cur: 5400, Base: 5400, Last: 5000},
				TreasuryBalance:  5400,
				TreasuryHistory:  []TreasurySnapV1{{Turn: 11, Initial: 5000, Income: 700, Expenses: 300}},
				ShipCounts:       make([]ShipCountV1, 13),
				MapCells:         encoding.EncodeCells(make([]int32, 20*15)),
				HomeColonyID:     1,
				SeatOfGovernment: 1,
			},
		},
		Colonies: []ColonyV1{
			{
				ID: 1, Owner: 0, Name: "Alpha Prime", X: 2, Y: 2,
				Population:    MeterV1{Min: 0, Max: 2000, Cur: 500, Base: 500, Last: 480},
				MaxPopulation: 2000,
				GrowthRate:    0.05,
				BuildSlot:     &ProjectV1{DesignKey: "factory", IndustryCost: 200, IndustryRemaining: 80},
			},
		},
		Fleets: []FleetV1{
			{
				ID: 2, Owner: 0, Name: "First Fleet", X: 5, Y: 5,
				Ships: []ShipV1{{ID: 3, Name: "Scout", Category: 7, Speed: 2, RangeSectors: 6,
					Hull: MeterV1{Max: 100, Cur: 100, Base: 100, Last: 100}}},
				Order: OrderV1{Kind: 2, TargetColonyID: 9},
				Route: [][2]int{{6, 5}, {7, 5}},
			},
		},
		Visibility: []VisibilityV1{
			{Civ: 0, Target: 9, Durations: [6]byte{255, 3, 0, 0, 0, 0}},
		},
	}

	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.Header != snap.Header {
		t.Fatalf("header mismatch: %+v vs %+v", got.Header, snap.Header)
	}
	if got.TurnNumber != 12 || got.NextID != 42 {
		t.Fatalf("turn/nextid mismatch: %d %d", got.TurnNumber, got.NextID)
	}
	if len(got.Colonies) != 1 || got.Colonies[0].Population.Cur != 500 {
		t.Fatalf("colony mismatch: %+v", got.Colonies)
	}
	if got.Colonies[0].BuildSlot == nil || got.Colonies[0].BuildSlot.IndustryRemaining != 80 {
		t.Fatalf("build slot mismatch: %+v", got.Colonies[0].BuildSlot)
	}
	if len(got.Fleets) != 1 || len(got.Fleets[0].Ships) != 1 || got.Fleets[0].Order.TargetColonyID != 9 {
		t.Fatalf("fleet mismatch: %+v", got.Fleets)
	}
	if len(got.Visibility) != 1 || got.Visibility[0].Durations[0] != 255 {
		t.Fatalf("visibility mismatch: %+v", got.Visibility)
	}
	if got.Managers[0].TreasuryHistory[0].Income != 700 {
		t.Fatalf("treasury history mismatch: %+v", got.Managers[0].TreasuryHistory)
	}
}

func TestReadSnapshotMissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "absent.snap.zst")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
