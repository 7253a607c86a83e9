package scenario

import (
	"testing"

	"astrodominion.ai/internal/sim/catalogs"
	"astrodominion.ai/internal/sim/game"
)

func testCatalogs() *catalogs.Catalogs {
	return &catalogs.Catalogs{
		Designs: catalogs.DesignCatalog{
			Keys: []string{"PATROL_CRUISER", "SURVEY_SCOUT"},
			Defs: map[string]catalogs.DesignDef{
				"PATROL_CRUISER": {
					Key: "PATROL_CRUISER", IndustryCost: 120, Dilithium: 2,
					IsShip: true, Category: "cruiser",
					Hull: 100, Fuel: 100, Speed: 1, RangeSectors: 6,
				},
				"SURVEY_SCOUT": {
					Key: "SURVEY_SCOUT", IndustryCost: 40,
					IsShip: true, Category: "scout",
					Hull: 40, Fuel: 120, Speed: 2, RangeSectors: 8,
				},
			},
		},
		Civs: catalogs.CivCatalog{
			Keys: []string{"ALPHA", "BETA"},
			Defs: map[string]catalogs.CivDef{
				"ALPHA": {Key: "ALPHA", Name: "Alpha Dominion", IsEmpire: true, BaseMoraleLevel: 95},
				"BETA":  {Key: "BETA", Name: "Beta Collective", IsEmpire: true},
			},
		},
	}
}

func testConfig() Config {
	return Config{
		GameID: "skirmish",
		Galaxy: GalaxySpec{Width: 10, Height: 8},
		Stars:  []StarSpec{{X: 5, Y: 4, Type: "nebula"}},
		Civs: []CivSpec{
			{
				Key: "ALPHA",
				Colonies: []ColonySpec{{
					Name: "Alpha Prime", X: 1, Y: 1, Population: 400, MaxPopulation: 900,
					Food:     FacilitySpec{Count: 10, UnitOutput: 6},
					Industry: FacilitySpec{Count: 8, UnitOutput: 5},
				}},
				Fleets: []FleetSpec{{X: 1, Y: 1, Ships: []string{"PATROL_CRUISER", "SURVEY_SCOUT"}}},
			},
			{
				Key:      "BETA",
				AutoTurn: true,
				Colonies: []ColonySpec{{
					Name: "Beta Haven", X: 8, Y: 6, Population: 300, MaxPopulation: 700,
				}},
			},
		},
	}
}

func TestLoadScenarioYAML(t *testing.T) {
	cfg, err := Load("../../../configs/scenario.yaml")
	if err != nil {
		t.Fatalf("load scenario.yaml: %v", err)
	}
	if cfg.GameID != "game_1" || len(cfg.Civs) != 3 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !cfg.Civs[0].Colonies[0].Home {
		t.Fatal("declared home flag lost")
	}
	if !cfg.Civs[2].Colonies[0].Home {
		t.Fatal("normalize should flag MERIDIAN's only colony as home")
	}
}

func TestValidateRejectsBadScenarios(t *testing.T) {
	cfg := testConfig()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	bad := testConfig()
	bad.Civs[0].Colonies[0].X = 99
	if err := bad.Validate(); err == nil {
		t.Fatal("out-of-galaxy colony accepted")
	}

	bad = testConfig()
	bad.Stars[0].Type = "supernova"
	if err := bad.Validate(); err == nil {
		t.Fatal("unknown star type accepted")
	}

	bad = testConfig()
	bad.Civs = append(bad.Civs, bad.Civs[0])
	if err := bad.Validate(); err == nil {
		t.Fatal("duplicate civilization key accepted")
	}
}

func TestNormalizeFlagsFirstColonyAsHome(t *testing.T) {
	cfg := testConfig()
	cfg.Normalize()
	if !cfg.Civs[0].Colonies[0].Home {
		t.Fatal("first colony should default to home")
	}
}

func TestBuild(t *testing.T) {
	cfg := testConfig()
	cfg.Normalize()
	g, err := Build(cfg, testCatalogs(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if g.Map.Width != 10 || g.Map.Height != 8 {
		t.Fatalf("galaxy = %dx%d", g.Map.Width, g.Map.Height)
	}
	if got := g.Map.Sector(game.Location{X: 5, Y: 4}).Star; got != game.StarNebula {
		t.Fatalf("star = %v, want nebula", got)
	}

	alpha := g.Civilization(1)
	if alpha == nil || alpha.Key != "ALPHA" || alpha.BaseMoraleLevel != 95 {
		t.Fatalf("alpha = %+v", alpha)
	}
	ma := g.Manager(1)
	if len(ma.Colonies) != 1 || ma.HomeColonyID != ma.Colonies[0].ID {
		t.Fatalf("alpha home colony not set: %+v", ma)
	}
	if got := ma.Colonies[0].Facilities[game.ProdFood].Output(); got != 60 {
		t.Fatalf("food output = %d, want 60", got)
	}

	fleets := g.Universe.Fleets()
	if len(fleets) != 1 || len(fleets[0].Ships) != 2 {
		t.Fatalf("fleets = %+v", fleets)
	}
	if ma.ShipCounts[game.ShipCruiser].Available != 1 || ma.ShipCounts[game.ShipScout].Available != 1 {
		t.Fatalf("ship counts = %+v", ma.ShipCounts)
	}

	if !g.Options.AutoTurnCivs[2] {
		t.Fatal("beta auto_turn not applied")
	}

	if _, err := Build(Config{
		Galaxy: GalaxySpec{Width: 5, Height: 5},
		Civs:   []CivSpec{{Key: "GAMMA", Colonies: []ColonySpec{{Name: "X", Population: 1, MaxPopulation: 1}}}},
	}, testCatalogs(), nil); err == nil {
		t.Fatal("unknown civilization accepted")
	}
}
