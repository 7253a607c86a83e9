package game

import "testing"

func TestResearchTwoFleetsFeedOneAccumulator(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)

	g.Map.SetStar(Location{X: 4, Y: 4}, StarNebula)
	g.Map.SetStar(Location{X: 6, Y: 6}, StarNebula)

	addScience := func(loc Location) {
		f := g.Universe.AddFleet(&Fleet{Object: Object{Name: "Survey", Loc: loc, OwnerID: ma.CivID}})
		s := NewShip("survey", ShipScience, 100, 100, 2, 6)
		s.ScanStrength = 3
		s.ScienceAbility = 0.5
		g.Universe.AddShip(f, s)
	}
	addScience(Location{X: 4, Y: 4})
	addScience(Location{X: 6, Y: 6})

	before := ma.Research.Current()
	if err := e.doResearch(g); err != nil {
		t.Fatalf("research: %v", err)
	}
	// Each ship grants 3 * 0.5 * 10 = 15; both fleets belong to the same
	// civilization and both must land in its accumulator.
	if got, want := ma.Research.Current(), before+30; got != want {
		t.Fatalf("research: got %d want %d", got, want)
	}
	reports := 0
	for _, s := range ma.SitReps() {
		if s.Kind == SitRepScienceShipResearch {
			reports++
		}
	}
	if reports != 2 {
		t.Fatalf("science sitreps: got %d want 2", reports)
	}
}
