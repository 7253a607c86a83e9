package game

import (
	"fmt"
	"testing"
)

func TestStarvationExactFigures(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)

	c := ma.Colonies[0]
	c.MaxPopulation = 2000
	c.Population.SetCurrent(1000)
	c.FoodReserves.SetCurrent(500)
	c.FoodReserves.UpdateAndReset()
	c.Facilities[ProdFood] = FacilityGroup{Count: 2, Active: 2, UnitOutput: 100} // 200 food
	c.GrowthRate = 0.05

	if err := e.doPopulationGrowth(g); err != nil {
		t.Fatalf("population growth: %v", err)
	}

	// reserves 500+200=700, deficit min(700-1000,0)=-300,
	// loss floor(0.1*sqrt(1000*300)) = 54.
	if got := c.Population.Current(); got != 946 {
		t.Fatalf("population after starvation: got %d want 946", got)
	}
	found := false
	for _, s := range ma.SitReps() {
		if s.Kind == SitRepStarvation && s.ColonyID == c.ID && s.Amount == 54 {
			found = true
		}
	}
	if !found {
		t.Fatalf("no starvation sitrep with loss 54; got %+v", ma.SitReps())
	}
}

func TestPopulationGrowthCeil(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)
	c := ma.Colonies[0]
	c.Population.SetCurrent(101)
	c.FoodReserves.SetCurrent(5000)
	c.FoodReserves.UpdateAndReset()
	c.GrowthRate = 0.05

	if err := e.doPopulationGrowth(g); err != nil {
		t.Fatalf("population growth: %v", err)
	}
	// ceil(0.05*101) = 6
	if got := c.Population.Current(); got != 107 {
		t.Fatalf("population after growth: got %d want 107", got)
	}
}

func TestPopulationDiedDestroysColony(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)
	dying := g.FoundColony("Failing Outpost", Location{X: 5, Y: 5}, ma.CivID, 1, 1000)
	dying.GrowthRate = -1.0
	dying.FoodReserves.SetCurrent(100)
	dying.FoodReserves.UpdateAndReset()

	if err := e.doPopulationGrowth(g); err != nil {
		t.Fatalf("population growth: %v", err)
	}
	if g.Universe.Colony(dying.ID) != nil {
		t.Fatalf("dead colony still registered")
	}
	died := false
	for _, s := range ma.SitReps() {
		if s.Kind == SitRepPopulationDied && s.ColonyID == dying.ID {
			died = true
		}
	}
	if !died {
		t.Fatalf("no population-died sitrep; got %+v", ma.SitReps())
	}
	if ma.SeatOfGovernment == dying.ID {
		t.Fatalf("seat of government references destroyed colony")
	}
}

func TestTutorialColonyForceZeroed(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)
	g.Options.TutorialColonyName = "Training Ground"
	tut := g.FoundColony("Training Ground", Location{X: 6, Y: 3}, ma.CivID, 400, 1000)

	if err := e.doPopulationGrowth(g); err != nil {
		t.Fatalf("population growth: %v", err)
	}
	// Force-zeroed, then reported dead and destroyed.
	if g.Universe.Colony(tut.ID) != nil {
		t.Fatalf("tutorial colony survived with forced zero population")
	}
}

func TestNegativeGrowthLogsDyingReport(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)
	c := ma.Colonies[0]
	c.Population.SetCurrent(1000)
	c.FoodReserves.SetCurrent(5000)
	c.FoodReserves.UpdateAndReset()
	c.GrowthRate = -0.01

	if err := e.doPopulationGrowth(g); err != nil {
		t.Fatalf("population growth: %v", err)
	}
	dying := false
	for _, s := range ma.SitReps() {
		if s.Kind == SitRepPopulationDying && s.ColonyID == c.ID {
			dying = true
		}
	}
	if !dying {
		t.Fatalf("no population-dying sitrep; got %+v", ma.SitReps())
	}
}

// Dying colonies are recorded inside the parallel pass and destroyed
// afterwards, one registry write at a time.
func TestParallelGrowthDestroysDyingColoniesAfterFanOut(t *testing.T) {
	opts := NewGameOptions()
	opts.GalaxyWidth, opts.GalaxyHeight = 30, 30
	opts.FanOutWidth = 8
	g := NewGameContext(opts)
	e := newTestEngine(t)

	var dying []*Colony
	for i := 1; i <= 16; i++ {
		id := CivID(i)
		g.AddCivilization(&Civilization{ID: id, Key: fmt.Sprintf("CIV%02d", i), Name: fmt.Sprintf("Civilization %d", i), IsEmpire: true})
		home := g.FoundColony(fmt.Sprintf("Home %d", i), Location{X: i, Y: 3}, id, 500, 2000)
		home.Facilities[ProdFood] = FacilityGroup{Count: 10, Active: 10, UnitOutput: 100}
		out := g.FoundColony(fmt.Sprintf("Outpost %d", i), Location{X: i, Y: 9}, id, 1, 1000)
		out.GrowthRate = -1.0
		out.FoodReserves.SetCurrent(100)
		out.FoodReserves.UpdateAndReset()
		dying = append(dying, out)
	}

	if err := e.doPopulationGrowth(g); err != nil {
		t.Fatalf("population growth: %v", err)
	}
	for _, c := range dying {
		if g.Universe.Colony(c.ID) != nil {
			t.Fatalf("dead colony %d still registered", c.ID)
		}
		m := g.Manager(c.OwnerID)
		if m.SeatOfGovernment == c.ID {
			t.Fatalf("civ %d seat of government references destroyed colony", c.OwnerID)
		}
		died := false
		for _, s := range m.SitReps() {
			if s.Kind == SitRepPopulationDied && s.ColonyID == c.ID {
				died = true
			}
		}
		if !died {
			t.Fatalf("civ %d missing population-died sitrep", c.OwnerID)
		}
	}
}
