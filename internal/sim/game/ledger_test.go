package game

import "testing"

func TestSeatOfGovernmentIdempotent(t *testing.T) {
	g, ma, _ := newTestGame(t)
	g.FoundColony("Alpha Minor", Location{X: 4, Y: 4}, ma.CivID, 200, 1000)

	ma.EnsureSeatOfGovernment(g)
	first := ma.SeatOfGovernment
	if first == InvalidGameID {
		t.Fatalf("no seat selected")
	}
	ma.EnsureSeatOfGovernment(g)
	if ma.SeatOfGovernment != first {
		t.Fatalf("seat changed without ownership change: got %d want %d", ma.SeatOfGovernment, first)
	}
	if got := g.Diplomacy.Diplomat(ma.CivID).SeatOfGovernment; got != first {
		t.Fatalf("diplomat seat: got %d want %d", got, first)
	}
}

func TestSeatOfGovernmentRecomputesWhenLost(t *testing.T) {
	g, ma, _ := newTestGame(t)
	minor := g.FoundColony("Alpha Minor", Location{X: 4, Y: 4}, ma.CivID, 200, 1000)
	ma.EnsureSeatOfGovernment(g)
	seat := ma.SeatColony(g)
	if seat == nil {
		t.Fatalf("no seat selected")
	}

	g.DestroyColony(seat)
	ma.EnsureSeatOfGovernment(g)
	if ma.SeatOfGovernment == seat.ID {
		t.Fatalf("seat still references destroyed colony")
	}
	if ma.SeatOfGovernment == InvalidGameID && minor.ID != seat.ID {
		t.Fatalf("no replacement seat selected")
	}
}

func TestSeatOfGovernmentSentinelWithoutColonies(t *testing.T) {
	g := NewGameContext(nil)
	m := g.AddCivilization(&Civilization{ID: 9, Key: "EMPTY", IsEmpire: true})
	m.EnsureSeatOfGovernment(g)
	if m.SeatOfGovernment != InvalidGameID {
		t.Fatalf("seat without colonies: got %d want %d", m.SeatOfGovernment, InvalidGameID)
	}
}

func TestRanksUnrankedSentinel(t *testing.T) {
	g := NewGameContext(nil)
	m := g.AddCivilization(&Civilization{ID: 3, Key: "NEW", IsEmpire: true})
	if got := m.CreditsRank(); got != -1 {
		t.Fatalf("credits rank with no history: got %d want -1", got)
	}
	if got := m.PopulationRank(); got != -1 {
		t.Fatalf("population rank with no history: got %d want -1", got)
	}
}

func TestAverageMoraleWeightedByPopulation(t *testing.T) {
	g, ma, _ := newTestGame(t)
	c2 := g.FoundColony("Alpha Minor", Location{X: 4, Y: 4}, ma.CivID, 100, 1000)
	ma.Colonies[0].Morale.SetCurrent(100)
	ma.Colonies[0].Population.SetCurrent(300)
	c2.Morale.SetCurrent(40)
	// (300*100 + 100*40) / 400 = 85
	if got := ma.AverageMorale(); got != 85 {
		t.Fatalf("average morale: got %d want 85", got)
	}
}

func TestSitRepAppendAndClear(t *testing.T) {
	g, ma, _ := newTestGame(t)
	ma.AddSitRep(&SitRep{Kind: SitRepBuildQueueEmpty, Turn: g.TurnNumber})
	ma.AddSitRep(&SitRep{Kind: SitRepStarvation, Turn: g.TurnNumber})
	if got := len(ma.SitReps()); got != 2 {
		t.Fatalf("sitreps: got %d want 2", got)
	}
	for _, s := range ma.SitReps() {
		if s.Owner != ma.CivID {
			t.Fatalf("sitrep owner: got %d want %d", s.Owner, ma.CivID)
		}
	}
	ma.ClearSitReps()
	if got := len(ma.SitReps()); got != 0 {
		t.Fatalf("sitreps after clear: got %d want 0", got)
	}
}

func TestOnboardingCreatesDiplomatEntry(t *testing.T) {
	g, ma, mb := newTestGame(t)
	// Entries exist up front; phase tasks only read the diplomat table.
	for _, id := range []CivID{ma.CivID, mb.CivID} {
		if g.Diplomacy.diplomats[id] == nil {
			t.Fatalf("no diplomat entry for civ %d after onboarding", id)
		}
	}
}
