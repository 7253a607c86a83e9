package game

import (
	"fmt"
	"testing"
)

func TestIntelligenceRatioBelowOneDoesNothing(t *testing.T) {
	g, ma, mb := newTestGame(t)
	e := newTestEngine(t)
	g.Diplomacy.EstablishContact(ma.CivID, mb.CivID)

	// Derived attack power: max(250, 201) - 200 = 50; defense 100; ratio 0.
	ma.IntelAttack.SetCurrent(250)
	mb.IntelDefense.SetCurrent(100)
	mb.IntelAttack.SetCurrent(0) // keep B from striking back this test
	ma.IntelDefense.SetCurrent(1000)

	if err := e.doIntelligence(g); err != nil {
		t.Fatalf("intelligence: %v", err)
	}
	if got := len(ma.SitReps()); got != 0 {
		t.Fatalf("attacker sitreps: got %d want 0", got)
	}
	if got := len(mb.SitReps()); got != 0 {
		t.Fatalf("target sitreps: got %d want 0", got)
	}
}

func TestIntelligenceExactlyFourAttempts(t *testing.T) {
	g, ma, mb := newTestGame(t)
	e := newTestEngine(t)
	g.Diplomacy.EstablishContact(ma.CivID, mb.CivID)

	// Derived attack power 450, defense 100: ratio 4, capped attempts 4.
	ma.IntelAttack.SetCurrent(650)
	mb.IntelDefense.SetCurrent(100)
	mb.IntelAttack.SetCurrent(0)
	ma.IntelDefense.SetCurrent(1000)

	calls := fixedRolls(e, 30) // roll 30: no morale shift, no action
	if err := e.doIntelligence(g); err != nil {
		t.Fatalf("intelligence: %v", err)
	}
	if *calls != 4 {
		t.Fatalf("attempt rolls: got %d want 4", *calls)
	}
}

func TestIntelligenceRollOverlapMoraleAndAction(t *testing.T) {
	g, ma, mb := newTestGame(t)
	e := newTestEngine(t)
	g.Diplomacy.EstablishContact(ma.CivID, mb.CivID)

	ma.IntelAttack.SetCurrent(301) // derived 101, defense 100: one attempt
	mb.IntelDefense.SetCurrent(100)
	mb.IntelAttack.SetCurrent(0)
	ma.IntelDefense.SetCurrent(1000)

	target := mb.Colonies[0]
	target.FoodReserves.SetCurrent(600)
	moraleBefore := target.Morale.Current()

	fixedRolls(e, 2) // roll 2: morale shift AND food-reserve destruction
	if err := e.doIntelligence(g); err != nil {
		t.Fatalf("intelligence: %v", err)
	}

	// -2 as the struck colony and -1 more as the target home colony.
	if got := target.Morale.Current(); got != moraleBefore-3 {
		t.Fatalf("target colony morale: got %d want %d", got, moraleBefore-3)
	}
	if got := target.FoodReserves.Current(); got >= 600 {
		t.Fatalf("food reserves untouched: got %d", got)
	}
	if len(mb.SitReps()) == 0 || len(ma.SitReps()) == 0 {
		t.Fatalf("paired sitreps missing: target %d attacker %d", len(mb.SitReps()), len(ma.SitReps()))
	}
}

func TestIntelligenceMinorPowersSkipped(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)
	minor := &Civilization{ID: 5, Key: "MINOR", Name: "Minor Power", IsEmpire: false}
	mm := g.AddCivilization(minor)
	g.FoundColony("Minor Home", Location{X: 1, Y: 8}, minor.ID, 300, 1000)
	g.Diplomacy.EstablishContact(minor.ID, ma.CivID)
	mm.IntelAttack.SetCurrent(10000)

	if err := e.doIntelligence(g); err != nil {
		t.Fatalf("intelligence: %v", err)
	}
	if got := len(ma.SitReps()); got != 0 {
		t.Fatalf("minor power ran espionage: %d sitreps", got)
	}
}

// Many empires striking the same defender at once: every attempt lands, and
// the defender's ledger stays consistent. Each attacker only knows the
// defender, so target selection is forced.
func TestIntelligenceManyAttackersOneDefender(t *testing.T) {
	opts := NewGameOptions()
	opts.GalaxyWidth, opts.GalaxyHeight = 30, 30
	opts.FanOutWidth = 8
	g := NewGameContext(opts)
	e := newTestEngine(t)

	def := g.AddCivilization(&Civilization{ID: 1, Key: "TARGET", Name: "Target Empire", IsEmpire: true})
	tc := g.FoundColony("Target Prime", Location{X: 15, Y: 15}, def.CivID, 500, 2000)
	tc.FoodReserves.SetCurrent(600)
	tc.FoodReserves.UpdateAndReset()
	def.IntelDefense.SetCurrent(100)
	def.IntelAttack.SetCurrent(0)

	var attackers []*CivilizationManager
	for i := 2; i <= 9; i++ {
		id := CivID(i)
		m := g.AddCivilization(&Civilization{ID: id, Key: fmt.Sprintf("ATT%02d", i), Name: fmt.Sprintf("Attacker %d", i), IsEmpire: true})
		g.FoundColony(fmt.Sprintf("Base %d", i), Location{X: i, Y: 2}, id, 300, 1000)
		m.IntelAttack.SetCurrent(650) // derived 450, defense 100: 4 attempts
		m.IntelDefense.SetCurrent(100000)
		g.Diplomacy.EstablishContact(id, def.CivID)
		attackers = append(attackers, m)
	}

	moraleBefore := tc.Morale.Current()
	fixedRolls(e, 2) // roll 2 every attempt: morale shift plus food raid

	if err := e.doIntelligence(g); err != nil {
		t.Fatalf("intelligence: %v", err)
	}

	// 8 attackers x 4 attempts, each shifting colony morale by -2 and
	// burning min(2, reserves) food.
	if got, want := tc.Morale.Current(), moraleBefore-64; got != want {
		t.Fatalf("target morale: got %d want %d", got, want)
	}
	if got, want := tc.FoodReserves.Current(), 600-64; got != want {
		t.Fatalf("target food reserves: got %d want %d", got, want)
	}
	for _, m := range attackers {
		if got := len(m.SitReps()); got != 4 {
			t.Fatalf("attacker %d sitreps: got %d want 4", m.CivID, got)
		}
	}
	if got := len(def.SitReps()); got != 32 {
		t.Fatalf("defender sitreps: got %d want 32", got)
	}
}
