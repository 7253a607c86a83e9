package game

import (
	"io"
	"log"
	"testing"
)

// newTestEngine returns a quiet, deterministically seeded engine.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(log.New(io.Discard, "", 0), 1)
}

// newTestGame builds a two-empire galaxy: each empire has one colony, and
// empire A has a small fleet.
func newTestGame(t *testing.T) (*GameContext, *CivilizationManager, *CivilizationManager) {
	t.Helper()
	opts := NewGameOptions()
	opts.GalaxyWidth, opts.GalaxyHeight = 10, 10
	opts.FanOutWidth = 2
	g := NewGameContext(opts)

	a := &Civilization{ID: 1, Key: "ALPHA", Name: "Alpha Dominion", IsEmpire: true}
	b := &Civilization{ID: 2, Key: "BETA", Name: "Beta Concordat", IsEmpire: true}
	ma := g.AddCivilization(a)
	mb := g.AddCivilization(b)

	ca := g.FoundColony("Alpha Prime", Location{X: 2, Y: 2}, a.ID, 500, 2000)
	cb := g.FoundColony("Beta Prime", Location{X: 7, Y: 7}, b.ID, 500, 2000)
	ca.Facilities[ProdFood] = FacilityGroup{Count: 10, Active: 10, UnitOutput: 100}
	cb.Facilities[ProdFood] = FacilityGroup{Count: 10, Active: 10, UnitOutput: 100}

	fleet := g.Universe.AddFleet(&Fleet{Object: Object{Name: "First Fleet", Loc: ca.Loc, OwnerID: a.ID}})
	g.Universe.AddShip(fleet, NewShip("scout", ShipScout, 100, 100, 2, 6))

	return g, ma, mb
}

// fixedRolls replaces the engine's roll with a scripted sequence; the last
// value repeats once the script runs out.
func fixedRolls(e *Engine, rolls ...int) *int {
	calls := 0
	e.roll = func(n int) int {
		i := calls
		calls++
		if i >= len(rolls) {
			i = len(rolls) - 1
		}
		v := rolls[i]
		if v > n {
			v = n
		}
		return v
	}
	return &calls
}
