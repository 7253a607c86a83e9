package game

import (
	"sync"
	"testing"
)

// resolveCombatInstantly wires hooks that release the gate as soon as an
// encounter or invasion is announced.
func resolveCombatInstantly(e *Engine) {
	e.CombatOccurring = func(g *GameContext, enc *CombatEncounter) {
		go e.NotifyCombatFinished()
	}
	e.InvasionOccurring = func(g *GameContext, a *InvasionArena) {
		go e.NotifyCombatFinished()
	}
}

func TestDoTurnIncrementsCounterInsidePostTurn(t *testing.T) {
	g, _, _ := newTestGame(t)
	e := newTestEngine(t)
	resolveCombatInstantly(e)

	start := g.TurnNumber
	var productionSaw, postTurnSaw, sendUpdatesSaw int
	e.PhaseFinished = func(ctx *GameContext, phase TurnPhase) {
		switch phase {
		case PhaseProduction:
			productionSaw = ctx.TurnNumber
		case PhasePostTurnOperations:
			postTurnSaw = ctx.TurnNumber
		case PhaseSendUpdates:
			sendUpdatesSaw = ctx.TurnNumber
		}
	}

	if err := e.DoTurn(g); err != nil {
		t.Fatalf("DoTurn: %v", err)
	}
	if productionSaw != start {
		t.Fatalf("production finished with turn %d, want old value %d", productionSaw, start)
	}
	if postTurnSaw != start+1 {
		t.Fatalf("post-turn finished with turn %d, want %d", postTurnSaw, start+1)
	}
	if sendUpdatesSaw != start+1 {
		t.Fatalf("send-updates saw turn %d, want %d", sendUpdatesSaw, start+1)
	}
	if g.TurnNumber != start+1 {
		t.Fatalf("turn counter: got %d want %d", g.TurnNumber, start+1)
	}
}

func TestSitRepsEmptyAfterPreTurn(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)
	resolveCombatInstantly(e)

	ma.AddSitRep(&SitRep{Kind: SitRepBuildQueueEmpty, Turn: g.TurnNumber})
	sawEmpty := false
	e.PhaseFinished = func(ctx *GameContext, phase TurnPhase) {
		if phase == PhasePreTurnOperations {
			sawEmpty = len(ma.SitReps()) == 0
		}
	}
	if err := e.DoTurn(g); err != nil {
		t.Fatalf("DoTurn: %v", err)
	}
	if !sawEmpty {
		t.Fatalf("sitreps not cleared by pre-turn operations")
	}
}

func TestGlobalStackDepthRestoredAfterTurn(t *testing.T) {
	g, _, _ := newTestGame(t)
	e := newTestEngine(t)
	resolveCombatInstantly(e)

	base := GlobalStackDepth()
	if err := e.DoTurn(g); err != nil {
		t.Fatalf("DoTurn: %v", err)
	}
	if got := GlobalStackDepth(); got != base {
		t.Fatalf("global stack depth: got %d want %d", got, base)
	}
}

func TestCombatGateBlocksTurnUntilResolution(t *testing.T) {
	g, ma, mb := newTestGame(t)
	e := newTestEngine(t)

	// Opposing combatants share a sector: one encounter.
	loc := Location{X: 5, Y: 5}
	fa := g.Universe.AddFleet(&Fleet{Object: Object{Name: "A Strike", Loc: loc, OwnerID: ma.CivID}})
	g.Universe.AddShip(fa, NewShip("cruiser", ShipCruiser, 100, 100, 1, 6))
	fb := g.Universe.AddFleet(&Fleet{Object: Object{Name: "B Strike", Loc: loc, OwnerID: mb.CivID}})
	g.Universe.AddShip(fb, NewShip("cruiser", ShipCruiser, 100, 100, 1, 6))

	announced := make(chan *CombatEncounter, 4)
	e.CombatOccurring = func(ctx *GameContext, enc *CombatEncounter) {
		announced <- enc
		go e.NotifyCombatFinished()
	}
	e.InvasionOccurring = func(ctx *GameContext, a *InvasionArena) {
		go e.NotifyCombatFinished()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var turnErr error
	go func() {
		defer wg.Done()
		turnErr = e.DoTurn(g)
	}()
	wg.Wait()
	if turnErr != nil {
		t.Fatalf("DoTurn: %v", turnErr)
	}

	select {
	case enc := <-announced:
		if enc.Location != loc {
			t.Fatalf("encounter location: got %v want %v", enc.Location, loc)
		}
		if len(enc.Sides) != 2 {
			t.Fatalf("encounter sides: got %d want 2", len(enc.Sides))
		}
	default:
		t.Fatalf("no combat encounter announced")
	}
}

func TestFleetMovementAwardsCrewXPAndBurnsFuel(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)

	f := g.Universe.OwnedFleets(ma.CivID)[0]
	ship := f.Ships[0]
	f.Route = []Location{{X: 4, Y: 2}} // two sectors east, speed 2
	fuelBefore := ship.FuelReserve.Current()
	deutBefore := ma.Resources.Available(ResDeuterium)

	if err := e.doFleetMovement(g); err != nil {
		t.Fatalf("fleet movement: %v", err)
	}
	if f.Loc != (Location{X: 4, Y: 2}) {
		t.Fatalf("fleet location: got %v want (4, 2)", f.Loc)
	}
	if ship.CrewXP != 2*crewXPPerStep {
		t.Fatalf("crew xp: got %d want %d", ship.CrewXP, 2*crewXPPerStep)
	}
	// Out of fuel range on a fresh map: burns without replenishment.
	if got := ship.FuelReserve.Current(); got != fuelBefore-2 {
		t.Fatalf("fuel: got %d want %d", got, fuelBefore-2)
	}
	if got := ma.Resources.Available(ResDeuterium); got != deutBefore {
		t.Fatalf("deuterium pool moved: got %d want %d", got, deutBefore)
	}
}

func TestSectorClaimsRebuiltDuringMapUpdates(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)
	c := ma.Colonies[0]
	c.Population.SetCurrent(250) // radius 2

	if err := e.doMapUpdates(g); err != nil {
		t.Fatalf("map updates: %v", err)
	}
	if got := g.SectorClaims.GetOwner(c.Loc); got != ma.CivID {
		t.Fatalf("claim owner at colony: got %d want %d", got, ma.CivID)
	}
	// Weight at distance 2: 250/(2+1) = 83.
	if got := g.SectorClaims.ClaimWeight(ma.CivID, Location{X: 4, Y: 2}); got != 83 {
		t.Fatalf("claim weight at distance 2: got %d want 83", got)
	}
	if !ma.MapData.IsScanned(c.Loc) {
		t.Fatalf("colony sector not scanned")
	}
}

func TestHistoryAppendedWithRanks(t *testing.T) {
	g, ma, mb := newTestGame(t)
	e := newTestEngine(t)
	resolveCombatInstantly(e)

	ma.Treasury.Add(1000) // A ends richer than B
	if err := e.DoTurn(g); err != nil {
		t.Fatalf("DoTurn: %v", err)
	}
	ha, ok := ma.LastHistory()
	if !ok {
		t.Fatalf("no history for A")
	}
	hb, _ := mb.LastHistory()
	if ha.CreditsRank != 1 {
		t.Fatalf("A credits rank: got %d want 1", ha.CreditsRank)
	}
	if hb.CreditsRank != 2 {
		t.Fatalf("B credits rank: got %d want 2", hb.CreditsRank)
	}
	if got := ma.CreditsRank(); got != 1 {
		t.Fatalf("rank getter: got %d want 1", got)
	}
}

func TestScriptedEventPrunedBeforeTurn(t *testing.T) {
	g, _, _ := newTestGame(t)
	e := newTestEngine(t)
	resolveCombatInstantly(e)
	g.ScriptedEvents = append(g.ScriptedEvents, &panickingEvent{})
	// Past the threshold the turn hooks would fire, but CanExecute prunes
	// the event first.
	g.TurnNumber = scriptedEventTurnThreshold

	if err := e.DoTurn(g); err != nil {
		t.Fatalf("pruned event still ran: %v", err)
	}
	if len(g.ScriptedEvents) != 0 {
		t.Fatalf("non-executable event not pruned")
	}
}

// panickingEvent reports itself non-executable; it must be pruned before any
// hook fires.
type panickingEvent struct{}

func (*panickingEvent) CanExecute(*GameContext) bool            { return false }
func (*panickingEvent) OnTurnStarted(*GameContext)              { panic("should be pruned") }
func (*panickingEvent) OnTurnFinished(*GameContext)             { panic("should be pruned") }
func (*panickingEvent) OnPhaseStarted(*GameContext, TurnPhase)  { panic("should be pruned") }
func (*panickingEvent) OnPhaseFinished(*GameContext, TurnPhase) { panic("should be pruned") }
