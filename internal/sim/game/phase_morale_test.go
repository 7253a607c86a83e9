package game

import "testing"

// A failing morale task is logged, not fatal: siblings continue and the turn
// still commits.
func TestMoraleTaskFailureDoesNotAbortTurn(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)

	// Poison one colony's morale meter for the duration of the morale phase
	// only, so the task panics there and nowhere else.
	broken := ma.Colonies[0]
	saved := broken.Morale
	e.PhaseChanged = func(_ *GameContext, p TurnPhase) {
		if p == PhaseMorale {
			broken.Morale = nil
		}
	}
	e.PhaseFinished = func(_ *GameContext, p TurnPhase) {
		if p == PhaseMorale {
			broken.Morale = saved
		}
	}

	before := g.TurnNumber
	if err := e.DoTurn(g); err != nil {
		t.Fatalf("DoTurn: %v", err)
	}
	if got := g.TurnNumber; got != before+1 {
		t.Fatalf("turn counter: got %d want %d", got, before+1)
	}
}
