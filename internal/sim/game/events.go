package game

// ScriptedEvent is a scenario hook notified around turns and phases. Events
// that report themselves no longer executable are pruned before the turn
// begins.
type ScriptedEvent interface {
	CanExecute(g *GameContext) bool
	OnTurnStarted(g *GameContext)
	OnTurnFinished(g *GameContext)
	OnPhaseStarted(g *GameContext, phase TurnPhase)
	OnPhaseFinished(g *GameContext, phase TurnPhase)
}

// scriptedEventTurnThreshold gates the turn-level hooks: scripted events
// only start firing OnTurnStarted/OnTurnFinished from this turn on.
const scriptedEventTurnThreshold = 20

// CombatAssets groups one owner's combat-capable forces at one location.
type CombatAssets struct {
	OwnerID  CivID
	Location Location
	Fleets   []*Fleet
	Station  *Station
}

// CombatEncounter is one pending battle: every side present at a location.
type CombatEncounter struct {
	Location Location
	Sides    []*CombatAssets
}

// InvasionArena is one pending system assault.
type InvasionArena struct {
	Location Location
	Colony   *Colony
	Invaders []*Fleet
}
