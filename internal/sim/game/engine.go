package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"
)

// TurnPhase enumerates the pipeline states in execution order.
type TurnPhase int

const (
	PhaseWaitOnPlayers TurnPhase = iota
	PhasePreTurnOperations
	PhaseFleetMovement
	PhaseDiplomacy
	PhaseCombat
	PhasePopulationGrowth
	PhaseResearch
	PhaseScrapping
	PhaseMaintenance
	PhaseProduction
	PhaseShipProduction
	PhaseTrade
	PhaseIntelligence
	PhaseMorale
	PhaseMapUpdates
	PhasePostTurnOperations
	PhaseSendUpdates
	PhaseWaitOnAIPlayers

	turnPhaseCount
)

var turnPhaseNames = [turnPhaseCount]string{
	"WaitOnPlayers", "PreTurnOperations", "FleetMovement", "Diplomacy",
	"Combat", "PopulationGrowth", "Research", "Scrapping", "Maintenance",
	"Production", "ShipProduction", "Trade", "Intelligence", "Morale",
	"MapUpdates", "PostTurnOperations", "SendUpdates", "WaitOnAIPlayers",
}

func (p TurnPhase) String() string {
	if p < 0 || p >= turnPhaseCount {
		return "Unknown"
	}
	return turnPhaseNames[p]
}

// lockedRand makes a rand.Rand safe for concurrent phase tasks.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}

// Engine drives the turn pipeline. One orchestrating goroutine calls DoTurn;
// phase bodies fan out internally but phases never overlap in time.
type Engine struct {
	Log *log.Logger

	gate *CombatGate
	rng  *lockedRand

	// roll returns a uniform value in 1..n. Injectable for tests.
	roll func(n int) int

	AI AIProviders

	// Synchronous notification hooks; nil members are skipped.
	PhaseChanged         func(g *GameContext, phase TurnPhase)
	PhaseFinished        func(g *GameContext, phase TurnPhase)
	CombatOccurring      func(g *GameContext, e *CombatEncounter)
	InvasionOccurring    func(g *GameContext, a *InvasionArena)
	FleetLocationChanged func(f *Fleet, from Location)
	SendUpdates          func(g *GameContext)
}

func NewEngine(logger *log.Logger, seed int64) *Engine {
	if logger == nil {
		logger = log.New(os.Stdout, "[engine] ", log.LstdFlags|log.Lmicroseconds)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		Log:  logger,
		gate: NewCombatGate(),
		rng:  &lockedRand{rng: rand.New(rand.NewSource(seed))},
	}
	e.roll = func(n int) int {
		if n <= 0 {
			return 0
		}
		return e.rng.Intn(n) + 1
	}
	return e
}

// NotifyCombatFinished is the re-entry point for the external combat
// resolver: it releases the gate the Combat phase is blocked on. Must be
// called exactly once per announced encounter or invasion.
func (e *Engine) NotifyCombatFinished() {
	e.gate.Signal()
}

// DoTurn advances the game by one turn. The turn counter increments inside
// PostTurnOperations, before SendUpdates fires. A hard phase failure
// (PreTurnOperations, Morale) aborts the turn and is returned.
func (e *Engine) DoTurn(g *GameContext) error {
	PushContext(g)
	defer PopContext()

	prevFleetHook := g.Universe.FleetLocationChanged
	g.Universe.FleetLocationChanged = e.FleetLocationChanged
	defer func() { g.Universe.FleetLocationChanged = prevFleetHook }()

	e.pruneScriptedEvents(g)
	if g.TurnNumber >= scriptedEventTurnThreshold {
		for _, ev := range g.ScriptedEvents {
			ev.OnTurnStarted(g)
		}
	}

	type phaseStep struct {
		phase TurnPhase
		body  func(*GameContext) error
	}
	steps := []phaseStep{
		{PhaseWaitOnPlayers, func(*GameContext) error { return nil }},
		{PhasePreTurnOperations, e.doPreTurnOperations},
		{PhaseFleetMovement, e.doFleetMovement},
		{PhaseDiplomacy, e.doDiplomacy},
		{PhaseCombat, e.doCombat},
		{PhasePopulationGrowth, e.doPopulationGrowth},
		{PhaseResearch, e.doResearch},
		{PhaseScrapping, e.doScrapping},
		{PhaseMaintenance, e.doMaintenance},
		{PhaseProduction, e.doProduction},
		{PhaseShipProduction, e.doShipProduction},
		{PhaseTrade, e.doTrade},
		{PhaseIntelligence, e.doIntelligence},
		{PhaseMorale, e.doMorale},
		{PhaseMapUpdates, e.doMapUpdates},
		{PhasePostTurnOperations, e.doPostTurnOperations},
		{PhaseSendUpdates, e.doSendUpdates},
	}
	for _, step := range steps {
		e.beginPhase(g, step.phase)
		err := step.body(g)
		e.endPhase(g, step.phase)
		if err != nil {
			return fmt.Errorf("phase %s: %w", step.phase, err)
		}
	}

	if g.TurnNumber >= scriptedEventTurnThreshold {
		for _, ev := range g.ScriptedEvents {
			ev.OnTurnFinished(g)
		}
	}
	return nil
}

func (e *Engine) beginPhase(g *GameContext, phase TurnPhase) {
	if phase != PhaseSendUpdates {
		for _, ev := range g.ScriptedEvents {
			ev.OnPhaseStarted(g, phase)
		}
	}
	if e.PhaseChanged != nil {
		e.PhaseChanged(g, phase)
	}
}

func (e *Engine) endPhase(g *GameContext, phase TurnPhase) {
	if phase != PhaseSendUpdates {
		for _, ev := range g.ScriptedEvents {
			ev.OnPhaseFinished(g, phase)
		}
	}
	if e.PhaseFinished != nil {
		e.PhaseFinished(g, phase)
	}
}

func (e *Engine) pruneScriptedEvents(g *GameContext) {
	kept := g.ScriptedEvents[:0]
	for _, ev := range g.ScriptedEvents {
		if ev.CanExecute(g) {
			kept = append(kept, ev)
		}
	}
	g.ScriptedEvents = kept
}

// collect resolves a fan-out's error list under the phase's policy: hard
// phases return the aggregate, best-effort phases log and continue.
func (e *Engine) collect(phase TurnPhase, errs []error, hard bool) error {
	if len(errs) == 0 {
		return nil
	}
	joined := errors.Join(errs...)
	if hard {
		return joined
	}
	e.Log.Printf("%s: %d task error(s) (continuing): %v", phase, len(errs), joined)
	return nil
}

func (e *Engine) doSendUpdates(g *GameContext) error {
	if e.SendUpdates != nil {
		e.SendUpdates(g)
	}
	return nil
}

// DoAIPlayers runs the AI collaborators for every non-human civilization and
// every human civilization enrolled for auto-turns. Task failures are logged
// and swallowed; the aggregate is intentionally not returned.
func (e *Engine) DoAIPlayers(g *GameContext) {
	PushContext(g)
	defer PopContext()

	var civs []CivID
	for _, civ := range g.Civilizations {
		if civ.IsHuman && !g.Options.AutoTurnCivs[civ.ID] {
			continue
		}
		civs = append(civs, civ.ID)
	}
	errs := forEach(g, fanOutWidth(g.Options), civs, func(sc *Scope, id CivID) error {
		ctx := sc.Current()
		m := ctx.Manager(id)
		if m == nil {
			return fmt.Errorf("ai: no ledger for civ %d", id)
		}
		if e.AI.Player != nil {
			e.AI.Player.CreateDesiredBorders(ctx, m)
		}
		if e.AI.Diplomat != nil {
			e.AI.Diplomat.DoTurn(ctx, id)
		}
		civ := ctx.Civilization(id)
		if civ != nil && !civ.IsHuman {
			if e.AI.Colony != nil {
				e.AI.Colony.DoTurn(ctx, id)
			}
			if e.AI.Unit != nil {
				e.AI.Unit.DoTurn(ctx, id)
			}
		}
		return nil
	})
	if len(errs) > 0 {
		e.Log.Printf("WaitOnAIPlayers: %d task error(s) (swallowed): %v", len(errs), errors.Join(errs...))
	}
}
