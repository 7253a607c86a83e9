package game

// GameOptions carries the tunable constants the engine consults. Values come
// from the tuning file in production; NewGameOptions gives usable defaults
// for tests and bootstrap.
type GameOptions struct {
	GalaxyWidth  int
	GalaxyHeight int

	// TutorialColonyName force-zeroes that colony's population every turn.
	// A scripted-scenario carve-out; empty disables it.
	TutorialColonyName string

	// Trade: minimum population per trade route, per civilization key, with
	// a default fallback, plus income multipliers.
	TradePopRequirements map[string]int
	TradePopDefault      int
	TradeSourceMult      float64
	TradeTargetMult      float64

	// Morale drift toward the founding civilization's base level, applied
	// only on zero net change.
	MoraleDriftRate int

	// FanOutWidth bounds phase parallelism; 0 means 4x logical cores.
	FanOutWidth int

	// AutoTurnCivs lists human civilizations whose AI runs their turn.
	AutoTurnCivs map[CivID]bool

	// Seed drives the engine's randomness; 0 seeds from the clock.
	Seed int64
}

func NewGameOptions() *GameOptions {
	return &GameOptions{
		GalaxyWidth:          20,
		GalaxyHeight:         15,
		TradePopRequirements: make(map[string]int),
		TradePopDefault:      150,
		TradeSourceMult:      1.0,
		TradeTargetMult:      0.5,
		MoraleDriftRate:      1,
		AutoTurnCivs:         make(map[CivID]bool),
	}
}

// GameContext is the world root: the single authoritative aggregate for one
// game. Multiple contexts may coexist in memory (authoritative plus
// projections); each is independently pushable onto the ambient stack.
type GameContext struct {
	TurnNumber int
	Options    *GameOptions

	Civilizations []*Civilization
	civsByID      map[CivID]*Civilization

	Managers CivilizationManagerMap

	Universe     *Universe
	Map          *GalaxyMap
	SectorClaims *SectorClaimGrid
	Visibility   *VisibilityLedger
	Diplomacy    *Diplomacy

	ScriptedEvents []ScriptedEvent
}

func NewGameContext(opts *GameOptions) *GameContext {
	if opts == nil {
		opts = NewGameOptions()
	}
	return &GameContext{
		TurnNumber:   1,
		Options:      opts,
		civsByID:     make(map[CivID]*Civilization),
		Managers:     make(CivilizationManagerMap),
		Universe:     NewUniverse(),
		Map:          NewGalaxyMap(opts.GalaxyWidth, opts.GalaxyHeight),
		SectorClaims: NewSectorClaimGrid(),
		Visibility:   NewVisibilityLedger(),
		Diplomacy:    NewDiplomacy(),
	}
}

// AddCivilization onboards a civilization and creates its ledger. Ledgers
// are never destroyed within a context's lifetime.
func (g *GameContext) AddCivilization(civ *Civilization) *CivilizationManager {
	if civ.BaseMoraleLevel == 0 {
		civ.BaseMoraleLevel = 100
	}
	g.Civilizations = append(g.Civilizations, civ)
	g.civsByID[civ.ID] = civ
	m := NewCivilizationManager(civ, g.Map.Width, g.Map.Height)
	g.Managers[civ.ID] = m
	// The diplomat entry is created at onboarding; phase tasks that run in
	// parallel only read the diplomat table after this point.
	g.Diplomacy.Diplomat(civ.ID)
	return m
}

func (g *GameContext) Civilization(id CivID) *Civilization { return g.civsByID[id] }

// Manager returns the ledger for id, or nil for unknown civilizations.
func (g *GameContext) Manager(id CivID) *CivilizationManager { return g.Managers[id] }

// FoundColony creates a colony, registers it and attaches it to its owner's
// ledger.
func (g *GameContext) FoundColony(name string, loc Location, owner CivID, population, maxPopulation int) *Colony {
	c := NewColony(name, loc, owner, population, maxPopulation)
	g.Universe.AddColony(c)
	if m := g.Manager(owner); m != nil {
		m.AddColony(c)
	}
	return c
}

// DestroyColony removes a colony from the universe, its owner's ledger and
// the visibility ledger.
func (g *GameContext) DestroyColony(c *Colony) {
	g.Universe.Destroy(c.ID)
	g.Visibility.ClearForTarget(c.ID)
	if m := g.Manager(c.OwnerID); m != nil {
		m.RemoveColony(c.ID)
	}
}
