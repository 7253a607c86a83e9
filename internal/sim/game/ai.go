package game

// AI decision collaborators. Their strategic logic lives outside the engine;
// the engine only schedules them after the main pipeline via DoAIPlayers.

// PlayerAI plans empire-level goals.
type PlayerAI interface {
	CreateDesiredBorders(g *GameContext, m *CivilizationManager)
}

// DiplomatAI drives proposal and response decisions.
type DiplomatAI interface {
	DoTurn(g *GameContext, civ CivID)
}

// ColonyAI manages colony build queues for civilizations without a player.
type ColonyAI interface {
	DoTurn(g *GameContext, civ CivID)
}

// UnitAI issues fleet orders for civilizations without a player.
type UnitAI interface {
	DoTurn(g *GameContext, civ CivID)
}

// AIProviders bundles the collaborators; nil members are skipped.
type AIProviders struct {
	Player   PlayerAI
	Diplomat DiplomatAI
	Colony   ColonyAI
	Unit     UnitAI
}
