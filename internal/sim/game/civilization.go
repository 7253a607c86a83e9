package game

// Civilization is the static identity of one player or minor power. Mutable
// per-turn state lives in the CivilizationManager, not here.
type Civilization struct {
	ID   CivID
	Key  string // stable catalog key, e.g. "TERRAN"
	Name string

	// Empires run intelligence operations and receive diplomatic sitreps;
	// minor powers do neither.
	IsEmpire bool
	IsHuman  bool

	// BaseMoraleLevel is the level colony morale drifts toward when a turn
	// produces zero net morale change.
	BaseMoraleLevel int
}
