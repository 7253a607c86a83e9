package game

import "sync"

// The bootstrap context backs the ambient-lookup fallback for headless
// evaluation and preview tooling. Production turn processing never reaches
// it: the engine pushes the authoritative context before any phase runs.
// It is deliberately a separate factory so production code paths never
// depend on its contents.

var bootstrapOnce struct {
	sync.Once
	ctx *GameContext
}

func bootstrapContext() *GameContext {
	bootstrapOnce.Do(func() {
		bootstrapOnce.ctx = newBootstrapContext()
	})
	return bootstrapOnce.ctx
}

// newBootstrapContext builds a tiny throwaway game: one civilization, one
// colony, enough for preview code to resolve lookups without crashing.
func newBootstrapContext() *GameContext {
	opts := NewGameOptions()
	opts.GalaxyWidth, opts.GalaxyHeight = 5, 5
	g := NewGameContext(opts)
	civ := &Civilization{ID: 0, Key: "BOOTSTRAP", Name: "Bootstrap", IsEmpire: true}
	g.AddCivilization(civ)
	g.FoundColony("Origin", Location{X: 2, Y: 2}, civ.ID, 100, 500)
	return g
}
