package game

// doPreTurnOperations resets per-turn transient state. This is the one
// phase that hard-fails: any task error aborts the turn before the pipeline
// mutates anything it cannot reconcile.
func (e *Engine) doPreTurnOperations(g *GameContext) error {
	width := fanOutWidth(g.Options)

	errs := forEach(g, width, g.Universe.Objects(), func(sc *Scope, obj UniverseObject) error {
		obj.ResetTurn()
		return nil
	})
	if err := e.collect(PhasePreTurnOperations, errs, true); err != nil {
		return err
	}

	errs = forEach(g, width, g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		m.ClearSitReps()
		m.MaintenanceThisTurn = 0
		return nil
	})
	if err := e.collect(PhasePreTurnOperations, errs, true); err != nil {
		return err
	}

	// Order hooks run sequentially: shared fleet/order state makes the
	// turn-beginning callbacks unsafe to parallelize.
	for _, f := range g.Universe.Fleets() {
		if f.Order != nil {
			f.Order.OnTurnBeginning(g, f)
		}
	}
	return nil
}
