package game

// doScrapping destroys scrap-flagged objects, then clears cancelled
// transient assets at every colony. Sequential: destruction mutates the
// registry being iterated.
func (e *Engine) doScrapping(g *GameContext) error {
	for _, obj := range g.Universe.Objects() {
		if !obj.FlaggedForScrap() {
			continue
		}
		if c, ok := obj.(*Colony); ok {
			g.DestroyColony(c)
			continue
		}
		g.Universe.Destroy(obj.ObjectID())
		g.Visibility.ClearForTarget(obj.ObjectID())
	}
	for _, c := range g.Universe.Colonies() {
		g.Universe.ScrapNonStructures(c)
	}
	return nil
}

// doMaintenance balances colony energy and charges upkeep. The charge is
// unconditional: the treasury can go negative.
func (e *Engine) doMaintenance(g *GameContext) error {
	for _, m := range g.Managers.Sorted() {
		for _, c := range m.Colonies {
			c.EnsureEnergy()
		}
		upkeep := 0
		for _, obj := range g.Universe.Objects() {
			if obj.Owner() != m.CivID {
				continue
			}
			upkeep += obj.MaintenanceCost()
		}
		if upkeep > 0 {
			m.Treasury.Add(-upkeep)
			m.Credits.AdjustCurrent(-upkeep)
			m.MaintenanceThisTurn += upkeep
		}
	}
	return nil
}
