package game

// doMorale applies empire-wide and per-colony morale bonuses, then commits
// each colony's morale meter. A colony whose morale saw zero net change this
// turn drifts one configured step toward the founding civilization's base
// level.
func (e *Engine) doMorale(g *GameContext) error {
	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		empireWide := 0
		for _, c := range m.Colonies {
			empireWide += c.ActiveBonus(BonusMoraleEmpireWide)
		}
		for _, c := range m.Colonies {
			bonus := empireWide + c.ActiveBonus(BonusMorale)
			if bonus != 0 {
				c.Morale.AdjustCurrent(bonus)
			}
			if c.Morale.CurrentChange() == 0 {
				e.driftMorale(ctx, m, c)
			}
			c.Morale.UpdateAndReset()
		}
		return nil
	})
	return e.collect(PhaseMorale, errs, false)
}

// driftMorale nudges an unchanged colony toward its founder's base level.
func (e *Engine) driftMorale(g *GameContext, m *CivilizationManager, c *Colony) {
	base := m.Civ.BaseMoraleLevel
	rate := g.Options.MoraleDriftRate
	if rate <= 0 {
		return
	}
	cur := c.Morale.Current()
	switch {
	case cur < base:
		delta := base - cur
		if delta > rate {
			delta = rate
		}
		c.Morale.AdjustCurrent(delta)
	case cur > base:
		delta := cur - base
		if delta > rate {
			delta = rate
		}
		c.Morale.AdjustCurrent(-delta)
	}
}
