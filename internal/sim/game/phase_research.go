package game

// doResearch accumulates research from science ships studying stellar
// phenomena and from colony research facilities. Both contributions feed the
// same per-civilization accumulator within this phase. Fan-out is one
// civilization per task: a civilization's fleets are walked inside its own
// task so no two tasks touch the same accumulator or sitrep log.
func (e *Engine) doResearch(g *GameContext) error {
	width := fanOutWidth(g.Options)
	fleets := g.Universe.Fleets()

	errs := forEach(g, width, g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		for _, f := range fleets {
			if f.OwnerID != m.CivID {
				continue
			}
			sector := ctx.Map.Sector(f.Loc)
			if sector == nil || !sector.HasStar() {
				continue
			}
			// Studying the home system yields nothing new.
			if home := m.HomeColony(ctx); home != nil && home.Loc == f.Loc {
				continue
			}
			mult := sector.Star.ResearchMultiplier()
			for _, s := range f.Ships {
				if !s.IsScience() {
					continue
				}
				gained := int(float64(s.ScanStrength) * s.ScienceAbility * float64(mult))
				if gained <= 0 {
					continue
				}
				m.Research.AdjustCurrent(gained)
				m.AddSitRep(&SitRep{
					Kind:     SitRepScienceShipResearch,
					Priority: PriorityGreen,
					Turn:     ctx.TurnNumber,
					ObjectID: s.ID,
					Location: f.Loc,
					Amount:   gained,
				})
			}
		}
		return nil
	})
	if err := e.collect(PhaseResearch, errs, false); err != nil {
		return err
	}

	errs = forEach(g, width, g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		total := 0
		for _, c := range m.Colonies {
			total += c.Output(ProdResearch)
		}
		if total > 0 {
			m.Research.AdjustCurrent(total)
		}
		return nil
	})
	return e.collect(PhaseResearch, errs, false)
}
