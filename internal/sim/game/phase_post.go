package game

// doPostTurnOperations cleans up destroyed assets, commits every ledger's
// meters, appends the turn's history records and finally increments the turn
// counter. The counter moves here, before SendUpdates fires.
func (e *Engine) doPostTurnOperations(g *GameContext) error {
	for _, s := range g.Universe.Stations() {
		if !s.IsDestroyed() {
			continue
		}
		if m := g.Manager(s.OwnerID); m != nil {
			m.AddSitRep(&SitRep{
				Kind:     SitRepOrbitalDestroyed,
				Priority: PriorityRed,
				Turn:     g.TurnNumber,
				ObjectID: s.ID,
				Location: s.Loc,
			})
		}
		g.Universe.Destroy(s.ID)
		g.Visibility.ClearForTarget(s.ID)
	}

	for _, f := range g.Universe.Fleets() {
		if len(f.Ships) == 0 {
			if f.Order != nil {
				f.Order.OnCancelled(g, f)
			}
			g.Universe.Destroy(f.ID)
			g.Visibility.ClearForTarget(f.ID)
			continue
		}
		if f.Order != nil {
			f.Order.OnTurnEnding(g, f)
		}
	}

	e.appendHistory(g)

	for _, m := range g.Managers.Sorted() {
		m.Resources.UpdateAndReset()
		m.Credits.UpdateAndReset()
		m.Research.UpdateAndReset()
		m.IntelAttack.UpdateAndReset()
		m.IntelDefense.UpdateAndReset()
		m.Treasury.EndTurn(g.TurnNumber)
		if m.TurnFinished != nil {
			m.TurnFinished(g.TurnNumber)
		}
	}

	g.Visibility.OnTurn()
	g.TurnNumber++
	return nil
}

// appendHistory writes one record per civilization with cross-civilization
// rankings computed from this turn's values.
func (e *Engine) appendHistory(g *GameContext) {
	managers := g.Managers.Sorted()
	credits := make([]int, len(managers))
	colonies := make([]int, len(managers))
	population := make([]int, len(managers))
	research := make([]int, len(managers))
	for i, m := range managers {
		credits[i] = m.Treasury.Balance()
		colonies[i] = len(m.Colonies)
		population[i] = m.TotalPopulation.Current()
		research[i] = m.Research.Current()
	}
	for i, m := range managers {
		resources := 0
		for r := ResourceType(0); r < ResourceTypeCount; r++ {
			resources += m.Resources.Available(r)
		}
		m.History = append(m.History, HistoryEntry{
			Turn:           g.TurnNumber,
			Credits:        credits[i],
			Maintenance:    m.MaintenanceThisTurn,
			Colonies:       colonies[i],
			Population:     population[i],
			Morale:         m.AverageMorale(),
			Resources:      resources,
			Research:       research[i],
			Intelligence:   m.IntelAttack.Current() + m.IntelDefense.Current(),
			CreditsRank:    rankOf(credits[i], credits),
			ColoniesRank:   rankOf(colonies[i], colonies),
			PopulationRank: rankOf(population[i], population),
			ResearchRank:   rankOf(research[i], research),
		})
	}
}
