package game

// DoPreGameSetup onboards every civilization's ledger and runs an initial
// map pass so turn one starts with coherent claims, scan and fuel grids.
func (e *Engine) DoPreGameSetup(g *GameContext) error {
	PushContext(g)
	defer PopContext()

	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		m.EnsureSeatOfGovernment(ctx)
		for _, c := range m.Colonies {
			m.MapData.SetScanned(c.Loc, true)
		}
		return nil
	})
	if err := e.collect(PhaseMapUpdates, errs, true); err != nil {
		return err
	}

	if err := e.doMapUpdates(g); err != nil {
		return err
	}
	g.TurnNumber = 1
	return nil
}
