package game

// claimRadiusCap bounds how far a single colony projects influence.
const claimRadiusCap = 3

// doMapUpdates rebuilds sector claims, then recomputes every civilization's
// scan and fuel grids. The shared interference grid is computed in the
// background while claims run and read-only afterwards.
func (e *Engine) doMapUpdates(g *GameContext) error {
	interference := make(chan []int, 1)
	go func() { interference <- g.Map.InterferenceGrid() }()

	if err := e.doSectorClaims(g); err != nil {
		return err
	}

	grid := <-interference
	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		e.rebuildCivMapData(ctx, m, grid)
		return nil
	})
	return e.collect(PhaseMapUpdates, errs, false)
}

// doSectorClaims rebuilds the shared claim grid from scratch. Per-empire
// tasks run in parallel; AddClaim locks internally since every task writes
// the same grid.
func (e *Engine) doSectorClaims(g *GameContext) error {
	g.SectorClaims.ClearClaims()
	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		if !m.Civ.IsEmpire {
			return nil
		}
		for _, c := range m.Colonies {
			pop := c.Population.Current()
			radius := pop / 100
			if radius > claimRadiusCap {
				radius = claimRadiusCap
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					loc := Location{X: c.Loc.X + dx, Y: c.Loc.Y + dy}
					if !ctx.Map.In(loc) {
						continue
					}
					weight := pop / (Distance(c.Loc, loc) + 1)
					if weight <= 0 {
						continue
					}
					ctx.SectorClaims.AddClaim(m.CivID, loc, weight)
				}
			}
			m.MapData.SetScanned(c.Loc, true)
		}
		if m.Civ.IsHuman {
			m.DesiredBorders = make(map[Location]bool)
		}
		return nil
	})
	return e.collect(PhaseMapUpdates, errs, false)
}

// rebuildCivMapData recomputes one civilization's fog-of-war grids.
func (e *Engine) rebuildCivMapData(g *GameContext, m *CivilizationManager, interference []int) {
	md := m.MapData
	md.ResetScanStrengthAndFuelRange()

	for _, f := range g.Universe.OwnedFleets(m.CivID) {
		strength := 0
		for _, s := range f.Ships {
			if s.ScanStrength > strength {
				strength = s.ScanStrength
			}
		}
		applyScanSource(md, g.Map, f.Loc, strength)
	}
	for _, s := range g.Universe.OwnedStations(m.CivID) {
		applyScanSource(md, g.Map, s.Loc, s.ScanStrength)
	}
	for _, c := range m.Colonies {
		strength := 1
		if bonus := c.ActiveBonus(BonusScanRange); bonus > strength {
			strength = bonus
		}
		applyScanSource(md, g.Map, c.Loc, strength)
	}

	// Fuel range: distance from every cell to its nearest fuel source.
	var sources []Location
	for _, s := range g.Universe.OwnedStations(m.CivID) {
		if s.IsFuelSource {
			sources = append(sources, s.Loc)
		}
	}
	for _, c := range m.Colonies {
		if c.HasShipyard() {
			sources = append(sources, c.Loc)
		}
	}
	if len(sources) > 0 {
		for y := 0; y < g.Map.Height; y++ {
			for x := 0; x < g.Map.Width; x++ {
				loc := Location{X: x, Y: y}
				for _, src := range sources {
					md.UpgradeFuelRange(loc, Distance(loc, src))
				}
			}
		}
	}

	md.ApplyScanInterference(interference, g.Map.Width)
}

// applyScanSource radiates scan strength outward with linear falloff.
func applyScanSource(md *CivilizationMapData, gm *GalaxyMap, center Location, strength int) {
	if strength <= 0 {
		return
	}
	for dy := -strength; dy <= strength; dy++ {
		for dx := -strength; dx <= strength; dx++ {
			loc := Location{X: center.X + dx, Y: center.Y + dy}
			if !gm.In(loc) {
				continue
			}
			md.UpgradeScanStrength(loc, strength-Distance(center, loc))
		}
	}
}
