package game

import "sort"

// doCombat collects encounters and invasions, then blocks on the external
// resolver for each one in turn. The resolver unblocks the engine through
// NotifyCombatFinished; there is no timeout.
func (e *Engine) doCombat(g *GameContext) error {
	for _, enc := range e.collectEncounters(g) {
		if e.CombatOccurring == nil {
			continue
		}
		e.gate.Reset()
		e.CombatOccurring(g, enc)
		e.gate.Wait()
	}

	invasions := e.collectInvasions(g)
	for _, arena := range invasions {
		if e.InvasionOccurring == nil {
			continue
		}
		e.gate.Reset()
		e.InvasionOccurring(g, arena)
		e.gate.Wait()
	}

	// Invading fleets whose assault no longer applies fall back to their
	// default order.
	for _, arena := range invasions {
		for _, f := range arena.Invaders {
			if f.Order != nil && f.Order.Kind() == OrderAssault && !f.Order.IsValid(f) {
				f.Order = DefaultOrder()
			}
		}
	}

	errs := forEach(g, fanOutWidth(g.Options), g.Universe.Colonies(), func(sc *Scope, c *Colony) error {
		c.RefreshShielding()
		return nil
	})
	return e.collect(PhaseCombat, errs, false)
}

// collectEncounters groups combat-capable assets by location and keeps the
// locations where more than one side is present. Whether the sides actually
// fight is the resolver's decision.
func (e *Engine) collectEncounters(g *GameContext) []*CombatEncounter {
	byLoc := make(map[Location]map[CivID]*CombatAssets)
	add := func(loc Location, owner CivID) *CombatAssets {
		sides := byLoc[loc]
		if sides == nil {
			sides = make(map[CivID]*CombatAssets)
			byLoc[loc] = sides
		}
		a := sides[owner]
		if a == nil {
			a = &CombatAssets{OwnerID: owner, Location: loc}
			sides[owner] = a
		}
		return a
	}

	for _, f := range g.Universe.Fleets() {
		if !f.IsCombatant() {
			continue
		}
		a := add(f.Loc, f.OwnerID)
		a.Fleets = append(a.Fleets, f)
	}
	for _, s := range g.Universe.Stations() {
		if s.IsDestroyed() {
			continue
		}
		add(s.Loc, s.OwnerID).Station = s
	}

	var out []*CombatEncounter
	for loc, sides := range byLoc {
		if len(sides) < 2 {
			continue
		}
		enc := &CombatEncounter{Location: loc}
		for _, a := range sides {
			enc.Sides = append(enc.Sides, a)
		}
		sort.Slice(enc.Sides, func(i, j int) bool { return enc.Sides[i].OwnerID < enc.Sides[j].OwnerID })
		out = append(out, enc)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Location, out[j].Location
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// collectInvasions builds one arena per location holding fleets under valid
// assault orders.
func (e *Engine) collectInvasions(g *GameContext) []*InvasionArena {
	byLoc := make(map[Location]*InvasionArena)
	for _, f := range g.Universe.Fleets() {
		order, ok := f.Order.(*AssaultOrder)
		if !ok || !order.IsValid(f) {
			continue
		}
		col := g.Universe.Colony(order.TargetColonyID)
		if col == nil {
			continue
		}
		arena := byLoc[f.Loc]
		if arena == nil {
			arena = &InvasionArena{Location: f.Loc, Colony: col}
			byLoc[f.Loc] = arena
		}
		arena.Invaders = append(arena.Invaders, f)
	}
	out := make([]*InvasionArena, 0, len(byLoc))
	for _, a := range byLoc {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Location, out[j].Location
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}
