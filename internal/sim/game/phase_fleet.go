package game

// Crew experience awards per movement step.
const (
	crewXPPerStep      = 5
	crewXPHoldPosition = 1
)

// doFleetMovement runs sequentially: order execution can have cross-fleet
// side effects, so fleets are processed one at a time in id order.
func (e *Engine) doFleetMovement(g *GameContext) error {
	for _, f := range g.Universe.Fleets() {
		e.settleFleetOrder(g, f)

		m := g.Manager(f.OwnerID)
		if m == nil {
			continue
		}
		if f.Range() >= m.MapData.FuelRange(f.Loc) {
			e.topOffFuel(f, m)
		}

		e.moveFleet(g, f, m)
		e.settleFleetOrder(g, f)

		// Stranded fleets that cannot reach fuel from where they ended up
		// give up their locked route.
		if f.IsStranded() && f.Range() < m.MapData.FuelRange(f.Loc) {
			f.ClearRoute()
		}
	}
	return nil
}

// settleFleetOrder applies the completion/cancellation lifecycle. The hooks
// may install a replacement order; only when the order reference is
// unchanged afterwards does the fleet revert to its default order.
func (e *Engine) settleFleetOrder(g *GameContext, f *Fleet) {
	order := f.Order
	if order == nil {
		f.Order = DefaultOrder()
		return
	}
	if order.IsComplete() {
		order.OnCompleted(g, f)
		if f.Order == order {
			f.Order = DefaultOrder()
		}
		return
	}
	if !order.IsValid(f) {
		order.OnCancelled(g, f)
		if f.Order == order {
			f.Order = DefaultOrder()
		}
	}
}

// topOffFuel refills each ship from the owner's shared deuterium pool.
func (e *Engine) topOffFuel(f *Fleet, m *CivilizationManager) {
	for _, s := range f.Ships {
		need := s.FuelReserve.Max - s.FuelReserve.Current()
		if need <= 0 {
			continue
		}
		got := m.Resources.Consume(ResDeuterium, need)
		if got > 0 {
			s.FuelReserve.AdjustCurrent(got)
		}
	}
}

// moveFleet steps the fleet along its route, up to its speed, burning one
// fuel per ship per step. Ships in fueling range replenish the step's burn
// from the shared pool. A black-hole transit after any step rolls hull
// damage per ship.
func (e *Engine) moveFleet(g *GameContext, f *Fleet, m *CivilizationManager) {
	speed := f.Speed()
	for step := 0; step < speed; step++ {
		target, ok := f.NextWaypoint()
		if !ok {
			return
		}
		next := StepToward(f.Loc, target)
		if next == f.Loc {
			// Zero-distance first step still drills the crew, barely.
			if step == 0 {
				for _, s := range f.Ships {
					s.CrewXP += crewXPHoldPosition
				}
			}
			f.advanceRoute()
			return
		}

		inRange := f.Range() >= m.MapData.FuelRange(f.Loc)
		for _, s := range f.Ships {
			s.FuelReserve.AdjustCurrent(-1)
			if inRange {
				if got := m.Resources.Consume(ResDeuterium, 1); got > 0 {
					s.FuelReserve.AdjustCurrent(got)
				}
			}
		}

		g.Universe.MoveFleet(f, next)
		for _, s := range f.Ships {
			s.CrewXP += crewXPPerStep
		}
		f.advanceRoute()

		if sector := g.Map.Sector(f.Loc); sector != nil && sector.Star == StarBlackHole {
			e.blackHoleTransit(g, f, m)
			if len(f.Ships) == 0 {
				return
			}
		}
		if f.IsStranded() {
			return
		}
	}
}

// blackHoleTransit rolls gravitational damage per ship; a roll meeting the
// ship's full hull destroys it outright.
func (e *Engine) blackHoleTransit(g *GameContext, f *Fleet, m *CivilizationManager) {
	destroyed, damaged := 0, 0
	for _, s := range append([]*Ship(nil), f.Ships...) {
		dmg := e.roll(s.Hull.Max)
		if dmg >= s.Hull.Current() {
			f.RemoveShip(s)
			destroyed++
			continue
		}
		s.Hull.AdjustCurrent(-dmg)
		damaged++
	}
	if destroyed == 0 && damaged == 0 {
		return
	}
	rep := &SitRep{
		Kind:     SitRepBlackHoleEncounter,
		Priority: PriorityRed,
		Turn:     g.TurnNumber,
		ObjectID: f.ID,
		Location: f.Loc,
		Amount:   destroyed,
		Amount2:  damaged,
	}
	m.AddSitRep(rep)
	if len(f.Ships) == 0 {
		g.Universe.Destroy(f.ID)
		g.Visibility.ClearForTarget(f.ID)
	}
}
