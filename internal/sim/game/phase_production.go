package game

// doProduction banks every colony's output into the civilization pool, then
// advances colony build slots. Banking happens before any consumption so a
// colony short on one resource can draw on another colony's surplus from the
// same turn.
func (e *Engine) doProduction(g *GameContext) error {
	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		e.bankColonyOutputs(ctx, m)

		// Randomized processing order is load-bearing: with a fixed order
		// the same colonies would starve whenever stockpiles run low.
		colonies := append([]*Colony(nil), m.Colonies...)
		e.rng.Shuffle(len(colonies), func(i, j int) {
			colonies[i], colonies[j] = colonies[j], colonies[i]
		})
		for _, c := range colonies {
			e.advanceColonyConstruction(ctx, m, c)
		}
		return nil
	})
	return e.collect(PhaseProduction, errs, false)
}

func (e *Engine) bankColonyOutputs(g *GameContext, m *CivilizationManager) {
	for _, c := range m.Colonies {
		if c.CreditsOutput > 0 {
			m.Treasury.Add(c.CreditsOutput)
			m.Credits.AdjustCurrent(c.CreditsOutput)
		}
		intel := c.Output(ProdIntelligence) + c.IntelOutput
		if intel > 0 {
			defense := intel * 30 / 100
			m.IntelDefense.AdjustCurrent(defense)
			m.IntelAttack.AdjustCurrent(intel - defense)
		}
		for r := ResourceType(0); r < ResourceTypeCount; r++ {
			if c.ResourceOutput[r] > 0 {
				m.Resources.Add(r, c.ResourceOutput[r])
			}
		}
	}
}

// advanceColonyConstruction drives one colony's build slot until industry or
// stockpiles run out.
func (e *Engine) advanceColonyConstruction(g *GameContext, m *CivilizationManager, c *Colony) {
	industry := c.NetIndustry()
	for industry > 0 && (c.BuildSlot != nil || len(c.BuildQueue) > 0) {
		if c.BuildSlot == nil {
			c.BuildSlot = c.BuildQueue[0]
			c.BuildQueue = c.BuildQueue[1:]
		}
		p := c.BuildSlot

		if e.buildLimitReached(m, p.Design) {
			p.Cancelled = true
			c.BuildSlot = nil
			continue
		}
		if p.Rushed {
			p.RushPay(m.Treasury)
		} else {
			p.Advance(&industry, m.Resources)
		}
		if p.IsComplete() {
			e.finishProject(g, m, c, p)
			c.BuildSlot = nil
			continue
		}
		// No completion and nothing left to spend: stop here, the project
		// keeps its slot for next turn.
		break
	}
	if c.BuildSlot == nil && len(c.BuildQueue) == 0 {
		m.AddSitRep(&SitRep{
			Kind:     SitRepBuildQueueEmpty,
			Priority: PriorityGreen,
			Turn:     g.TurnNumber,
			ColonyID: c.ID,
		})
	}
}

func (e *Engine) buildLimitReached(m *CivilizationManager, d *BuildDesign) bool {
	return d.BuildLimit > 0 && m.BuiltCounts[d.Key] >= d.BuildLimit
}

func (e *Engine) finishProject(g *GameContext, m *CivilizationManager, c *Colony, p *BuildProject) {
	p.Finish()
	m.BuiltCounts[p.Design.Key]++
	if p.Design.IsShip {
		e.deliverShip(g, m, c, p.Design)
	}
}

// deliverShip commissions a finished hull into a fleet at the colony.
func (e *Engine) deliverShip(g *GameContext, m *CivilizationManager, c *Colony, d *BuildDesign) {
	var fleet *Fleet
	for _, f := range g.Universe.OwnedFleets(m.CivID) {
		if f.Loc == c.Loc {
			fleet = f
			break
		}
	}
	if fleet == nil {
		fleet = g.Universe.AddFleet(&Fleet{Object: Object{Name: c.Name + " fleet", Loc: c.Loc, OwnerID: m.CivID}})
	}
	ship := NewShip(d.Key, d.Category, 100, 100, 1, 4)
	g.Universe.AddShip(fleet, ship)

	counts := &m.ShipCounts[d.Category]
	counts.Available++
	if counts.Ordered > 0 {
		counts.Ordered--
	}
}

// doShipProduction mirrors doProduction per shipyard build slot. Unlike
// colony production, a slot whose project fails to complete stops the slot
// loop for the turn rather than retrying; retrying a starved slot would spin
// forever.
func (e *Engine) doShipProduction(g *GameContext) error {
	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		colonies := append([]*Colony(nil), m.Colonies...)
		e.rng.Shuffle(len(colonies), func(i, j int) {
			colonies[i], colonies[j] = colonies[j], colonies[i]
		})
		for _, c := range colonies {
			if c.Shipyard == nil {
				continue
			}
			e.advanceShipyard(ctx, m, c)
		}
		return nil
	})
	return e.collect(PhaseShipProduction, errs, false)
}

func (e *Engine) advanceShipyard(g *GameContext, m *CivilizationManager, c *Colony) {
	yard := c.Shipyard
	industry := c.NetIndustry()
	for _, slot := range yard.BuildSlots {
		completed := true
		for completed && industry > 0 && (slot.Project != nil || len(yard.BuildQueue) > 0) {
			if slot.Project == nil {
				slot.Project = yard.BuildQueue[0]
				yard.BuildQueue = yard.BuildQueue[1:]
			}
			p := slot.Project
			if e.buildLimitReached(m, p.Design) {
				p.Cancelled = true
				slot.Project = nil
				continue
			}
			if p.Rushed {
				p.RushPay(m.Treasury)
			} else {
				p.Advance(&industry, m.Resources)
			}
			if p.IsComplete() {
				e.finishProject(g, m, c, p)
				slot.Project = nil
				continue
			}
			completed = false
		}
	}
}
