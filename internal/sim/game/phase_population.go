package game

import (
	"math"
	"sort"
	"sync"
)

// doPopulationGrowth feeds, grows and starves colonies, one civilization per
// task. Colonies whose population hits zero are only recorded inside the
// tasks; destruction deletes from the shared universe registry, so it runs
// sequentially after the fan-out drains.
func (e *Engine) doPopulationGrowth(g *GameContext) error {
	var (
		deadMu sync.Mutex
		dead   []*Colony
	)
	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		m.TotalPopulation.Reset()

		for _, c := range append([]*Colony(nil), m.Colonies...) {
			if e.growColony(ctx, m, c) {
				deadMu.Lock()
				dead = append(dead, c)
				deadMu.Unlock()
			}
		}
		m.EnsureSeatOfGovernment(ctx)
		return nil
	})

	sort.Slice(dead, func(i, j int) bool { return dead[i].ID < dead[j].ID })
	for _, c := range dead {
		g.DestroyColony(c)
		if m := g.Manager(c.OwnerID); m != nil {
			m.EnsureSeatOfGovernment(g)
		}
	}
	return e.collect(PhasePopulationGrowth, errs, false)
}

// growColony reports whether the colony died this turn; the caller owns the
// actual destruction.
func (e *Engine) growColony(g *GameContext, m *CivilizationManager, c *Colony) bool {
	c.Population.Max = c.MaxPopulation

	// The intro tutorial colony is forcibly depopulated every turn. A
	// scripted-scenario carve-out, deliberately not generalized.
	if g.Options.TutorialColonyName != "" && c.Name == g.Options.TutorialColonyName {
		c.Population.SetCurrent(0)
	}

	c.FoodReserves.AdjustCurrent(c.Output(ProdFood))
	pop := c.Population.Current()
	deficit := c.FoodReserves.Current() - pop
	if deficit > 0 {
		deficit = 0
	}
	c.FoodReserves.AdjustCurrent(-pop)
	c.FoodReserves.UpdateAndReset()

	if deficit < 0 {
		loss := int(math.Floor(0.1 * math.Sqrt(float64(pop)*float64(-deficit))))
		c.Population.AdjustCurrent(-loss)
		m.AddSitRep(&SitRep{
			Kind:     SitRepStarvation,
			Priority: PriorityRed,
			Turn:     g.TurnNumber,
			ColonyID: c.ID,
			Amount:   loss,
		})
	} else {
		growth := int(math.Ceil(c.GrowthRate * float64(pop)))
		c.Population.AdjustCurrent(growth)
	}
	if c.GrowthRate < 0 {
		m.AddSitRep(&SitRep{
			Kind:     SitRepPopulationDying,
			Priority: PriorityYellow,
			Turn:     g.TurnNumber,
			ColonyID: c.ID,
		})
	}

	if c.Population.Current() == 0 {
		m.AddSitRep(&SitRep{
			Kind:     SitRepPopulationDied,
			Priority: PriorityRed,
			Turn:     g.TurnNumber,
			ColonyID: c.ID,
		})
		return true
	}

	e.activateFoodFacilities(c)
	for c.ActivateFacility(ProdIndustry) {
	}
	m.TotalPopulation.AdjustCurrent(c.Population.Current())
	return false
}

// activateFoodFacilities brings food facilities online while the projected
// population, compounded over three turns of growth, would outgrow the food
// output and labor remains.
func (e *Engine) activateFoodFacilities(c *Colony) {
	projected := float64(c.Population.Current())
	for i := 0; i < 3; i++ {
		projected += math.Ceil(c.GrowthRate * projected)
	}
	for float64(c.Output(ProdFood)) < projected {
		if !c.ActivateFacility(ProdFood) {
			return
		}
	}
}
