package game

import "sort"

// tradeIncomeBase scales route income from the two endpoint populations.
const tradeIncomeBase = 10

// doTrade maintains trade routes and collects their income, one civilization
// per task.
func (e *Engine) doTrade(g *GameContext) error {
	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		popReq := ctx.Options.TradePopDefault
		if req, ok := ctx.Options.TradePopRequirements[m.Civ.Key]; ok {
			popReq = req
		}
		if popReq <= 0 {
			popReq = 1
		}

		for _, c := range m.Colonies {
			e.updateColonyTrade(ctx, m, c, popReq)
		}

		// Civilization-wide percent-of-total-credits bonus applies once,
		// after every colony has deposited.
		pct := 0
		for _, c := range m.Colonies {
			pct += c.ActiveBonus(BonusPercentTotalCredits)
		}
		if pct != 0 && m.Treasury.Balance() > 0 {
			bonus := m.Treasury.Balance() * pct / 100
			m.Treasury.Add(bonus)
			m.Credits.AdjustCurrent(bonus)
		}
		return nil
	})
	return e.collect(PhaseTrade, errs, false)
}

func (e *Engine) updateColonyTrade(g *GameContext, m *CivilizationManager, c *Colony, popReq int) {
	// Drop routes whose target colony no longer exists.
	kept := c.TradeRoutes[:0]
	for _, r := range c.TradeRoutes {
		if r.Assigned() && g.Universe.Colony(r.TargetColonyID) == nil {
			continue
		}
		kept = append(kept, r)
	}
	c.TradeRoutes = kept

	srcPop := float64(c.Population.Current())
	for _, r := range c.TradeRoutes {
		if !r.Assigned() {
			r.Credits = 0
			m.AddSitRep(&SitRep{
				Kind:     SitRepUnassignedTradeRoute,
				Priority: PriorityYellow,
				Turn:     g.TurnNumber,
				ColonyID: c.ID,
			})
			continue
		}
		target := g.Universe.Colony(r.TargetColonyID)
		tgtPop := float64(target.Population.Current())
		r.Credits = int(tradeIncomeBase * (g.Options.TradeSourceMult*srcPop + g.Options.TradeTargetMult*tgtPop))
	}

	quota := c.Population.Current()/popReq + c.ActiveBonus(BonusTradeRoutes)
	if quota < 0 {
		quota = 0
	}
	for len(c.TradeRoutes) < quota {
		c.TradeRoutes = append(c.TradeRoutes, &TradeRoute{TargetColonyID: InvalidGameID})
	}
	if len(c.TradeRoutes) > quota {
		// Over quota: keep the most valuable routes, drop the rest.
		sort.SliceStable(c.TradeRoutes, func(i, j int) bool {
			return c.TradeRoutes[i].Credits > c.TradeRoutes[j].Credits
		})
		c.TradeRoutes = c.TradeRoutes[:quota]
	}

	income := 0
	for _, r := range c.TradeRoutes {
		income += r.Credits
	}
	if pct := c.ActiveBonus(BonusPercentTradeIncome); pct != 0 {
		income += income * pct / 100
	}
	c.CreditsFromTrade.AdjustCurrent(income)

	deposit := c.CreditsFromTrade.Current()
	if deposit > 0 {
		m.Treasury.Add(deposit)
		m.Credits.AdjustCurrent(deposit)
	}
	c.CreditsFromTrade.SetCurrent(0)
	c.CreditsFromTrade.UpdateAndReset()
}
