package game

import "sync"

// Intelligence phase constants. The attacker's total intelligence is floored
// at the 201 sentinel before the 200-point noise floor is subtracted, so the
// derived attack power is never literal zero.
const (
	intelNoiseFloor      = 200
	intelAttackSentinel  = 201
	intelMaxAttempts     = 4
	intelRollRange       = 30
	intelActionRange     = 8
	minFacilitiesToLeave = 5
)

// doIntelligence runs espionage, one attacking empire per task. Each empire
// picks one random contacted rival empire and one random colony of theirs as
// the sole target this turn. Attempts mutate the defender's colonies and
// ledger, which another attacker's task may target at the same time, so the
// attempt blocks run one at a time under attemptMu.
func (e *Engine) doIntelligence(g *GameContext) error {
	var attemptMu sync.Mutex
	errs := forEach(g, fanOutWidth(g.Options), g.Managers.Sorted(), func(sc *Scope, m *CivilizationManager) error {
		ctx := sc.Current()
		if !m.Civ.IsEmpire {
			return nil
		}
		rivals := ctx.Diplomacy.ContactedEmpires(ctx, m.CivID)
		if len(rivals) == 0 {
			return nil
		}
		targetCiv := rivals[e.rng.Intn(len(rivals))]
		targetMgr := ctx.Manager(targetCiv)
		if targetMgr == nil || len(targetMgr.Colonies) == 0 {
			return nil
		}
		targetColony := targetMgr.Colonies[e.rng.Intn(len(targetMgr.Colonies))]

		attackTotal := m.IntelAttack.Current()
		if attackTotal < intelAttackSentinel {
			attackTotal = intelAttackSentinel
		}
		attackPower := attackTotal - intelNoiseFloor
		defense := targetMgr.IntelDefense.Current()
		if defense < 1 {
			defense = 1
		}
		ratio := attackPower / defense
		if ratio < 1 {
			return nil
		}
		attempts := ratio
		if attempts > intelMaxAttempts {
			attempts = intelMaxAttempts
		}
		attemptMu.Lock()
		for i := 0; i < attempts; i++ {
			e.intelAttempt(ctx, m, targetMgr, targetColony)
		}
		attemptMu.Unlock()
		return nil
	})
	return e.collect(PhaseIntelligence, errs, false)
}

// intelAttempt rolls one covert action. Rolls 1..8 shift morale on both
// sides AND trigger the same-numbered action; the ranges overlap on purpose
// and stay overlapped.
func (e *Engine) intelAttempt(g *GameContext, attacker, target *CivilizationManager, colony *Colony) {
	roll := e.roll(intelRollRange)
	if roll > intelActionRange {
		return
	}

	colony.Morale.AdjustCurrent(-2)
	if home := target.HomeColony(g); home != nil {
		home.Morale.AdjustCurrent(-1)
	}
	if seat := target.SeatColony(g); seat != nil {
		seat.Morale.AdjustCurrent(-1)
	}
	if home := attacker.HomeColony(g); home != nil {
		home.Morale.AdjustCurrent(1)
	}

	switch roll {
	case 1:
		e.intelStealCredits(g, attacker, target, colony)
	case 2:
		if reserves := colony.FoodReserves.Current(); reserves > 0 {
			colony.FoodReserves.AdjustCurrent(-e.roll(reserves))
		}
		e.intelReport(g, attacker, target, colony, "food reserves destroyed")
	case 3:
		e.intelDestroyFacilities(g, attacker, target, colony, ProdFood)
	case 4:
		e.intelDestroyFacilities(g, attacker, target, colony, ProdIndustry)
	case 5:
		e.intelDestroyFacilities(g, attacker, target, colony, ProdEnergy)
	case 6:
		e.intelDestroyFacilities(g, attacker, target, colony, ProdResearch)
	case 7:
		e.intelDestroyFacilities(g, attacker, target, colony, ProdIntelligence)
	case 8:
		if colony.OrbitalBatteries > 0 {
			colony.OrbitalBatteries -= e.roll(colony.OrbitalBatteries)
		}
		if s := colony.ShieldStrength.Current(); s > 0 {
			colony.ShieldStrength.AdjustCurrent(-e.roll(s))
		}
		e.intelReport(g, attacker, target, colony, "planetary defenses sabotaged")
	}
}

// intelStealCredits raids the central treasury when striking the home or
// capital colony, otherwise skims a trade route.
func (e *Engine) intelStealCredits(g *GameContext, attacker, target *CivilizationManager, colony *Colony) {
	stolen := 0
	if colony.ID == target.HomeColonyID || colony.ID == target.SeatOfGovernment {
		if balance := target.Treasury.Balance(); balance > 0 {
			stolen = e.roll(balance)
			target.Treasury.Add(-stolen)
			target.Credits.AdjustCurrent(-stolen)
		}
	} else {
		for _, r := range colony.TradeRoutes {
			if r.Credits > 0 {
				stolen = r.Credits
				r.Credits = 0
				break
			}
		}
	}
	if stolen > 0 {
		attacker.Treasury.Add(stolen)
		attacker.Credits.AdjustCurrent(stolen)
	}
	e.intelReport(g, attacker, target, colony, "credits stolen")
}

// intelDestroyFacilities wrecks up to roll(count) facilities while leaving
// the defender a minimum stock.
func (e *Engine) intelDestroyFacilities(g *GameContext, attacker, target *CivilizationManager, colony *Colony, cat ProductionCategory) {
	f := &colony.Facilities[cat]
	if f.Count > 0 {
		destroyable := f.Count - minFacilitiesToLeave
		if destroyable < 0 {
			destroyable = 0
		}
		destroyed := e.roll(f.Count)
		if destroyed > destroyable {
			destroyed = destroyable
		}
		f.Count -= destroyed
		if f.Active > f.Count {
			f.Active = f.Count
		}
	}
	e.intelReport(g, attacker, target, colony, cat.String()+" facilities destroyed")
}

// intelReport logs the paired target-side and attacker-side entries.
func (e *Engine) intelReport(g *GameContext, attacker, target *CivilizationManager, colony *Colony, detail string) {
	target.AddSitRep(&SitRep{
		Kind:     SitRepIntelTarget,
		Priority: PriorityRed,
		Turn:     g.TurnNumber,
		ColonyID: colony.ID,
		Detail:   detail,
	})
	attacker.AddSitRep(&SitRep{
		Kind:     SitRepIntelAttacker,
		Priority: PriorityGreen,
		Turn:     g.TurnNumber,
		ColonyID: colony.ID,
		OtherCiv: target.CivID,
		Detail:   detail,
	})
}
