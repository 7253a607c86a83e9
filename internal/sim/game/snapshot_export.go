package game

import (
	"sort"

	"astrodominion.ai/internal/persistence/snapshot"
	"astrodominion.ai/internal/sim/encoding"
)

// ExportSnapshot captures the full game state between turns. Sector claims,
// scan strengths and fuel ranges are rebuilt by the next map-update pass and
// are carried only through the packed per-civilization map cells.
func (g *GameContext) ExportSnapshot(gameID string) snapshot.SnapshotV1 {
	opts := g.Options
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{Version: 1, GameID: gameID, Turn: g.TurnNumber},

		Seed:         opts.Seed,
		GalaxyWidth:  g.Map.Width,
		GalaxyHeight: g.Map.Height,

		TutorialColonyName:   opts.TutorialColonyName,
		TradePopRequirements: opts.TradePopRequirements,
		TradePopDefault:      opts.TradePopDefault,
		TradeSourceMult:      opts.TradeSourceMult,
		TradeTargetMult:      opts.TradeTargetMult,
		MoraleDriftRate:      opts.MoraleDriftRate,
		FanOutWidth:          opts.FanOutWidth,

		TurnNumber: g.TurnNumber,
		NextID:     int32(g.Universe.nextID),
	}

	for civ, on := range opts.AutoTurnCivs {
		if on {
			snap.AutoTurnCivs = append(snap.AutoTurnCivs, int(civ))
		}
	}
	sort.Ints(snap.AutoTurnCivs)

	for y := 0; y < g.Map.Height; y++ {
		for x := 0; x < g.Map.Width; x++ {
			s := g.Map.Sector(Location{X: x, Y: y})
			if s.Star != StarNone {
				snap.Stars = append(snap.Stars, snapshot.StarV1{X: x, Y: y, Star: int(s.Star)})
			}
		}
	}

	for _, civ := range g.Civilizations {
		snap.Civilizations = append(snap.Civilizations, snapshot.CivilizationV1{
			ID:              int(civ.ID),
			Key:             civ.Key,
			Name:            civ.Name,
			IsEmpire:        civ.IsEmpire,
			IsHuman:         civ.IsHuman,
			BaseMoraleLevel: civ.BaseMoraleLevel,
		})
	}

	for _, m := range g.Managers.Sorted() {
		snap.Managers = append(snap.Managers, exportManager(m))
	}

	for _, c := range g.Universe.Colonies() {
		snap.Colonies = append(snap.Colonies, exportColony(c))
	}
	for _, f := range g.Universe.Fleets() {
		snap.Fleets = append(snap.Fleets, exportFleet(f))
	}
	for _, st := range g.Universe.Stations() {
		snap.Stations = append(snap.Stations, exportStation(st))
	}

	snap.Visibility = exportVisibility(g.Visibility)
	snap.Diplomacy = exportDiplomacy(g.Diplomacy)
	return snap
}

func exportMeter(m *Meter) snapshot.MeterV1 {
	return snapshot.MeterV1{Min: m.Min, Max: m.Max, Cur: m.cur, Base: m.base, Last: m.last}
}

func exportManager(m *CivilizationManager) snapshot.ManagerV1 {
	out := snapshot.ManagerV1{
		CivID:           int(m.CivID),
		Credits:         exportMeter(m.Credits),
		TreasuryBalance: m.Treasury.Balance(),

		TotalPopulation: exportMeter(m.TotalPopulation),
		Research:        exportMeter(m.Research),
		IntelAttack:     exportMeter(m.IntelAttack),
		IntelDefense:    exportMeter(m.IntelDefense),

		BuiltCounts: m.BuiltCounts,

		MapCells: encoding.EncodeCells(m.MapData.cells),

		HomeColonyID:     int32(m.HomeColonyID),
		SeatOfGovernment: int32(m.SeatOfGovernment),
	}
	for _, h := range m.Treasury.History() {
		out.TreasuryHistory = append(out.TreasuryHistory, snapshot.TreasurySnapV1{
			Turn: h.Turn, Initial: h.Initial, Income: h.Income, Expenses: h.Expenses,
		})
	}
	for r := ResourceType(0); r < ResourceTypeCount; r++ {
		out.Resources[r] = exportMeter(m.Resources.Meter(r))
	}
	for _, sc := range m.ShipCounts {
		out.ShipCounts = append(out.ShipCounts, snapshot.ShipCountV1{
			Needed: sc.Needed, Ordered: sc.Ordered, Available: sc.Available,
		})
	}
	for _, h := range m.History {
		out.History = append(out.History, snapshot.HistoryV1(h))
	}
	var borders []Location
	for loc, on := range m.DesiredBorders {
		if on {
			borders = append(borders, loc)
		}
	}
	sort.Slice(borders, func(i, j int) bool {
		if borders[i].Y != borders[j].Y {
			return borders[i].Y < borders[j].Y
		}
		return borders[i].X < borders[j].X
	})
	for _, loc := range borders {
		out.DesiredBorders = append(out.DesiredBorders, [2]int{loc.X, loc.Y})
	}
	return out
}

func exportProject(p *BuildProject) snapshot.ProjectV1 {
	d := p.Design
	return snapshot.ProjectV1{
		DesignKey:    d.Key,
		IndustryCost: d.IndustryCost,
		ResourceCost: d.ResourceCost,
		BuildLimit:   d.BuildLimit,
		IsShip:       d.IsShip,
		Category:     int(d.Category),

		IndustryRemaining: p.IndustryRemaining,
		ResourceRemaining: p.ResourceRemaining,
		Rushed:            p.Rushed,
		Cancelled:         p.Cancelled,
	}
}

func exportColony(c *Colony) snapshot.ColonyV1 {
	out := snapshot.ColonyV1{
		ID:          int32(c.ID),
		Owner:       int(c.OwnerID),
		Name:        c.Name,
		X:           c.Loc.X,
		Y:           c.Loc.Y,
		Maintenance: c.Maintenance,
		Scrap:       c.Scrap,

		Population:    exportMeter(c.Population),
		MaxPopulation: c.MaxPopulation,
		GrowthRate:    c.GrowthRate,
		FoodReserves:  exportMeter(c.FoodReserves),
		Morale:        exportMeter(c.Morale),

		CreditsFromTrade: exportMeter(c.CreditsFromTrade),

		OrbitalBatteries: c.OrbitalBatteries,
		ShieldStrength:   exportMeter(c.ShieldStrength),

		ResourceOutput: c.ResourceOutput,
		CreditsOutput:  c.CreditsOutput,
		IntelOutput:    c.IntelOutput,
	}
	for i := range c.Facilities {
		f := &c.Facilities[i]
		out.Facilities[i] = snapshot.FacilityV1{Count: f.Count, Active: f.Active, UnitOutput: f.UnitOutput}
	}
	for _, b := range c.Buildings {
		bv := snapshot.BuildingV1{
			ID:          int32(b.ID),
			Name:        b.Name,
			Maintenance: b.Maintenance,
			Scrap:       b.Scrap,
			Active:      b.Active,
			EnergyCost:  b.EnergyCost,
		}
		for _, bon := range b.Bonuses {
			bv.Bonuses = append(bv.Bonuses, snapshot.BonusV1{Type: int(bon.Type), Amount: bon.Amount})
		}
		out.Buildings = append(out.Buildings, bv)
	}
	for _, r := range c.TradeRoutes {
		out.TradeRoutes = append(out.TradeRoutes, snapshot.TradeRouteV1{
			TargetColonyID: int32(r.TargetColonyID), Credits: r.Credits,
		})
	}
	if c.BuildSlot != nil {
		p := exportProject(c.BuildSlot)
		out.BuildSlot = &p
	}
	for _, p := range c.BuildQueue {
		out.BuildQueue = append(out.BuildQueue, exportProject(p))
	}
	if c.Shipyard != nil {
		y := &snapshot.ShipyardV1{}
		for _, slot := range c.Shipyard.BuildSlots {
			if slot.Project != nil {
				y.Slots = append(y.Slots, exportProject(slot.Project))
				y.Occupied = append(y.Occupied, true)
			} else {
				y.Slots = append(y.Slots, snapshot.ProjectV1{})
				y.Occupied = append(y.Occupied, false)
			}
		}
		for _, p := range c.Shipyard.BuildQueue {
			y.Queue = append(y.Queue, exportProject(p))
		}
		out.Shipyard = y
	}
	return out
}

func exportFleet(f *Fleet) snapshot.FleetV1 {
	out := snapshot.FleetV1{
		ID:          int32(f.ID),
		Owner:       int(f.OwnerID),
		Name:        f.Name,
		X:           f.Loc.X,
		Y:           f.Loc.Y,
		Maintenance: f.Maintenance,
		Scrap:       f.Scrap,
		RouteLocked: f.RouteLocked,
	}
	for _, s := range f.Ships {
		out.Ships = append(out.Ships, snapshot.ShipV1{
			ID:             int32(s.ID),
			Name:           s.Name,
			Category:       int(s.Category),
			Hull:           exportMeter(s.Hull),
			FuelReserve:    exportMeter(s.FuelReserve),
			CrewXP:         s.CrewXP,
			Speed:          s.Speed,
			RangeSectors:   s.RangeSectors,
			ScanStrength:   s.ScanStrength,
			ScienceAbility: s.ScienceAbility,
		})
	}
	out.Order = exportOrder(f.Order)
	for _, wp := range f.Route {
		out.Route = append(out.Route, [2]int{wp.X, wp.Y})
	}
	return out
}

func exportOrder(o FleetOrder) snapshot.OrderV1 {
	if o == nil {
		return snapshot.OrderV1{Kind: int(OrderAvoid)}
	}
	out := snapshot.OrderV1{Kind: int(o.Kind())}
	if a, ok := o.(*AssaultOrder); ok {
		out.TargetColonyID = int32(a.TargetColonyID)
		out.Done = a.done
	}
	return out
}

func exportStation(s *Station) snapshot.StationV1 {
	return snapshot.StationV1{
		ID:          int32(s.ID),
		Owner:       int(s.OwnerID),
		Name:        s.Name,
		X:           s.Loc.X,
		Y:           s.Loc.Y,
		Maintenance: s.Maintenance,
		Scrap:       s.Scrap,

		Hull:         exportMeter(s.Hull),
		ScanStrength: s.ScanStrength,
		ScanRange:    s.ScanRange,
		IsFuelSource: s.IsFuelSource,
	}
}

func exportVisibility(v *VisibilityLedger) []snapshot.VisibilityV1 {
	v.mu.RLock()
	out := make([]snapshot.VisibilityV1, 0, len(v.entries))
	for key, e := range v.entries {
		out = append(out, snapshot.VisibilityV1{
			Civ:       int(key.Civ),
			Target:    int32(key.Target),
			Durations: *e,
		})
	}
	v.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Civ != out[j].Civ {
			return out[i].Civ < out[j].Civ
		}
		return out[i].Target < out[j].Target
	})
	return out
}

func exportDiplomacy(d *Diplomacy) snapshot.DiplomacyV1 {
	var out snapshot.DiplomacyV1
	var civIDs []int
	for id := range d.diplomats {
		civIDs = append(civIDs, int(id))
	}
	sort.Ints(civIDs)
	for _, id := range civIDs {
		dip := d.diplomats[CivID(id)]
		dv := snapshot.DiplomatV1{
			CivID:            id,
			SeatOfGovernment: int32(dip.SeatOfGovernment),
		}
		dv.Contacts = sortedCivSet(dip.Contacts)
		dv.AtWar = sortedCivSet(dip.AtWar)
		out.Diplomats = append(out.Diplomats, dv)
	}
	var keys []agreementKey
	for key := range d.Agreements {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}
		return keys[i].B < keys[j].B
	})
	for _, key := range keys {
		out.Agreements = append(out.Agreements, snapshot.AgreementV1{
			A: int(key.A), B: int(key.B),
			Proposals: append([]string(nil), d.Agreements[key]...),
		})
	}
	for _, m := range d.Outbox {
		out.Outbox = append(out.Outbox, snapshot.MessageV1{
			From: int(m.From), To: int(m.To), Kind: int(m.Kind),
			Text: m.Text, DeliverOnTurn: m.DeliverOnTurn,
		})
	}
	for _, r := range d.Responses {
		out.Responses = append(out.Responses, snapshot.ResponseV1{
			From: int(r.From), To: int(r.To), Proposal: r.Proposal, Accept: r.Accept,
		})
	}
	return out
}

func sortedCivSet(set map[CivID]bool) []int {
	var out []int
	for id, on := range set {
		if on {
			out = append(out, int(id))
		}
	}
	sort.Ints(out)
	return out
}
