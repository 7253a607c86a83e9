package game

import (
	"fmt"

	"astrodominion.ai/internal/persistence/snapshot"
	"astrodominion.ai/internal/sim/encoding"
)

// ImportSnapshot rebuilds a game context from a stored snapshot. The
// returned context is ready for the next DoTurn; claims and scan grids are
// reconstructed by its map-update phase.
func ImportSnapshot(snap snapshot.SnapshotV1) (*GameContext, error) {
	if snap.Header.Version != 1 {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}

	opts := NewGameOptions()
	opts.GalaxyWidth = snap.GalaxyWidth
	opts.GalaxyHeight = snap.GalaxyHeight
	opts.Seed = snap.Seed
	opts.TutorialColonyName = snap.TutorialColonyName
	if snap.TradePopRequirements != nil {
		opts.TradePopRequirements = snap.TradePopRequirements
	}
	if snap.TradePopDefault != 0 {
		opts.TradePopDefault = snap.TradePopDefault
	}
	if snap.TradeSourceMult != 0 {
		opts.TradeSourceMult = snap.TradeSourceMult
	}
	if snap.TradeTargetMult != 0 {
		opts.TradeTargetMult = snap.TradeTargetMult
	}
	opts.MoraleDriftRate = snap.MoraleDriftRate
	opts.FanOutWidth = snap.FanOutWidth
	for _, civ := range snap.AutoTurnCivs {
		opts.AutoTurnCivs[CivID(civ)] = true
	}

	g := NewGameContext(opts)
	g.TurnNumber = snap.TurnNumber
	g.Universe.nextID = GameID(snap.NextID)

	for _, s := range snap.Stars {
		g.Map.SetStar(Location{X: s.X, Y: s.Y}, StarType(s.Star))
	}

	for _, cv := range snap.Civilizations {
		g.AddCivilization(&Civilization{
			ID:              CivID(cv.ID),
			Key:             cv.Key,
			Name:            cv.Name,
			IsEmpire:        cv.IsEmpire,
			IsHuman:         cv.IsHuman,
			BaseMoraleLevel: cv.BaseMoraleLevel,
		})
	}

	for i := range snap.Colonies {
		c, err := importColony(&snap.Colonies[i])
		if err != nil {
			return nil, err
		}
		g.Universe.colonies[c.ID] = c
	}
	for i := range snap.Fleets {
		f := importFleet(&snap.Fleets[i])
		g.Universe.fleets[f.ID] = f
	}
	for i := range snap.Stations {
		st := importStation(&snap.Stations[i])
		g.Universe.stations[st.ID] = st
	}

	for i := range snap.Managers {
		mv := &snap.Managers[i]
		m := g.Manager(CivID(mv.CivID))
		if m == nil {
			return nil, fmt.Errorf("snapshot manager for unknown civilization %d", mv.CivID)
		}
		if err := importManager(g, m, mv); err != nil {
			return nil, err
		}
	}

	for _, vv := range snap.Visibility {
		e := compositeVisibility(vv.Durations)
		g.Visibility.entries[visibilityKey{Civ: CivID(vv.Civ), Target: GameID(vv.Target)}] = &e
	}

	importDiplomacy(g.Diplomacy, &snap.Diplomacy)
	return g, nil
}

func applyMeter(m *Meter, v snapshot.MeterV1) {
	m.Min, m.Max = v.Min, v.Max
	m.cur, m.base, m.last = v.Cur, v.Base, v.Last
}

func importManager(g *GameContext, m *CivilizationManager, mv *snapshot.ManagerV1) error {
	applyMeter(m.Credits, mv.Credits)
	m.Treasury = NewTreasury(mv.TreasuryBalance)
	for _, h := range mv.TreasuryHistory {
		m.Treasury.history = append(m.Treasury.history, TreasurySnapshot{
			Turn: h.Turn, Initial: h.Initial, Income: h.Income, Expenses: h.Expenses,
		})
	}
	for r := ResourceType(0); r < ResourceTypeCount; r++ {
		applyMeter(m.Resources.Meter(r), mv.Resources[r])
	}
	applyMeter(m.TotalPopulation, mv.TotalPopulation)
	applyMeter(m.Research, mv.Research)
	applyMeter(m.IntelAttack, mv.IntelAttack)
	applyMeter(m.IntelDefense, mv.IntelDefense)

	if len(mv.ShipCounts) != int(ShipCategoryCount) {
		return fmt.Errorf("ship counts: got %d entries, want %d", len(mv.ShipCounts), ShipCategoryCount)
	}
	for i, sc := range mv.ShipCounts {
		m.ShipCounts[i] = ShipCount{Needed: sc.Needed, Ordered: sc.Ordered, Available: sc.Available}
	}
	if mv.BuiltCounts != nil {
		m.BuiltCounts = mv.BuiltCounts
	}
	for _, h := range mv.History {
		m.History = append(m.History, HistoryEntry(h))
	}

	cells, err := encoding.DecodeCells(mv.MapCells)
	if err != nil {
		return fmt.Errorf("map cells: %w", err)
	}
	if len(cells) != len(m.MapData.cells) {
		return fmt.Errorf("map cells: got %d, want %d", len(cells), len(m.MapData.cells))
	}
	copy(m.MapData.cells, cells)

	m.HomeColonyID = GameID(mv.HomeColonyID)
	m.SeatOfGovernment = GameID(mv.SeatOfGovernment)
	for _, b := range mv.DesiredBorders {
		m.DesiredBorders[Location{X: b[0], Y: b[1]}] = true
	}

	// Reattach owned colonies in universe id order; home assignment came from
	// the snapshot, not discovery order.
	for _, c := range g.Universe.Colonies() {
		if c.OwnerID == m.CivID {
			m.Colonies = append(m.Colonies, c)
		}
	}
	return nil
}

func importProject(pv *snapshot.ProjectV1) *BuildProject {
	d := &BuildDesign{
		Key:          pv.DesignKey,
		IndustryCost: pv.IndustryCost,
		ResourceCost: pv.ResourceCost,
		BuildLimit:   pv.BuildLimit,
		IsShip:       pv.IsShip,
		Category:     ShipCategory(pv.Category),
	}
	return &BuildProject{
		Design:            d,
		IndustryRemaining: pv.IndustryRemaining,
		ResourceRemaining: pv.ResourceRemaining,
		Rushed:            pv.Rushed,
		Cancelled:         pv.Cancelled,
	}
}

func importColony(cv *snapshot.ColonyV1) (*Colony, error) {
	c := NewColony(cv.Name, Location{X: cv.X, Y: cv.Y}, CivID(cv.Owner), cv.Population.Cur, cv.MaxPopulation)
	c.ID = GameID(cv.ID)
	c.Maintenance = cv.Maintenance
	c.Scrap = cv.Scrap
	applyMeter(c.Population, cv.Population)
	c.GrowthRate = cv.GrowthRate
	applyMeter(c.FoodReserves, cv.FoodReserves)
	applyMeter(c.Morale, cv.Morale)
	applyMeter(c.CreditsFromTrade, cv.CreditsFromTrade)
	applyMeter(c.ShieldStrength, cv.ShieldStrength)

	for i := range cv.Facilities {
		f := cv.Facilities[i]
		c.Facilities[i] = FacilityGroup{Count: f.Count, Active: f.Active, UnitOutput: f.UnitOutput}
	}
	for _, bv := range cv.Buildings {
		b := &Building{
			Object: Object{
				ID:          GameID(bv.ID),
				OwnerID:     CivID(cv.Owner),
				Name:        bv.Name,
				Loc:         Location{X: cv.X, Y: cv.Y},
				Maintenance: bv.Maintenance,
				Scrap:       bv.Scrap,
			},
			Active:     bv.Active,
			EnergyCost: bv.EnergyCost,
		}
		for _, bon := range bv.Bonuses {
			b.Bonuses = append(b.Bonuses, Bonus{Type: BonusType(bon.Type), Amount: bon.Amount})
		}
		c.Buildings = append(c.Buildings, b)
	}
	for _, rv := range cv.TradeRoutes {
		c.TradeRoutes = append(c.TradeRoutes, &TradeRoute{
			TargetColonyID: GameID(rv.TargetColonyID), Credits: rv.Credits,
		})
	}
	if cv.BuildSlot != nil {
		c.BuildSlot = importProject(cv.BuildSlot)
	}
	for i := range cv.BuildQueue {
		c.BuildQueue = append(c.BuildQueue, importProject(&cv.BuildQueue[i]))
	}
	if cv.Shipyard != nil {
		if len(cv.Shipyard.Slots) != len(cv.Shipyard.Occupied) {
			return nil, fmt.Errorf("shipyard slots/occupied length mismatch at colony %d", cv.ID)
		}
		y := NewShipyard(len(cv.Shipyard.Slots))
		for i := range cv.Shipyard.Slots {
			if cv.Shipyard.Occupied[i] {
				y.BuildSlots[i].Project = importProject(&cv.Shipyard.Slots[i])
			}
		}
		for i := range cv.Shipyard.Queue {
			y.BuildQueue = append(y.BuildQueue, importProject(&cv.Shipyard.Queue[i]))
		}
		c.Shipyard = y
	}
	c.OrbitalBatteries = cv.OrbitalBatteries
	c.ResourceOutput = cv.ResourceOutput
	c.CreditsOutput = cv.CreditsOutput
	c.IntelOutput = cv.IntelOutput
	return c, nil
}

func importFleet(fv *snapshot.FleetV1) *Fleet {
	f := &Fleet{
		Object: Object{
			ID:          GameID(fv.ID),
			OwnerID:     CivID(fv.Owner),
			Name:        fv.Name,
			Loc:         Location{X: fv.X, Y: fv.Y},
			Maintenance: fv.Maintenance,
			Scrap:       fv.Scrap,
		},
		RouteLocked: fv.RouteLocked,
	}
	for _, sv := range fv.Ships {
		s := NewShip(sv.Name, ShipCategory(sv.Category), sv.Hull.Max, sv.FuelReserve.Max, sv.Speed, sv.RangeSectors)
		s.ID = GameID(sv.ID)
		applyMeter(s.Hull, sv.Hull)
		applyMeter(s.FuelReserve, sv.FuelReserve)
		s.CrewXP = sv.CrewXP
		s.ScanStrength = sv.ScanStrength
		s.ScienceAbility = sv.ScienceAbility
		f.Ships = append(f.Ships, s)
	}
	f.Order = importOrder(fv.Order)
	for _, wp := range fv.Route {
		f.Route = append(f.Route, Location{X: wp[0], Y: wp[1]})
	}
	return f
}

func importOrder(ov snapshot.OrderV1) FleetOrder {
	switch OrderKind(ov.Kind) {
	case OrderEngage:
		return &EngageOrder{}
	case OrderAssault:
		return &AssaultOrder{TargetColonyID: GameID(ov.TargetColonyID), done: ov.Done}
	default:
		return DefaultOrder()
	}
}

func importStation(sv *snapshot.StationV1) *Station {
	st := NewStation(sv.Name, Location{X: sv.X, Y: sv.Y}, CivID(sv.Owner), sv.Hull.Max)
	st.ID = GameID(sv.ID)
	st.Maintenance = sv.Maintenance
	st.Scrap = sv.Scrap
	applyMeter(st.Hull, sv.Hull)
	st.ScanStrength = sv.ScanStrength
	st.ScanRange = sv.ScanRange
	st.IsFuelSource = sv.IsFuelSource
	return st
}

func importDiplomacy(d *Diplomacy, dv *snapshot.DiplomacyV1) {
	for _, dip := range dv.Diplomats {
		entry := d.Diplomat(CivID(dip.CivID))
		entry.SeatOfGovernment = GameID(dip.SeatOfGovernment)
		for _, c := range dip.Contacts {
			entry.Contacts[CivID(c)] = true
		}
		for _, w := range dip.AtWar {
			entry.AtWar[CivID(w)] = true
		}
	}
	for _, a := range dv.Agreements {
		d.Agreements[orderedPair(CivID(a.A), CivID(a.B))] = append([]string(nil), a.Proposals...)
	}
	for _, m := range dv.Outbox {
		d.Send(&DiplomacyMessage{
			From: CivID(m.From), To: CivID(m.To), Kind: DiplomacyMessageKind(m.Kind),
			Text: m.Text, DeliverOnTurn: m.DeliverOnTurn,
		})
	}
	for _, r := range dv.Responses {
		d.QueueResponse(&PendingResponse{
			From: CivID(r.From), To: CivID(r.To), Proposal: r.Proposal, Accept: r.Accept,
		})
	}
}
