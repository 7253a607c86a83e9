package game

import (
	"testing"
)

func TestSnapshotExportImportRoundTrip(t *testing.T) {
	g, ma, mb := newTestGame(t)
	g.TurnNumber = 12
	g.Map.SetStar(Location{X: 4, Y: 4}, StarBlackHole)

	ma.Treasury.Add(400)
	ma.BuiltCounts["factory"] = 2
	ma.History = append(ma.History, HistoryEntry{Turn: 11, Credits: 5400, CreditsRank: 1})
	ma.MapData.SetScanned(Location{X: 2, Y: 2}, true)
	ma.MapData.SetScanStrength(Location{X: 3, Y: 2}, 5)

	colony := ma.Colonies[0]
	colony.BuildSlot = NewBuildProject(&BuildDesign{Key: "factory", IndustryCost: 200})
	colony.BuildSlot.IndustryRemaining = 80
	colony.Shipyard = NewShipyard(2)
	colony.Shipyard.BuildSlots[1].Project = NewBuildProject(&BuildDesign{
		Key: "scout", IndustryCost: 150, IsShip: true, Category: ShipScout,
	})
	colony.TradeRoutes = append(colony.TradeRoutes, &TradeRoute{
		TargetColonyID: mb.Colonies[0].ID, Credits: 120,
	})

	fleet := g.Universe.OwnedFleets(ma.CivID)[0]
	fleet.Order = &AssaultOrder{TargetColonyID: mb.Colonies[0].ID}
	fleet.Route = []Location{{X: 3, Y: 2}, {X: 4, Y: 2}}
	fleet.RouteLocked = true
	fleet.Ships[0].CrewXP = 25

	g.Universe.AddStation(NewStation("Starbase 1", Location{X: 5, Y: 5}, ma.CivID, 300))

	g.Visibility.Add(ma.CivID, mb.Colonies[0].ID, VisPresence|VisLocation, 3)
	g.Visibility.Add(ma.CivID, mb.Colonies[0].ID, VisOwner, PermanentDuration)
	g.Diplomacy.EstablishContact(ma.CivID, mb.CivID)
	g.Diplomacy.DeclareWar(ma.CivID, mb.CivID)
	g.Diplomacy.RecordAgreement(ma.CivID, mb.CivID, "ceasefire")
	g.Diplomacy.Send(&DiplomacyMessage{
		From: mb.CivID, To: ma.CivID, Kind: MessageStatement, Text: "withdraw", DeliverOnTurn: 13,
	})

	snap := g.ExportSnapshot("dominion-test")
	if snap.Header.Turn != 12 || snap.Header.GameID != "dominion-test" {
		t.Fatalf("header: %+v", snap.Header)
	}

	got, err := ImportSnapshot(snap)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if got.TurnNumber != 12 {
		t.Fatalf("turn number: got %d", got.TurnNumber)
	}
	if got.Map.Sector(Location{X: 4, Y: 4}).Star != StarBlackHole {
		t.Fatalf("star not restored")
	}

	gm := got.Manager(ma.CivID)
	if gm.Treasury.Balance() != ma.Treasury.Balance() {
		t.Fatalf("treasury: got %d, want %d", gm.Treasury.Balance(), ma.Treasury.Balance())
	}
	if gm.BuiltCounts["factory"] != 2 {
		t.Fatalf("built counts: %v", gm.BuiltCounts)
	}
	if gm.CreditsRank() != 1 {
		t.Fatalf("credits rank: got %d", gm.CreditsRank())
	}
	if !gm.MapData.IsScanned(Location{X: 2, Y: 2}) {
		t.Fatalf("scanned flag lost")
	}
	if gm.MapData.ScanStrength(Location{X: 3, Y: 2}) != 5 {
		t.Fatalf("scan strength lost")
	}
	if gm.HomeColonyID != ma.HomeColonyID {
		t.Fatalf("home colony: got %d, want %d", gm.HomeColonyID, ma.HomeColonyID)
	}

	gc := got.Universe.Colony(colony.ID)
	if gc == nil || gc.Name != colony.Name {
		t.Fatalf("colony not restored")
	}
	if gc.BuildSlot == nil || gc.BuildSlot.IndustryRemaining != 80 {
		t.Fatalf("build slot: %+v", gc.BuildSlot)
	}
	if gc.Shipyard == nil || gc.Shipyard.BuildSlots[0].Project != nil ||
		gc.Shipyard.BuildSlots[1].Project == nil {
		t.Fatalf("shipyard slots not restored")
	}
	if len(gc.TradeRoutes) != 1 || gc.TradeRoutes[0].Credits != 120 {
		t.Fatalf("trade routes: %+v", gc.TradeRoutes)
	}

	gf := got.Universe.Fleet(fleet.ID)
	if gf == nil || len(gf.Ships) != 1 || gf.Ships[0].CrewXP != 25 {
		t.Fatalf("fleet not restored")
	}
	if gf.Order.Kind() != OrderAssault {
		t.Fatalf("order kind: got %v", gf.Order.Kind())
	}
	if ao, ok := gf.Order.(*AssaultOrder); !ok || ao.TargetColonyID != mb.Colonies[0].ID {
		t.Fatalf("assault target not restored")
	}
	if !gf.RouteLocked || len(gf.Route) != 2 {
		t.Fatalf("route: locked=%v len=%d", gf.RouteLocked, len(gf.Route))
	}

	if got.Visibility.Get(ma.CivID, mb.Colonies[0].ID) != VisPresence|VisLocation|VisOwner {
		t.Fatalf("visibility flags: %v", got.Visibility.Get(ma.CivID, mb.Colonies[0].ID))
	}

	dip := got.Diplomacy.Diplomat(ma.CivID)
	if !dip.Contacts[mb.CivID] || !dip.AtWar[mb.CivID] {
		t.Fatalf("diplomacy state not restored: %+v", dip)
	}
	if len(got.Diplomacy.Outbox) != 1 || got.Diplomacy.Outbox[0].DeliverOnTurn != 13 {
		t.Fatalf("outbox: %+v", got.Diplomacy.Outbox)
	}

	// A fresh id allocation must not collide with restored objects.
	newFleet := got.Universe.AddFleet(&Fleet{Object: Object{Name: "Second Fleet", OwnerID: ma.CivID}})
	if got.Universe.Colony(newFleet.ID) != nil || newFleet.ID <= fleet.ID {
		t.Fatalf("id allocation collided: %d", newFleet.ID)
	}
}
