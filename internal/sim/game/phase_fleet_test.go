package game

import "testing"

// A fleet that runs dry during movement loses its locked route only if its
// final position is out of fuel range; the check reads where the fleet ended
// up, not where it started.
func TestStrandedRouteClearedAfterMovement(t *testing.T) {
	g, ma, _ := newTestGame(t)
	e := newTestEngine(t)

	f := g.Universe.AddFleet(&Fleet{Object: Object{Name: "Tanker Run", Loc: Location{X: 2, Y: 4}, OwnerID: ma.CivID}})
	g.Universe.AddShip(f, NewShip("tanker", ShipTransport, 100, 1, 1, 0))
	f.Route = []Location{{X: 3, Y: 4}, {X: 9, Y: 4}}
	f.RouteLocked = true

	// In fuel range at the start, out of range everywhere else.
	ma.MapData.SetFuelRange(Location{X: 2, Y: 4}, 0)

	if err := e.doFleetMovement(g); err != nil {
		t.Fatalf("fleet movement: %v", err)
	}
	if f.Loc != (Location{X: 3, Y: 4}) {
		t.Fatalf("fleet location: got %v want (3, 4)", f.Loc)
	}
	if !f.IsStranded() {
		t.Fatalf("fleet should be out of fuel after the step")
	}
	if f.RouteLocked || f.Route != nil {
		t.Fatalf("stranded fleet kept its locked route: locked=%v route=%v", f.RouteLocked, f.Route)
	}
}
