package game

import "testing"

func TestClaimGridDisputedOnEqualWeight(t *testing.T) {
	g := NewSectorClaimGrid()
	loc := Location{X: 3, Y: 4}
	g.AddClaim(1, loc, 50)
	g.AddClaim(2, loc, 50)
	if got := g.GetOwner(loc); got != InvalidCivID {
		t.Fatalf("equal-weight owner: got %d want %d", got, InvalidCivID)
	}
	g.AddClaim(2, loc, 1)
	if got := g.GetOwner(loc); got != 2 {
		t.Fatalf("strongest owner: got %d want %d", got, 2)
	}
}

func TestClaimGridSingleAndNoClaim(t *testing.T) {
	g := NewSectorClaimGrid()
	loc := Location{X: 1, Y: 1}
	if got := g.GetOwner(loc); got != InvalidCivID {
		t.Fatalf("empty owner: got %d want %d", got, InvalidCivID)
	}
	g.AddClaim(5, loc, 10)
	if got := g.GetOwner(loc); got != 5 {
		t.Fatalf("single owner: got %d want %d", got, 5)
	}
}

func TestClaimGridIgnoresNonPositiveAndClamps(t *testing.T) {
	g := NewSectorClaimGrid()
	loc := Location{}
	g.AddClaim(1, loc, 0)
	g.AddClaim(1, loc, -10)
	if g.IsClaimedBy(1, loc) {
		t.Fatalf("non-positive weight produced a claim")
	}
	g.AddClaim(1, loc, MaxClaimValue+500)
	if got := g.ClaimWeight(1, loc); got != MaxClaimValue {
		t.Fatalf("clamp: got %d want %d", got, MaxClaimValue)
	}
}

func TestClaimGridClearClaims(t *testing.T) {
	g := NewSectorClaimGrid()
	g.AddClaim(1, Location{X: 1}, 5)
	g.AddClaim(1, Location{X: 2}, 5)
	g.ClearClaims()
	if got := len(g.ClaimedLocations(1)); got != 0 {
		t.Fatalf("locations after clear: got %d want 0", got)
	}
	if got := g.GetOwner(Location{X: 1}); got != InvalidCivID {
		t.Fatalf("owner after clear: got %d want %d", got, InvalidCivID)
	}
}
