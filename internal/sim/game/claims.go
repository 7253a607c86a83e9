package game

import "sync"

// MaxClaimValue caps the accumulated claim weight for one owner at one
// location.
const MaxClaimValue = 1000

// SectorClaimGrid records which civilization's sphere of influence covers
// each sector. Claims are rebuilt from scratch every turn; the grid is never
// patched incrementally across turns. Multiple civilizations' tasks write
// concurrently during the map-update phase, so mutation is lock-protected.
type SectorClaimGrid struct {
	mu      sync.RWMutex
	byLoc   map[Location]map[CivID]int
	byOwner map[CivID]map[Location]int
}

func NewSectorClaimGrid() *SectorClaimGrid {
	g := &SectorClaimGrid{}
	g.reset()
	return g
}

func (g *SectorClaimGrid) reset() {
	g.byLoc = make(map[Location]map[CivID]int)
	g.byOwner = make(map[CivID]map[Location]int)
}

// ClearClaims drops every claim. Called once per turn before rebuilding.
func (g *SectorClaimGrid) ClearClaims() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

// AddClaim accumulates weight for owner at loc, clamped at MaxClaimValue.
// Non-positive weights are ignored.
func (g *SectorClaimGrid) AddClaim(owner CivID, loc Location, weight int) {
	if weight <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	cells := g.byLoc[loc]
	if cells == nil {
		cells = make(map[CivID]int)
		g.byLoc[loc] = cells
	}
	w := cells[owner] + weight
	if w > MaxClaimValue {
		w = MaxClaimValue
	}
	cells[owner] = w

	owned := g.byOwner[owner]
	if owned == nil {
		owned = make(map[Location]int)
		g.byOwner[owner] = owned
	}
	owned[loc] = w
}

// GetOwner resolves the controlling civilization for loc: no claims means no
// owner, the strongest claim wins, and a tie for strongest is disputed (no
// owner).
func (g *SectorClaimGrid) GetOwner(loc Location) CivID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cells := g.byLoc[loc]
	if len(cells) == 0 {
		return InvalidCivID
	}
	best, bestWeight, tied := InvalidCivID, 0, false
	for owner, w := range cells {
		switch {
		case w > bestWeight:
			best, bestWeight, tied = owner, w, false
		case w == bestWeight:
			tied = true
		}
	}
	if tied {
		return InvalidCivID
	}
	return best
}

// ClaimWeight returns owner's accumulated weight at loc.
func (g *SectorClaimGrid) ClaimWeight(owner CivID, loc Location) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.byLoc[loc][owner]
}

// IsClaimedBy reports whether owner holds any claim at loc.
func (g *SectorClaimGrid) IsClaimedBy(owner CivID, loc Location) bool {
	return g.ClaimWeight(owner, loc) > 0
}

// ClaimedLocations returns every location owner has claimed this turn.
func (g *SectorClaimGrid) ClaimedLocations(owner CivID) []Location {
	g.mu.RLock()
	defer g.mu.RUnlock()
	owned := g.byOwner[owner]
	locs := make([]Location, 0, len(owned))
	for loc := range owned {
		locs = append(locs, loc)
	}
	return locs
}
