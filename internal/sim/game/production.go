package game

// BuildDesign is a buildable catalog entry: a structure, upgrade or ship.
type BuildDesign struct {
	Key          string
	IndustryCost int
	ResourceCost [ResourceTypeCount]int
	// BuildLimit caps how many may ever be built per civilization; 0 means
	// unlimited.
	BuildLimit int
	// IsShip routes the finished project through ship delivery; Category is
	// only meaningful for ships.
	IsShip   bool
	Category ShipCategory
}

// BuildProject is one queued or in-progress construction.
type BuildProject struct {
	Design            *BuildDesign
	IndustryRemaining int
	ResourceRemaining [ResourceTypeCount]int
	// Rushed projects are paid in credits and skip resource accounting.
	Rushed    bool
	Cancelled bool
	finished  bool
}

func NewBuildProject(d *BuildDesign) *BuildProject {
	p := &BuildProject{Design: d, IndustryRemaining: d.IndustryCost}
	p.ResourceRemaining = d.ResourceCost
	return p
}

func (p *BuildProject) IsComplete() bool {
	if p.IndustryRemaining > 0 {
		return false
	}
	for _, r := range p.ResourceRemaining {
		if r > 0 {
			return false
		}
	}
	return true
}

// Advance invests industry from *industry and resources from the shared
// pool. It reports whether any progress was made this pass.
func (p *BuildProject) Advance(industry *int, pool *ResourcePool) bool {
	progressed := false
	if p.IndustryRemaining > 0 && *industry > 0 {
		spend := p.IndustryRemaining
		if spend > *industry {
			spend = *industry
		}
		*industry -= spend
		p.IndustryRemaining -= spend
		progressed = spend > 0
	}
	for r := ResourceType(0); r < ResourceTypeCount; r++ {
		if p.ResourceRemaining[r] <= 0 {
			continue
		}
		taken := pool.Consume(r, p.ResourceRemaining[r])
		if taken > 0 {
			p.ResourceRemaining[r] -= taken
			progressed = true
		}
	}
	return progressed
}

// RushPay settles the project's remaining cost from the treasury. Resources
// are waived for rushed projects.
func (p *BuildProject) RushPay(t *Treasury) bool {
	if !t.TrySpend(p.IndustryRemaining) {
		return false
	}
	p.IndustryRemaining = 0
	for r := range p.ResourceRemaining {
		p.ResourceRemaining[r] = 0
	}
	return true
}

// Finish marks the project delivered.
func (p *BuildProject) Finish() { p.finished = true }

func (p *BuildProject) Finished() bool { return p.finished }

// Shipyard holds per-slot ship construction at a colony.
type Shipyard struct {
	BuildSlots []*ShipyardSlot
	BuildQueue []*BuildProject
}

type ShipyardSlot struct {
	Project *BuildProject
}

func NewShipyard(slots int) *Shipyard {
	y := &Shipyard{BuildSlots: make([]*ShipyardSlot, slots)}
	for i := range y.BuildSlots {
		y.BuildSlots[i] = &ShipyardSlot{}
	}
	return y
}
