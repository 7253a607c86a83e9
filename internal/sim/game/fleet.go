package game

// Ship is a single vessel. Ships live inside fleets and are not registered
// individually in the universe.
type Ship struct {
	ID       GameID
	Name     string
	Category ShipCategory

	Hull        *Meter
	FuelReserve *Meter
	CrewXP      int

	Speed        int
	RangeSectors int // max distance from a fuel source before stranding

	ScanStrength   int
	ScienceAbility float64
}

func NewShip(name string, cat ShipCategory, hull, fuel, speed, rng int) *Ship {
	return &Ship{
		Name:         name,
		Category:     cat,
		Hull:         NewMeter(hull, 0, hull),
		FuelReserve:  NewMeter(fuel, 0, fuel),
		Speed:        speed,
		RangeSectors: rng,
	}
}

func (s *Ship) IsScience() bool { return s.Category == ShipScience }

// Fleet is a group of ships moving and fighting together.
type Fleet struct {
	Object

	Ships []*Ship
	Order FleetOrder

	// Route is the remaining waypoint list; a locked route survives order
	// changes until the fleet strands.
	Route       []Location
	RouteLocked bool
}

func (f *Fleet) ResetTurn() {}

// Speed is the slowest ship's speed; an empty fleet cannot move.
func (f *Fleet) Speed() int {
	if len(f.Ships) == 0 {
		return 0
	}
	min := f.Ships[0].Speed
	for _, s := range f.Ships[1:] {
		if s.Speed < min {
			min = s.Speed
		}
	}
	return min
}

// Range is the shortest ship range in the fleet.
func (f *Fleet) Range() int {
	if len(f.Ships) == 0 {
		return 0
	}
	min := f.Ships[0].RangeSectors
	for _, s := range f.Ships[1:] {
		if s.RangeSectors < min {
			min = s.RangeSectors
		}
	}
	return min
}

// IsStranded reports whether any ship has run dry.
func (f *Fleet) IsStranded() bool {
	for _, s := range f.Ships {
		if s.FuelReserve.Current() == 0 {
			return true
		}
	}
	return false
}

// IsCombatant reports whether the fleet can take part in a battle.
func (f *Fleet) IsCombatant() bool {
	for _, s := range f.Ships {
		switch s.Category {
		case ShipFastAttack, ShipCruiser, ShipHeavyCruiser, ShipStrikeCruiser, ShipCommand, ShipScout:
			return true
		}
	}
	return false
}

// RemoveShip detaches s from the fleet.
func (f *Fleet) RemoveShip(s *Ship) {
	for i, other := range f.Ships {
		if other == s {
			f.Ships = append(f.Ships[:i], f.Ships[i+1:]...)
			return
		}
	}
}

// NextWaypoint returns the current route target, if any.
func (f *Fleet) NextWaypoint() (Location, bool) {
	if len(f.Route) == 0 {
		return Location{}, false
	}
	return f.Route[0], true
}

// advanceRoute drops the head waypoint once reached.
func (f *Fleet) advanceRoute() {
	if len(f.Route) > 0 && f.Route[0] == f.Loc {
		f.Route = f.Route[1:]
	}
}

// ClearRoute unlocks and discards the route.
func (f *Fleet) ClearRoute() {
	f.RouteLocked = false
	f.Route = nil
}
