package game

// Station is an orbital installation: a sensor picket, a refueling point and
// (with a shipyard flag) a construction site.
type Station struct {
	Object

	Hull         *Meter
	ScanStrength int
	ScanRange    int
	// Fuel sources anchor the owner's fuel-range grid.
	IsFuelSource bool
}

func NewStation(name string, loc Location, owner CivID, hull int) *Station {
	return &Station{
		Object:       Object{Name: name, Loc: loc, OwnerID: owner},
		Hull:         NewMeter(hull, 0, hull),
		IsFuelSource: true,
	}
}

func (s *Station) ResetTurn() {}

// IsDestroyed reports a fully depleted hull.
func (s *Station) IsDestroyed() bool { return s.Hull.Current() <= 0 }
