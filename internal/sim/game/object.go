package game

// Object carries the fields every universe object shares. Concrete types
// (Fleet, Colony, Station) embed it.
type Object struct {
	ID          GameID
	OwnerID     CivID
	Name        string
	Loc         Location
	Maintenance int
	// Scrap flags the object for destruction during the scrapping phase.
	Scrap bool
}

func (o *Object) ObjectID() GameID      { return o.ID }
func (o *Object) Owner() CivID          { return o.OwnerID }
func (o *Object) Location() Location    { return o.Loc }
func (o *Object) MaintenanceCost() int  { return o.Maintenance }
func (o *Object) FlaggedForScrap() bool { return o.Scrap }

// UniverseObject is the common surface the engine needs from any object:
// identity, ownership, upkeep and the per-turn transient reset.
type UniverseObject interface {
	ObjectID() GameID
	Owner() CivID
	Location() Location
	MaintenanceCost() int
	FlaggedForScrap() bool
	// ResetTurn clears per-turn transient state at the start of a turn.
	ResetTurn()
}
