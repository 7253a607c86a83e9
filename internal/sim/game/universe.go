package game

import "sort"

// Universe is the object registry: every fleet, colony and station in the
// game, keyed by id. Single-writer during a phase body unless noted; the
// engine never mutates it from concurrent tasks.
type Universe struct {
	nextID   GameID
	fleets   map[GameID]*Fleet
	colonies map[GameID]*Colony
	stations map[GameID]*Station

	// FleetLocationChanged fires synchronously whenever a fleet moves.
	FleetLocationChanged func(f *Fleet, from Location)
}

func NewUniverse() *Universe {
	return &Universe{
		fleets:   make(map[GameID]*Fleet),
		colonies: make(map[GameID]*Colony),
		stations: make(map[GameID]*Station),
	}
}

func (u *Universe) allocID() GameID {
	u.nextID++
	return u.nextID
}

// AddFleet registers a fleet and assigns its id.
func (u *Universe) AddFleet(f *Fleet) *Fleet {
	f.ID = u.allocID()
	if f.Order == nil {
		f.Order = DefaultOrder()
	}
	u.fleets[f.ID] = f
	return f
}

func (u *Universe) AddColony(c *Colony) *Colony {
	c.ID = u.allocID()
	u.colonies[c.ID] = c
	return c
}

func (u *Universe) AddStation(s *Station) *Station {
	s.ID = u.allocID()
	u.stations[s.ID] = s
	return s
}

// AddShip registers a ship inside a fleet, assigning its id.
func (u *Universe) AddShip(f *Fleet, s *Ship) *Ship {
	s.ID = u.allocID()
	f.Ships = append(f.Ships, s)
	return s
}

func (u *Universe) Fleet(id GameID) *Fleet     { return u.fleets[id] }
func (u *Universe) Colony(id GameID) *Colony   { return u.colonies[id] }
func (u *Universe) Station(id GameID) *Station { return u.stations[id] }

// Destroy removes an object from the registry.
func (u *Universe) Destroy(id GameID) {
	delete(u.fleets, id)
	delete(u.colonies, id)
	delete(u.stations, id)
}

// Fleets returns all fleets in stable id order. Phase bodies that iterate
// sequentially depend on the deterministic order.
func (u *Universe) Fleets() []*Fleet {
	out := make([]*Fleet, 0, len(u.fleets))
	for _, f := range u.fleets {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (u *Universe) Colonies() []*Colony {
	out := make([]*Colony, 0, len(u.colonies))
	for _, c := range u.colonies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (u *Universe) Stations() []*Station {
	out := make([]*Station, 0, len(u.stations))
	for _, s := range u.stations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Objects returns every registered object in stable id order.
func (u *Universe) Objects() []UniverseObject {
	out := make([]UniverseObject, 0, len(u.fleets)+len(u.colonies)+len(u.stations))
	for _, f := range u.Fleets() {
		out = append(out, f)
	}
	for _, c := range u.Colonies() {
		out = append(out, c)
	}
	for _, s := range u.Stations() {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectID() < out[j].ObjectID() })
	return out
}

// OwnedFleets lists a civilization's fleets in id order.
func (u *Universe) OwnedFleets(civ CivID) []*Fleet {
	var out []*Fleet
	for _, f := range u.Fleets() {
		if f.OwnerID == civ {
			out = append(out, f)
		}
	}
	return out
}

func (u *Universe) OwnedStations(civ CivID) []*Station {
	var out []*Station
	for _, s := range u.Stations() {
		if s.OwnerID == civ {
			out = append(out, s)
		}
	}
	return out
}

// MoveFleet relocates a fleet and fires the location-changed hook.
func (u *Universe) MoveFleet(f *Fleet, to Location) {
	if f.Loc == to {
		return
	}
	from := f.Loc
	f.Loc = to
	if u.FleetLocationChanged != nil {
		u.FleetLocationChanged(f, from)
	}
}

// ScrapNonStructures clears transient assets queued for scrap at a colony:
// the build slot and queued projects flagged cancelled.
func (u *Universe) ScrapNonStructures(c *Colony) {
	if c.BuildSlot != nil && c.BuildSlot.Cancelled {
		c.BuildSlot = nil
	}
	kept := c.BuildQueue[:0]
	for _, p := range c.BuildQueue {
		if !p.Cancelled {
			kept = append(kept, p)
		}
	}
	c.BuildQueue = kept
	if c.Shipyard != nil {
		for _, slot := range c.Shipyard.BuildSlots {
			if slot.Project != nil && slot.Project.Cancelled {
				slot.Project = nil
			}
		}
		keptQ := c.Shipyard.BuildQueue[:0]
		for _, p := range c.Shipyard.BuildQueue {
			if !p.Cancelled {
				keptQ = append(keptQ, p)
			}
		}
		c.Shipyard.BuildQueue = keptQ
	}
}
