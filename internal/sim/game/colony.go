package game

// BonusType enumerates building effects the engine understands.
type BonusType int

const (
	BonusMorale BonusType = iota
	BonusMoraleEmpireWide
	BonusTradeRoutes
	BonusPercentTradeIncome
	BonusPercentTotalCredits
	BonusScanRange
)

type Bonus struct {
	Type   BonusType
	Amount int
}

// Building is a colony structure. Only active buildings contribute bonuses
// and draw energy.
type Building struct {
	Object
	Active     bool
	EnergyCost int
	Bonuses    []Bonus
}

func (b *Building) ResetTurn() {}

// FacilityGroup is a colony's stock of one production facility type.
type FacilityGroup struct {
	Count      int
	Active     int
	UnitOutput int
}

func (f *FacilityGroup) Output() int { return f.Active * f.UnitOutput }

// laborPerFacility is the population required to staff one active facility.
const laborPerFacility = 10

// TradeRoute links a source colony to a target colony. An unassigned route
// has an invalid target and earns nothing.
type TradeRoute struct {
	TargetColonyID GameID
	Credits        int
}

func (r *TradeRoute) Assigned() bool { return r.TargetColonyID != InvalidGameID }

// Colony is an inhabited system: population, food, facilities, buildings,
// defenses, trade and construction.
type Colony struct {
	Object

	Population    *Meter
	MaxPopulation int
	GrowthRate    float64
	FoodReserves  *Meter
	Morale        *Meter

	Facilities [ProductionCategoryCount]FacilityGroup
	Buildings  []*Building

	TradeRoutes      []*TradeRoute
	CreditsFromTrade *Meter

	BuildSlot  *BuildProject
	BuildQueue []*BuildProject
	Shipyard   *Shipyard

	OrbitalBatteries int
	ShieldStrength   *Meter

	// Per-turn resource output banked into the civilization pool before any
	// production runs.
	ResourceOutput [ResourceTypeCount]int
	CreditsOutput  int
	IntelOutput    int
}

func NewColony(name string, loc Location, owner CivID, population, maxPopulation int) *Colony {
	c := &Colony{
		Object:        Object{Name: name, Loc: loc, OwnerID: owner},
		MaxPopulation: maxPopulation,
		GrowthRate:    0.05,
	}
	c.Population = NewMeter(population, 0, maxPopulation)
	c.FoodReserves = NewMeter(0, 0, maxStockpile)
	c.Morale = NewMeter(100, 0, 200)
	c.CreditsFromTrade = NewMeter(0, 0, maxStockpile)
	c.ShieldStrength = NewMeter(0, 0, 0)
	return c
}

func (c *Colony) ResetTurn() {
	c.ShieldStrength.Reset()
}

// Output is the colony's production for one category from active facilities.
func (c *Colony) Output(cat ProductionCategory) int {
	return c.Facilities[cat].Output()
}

// NetIndustry is the industry available for construction this turn.
func (c *Colony) NetIndustry() int { return c.Output(ProdIndustry) }

// totalActiveFacilities counts staffed facilities across all categories.
func (c *Colony) totalActiveFacilities() int {
	n := 0
	for i := range c.Facilities {
		n += c.Facilities[i].Active
	}
	return n
}

// AvailableLabor is the population slack not yet staffing a facility.
func (c *Colony) AvailableLabor() int {
	return c.Population.Current() - c.totalActiveFacilities()*laborPerFacility
}

// ActivateFacility staffs one more facility of the category if stock and
// labor allow.
func (c *Colony) ActivateFacility(cat ProductionCategory) bool {
	f := &c.Facilities[cat]
	if f.Active >= f.Count {
		return false
	}
	if c.AvailableLabor() < laborPerFacility {
		return false
	}
	f.Active++
	return true
}

// DeactivateFacility idles one facility of the category.
func (c *Colony) DeactivateFacility(cat ProductionCategory) bool {
	f := &c.Facilities[cat]
	if f.Active <= 0 {
		return false
	}
	f.Active--
	return true
}

// ActiveBonus sums a bonus type over active buildings.
func (c *Colony) ActiveBonus(t BonusType) int {
	total := 0
	for _, b := range c.Buildings {
		if !b.Active {
			continue
		}
		for _, bon := range b.Bonuses {
			if bon.Type == t {
				total += bon.Amount
			}
		}
	}
	return total
}

// MaxShieldStrength derives the shield ceiling from orbital batteries.
func (c *Colony) MaxShieldStrength() int { return c.OrbitalBatteries * 100 }

// RefreshShielding regenerates shields to full after combat resolves.
func (c *Colony) RefreshShielding() {
	max := c.MaxShieldStrength()
	c.ShieldStrength.Max = max
	c.ShieldStrength.SetCurrent(max)
}

// Value scores the colony for seat-of-government selection: population plus
// built-up infrastructure.
func (c *Colony) Value() int {
	v := c.Population.Current()
	for i := range c.Facilities {
		v += 25 * c.Facilities[i].Count
	}
	v += 50 * len(c.Buildings)
	return v
}

// EnsureEnergy deactivates buildings, most expensive first, until the energy
// output covers the active buildings' draw.
func (c *Colony) EnsureEnergy() {
	for {
		draw := 0
		var costliest *Building
		for _, b := range c.Buildings {
			if !b.Active {
				continue
			}
			draw += b.EnergyCost
			if costliest == nil || b.EnergyCost > costliest.EnergyCost {
				costliest = b
			}
		}
		if draw <= c.Output(ProdEnergy) || costliest == nil {
			return
		}
		costliest.Active = false
	}
}

// HasShipyard reports whether the colony can build and refuel ships.
func (c *Colony) HasShipyard() bool { return c.Shipyard != nil }
