package game

// CivID identifies a civilization. IDs are small dense integers assigned at
// game creation and stable for the lifetime of a context.
type CivID int

// GameID identifies any object in the universe registry (fleet, ship,
// colony, station, building).
type GameID int32

const (
	// InvalidCivID marks "no civilization" (unowned objects, disputed sectors).
	InvalidCivID CivID = -1
	// InvalidGameID marks "no object" (empty seat of government, unassigned
	// trade route targets).
	InvalidGameID GameID = -1
)

// ShipCategory classifies ship designs for the per-civilization planning
// counters. These are UI/planning hints only, never authoritative inventory.
type ShipCategory int

const (
	ShipColony ShipCategory = iota
	ShipConstruction
	ShipMedical
	ShipTransport
	ShipSpy
	ShipDiplomatic
	ShipScience
	ShipScout
	ShipFastAttack
	ShipCruiser
	ShipHeavyCruiser
	ShipStrikeCruiser
	ShipCommand

	ShipCategoryCount
)

var shipCategoryNames = [ShipCategoryCount]string{
	"colony", "construction", "medical", "transport", "spy", "diplomatic",
	"science", "scout", "fast_attack", "cruiser", "heavy_cruiser",
	"strike_cruiser", "command",
}

func (c ShipCategory) String() string {
	if c < 0 || c >= ShipCategoryCount {
		return "unknown"
	}
	return shipCategoryNames[c]
}

// ParseShipCategory maps a catalog category name to its enum value.
func ParseShipCategory(s string) (ShipCategory, bool) {
	for i, name := range shipCategoryNames {
		if name == s {
			return ShipCategory(i), true
		}
	}
	return 0, false
}

// ProductionCategory classifies colony facilities.
type ProductionCategory int

const (
	ProdFood ProductionCategory = iota
	ProdIndustry
	ProdEnergy
	ProdResearch
	ProdIntelligence

	ProductionCategoryCount
)

var productionCategoryNames = [ProductionCategoryCount]string{
	"food", "industry", "energy", "research", "intelligence",
}

func (c ProductionCategory) String() string {
	if c < 0 || c >= ProductionCategoryCount {
		return "unknown"
	}
	return productionCategoryNames[c]
}
