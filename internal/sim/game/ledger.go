package game

import (
	"math"
	"sort"
	"sync"
)

// ShipCount is a planning triplet for one ship category.
type ShipCount struct {
	Needed    int
	Ordered   int
	Available int
}

// CivilizationManager is the per-civilization aggregate ledger: treasury,
// stockpiles, meters, sitreps, history, map knowledge and colony references.
// Exactly one exists per civilization for the lifetime of a context.
type CivilizationManager struct {
	CivID CivID
	Civ   *Civilization

	// Credits is the legacy meter kept alongside the treasury; both carry
	// the same starting balance and both are committed at turn end.
	Credits  *Meter
	Treasury *Treasury

	Resources *ResourcePool

	TotalPopulation *Meter
	Research        *Meter
	IntelAttack     *Meter
	IntelDefense    *Meter

	ShipCounts [ShipCategoryCount]ShipCount

	// BuiltCounts tracks completed projects per design key, for build
	// limits.
	BuiltCounts map[string]int

	History []HistoryEntry

	MapData *CivilizationMapData

	Colonies         []*Colony
	HomeColonyID     GameID
	SeatOfGovernment GameID

	// DesiredBorders is the AI border wishlist; reset each turn for
	// human-controlled civilizations.
	DesiredBorders map[Location]bool

	// MaintenanceThisTurn accumulates upkeep paid during the maintenance
	// phase, for the history record.
	MaintenanceThisTurn int

	// PropertyChanged fires with a property name when a wired meter moves.
	PropertyChanged func(name string)

	sitrepMu sync.Mutex
	sitreps  []*SitRep

	// TurnFinished fires from post-turn processing after meters commit.
	TurnFinished func(turn int)
}

const startingCredits = 5000

func NewCivilizationManager(civ *Civilization, mapWidth, mapHeight int) *CivilizationManager {
	m := &CivilizationManager{
		CivID:            civ.ID,
		Civ:              civ,
		Credits:          NewUnboundedMeter(startingCredits),
		Treasury:         NewTreasury(startingCredits),
		Resources:        NewResourcePool(),
		TotalPopulation:  NewMeter(0, 0, maxStockpile),
		Research:         NewMeter(0, 0, maxStockpile),
		IntelAttack:      NewMeter(0, 0, maxStockpile),
		IntelDefense:     NewMeter(0, 0, maxStockpile),
		BuiltCounts:      make(map[string]int),
		MapData:          NewCivilizationMapData(mapWidth, mapHeight),
		HomeColonyID:     InvalidGameID,
		SeatOfGovernment: InvalidGameID,
		DesiredBorders:   make(map[Location]bool),
	}
	m.TotalPopulation.OnChange = func() {
		if m.PropertyChanged != nil {
			m.PropertyChanged("TotalPopulation")
			m.PropertyChanged("AverageMorale")
		}
	}
	return m
}

// AddSitRep appends a report; safe from concurrent phase tasks.
func (m *CivilizationManager) AddSitRep(s *SitRep) {
	s.Owner = m.CivID
	m.sitrepMu.Lock()
	m.sitreps = append(m.sitreps, s)
	m.sitrepMu.Unlock()
}

// SitReps returns a snapshot of this turn's reports.
func (m *CivilizationManager) SitReps() []*SitRep {
	m.sitrepMu.Lock()
	defer m.sitrepMu.Unlock()
	return append([]*SitRep(nil), m.sitreps...)
}

// ClearSitReps empties the report log at the start of a turn.
func (m *CivilizationManager) ClearSitReps() {
	m.sitrepMu.Lock()
	m.sitreps = nil
	m.sitrepMu.Unlock()
}

// HomeColony resolves the home colony if it still exists.
func (m *CivilizationManager) HomeColony(g *GameContext) *Colony {
	if m.HomeColonyID == InvalidGameID {
		return nil
	}
	return g.Universe.Colony(m.HomeColonyID)
}

// SeatColony resolves the current seat of government if any.
func (m *CivilizationManager) SeatColony(g *GameContext) *Colony {
	if m.SeatOfGovernment == InvalidGameID {
		return nil
	}
	return g.Universe.Colony(m.SeatOfGovernment)
}

// AddColony attaches a colony to the ledger; the first one becomes home.
func (m *CivilizationManager) AddColony(c *Colony) {
	m.Colonies = append(m.Colonies, c)
	if m.HomeColonyID == InvalidGameID {
		m.HomeColonyID = c.ID
	}
}

// RemoveColony drops a destroyed or lost colony from the ledger.
func (m *CivilizationManager) RemoveColony(id GameID) {
	for i, c := range m.Colonies {
		if c.ID == id {
			m.Colonies = append(m.Colonies[:i], m.Colonies[i+1:]...)
			break
		}
	}
	if m.HomeColonyID == id {
		m.HomeColonyID = InvalidGameID
	}
	if m.SeatOfGovernment == id {
		m.SeatOfGovernment = InvalidGameID
	}
}

// AverageMorale is the population-weighted colony morale.
func (m *CivilizationManager) AverageMorale() int {
	totalPop, weighted := 0, 0
	for _, c := range m.Colonies {
		pop := c.Population.Current()
		totalPop += pop
		weighted += pop * c.Morale.Current()
	}
	if totalPop == 0 {
		return 0
	}
	return weighted / totalPop
}

// EnsureSeatOfGovernment recomputes the seat only when it is missing or no
// longer owned. Scoring multiplies colony value by a distance factor whose
// min/max nesting is preserved exactly as shipped; downstream behavior
// depends on its saturated result.
func (m *CivilizationManager) EnsureSeatOfGovernment(g *GameContext) {
	if seat := m.SeatColony(g); seat != nil && seat.OwnerID == m.CivID {
		return
	}
	var homeLoc *Location
	if home := m.HomeColony(g); home != nil {
		loc := home.Loc
		homeLoc = &loc
	}
	type scored struct {
		colony *Colony
		score  float64
	}
	ranked := make([]scored, 0, len(m.Colonies))
	for _, c := range m.Colonies {
		factor := 1.0
		if homeLoc != nil {
			dist := float64(Distance(c.Loc, *homeLoc))
			factor = math.Min(0.2, math.Max(1, 2/dist))
		}
		ranked = append(ranked, scored{colony: c, score: float64(c.Value()) * factor})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) == 0 {
		m.SeatOfGovernment = InvalidGameID
	} else {
		m.SeatOfGovernment = ranked[0].colony.ID
	}
	g.Diplomacy.Diplomat(m.CivID).SeatOfGovernment = m.SeatOfGovernment
}

// LastHistory returns the most recent history record, if any.
func (m *CivilizationManager) LastHistory() (HistoryEntry, bool) {
	if len(m.History) == 0 {
		return HistoryEntry{}, false
	}
	return m.History[len(m.History)-1], true
}

// Rank getters read the latest history record; -1 means unranked.

func (m *CivilizationManager) CreditsRank() int {
	if h, ok := m.LastHistory(); ok {
		return h.CreditsRank
	}
	return -1
}

func (m *CivilizationManager) ColoniesRank() int {
	if h, ok := m.LastHistory(); ok {
		return h.ColoniesRank
	}
	return -1
}

func (m *CivilizationManager) PopulationRank() int {
	if h, ok := m.LastHistory(); ok {
		return h.PopulationRank
	}
	return -1
}

func (m *CivilizationManager) ResearchRank() int {
	if h, ok := m.LastHistory(); ok {
		return h.ResearchRank
	}
	return -1
}

// CivilizationManagerMap keys ledgers by civilization id.
type CivilizationManagerMap map[CivID]*CivilizationManager

// Sorted returns the managers in id order for deterministic iteration.
func (mm CivilizationManagerMap) Sorted() []*CivilizationManager {
	out := make([]*CivilizationManager, 0, len(mm))
	for _, m := range mm {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CivID < out[j].CivID })
	return out
}
