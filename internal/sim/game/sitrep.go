package game

import "fmt"

// SitRepKind is the closed set of situation-report variants. New report
// types are added here, never by subclassing, so consumers can match
// exhaustively.
type SitRepKind int

const (
	SitRepStarvation SitRepKind = iota
	SitRepPopulationDying
	SitRepPopulationDied
	SitRepBlackHoleEncounter
	SitRepScienceShipResearch
	SitRepBuildQueueEmpty
	SitRepUnassignedTradeRoute
	SitRepOrbitalDestroyed
	SitRepIntelTarget
	SitRepIntelAttacker
	SitRepDiplomaticMessage
	SitRepWarDeclared

	sitRepKindCount
)

var sitRepKindNames = [sitRepKindCount]string{
	"starvation", "population_dying", "population_died", "black_hole_encounter",
	"science_ship_research", "build_queue_empty", "unassigned_trade_route",
	"orbital_destroyed", "intel_target", "intel_attacker",
	"diplomatic_message", "war_declared",
}

func (k SitRepKind) String() string {
	if k < 0 || k >= sitRepKindCount {
		return "unknown"
	}
	return sitRepKindNames[k]
}

// SitRepPriority orders reports for presentation.
type SitRepPriority int

const (
	PriorityGreen SitRepPriority = iota
	PriorityYellow
	PriorityRed
)

// SitRep is one situation-report entry. The shared fields are always set;
// the optional ones depend on Kind.
type SitRep struct {
	Kind     SitRepKind
	Owner    CivID
	Priority SitRepPriority
	Turn     int

	// Optional, kind-dependent.
	ColonyID GameID
	ObjectID GameID
	OtherCiv CivID
	Location Location
	Amount   int
	Amount2  int
	Detail   string
}

// Summary renders a short operator-facing line. Player-facing flavor text
// lives outside the engine.
func (s *SitRep) Summary() string {
	switch s.Kind {
	case SitRepStarvation:
		return fmt.Sprintf("starvation at colony %d: population fell by %d", s.ColonyID, s.Amount)
	case SitRepPopulationDying:
		return fmt.Sprintf("population declining at colony %d", s.ColonyID)
	case SitRepPopulationDied:
		return fmt.Sprintf("colony %d lost its entire population", s.ColonyID)
	case SitRepBlackHoleEncounter:
		return fmt.Sprintf("fleet %d transited a black hole at %s: %d ship(s) destroyed, %d damaged", s.ObjectID, s.Location, s.Amount, s.Amount2)
	case SitRepScienceShipResearch:
		return fmt.Sprintf("science ship %d gained %d research at %s", s.ObjectID, s.Amount, s.Location)
	case SitRepBuildQueueEmpty:
		return fmt.Sprintf("build queue empty at colony %d", s.ColonyID)
	case SitRepUnassignedTradeRoute:
		return fmt.Sprintf("colony %d has an unassigned trade route", s.ColonyID)
	case SitRepOrbitalDestroyed:
		return fmt.Sprintf("orbital %d destroyed at %s", s.ObjectID, s.Location)
	case SitRepIntelTarget:
		return fmt.Sprintf("hostile intelligence action against colony %d: %s", s.ColonyID, s.Detail)
	case SitRepIntelAttacker:
		return fmt.Sprintf("our agents struck colony %d of civ %d: %s", s.ColonyID, s.OtherCiv, s.Detail)
	case SitRepDiplomaticMessage:
		return fmt.Sprintf("diplomatic message from civ %d: %s", s.OtherCiv, s.Detail)
	case SitRepWarDeclared:
		return fmt.Sprintf("civ %d has declared war", s.OtherCiv)
	default:
		return "unknown report"
	}
}
