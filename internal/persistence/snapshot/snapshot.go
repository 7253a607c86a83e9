package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	GameID  string `json:"game_id"`
	Turn    int    `json:"turn"`
}

// SnapshotV1 is the full persisted state of one game between turns. Sector
// claims and scan grids are rebuilt by the map-update phase and are not
// stored; sitreps are per-turn and cleared on load.
type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed         int64 `json:"seed"`
	GalaxyWidth  int   `json:"galaxy_width"`
	GalaxyHeight int   `json:"galaxy_height"`

	// Tuning captured for deterministic resume.
	TutorialColonyName   string         `json:"tutorial_colony_name,omitempty"`
	TradePopRequirements map[string]int `json:"trade_pop_requirements,omitempty"`
	TradePopDefault      int            `json:"trade_pop_default,omitempty"`
	TradeSourceMult      float64        `json:"trade_source_mult,omitempty"`
	TradeTargetMult      float64        `json:"trade_target_mult,omitempty"`
	MoraleDriftRate      int            `json:"morale_drift_rate,omitempty"`
	FanOutWidth          int            `json:"fan_out_width,omitempty"`
	AutoTurnCivs         []int          `json:"auto_turn_civs,omitempty"`

	TurnNumber int   `json:"turn_number"`
	NextID     int32 `json:"next_id"`

	Stars         []StarV1         `json:"stars,omitempty"`
	Civilizations []CivilizationV1 `json:"civilizations"`
	Managers      []ManagerV1      `json:"managers"`
	Colonies      []ColonyV1       `json:"colonies"`
	Fleets        []FleetV1        `json:"fleets"`
	Stations      []StationV1      `json:"stations,omitempty"`
	Visibility    []VisibilityV1   `json:"visibility,omitempty"`
	Diplomacy     DiplomacyV1      `json:"diplomacy"`
}

type StarV1 struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Star int `json:"star"`
}

type CivilizationV1 struct {
	ID              int    `json:"id"`
	Key             string `json:"key"`
	Name            string `json:"name"`
	IsEmpire        bool   `json:"is_empire"`
	IsHuman         bool   `json:"is_human"`
	BaseMoraleLevel int    `json:"base_morale_level"`
}

type MeterV1 struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Cur  int `json:"cur"`
	Base int `json:"base"`
	Last int `json:"last"`
}

type TreasurySnapV1 struct {
	Turn     int `json:"turn"`
	Initial  int `json:"initial"`
	Income   int `json:"income"`
	Expenses int `json:"expenses"`
}

type HistoryV1 struct {
	Turn         int `json:"turn"`
	Credits      int `json:"credits"`
	Maintenance  int `json:"maintenance"`
	Colonies     int `json:"colonies"`
	Population   int `json:"population"`
	Morale       int `json:"morale"`
	Resources    int `json:"resources"`
	Research     int `json:"research"`
	Intelligence int `json:"intelligence"`

	CreditsRank    int `json:"credits_rank"`
	ColoniesRank   int `json:"colonies_rank"`
	PopulationRank int `json:"population_rank"`
	ResearchRank   int `json:"research_rank"`
}

type ShipCountV1 struct {
	Needed    int `json:"needed"`
	Ordered   int `json:"ordered"`
	Available int `json:"available"`
}

type ManagerV1 struct {
	CivID int `json:"civ_id"`

	Credits         MeterV1          `json:"credits"`
	TreasuryBalance int              `json:"treasury_balance"`
	TreasuryHistory []TreasurySnapV1 `json:"treasury_history,omitempty"`

	Resources [3]MeterV1 `json:"resources"`

	TotalPopulation MeterV1 `json:"total_population"`
	Research        MeterV1 `json:"research"`
	IntelAttack     MeterV1 `json:"intel_attack"`
	IntelDefense    MeterV1 `json:"intel_defense"`

	ShipCounts  []ShipCountV1  `json:"ship_counts"`
	BuiltCounts map[string]int `json:"built_counts,omitempty"`

	History []HistoryV1 `json:"history,omitempty"`

	// Fog-of-war grid, run-length encoded (encoding.EncodeCells).
	MapCells string `json:"map_cells_rle"`

	HomeColonyID     int32    `json:"home_colony_id"`
	SeatOfGovernment int32    `json:"seat_of_government"`
	DesiredBorders   [][2]int `json:"desired_borders,omitempty"`
}

type FacilityV1 struct {
	Count      int `json:"count"`
	Active     int `json:"active"`
	UnitOutput int `json:"unit_output"`
}

type BonusV1 struct {
	Type   int `json:"type"`
	Amount int `json:"amount"`
}

type BuildingV1 struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Maintenance int       `json:"maintenance,omitempty"`
	Scrap       bool      `json:"scrap,omitempty"`
	Active      bool      `json:"active"`
	EnergyCost  int       `json:"energy_cost"`
	Bonuses     []BonusV1 `json:"bonuses,omitempty"`
}

type TradeRouteV1 struct {
	TargetColonyID int32 `json:"target_colony_id"`
	Credits        int   `json:"credits"`
}

type ProjectV1 struct {
	DesignKey    string `json:"design_key"`
	IndustryCost int    `json:"industry_cost"`
	ResourceCost [3]int `json:"resource_cost"`
	BuildLimit   int    `json:"build_limit,omitempty"`
	IsShip       bool   `json:"is_ship,omitempty"`
	Category     int    `json:"category,omitempty"`

	IndustryRemaining int    `json:"industry_remaining"`
	ResourceRemaining [3]int `json:"resource_remaining"`
	Rushed            bool   `json:"rushed,omitempty"`
	Cancelled         bool   `json:"cancelled,omitempty"`
}

type ShipyardV1 struct {
	// Slots carries one entry per build slot; Occupied marks which hold a
	// live project (the ProjectV1 for an empty slot is zero-valued).
	Slots    []ProjectV1 `json:"slots"`
	Occupied []bool      `json:"occupied"`
	Queue    []ProjectV1 `json:"queue,omitempty"`
}

type ColonyV1 struct {
	ID          int32  `json:"id"`
	Owner       int    `json:"owner"`
	Name        string `json:"name"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Maintenance int    `json:"maintenance,omitempty"`
	Scrap       bool   `json:"scrap,omitempty"`

	Population    MeterV1 `json:"population"`
	MaxPopulation int     `json:"max_population"`
	GrowthRate    float64 `json:"growth_rate"`
	FoodReserves  MeterV1 `json:"food_reserves"`
	Morale        MeterV1 `json:"morale"`

	Facilities [5]FacilityV1 `json:"facilities"`
	Buildings  []BuildingV1  `json:"buildings,omitempty"`

	TradeRoutes      []TradeRouteV1 `json:"trade_routes,omitempty"`
	CreditsFromTrade MeterV1        `json:"credits_from_trade"`

	BuildSlot  *ProjectV1  `json:"build_slot,omitempty"`
	BuildQueue []ProjectV1 `json:"build_queue,omitempty"`
	Shipyard   *ShipyardV1 `json:"shipyard,omitempty"`

	OrbitalBatteries int     `json:"orbital_batteries"`
	ShieldStrength   MeterV1 `json:"shield_strength"`

	ResourceOutput [3]int `json:"resource_output"`
	CreditsOutput  int    `json:"credits_output"`
	IntelOutput    int    `json:"intel_output"`
}

type ShipV1 struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Category int    `json:"category"`

	Hull        MeterV1 `json:"hull"`
	FuelReserve MeterV1 `json:"fuel_reserve"`
	CrewXP      int     `json:"crew_xp"`

	Speed        int `json:"speed"`
	RangeSectors int `json:"range_sectors"`

	ScanStrength   int     `json:"scan_strength"`
	ScienceAbility float64 `json:"science_ability"`
}

type OrderV1 struct {
	Kind           int   `json:"kind"`
	TargetColonyID int32 `json:"target_colony_id,omitempty"`
	Done           bool  `json:"done,omitempty"`
}

type FleetV1 struct {
	ID          int32  `json:"id"`
	Owner       int    `json:"owner"`
	Name        string `json:"name"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Maintenance int    `json:"maintenance,omitempty"`
	Scrap       bool   `json:"scrap,omitempty"`

	Ships []ShipV1 `json:"ships"`
	Order OrderV1  `json:"order"`

	Route       [][2]int `json:"route,omitempty"`
	RouteLocked bool     `json:"route_locked,omitempty"`
}

type StationV1 struct {
	ID          int32  `json:"id"`
	Owner       int    `json:"owner"`
	Name        string `json:"name"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Maintenance int    `json:"maintenance,omitempty"`
	Scrap       bool   `json:"scrap,omitempty"`

	Hull         MeterV1 `json:"hull"`
	ScanStrength int     `json:"scan_strength"`
	ScanRange    int     `json:"scan_range"`
	IsFuelSource bool    `json:"is_fuel_source"`
}

type VisibilityV1 struct {
	Civ       int     `json:"civ"`
	Target    int32   `json:"target"`
	Durations [6]byte `json:"durations"`
}

type DiplomatV1 struct {
	CivID            int   `json:"civ_id"`
	SeatOfGovernment int32 `json:"seat_of_government"`
	Contacts         []int `json:"contacts,omitempty"`
	AtWar            []int `json:"at_war,omitempty"`
}

type AgreementV1 struct {
	A         int      `json:"a"`
	B         int      `json:"b"`
	Proposals []string `json:"proposals"`
}

type MessageV1 struct {
	From          int    `json:"from"`
	To            int    `json:"to"`
	Kind          int    `json:"kind"`
	Text          string `json:"text,omitempty"`
	DeliverOnTurn int    `json:"deliver_on_turn"`
}

type ResponseV1 struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Proposal string `json:"proposal"`
	Accept   bool   `json:"accept"`
}

type DiplomacyV1 struct {
	Diplomats  []DiplomatV1  `json:"diplomats,omitempty"`
	Agreements []AgreementV1 `json:"agreements,omitempty"`
	Outbox     []MessageV1   `json:"outbox,omitempty"`
	Responses  []ResponseV1  `json:"responses,omitempty"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Read header line (ignore it for now, gob also contains header).
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}
