package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type              string     `json:"type"`
	ProtocolVersion   string     `json:"protocol_version"`
	SupportedVersions []string   `json:"supported_versions,omitempty"`
	Role              string     `json:"role"` // "OBSERVER" or "RESOLVER"
	ClientName        string     `json:"client_name"`
	Auth              *HelloAuth `json:"auth,omitempty"`
}

type HelloAuth struct {
	Token string `json:"token,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string    `json:"type"`
	ProtocolVersion string    `json:"protocol_version"`
	SelectedVersion string    `json:"selected_version,omitempty"`
	SessionID       string    `json:"session_id"`
	GameID          string    `json:"game_id"`
	TurnNumber      int       `json:"turn_number"`
	GalaxyParams    GalaxyRef `json:"galaxy_params"`
	Civilizations   []CivRef  `json:"civilizations"`
}

type GalaxyRef struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed"`
}

type CivRef struct {
	CivID    int    `json:"civ_id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	IsEmpire bool   `json:"is_empire"`
	IsHuman  bool   `json:"is_human"`
}

// PHASE (server -> client): phase lifecycle frame.
type PhaseMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	TurnNumber      int    `json:"turn_number"`
	Phase           string `json:"phase"`
	State           string `json:"state"` // "CHANGED" or "FINISHED"
}

// TURN (server -> client): end-of-turn summary with standings.
type TurnMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	TurnNumber      int           `json:"turn_number"`
	Standings       []CivStanding `json:"standings"`
	SitReps         []SitRepRef   `json:"sitreps,omitempty"`
}

type CivStanding struct {
	CivID      int     `json:"civ_id"`
	Key        string  `json:"key"`
	Credits    int     `json:"credits"`
	Colonies   int     `json:"colonies"`
	Population int     `json:"population"`
	Morale     float64 `json:"morale"`
	CreditRank int     `json:"credit_rank"`
	ColonyRank int     `json:"colony_rank"`
}

type SitRepRef struct {
	Owner    int    `json:"owner"`
	Kind     string `json:"kind"`
	Priority string `json:"priority"`
	Summary  string `json:"summary"`
}

// COMBAT (server -> client): an encounter waiting on external resolution.
type CombatMsg struct {
	Type            string    `json:"type"`
	ProtocolVersion string    `json:"protocol_version"`
	TurnNumber      int       `json:"turn_number"`
	CombatID        string    `json:"combat_id"`
	Location        [2]int    `json:"location"`
	Sides           []SideRef `json:"sides"`
}

type SideRef struct {
	CivID  int        `json:"civ_id"`
	Fleets []FleetRef `json:"fleets"`
	Ships  int        `json:"ships"`
}

type FleetRef struct {
	FleetID int `json:"fleet_id"`
	Ships   int `json:"ships"`
}

// INVASION (server -> client): a ground assault waiting on external resolution.
type InvasionMsg struct {
	Type            string    `json:"type"`
	ProtocolVersion string    `json:"protocol_version"`
	TurnNumber      int       `json:"turn_number"`
	InvasionID      string    `json:"invasion_id"`
	Location        [2]int    `json:"location"`
	ColonyID        int       `json:"colony_id"`
	Defender        int       `json:"defender"`
	Invaders        []SideRef `json:"invaders"`
}

// COMBAT_DONE (client -> server): the resolver has applied its outcome.
type CombatDoneMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	CombatID        string `json:"combat_id"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}
