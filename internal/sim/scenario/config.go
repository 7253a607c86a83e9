package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"astrodominion.ai/internal/sim/game"
)

// Config declares a playable starting position: the galaxy grid, its stellar
// phenomena and every civilization's initial holdings. Galaxy generation is
// an editor concern; the engine only consumes the declared layout.
type Config struct {
	GameID string     `yaml:"game_id"`
	Name   string     `yaml:"name"`
	Galaxy GalaxySpec `yaml:"galaxy"`
	Stars  []StarSpec `yaml:"stars,omitempty"`
	Civs   []CivSpec  `yaml:"civilizations"`
}

type GalaxySpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type StarSpec struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Type string `yaml:"type"`
}

type CivSpec struct {
	Key      string       `yaml:"key"`
	IsHuman  bool         `yaml:"is_human,omitempty"`
	AutoTurn bool         `yaml:"auto_turn,omitempty"`
	Colonies []ColonySpec `yaml:"colonies"`
	Fleets   []FleetSpec  `yaml:"fleets,omitempty"`
}

type ColonySpec struct {
	Name          string `yaml:"name"`
	X             int    `yaml:"x"`
	Y             int    `yaml:"y"`
	Population    int    `yaml:"population"`
	MaxPopulation int    `yaml:"max_population"`
	Home          bool   `yaml:"home,omitempty"`

	Food     FacilitySpec `yaml:"food,omitempty"`
	Industry FacilitySpec `yaml:"industry,omitempty"`
	Energy   FacilitySpec `yaml:"energy,omitempty"`
	Research FacilitySpec `yaml:"research,omitempty"`
	Intel    FacilitySpec `yaml:"intel,omitempty"`
}

type FacilitySpec struct {
	Count      int `yaml:"count"`
	UnitOutput int `yaml:"unit_output"`
}

type FleetSpec struct {
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Ships []string `yaml:"ships"` // design keys
}

var starTypes = map[string]game.StarType{
	"ordinary":   game.StarOrdinary,
	"nebula":     game.StarNebula,
	"neutron":    game.StarNeutron,
	"quasar":     game.StarQuasar,
	"pulsar":     game.StarPulsar,
	"black_hole": game.StarBlackHole,
	"wormhole":   game.StarWormhole,
	"rogue":      game.StarRogue,
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("scenario: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("scenario: %w", err)
	}
	return cfg, nil
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	if strings.TrimSpace(c.GameID) == "" {
		c.GameID = "game_1"
	}
	for i := range c.Civs {
		// First colony is the home world unless one is flagged.
		hasHome := false
		for _, col := range c.Civs[i].Colonies {
			if col.Home {
				hasHome = true
				break
			}
		}
		if !hasHome && len(c.Civs[i].Colonies) > 0 {
			c.Civs[i].Colonies[0].Home = true
		}
	}
}

func (c Config) Validate() error {
	if c.Galaxy.Width <= 0 || c.Galaxy.Height <= 0 {
		return fmt.Errorf("galaxy width/height must be > 0")
	}
	if len(c.Civs) == 0 {
		return fmt.Errorf("civilizations must not be empty")
	}
	in := func(x, y int) bool {
		return x >= 0 && x < c.Galaxy.Width && y >= 0 && y < c.Galaxy.Height
	}
	for i, s := range c.Stars {
		if _, ok := starTypes[s.Type]; !ok {
			return fmt.Errorf("stars[%d]: unknown type %q", i, s.Type)
		}
		if !in(s.X, s.Y) {
			return fmt.Errorf("stars[%d]: (%d,%d) outside galaxy", i, s.X, s.Y)
		}
	}
	seen := map[string]bool{}
	for _, civ := range c.Civs {
		if strings.TrimSpace(civ.Key) == "" {
			return fmt.Errorf("civilization key must not be empty")
		}
		if seen[civ.Key] {
			return fmt.Errorf("duplicate civilization key: %s", civ.Key)
		}
		seen[civ.Key] = true
		if len(civ.Colonies) == 0 {
			return fmt.Errorf("civilization %s has no colonies", civ.Key)
		}
		for j, col := range civ.Colonies {
			if strings.TrimSpace(col.Name) == "" {
				return fmt.Errorf("%s colonies[%d]: empty name", civ.Key, j)
			}
			if !in(col.X, col.Y) {
				return fmt.Errorf("%s colony %s: (%d,%d) outside galaxy", civ.Key, col.Name, col.X, col.Y)
			}
			if col.Population <= 0 || col.MaxPopulation < col.Population {
				return fmt.Errorf("%s colony %s: bad population %d/%d", civ.Key, col.Name, col.Population, col.MaxPopulation)
			}
		}
		for j, f := range civ.Fleets {
			if !in(f.X, f.Y) {
				return fmt.Errorf("%s fleets[%d]: (%d,%d) outside galaxy", civ.Key, j, f.X, f.Y)
			}
			if len(f.Ships) == 0 {
				return fmt.Errorf("%s fleets[%d]: no ships", civ.Key, j)
			}
		}
	}
	return nil
}
