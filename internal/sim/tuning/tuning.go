package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"astrodominion.ai/internal/sim/game"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	GalaxyWidth  int `yaml:"galaxy_width"`
	GalaxyHeight int `yaml:"galaxy_height"`

	TurnIntervalSec   int `yaml:"turn_interval_sec"`
	SnapshotEveryTurn int `yaml:"snapshot_every_turns"`
	ArchiveEveryTurns int `yaml:"archive_every_turns"`
	FanOutWidth       int `yaml:"fan_out_width"`

	TutorialColonyName string `yaml:"tutorial_colony_name"`

	Trade Trade `yaml:"trade"`

	MoraleDriftRate int `yaml:"morale_drift_rate"`

	Seed int64 `yaml:"seed"`
}

type Trade struct {
	// Minimum population per trade route, keyed by civilization key, with a
	// default fallback.
	PopRequirements map[string]int `yaml:"pop_requirements"`
	PopDefault      int            `yaml:"pop_default"`
	SourceMult      float64        `yaml:"source_mult"`
	TargetMult      float64        `yaml:"target_mult"`
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func Defaults() Tuning {
	return Tuning{
		ProtocolVersion:   "1.0",
		GalaxyWidth:       20,
		GalaxyHeight:      15,
		TurnIntervalSec:   30,
		SnapshotEveryTurn: 10,
		ArchiveEveryTurns: 100,
		Trade: Trade{
			PopDefault: 150,
			SourceMult: 1.0,
			TargetMult: 0.5,
		},
		MoraleDriftRate: 1,
	}
}

// Options maps the tuning file onto engine options. The scenario fills in
// galaxy dimensions and auto-turn enrollment afterwards.
func (t Tuning) Options(seed int64) *game.GameOptions {
	opts := game.NewGameOptions()
	if t.GalaxyWidth > 0 {
		opts.GalaxyWidth = t.GalaxyWidth
	}
	if t.GalaxyHeight > 0 {
		opts.GalaxyHeight = t.GalaxyHeight
	}
	opts.TutorialColonyName = t.TutorialColonyName
	if t.Trade.PopRequirements != nil {
		opts.TradePopRequirements = t.Trade.PopRequirements
	}
	if t.Trade.PopDefault > 0 {
		opts.TradePopDefault = t.Trade.PopDefault
	}
	if t.Trade.SourceMult > 0 {
		opts.TradeSourceMult = t.Trade.SourceMult
	}
	if t.Trade.TargetMult > 0 {
		opts.TradeTargetMult = t.Trade.TargetMult
	}
	if t.MoraleDriftRate > 0 {
		opts.MoraleDriftRate = t.MoraleDriftRate
	}
	opts.FanOutWidth = t.FanOutWidth
	opts.Seed = seed
	if seed == 0 {
		opts.Seed = t.Seed
	}
	return opts
}
