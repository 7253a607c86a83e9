package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"astrodominion.ai/internal/sim/game"
)

// Catalogs holds the static content a game references by key: buildable
// designs and the civilization roster. Digests let resumed games detect a
// content mismatch.
type Catalogs struct {
	Designs DesignCatalog
	Civs    CivCatalog
}

type DesignCatalog struct {
	Keys   []string
	Defs   map[string]DesignDef
	Digest string
}

type DesignDef struct {
	Key          string `json:"key"`
	IndustryCost int    `json:"industry_cost"`
	Deuterium    int    `json:"deuterium,omitempty"`
	Dilithium    int    `json:"dilithium,omitempty"`
	RawMaterials int    `json:"raw_materials,omitempty"`
	BuildLimit   int    `json:"build_limit,omitempty"`
	IsShip       bool   `json:"is_ship,omitempty"`
	Category     string `json:"category,omitempty"`
	// Ship stats, only meaningful when is_ship is set.
	Hull         int `json:"hull,omitempty"`
	Fuel         int `json:"fuel,omitempty"`
	Speed        int `json:"speed,omitempty"`
	RangeSectors int `json:"range_sectors,omitempty"`
}

// BuildDesign converts a catalog entry into the engine's design record.
func (d DesignDef) BuildDesign() (*game.BuildDesign, error) {
	bd := &game.BuildDesign{
		Key:          d.Key,
		IndustryCost: d.IndustryCost,
		BuildLimit:   d.BuildLimit,
		IsShip:       d.IsShip,
	}
	bd.ResourceCost[game.ResDeuterium] = d.Deuterium
	bd.ResourceCost[game.ResDilithium] = d.Dilithium
	bd.ResourceCost[game.ResRawMaterials] = d.RawMaterials
	if d.IsShip {
		cat, ok := game.ParseShipCategory(d.Category)
		if !ok {
			return nil, fmt.Errorf("design %s: unknown ship category %q", d.Key, d.Category)
		}
		bd.Category = cat
	}
	return bd, nil
}

type CivCatalog struct {
	Keys   []string
	Defs   map[string]CivDef
	Digest string
}

type CivDef struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	IsEmpire        bool   `json:"is_empire,omitempty"`
	BaseMoraleLevel int    `json:"base_morale_level,omitempty"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadDesigns(filepath.Join(configDir, "designs.json"), &c.Designs); err != nil {
		return nil, err
	}
	if err := loadCivs(filepath.Join(configDir, "civilizations.json"), &c.Civs); err != nil {
		return nil, err
	}

	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadDesigns(path string, out *DesignCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []DesignDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("designs.json: %w", err)
	}
	out.Defs = map[string]DesignDef{}
	for _, d := range defs {
		if d.Key == "" {
			return fmt.Errorf("designs.json: empty key")
		}
		if d.IsShip {
			if _, ok := game.ParseShipCategory(d.Category); !ok {
				return fmt.Errorf("designs.json: %s: unknown ship category %q", d.Key, d.Category)
			}
		}
		out.Defs[d.Key] = d
	}

	keys := make([]string, 0, len(out.Defs))
	for k := range out.Defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out.Keys = keys
	return nil
}

func loadCivs(path string, out *CivCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []CivDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("civilizations.json: %w", err)
	}
	out.Defs = map[string]CivDef{}
	for _, d := range defs {
		if d.Key == "" {
			return fmt.Errorf("civilizations.json: empty key")
		}
		out.Defs[d.Key] = d
	}

	keys := make([]string, 0, len(out.Defs))
	for k := range out.Defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out.Keys = keys
	return nil
}
