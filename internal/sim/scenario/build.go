package scenario

import (
	"fmt"

	"astrodominion.ai/internal/sim/catalogs"
	"astrodominion.ai/internal/sim/game"
)

// Build materializes a starting game from a scenario and the content
// catalogs. Civilization IDs follow declaration order starting at 1.
func Build(cfg Config, cats *catalogs.Catalogs, opts *game.GameOptions) (*game.GameContext, error) {
	if opts == nil {
		opts = game.NewGameOptions()
	}
	opts.GalaxyWidth = cfg.Galaxy.Width
	opts.GalaxyHeight = cfg.Galaxy.Height

	g := game.NewGameContext(opts)

	for _, s := range cfg.Stars {
		g.Map.SetStar(game.Location{X: s.X, Y: s.Y}, starTypes[s.Type])
	}

	for i, spec := range cfg.Civs {
		def, ok := cats.Civs.Defs[spec.Key]
		if !ok {
			return nil, fmt.Errorf("scenario: civilization %q not in catalog", spec.Key)
		}
		civ := &game.Civilization{
			ID:              game.CivID(i + 1),
			Key:             def.Key,
			Name:            def.Name,
			IsEmpire:        def.IsEmpire,
			IsHuman:         spec.IsHuman,
			BaseMoraleLevel: def.BaseMoraleLevel,
		}
		m := g.AddCivilization(civ)
		if spec.AutoTurn {
			opts.AutoTurnCivs[civ.ID] = true
		}

		for _, col := range spec.Colonies {
			c := g.FoundColony(col.Name, game.Location{X: col.X, Y: col.Y}, civ.ID, col.Population, col.MaxPopulation)
			applyFacility(c, game.ProdFood, col.Food)
			applyFacility(c, game.ProdIndustry, col.Industry)
			applyFacility(c, game.ProdEnergy, col.Energy)
			applyFacility(c, game.ProdResearch, col.Research)
			applyFacility(c, game.ProdIntelligence, col.Intel)
			if col.Home {
				m.HomeColonyID = c.ID
			}
		}

		for _, fs := range spec.Fleets {
			fleet := &game.Fleet{Object: game.Object{
				OwnerID: civ.ID,
				Loc:     game.Location{X: fs.X, Y: fs.Y},
			}}
			g.Universe.AddFleet(fleet)
			for _, key := range fs.Ships {
				d, ok := cats.Designs.Defs[key]
				if !ok {
					return nil, fmt.Errorf("scenario: ship design %q not in catalog", key)
				}
				if !d.IsShip {
					return nil, fmt.Errorf("scenario: design %q is not a ship", key)
				}
				cat, _ := game.ParseShipCategory(d.Category)
				ship := game.NewShip(d.Key, cat, d.Hull, d.Fuel, d.Speed, d.RangeSectors)
				g.Universe.AddShip(fleet, ship)
				m.ShipCounts[cat].Available++
			}
		}
	}

	return g, nil
}

func applyFacility(c *game.Colony, cat game.ProductionCategory, f FacilitySpec) {
	if f.Count <= 0 {
		return
	}
	c.Facilities[cat].Count = f.Count
	c.Facilities[cat].Active = f.Count
	c.Facilities[cat].UnitOutput = f.UnitOutput
}
