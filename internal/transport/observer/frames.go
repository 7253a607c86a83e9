package observer

import (
	"sort"

	"astrodominion.ai/internal/protocol"
	"astrodominion.ai/internal/sim/game"
)

// BuildWelcome captures the static game description plus the current turn.
func BuildWelcome(g *game.GameContext, gameID string, seed int64) protocol.WelcomeMsg {
	civs := make([]protocol.CivRef, 0, len(g.Civilizations))
	for _, civ := range g.Civilizations {
		civs = append(civs, protocol.CivRef{
			CivID:    int(civ.ID),
			Key:      civ.Key,
			Name:     civ.Name,
			IsEmpire: civ.IsEmpire,
			IsHuman:  civ.IsHuman,
		})
	}
	return protocol.WelcomeMsg{
		GameID:     gameID,
		TurnNumber: g.TurnNumber,
		GalaxyParams: protocol.GalaxyRef{
			Width:  g.Map.Width,
			Height: g.Map.Height,
			Seed:   seed,
		},
		Civilizations: civs,
	}
}

func buildTurnMsg(g *game.GameContext) protocol.TurnMsg {
	msg := protocol.TurnMsg{
		Type:            protocol.TypeTurn,
		ProtocolVersion: protocol.Version,
		TurnNumber:      g.TurnNumber,
	}
	for _, civ := range g.Civilizations {
		m := g.Manager(civ.ID)
		if m == nil {
			continue
		}
		st := protocol.CivStanding{
			CivID:      int(civ.ID),
			Key:        civ.Key,
			Credits:    m.Treasury.Balance(),
			Colonies:   len(m.Colonies),
			Population: m.TotalPopulation.Current(),
			Morale:     float64(m.AverageMorale()),
		}
		if h, ok := m.LastHistory(); ok {
			st.CreditRank = h.CreditsRank
			st.ColonyRank = h.ColoniesRank
		}
		msg.Standings = append(msg.Standings, st)
		for _, rep := range m.SitReps() {
			msg.SitReps = append(msg.SitReps, protocol.SitRepRef{
				Owner:    int(rep.Owner),
				Kind:     rep.Kind.String(),
				Priority: priorityName(rep.Priority),
				Summary:  rep.Summary(),
			})
		}
	}
	sort.SliceStable(msg.Standings, func(i, j int) bool {
		return msg.Standings[i].CivID < msg.Standings[j].CivID
	})
	return msg
}

func buildCombatMsg(g *game.GameContext, enc *game.CombatEncounter, id string) protocol.CombatMsg {
	msg := protocol.CombatMsg{
		Type:            protocol.TypeCombat,
		ProtocolVersion: protocol.Version,
		TurnNumber:      g.TurnNumber,
		CombatID:        id,
		Location:        [2]int{enc.Location.X, enc.Location.Y},
	}
	for _, side := range enc.Sides {
		msg.Sides = append(msg.Sides, buildSideRef(int(side.OwnerID), side.Fleets))
	}
	return msg
}

func buildInvasionMsg(g *game.GameContext, a *game.InvasionArena, id string) protocol.InvasionMsg {
	msg := protocol.InvasionMsg{
		Type:            protocol.TypeInvasion,
		ProtocolVersion: protocol.Version,
		TurnNumber:      g.TurnNumber,
		InvasionID:      id,
		Location:        [2]int{a.Location.X, a.Location.Y},
		ColonyID:        int(a.Colony.ID),
		Defender:        int(a.Colony.OwnerID),
	}
	// Group invading fleets per owner so each attacker is one side.
	byOwner := make(map[game.CivID][]*game.Fleet)
	owners := make([]game.CivID, 0, 2)
	for _, f := range a.Invaders {
		if _, seen := byOwner[f.OwnerID]; !seen {
			owners = append(owners, f.OwnerID)
		}
		byOwner[f.OwnerID] = append(byOwner[f.OwnerID], f)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	for _, owner := range owners {
		msg.Invaders = append(msg.Invaders, buildSideRef(int(owner), byOwner[owner]))
	}
	return msg
}

func buildSideRef(civID int, fleets []*game.Fleet) protocol.SideRef {
	side := protocol.SideRef{CivID: civID}
	for _, f := range fleets {
		side.Fleets = append(side.Fleets, protocol.FleetRef{
			FleetID: int(f.ID),
			Ships:   len(f.Ships),
		})
		side.Ships += len(f.Ships)
	}
	return side
}

func priorityName(p game.SitRepPriority) string {
	switch p {
	case game.PriorityRed:
		return "RED"
	case game.PriorityYellow:
		return "YELLOW"
	default:
		return "GREEN"
	}
}
