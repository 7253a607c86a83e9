package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"astrodominion.ai/internal/sim/catalogs"
	"astrodominion.ai/internal/sim/game"
	"astrodominion.ai/internal/sim/scenario"
	"astrodominion.ai/internal/sim/tuning"
)

// Headless balance runner: every civilization plays itself, combat resolves
// instantly, and the final standings go to stdout.
func main() {
	var (
		configDir    = flag.String("configs", "./configs", "config directory")
		tuningPath   = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		scenarioPath = flag.String("scenario", "", "path to scenario yaml (default: <configs>/scenario.yaml)")
		seed         = flag.Int64("seed", 1, "engine seed")
		turns        = flag.Int("turns", 50, "turns to simulate")
		quiet        = flag.Bool("quiet", false, "suppress engine logging")
	)
	flag.Parse()

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	sp := strings.TrimSpace(*scenarioPath)
	if sp == "" {
		sp = filepath.Join(*configDir, "scenario.yaml")
	}

	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "load tuning:", err)
			os.Exit(1)
		}
		tune = tuning.Defaults()
	}
	cats, err := catalogs.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalogs:", err)
		os.Exit(1)
	}
	scen, err := scenario.Load(sp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load scenario:", err)
		os.Exit(1)
	}

	opts := tune.Options(*seed)
	// Headless runs take every civilization through the AI path.
	g, err := scenario.Build(scen, cats, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build scenario:", err)
		os.Exit(1)
	}
	for _, civ := range g.Civilizations {
		if civ.IsHuman {
			opts.AutoTurnCivs[civ.ID] = true
		}
	}

	logger := log.New(os.Stdout, "[simulate] ", log.LstdFlags)
	if *quiet {
		logger = log.New(io.Discard, "", 0)
	}
	e := game.NewEngine(logger, *seed)
	e.CombatOccurring = func(g *game.GameContext, enc *game.CombatEncounter) {
		e.NotifyCombatFinished()
	}
	e.InvasionOccurring = func(g *game.GameContext, a *game.InvasionArena) {
		e.NotifyCombatFinished()
	}

	if err := e.DoPreGameSetup(g); err != nil {
		fmt.Fprintln(os.Stderr, "pre-game setup:", err)
		os.Exit(1)
	}

	started := time.Now()
	for i := 0; i < *turns; i++ {
		if err := e.DoTurn(g); err != nil {
			fmt.Fprintf(os.Stderr, "turn %d failed: %v\n", g.TurnNumber, err)
			os.Exit(1)
		}
		e.DoAIPlayers(g)
	}
	elapsed := time.Since(started)

	type row struct {
		key        string
		credits    int
		colonies   int
		population int
		morale     int
		rank       int
	}
	rows := make([]row, 0, len(g.Civilizations))
	for _, civ := range g.Civilizations {
		m := g.Manager(civ.ID)
		if m == nil {
			continue
		}
		rows = append(rows, row{
			key:        civ.Key,
			credits:    m.Treasury.Balance(),
			colonies:   len(m.Colonies),
			population: m.TotalPopulation.Current(),
			morale:     m.AverageMorale(),
			rank:       m.CreditsRank(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].rank < rows[j].rank })

	fmt.Printf("simulated %d turns in %s (%.1f turns/s)\n",
		*turns, elapsed.Round(time.Millisecond), float64(*turns)/elapsed.Seconds())
	fmt.Printf("%-4s %-16s %10s %9s %11s %7s\n", "RANK", "CIV", "CREDITS", "COLONIES", "POPULATION", "MORALE")
	for _, r := range rows {
		fmt.Printf("%-4d %-16s %10d %9d %11d %7d\n", r.rank, r.key, r.credits, r.colonies, r.population, r.morale)
	}
}
