package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"astrodominion.ai/internal/persistence/archive"
	"astrodominion.ai/internal/persistence/indexdb"
	persistlog "astrodominion.ai/internal/persistence/log"
	"astrodominion.ai/internal/persistence/snapshot"
	"astrodominion.ai/internal/protocol"
	"astrodominion.ai/internal/sim/catalogs"
	"astrodominion.ai/internal/sim/game"
	"astrodominion.ai/internal/sim/scenario"
	"astrodominion.ai/internal/sim/tuning"
	"astrodominion.ai/internal/transport/observer"
)

func main() {
	var (
		addr         = flag.String("addr", ":8080", "http listen address")
		gameID       = flag.String("game", "game_1", "game id")
		seed         = flag.Int64("seed", 0, "engine seed (used only when starting a fresh game; 0 = tuning seed)")
		configDir    = flag.String("configs", "./configs", "config directory")
		dataDir      = flag.String("data", "./data", "runtime data directory")
		tuningPath   = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		scenarioPath = flag.String("scenario", "", "path to scenario yaml (default: <configs>/scenario.yaml)")
		disableDB    = flag.Bool("disable_db", false, "disable indexing (history + sitreps + snapshot metadata)")

		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")

		turnInterval = flag.Int("turn_interval", 0, "seconds between turns (0 = tuning value)")
		autoResolve  = flag.Bool("auto_resolve", false, "resolve combat internally instead of waiting on a resolver client")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	gameDir := filepath.Join(*dataDir, "games", *gameID)
	_ = os.MkdirAll(gameDir, 0o755)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	sp := strings.TrimSpace(*scenarioPath)
	if sp == "" {
		sp = filepath.Join(*configDir, "scenario.yaml")
	}

	// Optional: read-model index backend (does not affect turn determinism).
	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		var err error
		idx, err = indexdb.OpenSQLite(filepath.Join(gameDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index backend: %v", err)
		}
		defer idx.Close()
	}

	snapshotToLoad := strings.TrimSpace(*snapPath)
	if snapshotToLoad == "" && *loadLatest {
		snapshotToLoad = latestSnapshot(gameDir)
	}

	// Load tuning (required for fresh games; optional for snapshot resumes,
	// where the snapshot carries the effective values).
	tune, tuneErr := tuning.Load(tp)
	if tuneErr != nil {
		if snapshotToLoad == "" || !os.IsNotExist(tuneErr) {
			logger.Fatalf("load tuning: %v", tuneErr)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}

	var g *game.GameContext
	var engineSeed int64
	fresh := snapshotToLoad == ""
	if !fresh {
		snap, err := snapshot.ReadSnapshot(snapshotToLoad)
		if err != nil {
			logger.Fatalf("read snapshot: %v", err)
		}
		if snap.Header.GameID != "" && snap.Header.GameID != *gameID {
			logger.Fatalf("snapshot game id mismatch: flag=%s snap=%s", *gameID, snap.Header.GameID)
		}
		g, err = game.ImportSnapshot(snap)
		if err != nil {
			logger.Fatalf("import snapshot: %v", err)
		}
		engineSeed = snap.Seed
		logger.Printf("resumed from snapshot=%s turn=%d", filepath.Base(snapshotToLoad), g.TurnNumber)
	} else {
		cats, err := catalogs.Load(*configDir)
		if err != nil {
			logger.Fatalf("load catalogs: %v", err)
		}
		scen, err := scenario.Load(sp)
		if err != nil {
			logger.Fatalf("load scenario: %v", err)
		}
		opts := tune.Options(*seed)
		g, err = scenario.Build(scen, cats, opts)
		if err != nil {
			logger.Fatalf("build scenario: %v", err)
		}
		engineSeed = opts.Seed
	}

	e := game.NewEngine(logger, engineSeed)
	if fresh {
		if err := e.DoPreGameSetup(g); err != nil {
			logger.Fatalf("pre-game setup: %v", err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	turnLog := persistlog.NewTurnLogger(gameDir)
	combatLog := persistlog.NewCombatLogger(gameDir)
	defer turnLog.Close()
	defer combatLog.Close()

	srvState := &serverState{gameID: *gameID}
	srvState.update(g, 0, nil)

	// Civilizations and galaxy shape never change after setup; only the turn
	// number in the WELCOME frame is live.
	welcomeTmpl := observer.BuildWelcome(g, *gameID, engineSeed)
	obs := observer.NewServer(e, func() protocol.WelcomeMsg {
		w := welcomeTmpl
		w.TurnNumber = srvState.turnNumber()
		return w
	}, logger)
	obs.Attach(*autoResolve)

	// Chain combat logging onto whatever resolution path Attach installed.
	wrapCombatLogging(e, combatLog)

	interval := *turnInterval
	if interval <= 0 {
		interval = tune.TurnIntervalSec
	}
	if interval <= 0 {
		interval = 30
	}

	turnCh := make(chan struct{}, 1)
	go turnLoop(ctx, e, g, turnLoopDeps{
		interval:  time.Duration(interval) * time.Second,
		gameID:    *gameID,
		gameDir:   gameDir,
		snapEvery: tune.SnapshotEveryTurn,
		eraTurns:  tune.ArchiveEveryTurns,
		idx:       idx,
		turnLog:   turnLog,
		state:     srvState,
		logger:    logger,
		trigger:   turnCh,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")
		srvState.writeMetrics(rw, idx)
	})
	mux.HandleFunc("/v1/observe", obs.WSHandler())

	if envBool("AD_ENABLE_ADMIN_HTTP", defaultEnableAdminHTTP()) {
		// Local-only admin endpoints (do not affect turn determinism).
		mux.HandleFunc("/admin/v1/state", func(rw http.ResponseWriter, r *http.Request) {
			if !isLoopbackRemote(r.RemoteAddr) {
				http.Error(rw, "forbidden", http.StatusForbidden)
				return
			}
			rw.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(rw).Encode(srvState.view())
		})
		mux.HandleFunc("/admin/v1/turn", func(rw http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				rw.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			if !isLoopbackRemote(r.RemoteAddr) {
				http.Error(rw, "forbidden", http.StatusForbidden)
				return
			}
			select {
			case turnCh <- struct{}{}:
				rw.WriteHeader(http.StatusAccepted)
				_, _ = rw.Write([]byte(`{"ok":true}`))
			default:
				rw.WriteHeader(http.StatusConflict)
				_, _ = rw.Write([]byte(`{"ok":false,"error":"turn already queued"}`))
			}
		})
	} else {
		logger.Printf("admin endpoints disabled (AD_ENABLE_ADMIN_HTTP=false)")
	}
	if envBool("AD_ENABLE_PPROF_HTTP", false) {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func latestSnapshot(gameDir string) string {
	dir := filepath.Join(gameDir, "snapshots")
	ents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var best string
	var bestTurn uint64
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".snap.zst") {
			continue
		}
		base := strings.TrimSuffix(name, ".snap.zst")
		turn, err := strconv.ParseUint(base, 10, 64)
		if err != nil {
			continue
		}
		if best == "" || turn > bestTurn {
			bestTurn = turn
			best = filepath.Join(dir, name)
		}
	}
	return best
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func defaultEnableAdminHTTP() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DEPLOY_ENV"))) {
	case "staging", "production":
		return false
	default:
		return true
	}
}

// serverState is the read-model the http handlers serve. The turn loop owns
// the game; handlers only ever see this copy.
type serverState struct {
	mu sync.Mutex

	gameID    string
	turn      int
	lastDurMS int64
	lastErr   string
	standings []standingView
	colonies  int
	fleets    int
}

type standingView struct {
	CivID      int    `json:"civ_id"`
	Key        string `json:"key"`
	Credits    int    `json:"credits"`
	Colonies   int    `json:"colonies"`
	Population int    `json:"population"`
	Morale     int    `json:"morale"`
}

type stateView struct {
	GameID    string         `json:"game_id"`
	Turn      int            `json:"turn"`
	LastDurMS int64          `json:"last_turn_ms"`
	LastError string         `json:"last_error,omitempty"`
	Standings []standingView `json:"standings"`
}

func (s *serverState) update(g *game.GameContext, durMS int64, turnErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turn = g.TurnNumber
	s.lastDurMS = durMS
	s.lastErr = ""
	if turnErr != nil {
		s.lastErr = turnErr.Error()
	}
	s.standings = s.standings[:0]
	s.colonies, s.fleets = 0, 0
	for _, civ := range g.Civilizations {
		m := g.Manager(civ.ID)
		if m == nil {
			continue
		}
		s.standings = append(s.standings, standingView{
			CivID:      int(civ.ID),
			Key:        civ.Key,
			Credits:    m.Treasury.Balance(),
			Colonies:   len(m.Colonies),
			Population: m.TotalPopulation.Current(),
			Morale:     m.AverageMorale(),
		})
		s.colonies += len(m.Colonies)
	}
	s.fleets = len(g.Universe.Fleets())
}

func (s *serverState) turnNumber() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

func (s *serverState) view() stateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := stateView{
		GameID:    s.gameID,
		Turn:      s.turn,
		LastDurMS: s.lastDurMS,
		LastError: s.lastErr,
	}
	v.Standings = append(v.Standings, s.standings...)
	return v
}

func (s *serverState) writeMetrics(rw http.ResponseWriter, idx *indexdb.SQLiteIndex) {
	s.mu.Lock()
	turn, durMS := s.turn, s.lastDurMS
	civs, colonies, fleets := len(s.standings), s.colonies, s.fleets
	gameID := s.gameID
	s.mu.Unlock()

	// Minimal Prometheus exposition format.
	fmt.Fprintf(rw, "# HELP astrodominion_game_turn Current turn number.\n")
	fmt.Fprintf(rw, "# TYPE astrodominion_game_turn gauge\n")
	fmt.Fprintf(rw, "astrodominion_game_turn{game=%q} %d\n", gameID, turn)

	fmt.Fprintf(rw, "# HELP astrodominion_game_civs Civilizations in the game.\n")
	fmt.Fprintf(rw, "# TYPE astrodominion_game_civs gauge\n")
	fmt.Fprintf(rw, "astrodominion_game_civs{game=%q} %d\n", gameID, civs)

	fmt.Fprintf(rw, "# HELP astrodominion_game_colonies Current colony count.\n")
	fmt.Fprintf(rw, "# TYPE astrodominion_game_colonies gauge\n")
	fmt.Fprintf(rw, "astrodominion_game_colonies{game=%q} %d\n", gameID, colonies)

	fmt.Fprintf(rw, "# HELP astrodominion_game_fleets Current fleet count.\n")
	fmt.Fprintf(rw, "# TYPE astrodominion_game_fleets gauge\n")
	fmt.Fprintf(rw, "astrodominion_game_fleets{game=%q} %d\n", gameID, fleets)

	fmt.Fprintf(rw, "# HELP astrodominion_turn_ms Last turn duration in milliseconds.\n")
	fmt.Fprintf(rw, "# TYPE astrodominion_turn_ms gauge\n")
	fmt.Fprintf(rw, "astrodominion_turn_ms{game=%q} %d\n", gameID, durMS)

	if idx != nil {
		st := idx.Stats()
		fmt.Fprintf(rw, "# HELP astrodominion_index_queue_depth Index writer backlog depth.\n")
		fmt.Fprintf(rw, "# TYPE astrodominion_index_queue_depth gauge\n")
		fmt.Fprintf(rw, "astrodominion_index_queue_depth{game=%q} %d\n", gameID, st.QueueDepth)

		fmt.Fprintf(rw, "# HELP astrodominion_index_queue_capacity Index writer queue capacity.\n")
		fmt.Fprintf(rw, "# TYPE astrodominion_index_queue_capacity gauge\n")
		fmt.Fprintf(rw, "astrodominion_index_queue_capacity{game=%q} %d\n", gameID, st.QueueCapacity)

		fmt.Fprintf(rw, "# HELP astrodominion_index_dropped_total Index rows dropped on a full queue.\n")
		fmt.Fprintf(rw, "# TYPE astrodominion_index_dropped_total counter\n")
		fmt.Fprintf(rw, "astrodominion_index_dropped_total{game=%q,kind=%q} %d\n", gameID, "history", st.DropHistoryTotal)
		fmt.Fprintf(rw, "astrodominion_index_dropped_total{game=%q,kind=%q} %d\n", gameID, "sitrep", st.DropSitrepTotal)
		fmt.Fprintf(rw, "astrodominion_index_dropped_total{game=%q,kind=%q} %d\n", gameID, "snapshot", st.DropSnapshotTotal)
	}
}

type turnLoopDeps struct {
	interval  time.Duration
	gameID    string
	gameDir   string
	snapEvery int
	eraTurns  int
	idx       *indexdb.SQLiteIndex
	turnLog   *persistlog.TurnLogger
	state     *serverState
	logger    *log.Logger
	trigger   chan struct{}
}

func turnLoop(ctx context.Context, e *game.Engine, g *game.GameContext, deps turnLoopDeps) {
	ticker := time.NewTicker(deps.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-deps.trigger:
		}
		runTurn(e, g, deps)
	}
}

func runTurn(e *game.Engine, g *game.GameContext, deps turnLoopDeps) {
	started := time.Now()
	err := e.DoTurn(g)
	if err != nil {
		deps.logger.Printf("turn %d failed: %v", g.TurnNumber, err)
	}
	e.DoAIPlayers(g)
	durMS := time.Since(started).Milliseconds()

	// DoTurn advanced the counter; the completed turn is the previous one.
	completed := g.TurnNumber - 1

	entry := persistlog.TurnLogEntry{
		Turn:       completed,
		StartedAt:  started.UTC().Format(time.RFC3339),
		DurationMS: durMS,
	}
	if err != nil {
		entry.PhaseErrors = append(entry.PhaseErrors, persistlog.PhaseError{Phase: "turn", Error: err.Error()})
	}
	sitreps := 0
	for _, civ := range g.Civilizations {
		m := g.Manager(civ.ID)
		if m == nil {
			continue
		}
		entry.Standings = append(entry.Standings, persistlog.StandingLine{
			CivID:      int(civ.ID),
			Credits:    m.Treasury.Balance(),
			Colonies:   len(m.Colonies),
			Population: m.TotalPopulation.Current(),
		})
		if h, ok := m.LastHistory(); ok {
			_ = deps.idx.WriteHistory(civ.ID, civ.Key, h)
		}
		for _, rep := range m.SitReps() {
			sitreps++
			_ = deps.idx.WriteSitRep(rep)
		}
	}
	entry.Sitreps = sitreps
	_ = deps.turnLog.WriteTurn(entry)

	if deps.snapEvery > 0 && completed%deps.snapEvery == 0 {
		snap := g.ExportSnapshot(deps.gameID)
		path := filepath.Join(deps.gameDir, "snapshots", fmt.Sprintf("%d.snap.zst", completed))
		if werr := snapshot.WriteSnapshot(path, snap); werr != nil {
			deps.logger.Printf("snapshot write: %v", werr)
		} else {
			deps.idx.RecordSnapshot(path, snap)
			if era, dst, ok, aerr := archive.ArchiveEraSnapshot(deps.gameDir, path, snap, deps.eraTurns); aerr != nil {
				deps.logger.Printf("era archive: %v", aerr)
			} else if ok {
				deps.logger.Printf("archived era %d snapshot to %s", era, dst)
			}
		}
	}

	deps.state.update(g, durMS, err)
}

// wrapCombatLogging writes one combat log entry per encounter or invasion.
// The engine blocks on the resolver between hook calls, so an entry's wait
// time is measured from its own hook to the next combat event or the end of
// the combat phase. Hooks run on the turn goroutine only.
func wrapCombatLogging(e *game.Engine, combatLog *persistlog.CombatLogger) {
	var pendingEntry persistlog.CombatLogEntry
	var pendingAt time.Time
	pending := false
	flush := func() {
		if !pending {
			return
		}
		pendingEntry.WaitedMS = time.Since(pendingAt).Milliseconds()
		_ = combatLog.WriteCombat(pendingEntry)
		pending = false
	}

	prevCombat := e.CombatOccurring
	e.CombatOccurring = func(g *game.GameContext, enc *game.CombatEncounter) {
		flush()
		if prevCombat != nil {
			prevCombat(g, enc)
		}
		pendingEntry = persistlog.CombatLogEntry{
			Turn:  g.TurnNumber,
			Kind:  "encounter",
			X:     enc.Location.X,
			Y:     enc.Location.Y,
			Sides: len(enc.Sides),
		}
		pendingAt = time.Now()
		pending = true
	}
	prevInvasion := e.InvasionOccurring
	e.InvasionOccurring = func(g *game.GameContext, a *game.InvasionArena) {
		flush()
		if prevInvasion != nil {
			prevInvasion(g, a)
		}
		pendingEntry = persistlog.CombatLogEntry{
			Turn:  g.TurnNumber,
			Kind:  "invasion",
			X:     a.Location.X,
			Y:     a.Location.Y,
			Sides: len(a.Invaders) + 1,
		}
		pendingAt = time.Now()
		pending = true
	}
	prevFinished := e.PhaseFinished
	e.PhaseFinished = func(g *game.GameContext, phase game.TurnPhase) {
		if phase == game.PhaseCombat {
			flush()
		}
		if prevFinished != nil {
			prevFinished(g, phase)
		}
	}
}
