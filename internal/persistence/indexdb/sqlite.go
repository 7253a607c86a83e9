package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"astrodominion.ai/internal/persistence/snapshot"
	"astrodominion.ai/internal/sim/game"
)

// SQLiteIndex is the queryable read-model of a running game: per-turn
// per-civilization history rows, situation reports and snapshot metadata.
// Writes go through a buffered channel into a single writer goroutine; when
// the indexer falls behind, writes are dropped (snapshots remain the source
// of truth) and counted.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool

	dropHistory  atomic.Uint64
	dropSitrep   atomic.Uint64
	dropSnapshot atomic.Uint64
}

type reqKind int

const (
	reqHistory reqKind = iota + 1
	reqSitrep
	reqSnapshot
)

type req struct {
	kind reqKind

	history  HistoryRow
	sitrep   sitrepRow
	snapshot SnapshotRow
}

// HistoryRow mirrors one civilization's appended ledger record for a turn.
type HistoryRow struct {
	Turn   int
	CivID  int
	CivKey string

	Credits      int
	Maintenance  int
	Colonies     int
	Population   int
	Morale       int
	Resources    int
	Research     int
	Intelligence int

	CreditsRank    int
	ColoniesRank   int
	PopulationRank int
	ResearchRank   int
}

type sitrepRow struct {
	Turn     int
	Owner    int
	Kind     string
	Priority int
	Summary  string
}

// SnapshotRow is the metadata of one written snapshot file.
type SnapshotRow struct {
	Turn     int
	Path     string
	Seed     int64
	Civs     int
	Colonies int
	Fleets   int
	Stations int
}

// Stats reports queue health for the admin surface.
type Stats struct {
	QueueDepth    int
	QueueCapacity int

	DropHistoryTotal  uint64
	DropSitrepTotal   uint64
	DropSnapshotTotal uint64
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		// Buffer for one full turn of bursty writes (every civ's history plus
		// every sitrep) without stalling the engine.
		ch: make(chan req, 16384),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	// NORMAL is a decent durability/perf tradeoff for a secondary index.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			turn INTEGER NOT NULL,
			civ_id INTEGER NOT NULL,
			civ_key TEXT NOT NULL,
			credits INTEGER NOT NULL,
			maintenance INTEGER NOT NULL,
			colonies INTEGER NOT NULL,
			population INTEGER NOT NULL,
			morale INTEGER NOT NULL,
			resources INTEGER NOT NULL,
			research INTEGER NOT NULL,
			intelligence INTEGER NOT NULL,
			credits_rank INTEGER NOT NULL,
			colonies_rank INTEGER NOT NULL,
			population_rank INTEGER NOT NULL,
			research_rank INTEGER NOT NULL,
			PRIMARY KEY (turn, civ_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_civ_turn ON history(civ_id, turn);`,
		`CREATE TABLE IF NOT EXISTS sitreps (
			turn INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			owner INTEGER NOT NULL,
			kind TEXT NOT NULL,
			priority INTEGER NOT NULL,
			summary TEXT NOT NULL,
			PRIMARY KEY (turn, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sitreps_owner_turn ON sitreps(owner, turn);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			turn INTEGER PRIMARY KEY,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			civs INTEGER NOT NULL,
			colonies INTEGER NOT NULL,
			fleets INTEGER NOT NULL,
			stations INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	if _, err := db.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	return nil
}

// Close drains pending writes and closes the database.
func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// WriteHistory records one civilization's history entry for a turn.
func (s *SQLiteIndex) WriteHistory(civID game.CivID, civKey string, h game.HistoryEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	row := HistoryRow{
		Turn:   h.Turn,
		CivID:  int(civID),
		CivKey: civKey,

		Credits:      h.Credits,
		Maintenance:  h.Maintenance,
		Colonies:     h.Colonies,
		Population:   h.Population,
		Morale:       h.Morale,
		Resources:    h.Resources,
		Research:     h.Research,
		Intelligence: h.Intelligence,

		CreditsRank:    h.CreditsRank,
		ColoniesRank:   h.ColoniesRank,
		PopulationRank: h.PopulationRank,
		ResearchRank:   h.ResearchRank,
	}
	select {
	case s.ch <- req{kind: reqHistory, history: row}:
	default:
		s.dropHistory.Add(1)
	}
	return nil
}

// WriteSitRep records one situation report. Sequence numbers within a turn
// are assigned by the writer goroutine.
func (s *SQLiteIndex) WriteSitRep(rep *game.SitRep) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	row := sitrepRow{
		Turn:     rep.Turn,
		Owner:    int(rep.Owner),
		Kind:     rep.Kind.String(),
		Priority: int(rep.Priority),
		Summary:  rep.Summary(),
	}
	select {
	case s.ch <- req{kind: reqSitrep, sitrep: row}:
	default:
		s.dropSitrep.Add(1)
	}
	return nil
}

// RecordSnapshot indexes a written snapshot file.
func (s *SQLiteIndex) RecordSnapshot(path string, snap snapshot.SnapshotV1) {
	if s == nil || s.closed.Load() {
		return
	}
	row := SnapshotRow{
		Turn:     snap.Header.Turn,
		Path:     path,
		Seed:     snap.Seed,
		Civs:     len(snap.Civilizations),
		Colonies: len(snap.Colonies),
		Fleets:   len(snap.Fleets),
		Stations: len(snap.Stations),
	}
	select {
	case s.ch <- req{kind: reqSnapshot, snapshot: row}:
	default:
		s.dropSnapshot.Add(1)
	}
}

func (s *SQLiteIndex) Stats() Stats {
	return Stats{
		QueueDepth:    len(s.ch),
		QueueCapacity: cap(s.ch),

		DropHistoryTotal:  s.dropHistory.Load(),
		DropSitrepTotal:   s.dropSitrep.Load(),
		DropSnapshotTotal: s.dropSnapshot.Load(),
	}
}

// HistoryForCivilization returns a civilization's rows in turn order.
func (s *SQLiteIndex) HistoryForCivilization(civID int) ([]HistoryRow, error) {
	rows, err := s.db.Query(`SELECT turn,civ_id,civ_key,credits,maintenance,colonies,population,
		morale,resources,research,intelligence,
		credits_rank,colonies_rank,population_rank,research_rank
		FROM history WHERE civ_id=? ORDER BY turn`, civID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var r HistoryRow
		if err := rows.Scan(&r.Turn, &r.CivID, &r.CivKey, &r.Credits, &r.Maintenance,
			&r.Colonies, &r.Population, &r.Morale, &r.Resources, &r.Research, &r.Intelligence,
			&r.CreditsRank, &r.ColoniesRank, &r.PopulationRank, &r.ResearchRank); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestSnapshot returns the newest indexed snapshot, if any.
func (s *SQLiteIndex) LatestSnapshot() (SnapshotRow, bool, error) {
	var r SnapshotRow
	err := s.db.QueryRow(`SELECT turn,path,seed,civs,colonies,fleets,stations
		FROM snapshots ORDER BY turn DESC LIMIT 1`).
		Scan(&r.Turn, &r.Path, &r.Seed, &r.Civs, &r.Colonies, &r.Fleets, &r.Stations)
	if err == sql.ErrNoRows {
		return SnapshotRow{}, false, nil
	}
	if err != nil {
		return SnapshotRow{}, false, err
	}
	return r, true, nil
}

// SitrepsForTurn returns a turn's reports in sequence order as summaries.
func (s *SQLiteIndex) SitrepsForTurn(turn int) ([]string, error) {
	rows, err := s.db.Query(`SELECT summary FROM sitreps WHERE turn=? ORDER BY seq`, turn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var summary string
		if err := rows.Scan(&summary); err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertHistory, _ := s.db.Prepare(`INSERT OR REPLACE INTO history(turn,civ_id,civ_key,
		credits,maintenance,colonies,population,morale,resources,research,intelligence,
		credits_rank,colonies_rank,population_rank,research_rank)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	insertSitrep, _ := s.db.Prepare(`INSERT OR REPLACE INTO sitreps(turn,seq,owner,kind,priority,summary) VALUES(?,?,?,?,?,?)`)
	insertSnapshot, _ := s.db.Prepare(`INSERT OR REPLACE INTO snapshots(turn,path,seed,civs,colonies,fleets,stations) VALUES(?,?,?,?,?,?,?)`)
	defer func() {
		if insertHistory != nil {
			_ = insertHistory.Close()
		}
		if insertSitrep != nil {
			_ = insertSitrep.Close()
		}
		if insertSnapshot != nil {
			_ = insertSnapshot.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 500
		commitMaxWait = 2 * time.Second

		lastSitrepTurn int
		sitrepSeq      int
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			// If we can't start a tx, we can't do much; sleep a bit.
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	flushIfNeeded := func() {
		if tx == nil {
			return
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqHistory:
			h := r.history
			if insertHistory != nil {
				if _, err := tx.Stmt(insertHistory).Exec(
					h.Turn, h.CivID, h.CivKey,
					h.Credits, h.Maintenance, h.Colonies, h.Population, h.Morale,
					h.Resources, h.Research, h.Intelligence,
					h.CreditsRank, h.ColoniesRank, h.PopulationRank, h.ResearchRank,
				); err != nil {
					rollback()
					continue
				}
				opCount++
			}

		case reqSitrep:
			rep := r.sitrep
			if rep.Turn != lastSitrepTurn {
				lastSitrepTurn = rep.Turn
				sitrepSeq = 0
			}
			seq := sitrepSeq
			sitrepSeq++
			if insertSitrep != nil {
				if _, err := tx.Stmt(insertSitrep).Exec(
					rep.Turn, seq, rep.Owner, rep.Kind, rep.Priority, rep.Summary,
				); err != nil {
					rollback()
					continue
				}
				opCount++
			}

		case reqSnapshot:
			sn := r.snapshot
			if insertSnapshot != nil {
				if _, err := tx.Stmt(insertSnapshot).Exec(
					sn.Turn, sn.Path, sn.Seed, sn.Civs, sn.Colonies, sn.Fleets, sn.Stations,
				); err != nil {
					rollback()
					continue
				}
				opCount++
			}
		}
		flushIfNeeded()
	}

	commit()
}
