package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// dbCmd queries a game's read-model index directly; the server does not need
// to be running.
func dbCmd(args []string) {
	fs := flag.NewFlagSet("db", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	gameID := fs.String("game", "", "game id (required unless -db)")
	dbPath := fs.String("db", "", "sqlite db path (optional)")
	civID := fs.Int("civ", 0, "civilization id filter (history)")
	turn := fs.Int("turn", 0, "turn filter (sitreps)")
	limit := fs.Int("limit", 20, "result limit")
	_ = fs.Parse(args)

	q := "snapshots"
	if fs.NArg() > 0 {
		q = strings.TrimSpace(fs.Arg(0))
	}

	path := strings.TrimSpace(*dbPath)
	if path == "" {
		if strings.TrimSpace(*gameID) == "" {
			fmt.Fprintln(os.Stderr, "missing -game or -db")
			os.Exit(2)
		}
		path = filepath.Join(*dataDir, "games", *gameID, "index.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer db.Close()

	switch q {
	case "snapshots":
		querySnapshots(db, *limit)
	case "history":
		queryHistory(db, *civID, *limit)
	case "sitreps":
		querySitreps(db, *turn, *limit)
	default:
		fmt.Fprintln(os.Stderr, "unknown query:", q, "(want snapshots, history or sitreps)")
		os.Exit(2)
	}
}

func querySnapshots(db *sql.DB, limit int) {
	rows, err := db.Query(`SELECT turn,path,seed,civs,colonies,fleets,stations
		FROM snapshots ORDER BY turn DESC LIMIT ?`, limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "query:", err)
		os.Exit(1)
	}
	defer rows.Close()
	for rows.Next() {
		var turn, civs, colonies, fleets, stations int
		var path string
		var seed int64
		if err := rows.Scan(&turn, &path, &seed, &civs, &colonies, &fleets, &stations); err != nil {
			fmt.Fprintln(os.Stderr, "scan:", err)
			os.Exit(1)
		}
		fmt.Printf("turn=%d seed=%d civs=%d colonies=%d fleets=%d stations=%d path=%s\n",
			turn, seed, civs, colonies, fleets, stations, path)
	}
}

func queryHistory(db *sql.DB, civID, limit int) {
	rows, err := db.Query(`SELECT turn,civ_key,credits,maintenance,colonies,population,morale,
		research,credits_rank,colonies_rank
		FROM history WHERE (?=0 OR civ_id=?) ORDER BY turn DESC, civ_id LIMIT ?`,
		civID, civID, limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "query:", err)
		os.Exit(1)
	}
	defer rows.Close()
	for rows.Next() {
		var turn, credits, maintenance, colonies, population, morale, research, cRank, colRank int
		var key string
		if err := rows.Scan(&turn, &key, &credits, &maintenance, &colonies, &population, &morale, &research, &cRank, &colRank); err != nil {
			fmt.Fprintln(os.Stderr, "scan:", err)
			os.Exit(1)
		}
		fmt.Printf("turn=%d civ=%s credits=%d maint=%d colonies=%d pop=%d morale=%d research=%d ranks=%d/%d\n",
			turn, key, credits, maintenance, colonies, population, morale, research, cRank, colRank)
	}
}

func querySitreps(db *sql.DB, turn, limit int) {
	rows, err := db.Query(`SELECT turn,seq,owner,kind,priority,summary
		FROM sitreps WHERE (?=0 OR turn=?) ORDER BY turn DESC, seq LIMIT ?`,
		turn, turn, limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "query:", err)
		os.Exit(1)
	}
	defer rows.Close()
	for rows.Next() {
		var t, seq, owner, priority int
		var kind, summary string
		if err := rows.Scan(&t, &seq, &owner, &kind, &priority, &summary); err != nil {
			fmt.Fprintln(os.Stderr, "scan:", err)
			os.Exit(1)
		}
		fmt.Printf("turn=%d seq=%d owner=%d kind=%s priority=%d %s\n", t, seq, owner, kind, priority, summary)
	}
}
