package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	persistlog "astrodominion.ai/internal/persistence/log"
	"astrodominion.ai/internal/persistence/snapshot"
)

// Offline inspector for a game's on-disk record: describes a snapshot and
// walks the compressed turn log, checking that turn numbers are contiguous.
func main() {
	var (
		snapPath = flag.String("snapshot", "", "path to .snap.zst (optional)")
		turnsDir = flag.String("turns", "", "dir containing turns-*.jsonl.zst (optional)")
		fromTurn = flag.Int("from_turn", 0, "start printing from turn (inclusive, optional)")
		toTurn   = flag.Int("to_turn", 0, "stop at turn (inclusive, optional)")
		verbose  = flag.Bool("v", false, "print per-turn standings")
	)
	flag.Parse()

	if *snapPath == "" && *turnsDir == "" {
		fmt.Fprintln(os.Stderr, "provide -snapshot and/or -turns")
		os.Exit(2)
	}

	if *snapPath != "" {
		snap, err := snapshot.ReadSnapshot(*snapPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read snapshot:", err)
			os.Exit(1)
		}
		fmt.Printf("snapshot v%d game=%s turn=%d seed=%d galaxy=%dx%d civs=%d colonies=%d fleets=%d stations=%d\n",
			snap.Header.Version, snap.Header.GameID, snap.Header.Turn, snap.Seed,
			snap.GalaxyWidth, snap.GalaxyHeight,
			len(snap.Civilizations), len(snap.Colonies), len(snap.Fleets), len(snap.Stations))
	}

	if *turnsDir == "" {
		return
	}

	files, err := listTurnFiles(*turnsDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list turns:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no turn log files found in", *turnsDir)
		os.Exit(1)
	}

	checked, failed := 0, 0
	lastTurn := 0
	for _, path := range files {
		err := scanFile(path, func(entry persistlog.TurnLogEntry) error {
			if *fromTurn != 0 && entry.Turn < *fromTurn {
				return nil
			}
			if *toTurn != 0 && entry.Turn > *toTurn {
				return nil
			}
			if lastTurn != 0 && entry.Turn != lastTurn+1 {
				return fmt.Errorf("turn gap: %d follows %d (file=%s)", entry.Turn, lastTurn, filepath.Base(path))
			}
			lastTurn = entry.Turn
			checked++
			if len(entry.PhaseErrors) > 0 {
				failed++
			}
			if *verbose {
				printTurn(entry)
			}
			return nil
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "replay:", err)
			os.Exit(1)
		}
	}
	fmt.Printf("turn log ok: %d turns, %d with phase errors (last turn %d)\n", checked, failed, lastTurn)
}

func printTurn(entry persistlog.TurnLogEntry) {
	fmt.Printf("turn %d  %dms  sitreps=%d\n", entry.Turn, entry.DurationMS, entry.Sitreps)
	for _, s := range entry.Standings {
		fmt.Printf("  civ %d: credits=%d colonies=%d population=%d\n", s.CivID, s.Credits, s.Colonies, s.Population)
	}
	for _, pe := range entry.PhaseErrors {
		fmt.Printf("  ERROR %s: %s\n", pe.Phase, pe.Error)
	}
}

func listTurnFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "turns-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

func scanFile(path string, fn func(persistlog.TurnLogEntry) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	for sc.Scan() {
		var entry persistlog.TurnLogEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return sc.Err()
}
