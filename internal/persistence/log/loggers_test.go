package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func readEntries(t *testing.T, path string) []TurnLogEntry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	var out []TurnLogEntry
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e TurnLogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}

func TestTurnLogger_WritesReadableJSONL(t *testing.T) {
	gameDir := t.TempDir()
	l := NewTurnLogger(gameDir)

	for turn := 1; turn <= 3; turn++ {
		err := l.WriteTurn(TurnLogEntry{
			Turn:       turn,
			StartedAt:  "2026-08-31T00:00:00Z",
			DurationMS: int64(10 * turn),
			Standings:  []StandingLine{{CivID: 1, Credits: 5000 + turn, Colonies: 2, Population: 900}},
		})
		if err != nil {
			t.Fatalf("WriteTurn: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(gameDir, "turns", "turns-*.jsonl.zst"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one turn log file, got %v (err %v)", files, err)
	}

	entries := readEntries(t, files[0])
	if len(entries) != 3 {
		t.Fatalf("entries: got %d want 3", len(entries))
	}
	for i, e := range entries {
		if e.Turn != i+1 {
			t.Fatalf("entry %d: turn %d want %d", i, e.Turn, i+1)
		}
	}
	if entries[2].Standings[0].Credits != 5003 {
		t.Fatalf("credits: got %d want 5003", entries[2].Standings[0].Credits)
	}
}

func TestCombatLogger_WritesUnderCombatDir(t *testing.T) {
	gameDir := t.TempDir()
	l := NewCombatLogger(gameDir)

	err := l.WriteCombat(CombatLogEntry{Turn: 4, Kind: "encounter", ID: "C-4-1", X: 3, Y: 5, Sides: 2, WaitedMS: 120})
	if err != nil {
		t.Fatalf("WriteCombat: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(gameDir, "combat", "combat-*.jsonl.zst"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one combat log file, got %v (err %v)", files, err)
	}
}
