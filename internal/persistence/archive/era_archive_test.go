package archive

import (
	"os"
	"path/filepath"
	"testing"

	"astrodominion.ai/internal/persistence/snapshot"
)

func TestArchiveEraSnapshot_CopiesEraEndSnapshot(t *testing.T) {
	dir := t.TempDir()
	gameDir := filepath.Join(dir, "games", "game_1")
	if err := os.MkdirAll(gameDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// Create a dummy snapshot file.
	src := filepath.Join(gameDir, "snapshots", "100.snap.zst")
	if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
		t.Fatalf("mkdir snapshots: %v", err)
	}
	want := []byte("dummy")
	if err := os.WriteFile(src, want, 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{Version: 1, GameID: "game_1", Turn: 100},
		Seed:   42,
	}

	era, archivedPath, ok, err := ArchiveEraSnapshot(gameDir, src, snap, 100)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !ok {
		t.Fatalf("expected archived=true")
	}
	if era != 1 {
		t.Fatalf("era=%d want 1", era)
	}

	got, err := os.ReadFile(archivedPath)
	if err != nil {
		t.Fatalf("read archived: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("archived content mismatch: got=%q want=%q", string(got), string(want))
	}

	metaPath := filepath.Join(filepath.Dir(archivedPath), "meta.json")
	if _, err := os.Stat(metaPath); err != nil {
		t.Fatalf("expected meta.json to exist: %v", err)
	}
}

func TestArchiveEraSnapshot_SkipsOffBoundarySnapshots(t *testing.T) {
	snap := snapshot.SnapshotV1{Header: snapshot.Header{Version: 1, GameID: "game_1", Turn: 50}}

	_, _, ok, err := ArchiveEraSnapshot(t.TempDir(), "unused", snap, 100)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if ok {
		t.Fatal("expected archived=false for an off-boundary turn")
	}
}
