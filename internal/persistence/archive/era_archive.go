package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"astrodominion.ai/internal/persistence/snapshot"
)

type EraArchiveMeta struct {
	Era       int    `json:"era"`
	EndTurn   int    `json:"end_turn"`
	Seed      int64  `json:"seed"`
	Snapshot  string `json:"snapshot"`
	CreatedAt string `json:"created_at"`
	EraTurns  int    `json:"era_turns"`
}

// ArchiveEraSnapshot copies an era-end snapshot into `gameDir/archives/era_<NNN>/`.
// Eras close every eraTurns turns; snapshots taken off an era boundary are
// skipped. It returns (era, archivedPath, archived=true) when the snapshot
// closes an era.
func ArchiveEraSnapshot(gameDir, snapshotPath string, snap snapshot.SnapshotV1, eraTurns int) (era int, archivedPath string, archived bool, err error) {
	if eraTurns <= 0 {
		return 0, "", false, nil
	}
	if snap.Header.Turn <= 0 || snap.Header.Turn%eraTurns != 0 {
		return 0, "", false, nil
	}
	era = snap.Header.Turn / eraTurns

	archiveDir := filepath.Join(gameDir, "archives", fmt.Sprintf("era_%03d", era))
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return 0, "", false, err
	}

	dst := filepath.Join(archiveDir, filepath.Base(snapshotPath))
	if err := copyFile(snapshotPath, dst); err != nil {
		return 0, "", false, err
	}

	meta := EraArchiveMeta{
		Era:       era,
		EndTurn:   snap.Header.Turn,
		Seed:      snap.Seed,
		Snapshot:  filepath.Base(dst),
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		EraTurns:  eraTurns,
	}
	if b, err := json.MarshalIndent(meta, "", "  "); err == nil {
		_ = os.WriteFile(filepath.Join(archiveDir, "meta.json"), b, 0o644)
	}

	return era, dst, true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
