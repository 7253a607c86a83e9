package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

type JSONLZstdWriter struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewJSONLZstdWriter(baseDir, prefix string) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		baseDir: baseDir,
		prefix:  prefix,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := time.Now().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *JSONLZstdWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	dir := filepath.Dir(w.pathForHour(hour))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	w.curHour = hour
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err1
}

func (w *JSONLZstdWriter) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}

// TurnLogEntry is one turn's compressed audit record: timings, phase errors
// and the end-of-turn standings.
type TurnLogEntry struct {
	Turn       int    `json:"turn"`
	StartedAt  string `json:"started_at"`
	DurationMS int64  `json:"duration_ms"`

	PhaseErrors []PhaseError   `json:"phase_errors,omitempty"`
	Standings   []StandingLine `json:"standings,omitempty"`
	Sitreps     int            `json:"sitreps,omitempty"`
}

type PhaseError struct {
	Phase string `json:"phase"`
	Error string `json:"error"`
}

type StandingLine struct {
	CivID      int `json:"civ_id"`
	Credits    int `json:"credits"`
	Colonies   int `json:"colonies"`
	Population int `json:"population"`
}

// TurnLogger writes one JSONL entry per completed turn (compressed).
type TurnLogger struct{ w *JSONLZstdWriter }

func NewTurnLogger(gameDir string) *TurnLogger {
	return &TurnLogger{w: NewJSONLZstdWriter(filepath.Join(gameDir, "turns"), "turns")}
}

func (l *TurnLogger) WriteTurn(v TurnLogEntry) error { return l.w.Write(v) }
func (l *TurnLogger) Close() error                   { return l.w.Close() }

// CombatLogEntry records one externally resolved encounter or invasion.
type CombatLogEntry struct {
	Turn     int    `json:"turn"`
	Kind     string `json:"kind"` // "encounter" or "invasion"
	ID       string `json:"id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Sides    int    `json:"sides"`
	WaitedMS int64  `json:"waited_ms"`
}

// CombatLogger writes combat rendezvous records (compressed).
type CombatLogger struct{ w *JSONLZstdWriter }

func NewCombatLogger(gameDir string) *CombatLogger {
	return &CombatLogger{w: NewJSONLZstdWriter(filepath.Join(gameDir, "combat"), "combat")}
}

func (l *CombatLogger) WriteCombat(v CombatLogEntry) error { return l.w.Write(v) }
func (l *CombatLogger) Close() error                       { return l.w.Close() }
