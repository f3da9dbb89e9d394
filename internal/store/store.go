// Package store persists extracted transcriptions into a SQLite corpus
// database for downstream ASR preparation.
//
// Build modes:
//   - Default (CGO_ENABLED=0): Uses pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): Uses mattn/go-sqlite3
//
// Use Open() instead of sql.Open() to ensure the correct driver is used.
package store

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/czcorpus/eafkit/core/eaf"
)

// Annotation layer names as stored in the annotations table.
const (
	LayerOrthographic = "ort"
	LayerPhonetic     = "fon"
)

const schema = `
CREATE TABLE IF NOT EXISTS export_runs (
	run_id      TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	files       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS documents (
	doc_id      INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES export_runs(run_id),
	path        TEXT NOT NULL,
	source_hash TEXT NOT NULL,
	media_urls  TEXT,
	UNIQUE (run_id, path)
);
CREATE TABLE IF NOT EXISTS annotations (
	doc_id         INTEGER NOT NULL REFERENCES documents(doc_id),
	layer          TEXT NOT NULL,
	pos            INTEGER NOT NULL,
	annotation_id  TEXT NOT NULL,
	annotation_ref TEXT,
	time_slot_ref1 TEXT,
	time_slot_ref2 TEXT,
	speaker        TEXT NOT NULL,
	value          TEXT NOT NULL,
	PRIMARY KEY (doc_id, layer, annotation_id)
);
CREATE TABLE IF NOT EXISTS time_slots (
	doc_id       INTEGER NOT NULL REFERENCES documents(doc_id),
	pos          INTEGER NOT NULL,
	time_slot_id TEXT NOT NULL,
	time_value   INTEGER,
	PRIMARY KEY (doc_id, time_slot_id)
);
`

// DriverType returns a string identifying the underlying SQLite
// implementation: "purego" for modernc.org/sqlite, "cgo" for
// mattn/go-sqlite3.
func DriverType() string {
	return driverType
}

// Store is a SQLite-backed corpus database.
type Store struct {
	db *sql.DB

	// Strict makes duplicate annotation or time-slot ids within one
	// document fail the export instead of overwriting. Silent overwrite
	// matches the in-memory indexer's last-write-wins behavior but can
	// mask corpus errors.
	Strict bool
}

// Open opens (creating if needed) a corpus database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun records a new export run and returns its id.
func (s *Store) BeginRun() (string, error) {
	runID := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO export_runs (run_id, started_at) VALUES (?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("recording export run: %w", err)
	}
	return runID, nil
}

// FinishRun marks an export run finished with its file count.
func (s *Store) FinishRun(runID string, files int) error {
	_, err := s.db.Exec(
		`UPDATE export_runs SET finished_at = ?, files = ? WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339), files, runID,
	)
	if err != nil {
		return fmt.Errorf("finishing export run: %w", err)
	}
	return nil
}

// SourceHash returns the BLAKE3 hash of raw file content, hex encoded.
func SourceHash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SaveDocument writes one loaded transcription and all its extracted
// records under the given run. The raw bytes are hashed (BLAKE3) so the
// export can be traced back to exact source content. The whole document
// is written in one transaction: a failure leaves nothing behind.
func (s *Store) SaveDocument(runID, path string, raw []byte, doc *eaf.Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO documents (run_id, path, source_hash, media_urls) VALUES (?, ?, ?, ?)`,
		runID, path, SourceHash(raw), strings.Join(doc.MediaURLs, "\n"),
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	// Lax mode overwrites duplicates like the in-memory indexer does;
	// strict mode lets the primary key constraint fail the export.
	verb := "INSERT OR REPLACE"
	if s.Strict {
		verb = "INSERT"
	}
	insertAnnotation := verb + ` INTO annotations
		(doc_id, layer, pos, annotation_id, annotation_ref, time_slot_ref1, time_slot_ref2, speaker, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertSlot := verb + ` INTO time_slots
		(doc_id, pos, time_slot_id, time_value) VALUES (?, ?, ?, ?)`

	for _, layer := range []struct {
		name   string
		annots []eaf.Annotation
	}{
		{LayerOrthographic, doc.Orthographic},
		{LayerPhonetic, doc.Phonetic},
	} {
		for pos, a := range layer.annots {
			_, err := tx.Exec(insertAnnotation,
				docID, layer.name, pos, a.ID, a.Ref, a.TimeSlotRef1, a.TimeSlotRef2, a.Speaker, a.Value)
			if err != nil {
				return fmt.Errorf("saving %s annotation %q: %w", path, a.ID, err)
			}
		}
	}

	for pos, ts := range doc.TimeSlots {
		var value any
		if ms, ok := ts.Milliseconds(); ok {
			value = ms
		}
		if _, err := tx.Exec(insertSlot, docID, pos, ts.ID, value); err != nil {
			return fmt.Errorf("saving %s time slot %q: %w", path, ts.ID, err)
		}
	}

	return tx.Commit()
}

// CountAnnotations returns the number of stored annotations on one layer
// across all documents.
func (s *Store) CountAnnotations(layer string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM annotations WHERE layer = ?`, layer).Scan(&n)
	return n, err
}

// DocumentPaths returns the stored document paths for a run, in insertion
// order.
func (s *Store) DocumentPaths(runID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT path FROM documents WHERE run_id = ? ORDER BY doc_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
