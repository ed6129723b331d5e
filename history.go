/* ============================================================= *\
   history.go

   Optional run recorder: appends one row per completed Simulate call
   to a SQLite database, for studying many runs over time. Never
   required by Simulator or Graph — an external collaborator a caller
   wires in, the same relationship the loader has to its data files.

   Grounded on the teacher's SqliteReader/ReadSqlite (readers.go) for
   the database/sql + mattn/go-sqlite3 pattern; here used to write
   rather than read.
\* ============================================================= */

package bgpsim

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// RunSummary is one completed Simulate call, ready to persist.
type RunSummary struct {
	SourceASN    int
	ReachedCount int
	Caught       bool
	DetectorASN  int // 0 when not caught
	ValleyFree   bool
	HijackMode   bool
}

// History records run summaries to a SQLite-backed table.
type History struct {
	db *sql.DB
}

// NewSQLiteHistory opens (creating if absent) a SQLite database at
// path with a single "runs" table.
func NewSQLiteHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	source_asn     INTEGER NOT NULL,
	reached_count  INTEGER NOT NULL,
	caught         INTEGER NOT NULL,
	detector_asn   INTEGER NOT NULL,
	valley_free    INTEGER NOT NULL,
	hijack_mode    INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}

	return &History{db: db}, nil
}

// Record appends one row for summary.
func (h *History) Record(summary RunSummary) error {
	const insert = `
INSERT INTO runs (source_asn, reached_count, caught, detector_asn, valley_free, hijack_mode)
VALUES (?, ?, ?, ?, ?, ?)`

	_, err := h.db.Exec(insert,
		summary.SourceASN,
		summary.ReachedCount,
		boolToInt(summary.Caught),
		summary.DetectorASN,
		boolToInt(summary.ValleyFree),
		boolToInt(summary.HijackMode),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
