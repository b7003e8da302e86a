package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists fetch history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while the refresh task writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_snapshots (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			current_donations REAL NOT NULL,
			run_start         INTEGER,
			total_hours       INTEGER,
			cost_to_next_hour REAL,
			fallback          INTEGER NOT NULL DEFAULT 0,
			source            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_errors (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			kind      TEXT,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_errors_ts ON fetch_errors(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetch(snap *FetchSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO fetch_snapshots
		(timestamp, current_donations, run_start, total_hours, cost_to_next_hour, fallback, source)
		VALUES (?,?,?,?,?,?,?)`,
		ts.Unix(), snap.CurrentDonations, snap.RunStart.Unix(), snap.TotalHours,
		snap.CostToNextHour, boolToInt(snap.Fallback), snap.Source,
	)
	return err
}

func (r *SQLiteRecorder) RecordError(evt *ErrorEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO fetch_errors (timestamp, kind, message) VALUES (?,?,?)`,
		ts.Unix(), evt.Kind, evt.Message,
	)
	return err
}

func (r *SQLiteRecorder) RecentSnapshots(limit int) ([]FetchSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, current_donations, run_start, total_hours,
		cost_to_next_hour, fallback, source
		FROM fetch_snapshots ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []FetchSnapshot
	for rows.Next() {
		var (
			s            FetchSnapshot
			ts, runStart int64
			source       sql.NullString
		)
		if err := rows.Scan(&ts, &s.CurrentDonations, &runStart, &s.TotalHours,
			&s.CostToNextHour, &s.Fallback, &source); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.Timestamp = time.Unix(ts, 0)
		s.RunStart = time.Unix(runStart, 0)
		s.Source = source.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
