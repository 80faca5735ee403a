package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists runs and per-trip rows to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis queries can read while a run is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at            INTEGER NOT NULL,
			finished_at           INTEGER,
			config                TEXT,
			earning_index         REAL,
			trips                 INTEGER,
			aborted_trips         INTEGER,
			hands_played          INTEGER,
			total_bet             REAL,
			total_won             REAL,
			winning_trips_pct     REAL,
			bankruptcy_ratio      REAL,
			completed_trips_ratio REAL,
			punter_failures       INTEGER,
			counter_failures      INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS trips (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL,
			trip_index   INTEGER NOT NULL,
			hands_played INTEGER,
			end_bankroll REAL,
			bankrupted   INTEGER,
			aborted      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trips_run ON trips(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) StartRun(configYAML string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(
		`INSERT INTO runs (started_at, config) VALUES (?, ?)`,
		time.Now().Unix(), configYAML,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRecorder) RecordTrip(rec *TripRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(
		`INSERT INTO trips (run_id, trip_index, hands_played, end_bankroll, bankrupted, aborted)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Index, rec.HandsPlayed, rec.EndBankroll, rec.Bankrupted, rec.Aborted,
	)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) FinishRun(runID int64, rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(
		`UPDATE runs SET finished_at = ?, earning_index = ?, trips = ?, aborted_trips = ?,
		 hands_played = ?, total_bet = ?, total_won = ?, winning_trips_pct = ?,
		 bankruptcy_ratio = ?, completed_trips_ratio = ?, punter_failures = ?, counter_failures = ?
		 WHERE id = ?`,
		time.Now().Unix(), rec.EarningIndex, rec.Trips, rec.AbortedTrips,
		rec.HandsPlayed, rec.TotalBet, rec.TotalWon, rec.WinningTripsPct,
		rec.BankruptcyRatio, rec.CompletedTripsRatio, rec.PunterFailures, rec.CounterFailures,
		runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
