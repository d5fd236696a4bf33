package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// one writer; pragmas are per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

const schemaSimulationRuns = `
CREATE TABLE IF NOT EXISTS simulation_runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    status TEXT NOT NULL,
    config TEXT NOT NULL,
    rise_limit_c REAL NOT NULL DEFAULT 0,
    max_temp_c REAL NOT NULL DEFAULT 0,
    loss_factor REAL NOT NULL DEFAULT 0,
    within_limit BOOLEAN NOT NULL DEFAULT 0,
    failed_mode TEXT,
    error TEXT
);
`

const indexRunsCreatedAt = `CREATE INDEX IF NOT EXISTS idx_simulation_runs_created_at ON simulation_runs (created_at);`

const schemaModeResults = `
CREATE TABLE IF NOT EXISTS mode_results (
    run_id TEXT NOT NULL REFERENCES simulation_runs (id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    mode TEXT NOT NULL,
    ambient_c REAL NOT NULL,
    equivalent_power_w REAL NOT NULL,
    heat_loss_power_w REAL NOT NULL,
    thermal_resistance_w_per_c REAL NOT NULL,
    time_constant_s REAL NOT NULL,
    asymptotic_rise_c REAL NOT NULL,
    peak_temp_c REAL NOT NULL,
    within_limit BOOLEAN NOT NULL,
    samples INTEGER NOT NULL,
    image_path TEXT NOT NULL DEFAULT '',
    curve TEXT,
    PRIMARY KEY (run_id, mode)
);
`

const schemaRunEvents = `
CREATE TABLE IF NOT EXISTS run_events (
    id TEXT PRIMARY KEY,
    run_id TEXT,
    occurred_at TEXT NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const indexEventsRunID = `CREATE INDEX IF NOT EXISTS idx_run_events_run_id ON run_events (run_id);`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	for i, stmt := range []string{
		schemaSimulationRuns,
		schemaModeResults,
		schemaRunEvents,
		schemaUsers,
		indexRunsCreatedAt,
		indexEventsRunID,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
