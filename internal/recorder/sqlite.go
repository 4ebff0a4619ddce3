package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
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

	// WAL mode so ad hoc readers do not block the monitor's writes.
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
		`CREATE TABLE IF NOT EXISTS instrument_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			market         TEXT,
			status         TEXT,
			error          TEXT,
			daily_bars     INTEGER,
			weekly_bars    INTEGER,
			last_close     REAL,
			last_daily_lp  REAL,
			last_weekly_lp REAL,
			csv_path       TEXT,
			png_path       TEXT,
			duration_ms    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_instrument_ts ON instrument_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_instrument_symbol ON instrument_runs(symbol)`,

		`CREATE TABLE IF NOT EXISTS batch_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			total       INTEGER,
			succeeded   INTEGER,
			failed      INTEGER,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_batch_ts ON batch_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordInstrumentRun(run *InstrumentRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO instrument_runs
		(timestamp, symbol, market, status, error,
		 daily_bars, weekly_bars, last_close, last_daily_lp, last_weekly_lp,
		 csv_path, png_path, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.Symbol, string(run.Market), run.Status, run.Error,
		run.DailyBars, run.WeeklyBars, run.LastClose, run.LastDailyLP, run.LastWeeklyLP,
		run.CSVPath, run.PNGPath, run.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) RecordBatchRun(run *BatchRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO batch_runs
		(timestamp, total, succeeded, failed, duration_ms)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), run.Total, run.Succeeded, run.Failed,
		run.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
