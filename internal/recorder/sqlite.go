package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"MondayRange/internal/model"
)

// ErrEmptySnapshot is returned when a snapshot carries no result.
var ErrEmptySnapshot = errors.New("snapshot has no result")

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id          TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			source          TEXT,
			candle_count    INTEGER,
			total_mondays   INTEGER,
			high_broken     INTEGER,
			low_broken      INTEGER,
			both_broken     INTEGER,
			neither_broken  INTEGER,
			p_high          REAL,
			p_low           REAL,
			p_either        REAL,
			avg_high_day    REAL,
			avg_low_day     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS week_outcomes (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          TEXT NOT NULL REFERENCES analysis_runs(run_id),
			iso_year        INTEGER NOT NULL,
			iso_week        INTEGER NOT NULL,
			monday_date     TEXT NOT NULL,
			monday_high     REAL,
			monday_low      REAL,
			high_break_day  INTEGER,
			low_break_day   INTEGER,
			category        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_run ON week_outcomes(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run summary and every week outcome in one transaction.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	if snap == nil || snap.Result == nil {
		return ErrEmptySnapshot
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	res := snap.Result
	agg := res.Aggregate
	p := res.Probabilities
	id := snap.RunID.String()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO analysis_runs
		(run_id, timestamp, source, candle_count, total_mondays,
		 high_broken, low_broken, both_broken, neither_broken,
		 p_high, p_low, p_either, avg_high_day, avg_low_day)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, res.GeneratedAt.Unix(), snap.Source, res.CandleCount, agg.TotalMondays,
		agg.HighBrokenCount, agg.LowBrokenCount, agg.BothBrokenCount, agg.NeitherBrokenCount,
		p.HighBreak, p.LowBreak, p.EitherBreak, p.AvgHighBreakDay, p.AvgLowBreakDay,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO week_outcomes
		(run_id, iso_year, iso_week, monday_date, monday_high, monday_low,
		 high_break_day, low_break_day, category)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare outcome insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range res.Outcomes {
		if _, err := stmt.Exec(
			id, o.Key.Year, o.Key.Week, o.MondayDate.Format(model.DateLayout),
			o.MondayHigh, o.MondayLow,
			int(o.FirstHighBreakDay), int(o.FirstLowBreakDay), o.Category().String(),
		); err != nil {
			return fmt.Errorf("insert outcome %s: %w", o.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.log.Debug().Str("run_id", id).Int("weeks", len(res.Outcomes)).Msg("run recorded")
	return nil
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
