package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gotoolly/sitekit/internal/model"
)

// dbFileName is the ledger file under the data directory.
const dbFileName = "sitekit.db"

// RunDB provides SQLite-based storage for run summaries.
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended; the history
	// command can read while a run is still writing.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunRecord is one stored run, as returned by ListRuns.
type RunRecord struct {
	ID        int64
	Tool      string
	Root      string
	StartedAt time.Time
	Duration  time.Duration
	Created   int
	Modified  int
	Skipped   int
	Unchanged int
}

// Open opens or creates the ledger database in dbDir.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("run ledger not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check ledger path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open run ledger: %w", err)
	}

	// SQLite supports one writer; keep the pool at a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close() //nolint:errcheck // Best effort cleanup
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		tool        TEXT NOT NULL,
		root        TEXT NOT NULL,
		started_at  TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		created     INTEGER NOT NULL,
		modified    INTEGER NOT NULL,
		skipped     INTEGER NOT NULL,
		unchanged   INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS run_files (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		path   TEXT NOT NULL,
		action TEXT NOT NULL,
		backup TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_runs_tool ON runs(tool);
	CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id);
	`
	_, err := rdb.db.Exec(schema)
	return err
}

// SaveRun stores a run summary and its per-file actions.
func (rdb *RunDB) SaveRun(ctx context.Context, summary *model.RunSummary) error {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // No-op after commit
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (tool, root, started_at, duration_ms, created, modified, skipped, unchanged)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.Tool,
		summary.Root,
		summary.StartedAt.UTC().Format(time.RFC3339),
		summary.Duration.Milliseconds(),
		summary.Created(),
		summary.Modified(),
		summary.Skipped(),
		summary.Unchanged(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, r := range summary.Results {
		if r.Action == model.ActionUnchanged {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, path, action, backup) VALUES (?, ?, ?, ?)`,
			runID, r.Path, r.Action.String(), r.Backup,
		); err != nil {
			return fmt.Errorf("insert run file %s: %w", r.Path, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns stored runs, newest first. A non-empty tool filters by
// tool name; limit bounds the result (0 means a sensible default of 20).
func (rdb *RunDB) ListRuns(ctx context.Context, tool string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, tool, root, started_at, duration_ms, created, modified, skipped, unchanged
	          FROM runs`
	args := []any{}
	if tool != "" {
		query += ` WHERE tool = ?`
		args = append(args, tool)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec        RunRecord
			started    string
			durationMS int64
		)
		if err := rows.Scan(&rec.ID, &rec.Tool, &rec.Root, &started, &durationMS,
			&rec.Created, &rec.Modified, &rec.Skipped, &rec.Unchanged); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, started); err == nil {
			rec.StartedAt = ts
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListRunFiles returns the per-file actions of one run.
func (rdb *RunDB) ListRunFiles(ctx context.Context, runID int64) ([]model.FileResult, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT path, action, backup FROM run_files WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var out []model.FileResult
	for rows.Next() {
		var (
			r      model.FileResult
			action string
		)
		if err := rows.Scan(&r.Path, &action, &r.Backup); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		r.Action = model.ParseAction(action)
		out = append(out, r)
	}
	return out, rows.Err()
}
