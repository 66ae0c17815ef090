package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)
)

// SQLite driver names accepted by SQLiteConfig.Driver.
const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Driver is DriverModernc or DriverCgo.
	// Default: DriverModernc
	Driver string

	// Path is the database file path. ":memory:" keeps the database in
	// memory for the lifetime of the store.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) a run history database.
func NewSQLiteStore(config SQLiteConfig) (*SQLiteStore, error) {
	if config.Driver == "" {
		config.Driver = DriverModernc
	}
	if config.Driver != DriverModernc && config.Driver != DriverCgo {
		return nil, NewStorageError(config.Driver, "open", fmt.Errorf("unknown driver %q", config.Driver))
	}
	if config.Path == "" {
		return nil, NewStorageError(config.Driver, "open", errors.New("db path cannot be empty"))
	}
	if config.BusyTimeout == 0 {
		config.BusyTimeout = 5 * time.Second
	}

	logger := slog.Default().With("component", "history.sqlite", "driver", config.Driver)

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, NewStorageError(config.Driver, "open", err)
	}

	// SQLite only supports a single writer, and a ":memory:" database
	// exists per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("history store initialized", "path", config.Path)

	return s, nil
}

// initialize sets pragmas and creates the schema.
func (s *SQLiteStore) initialize() error {
	if s.config.Path != ":memory:" {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError(s.config.Driver, "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return NewStorageError(s.config.Driver, "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError(s.config.Driver, "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion, time.Now().UnixMilli()); err != nil {
		return NewStorageError(s.config.Driver, "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return NewStorageError(s.config.Driver, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError(s.config.Driver, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Record stores a finished run and its failures in one transaction.
func (s *SQLiteStore) Record(ctx context.Context, run *Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError(s.config.Driver, "record", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, files, failures, warnings) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(), run.Files, run.Failures, run.Warnings,
	)
	if err != nil {
		return NewStorageError(s.config.Driver, "record", err)
	}

	if len(run.Details) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO failures (run_id, path, line, col, message) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return NewStorageError(s.config.Driver, "record", err)
		}
		defer stmt.Close()

		for _, f := range run.Details {
			if _, err := stmt.ExecContext(ctx, run.ID, f.Path, f.Line, f.Column, f.Message); err != nil {
				return NewStorageError(s.config.Driver, "record", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError(s.config.Driver, "record", err)
	}
	return nil
}

// List returns the most recent runs first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, started_at, finished_at, files, failures, warnings FROM runs ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError(s.config.Driver, "list", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, NewStorageError(s.config.Driver, "list", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(s.config.Driver, "list", err)
	}
	return runs, nil
}

// Get returns one run with its failures.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, files, failures, warnings FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, NewStorageError(s.config.Driver, "get", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, line, col, message FROM failures WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, NewStorageError(s.config.Driver, "get", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Path, &f.Line, &f.Column, &f.Message); err != nil {
			return nil, NewStorageError(s.config.Driver, "get", err)
		}
		run.Details = append(run.Details, f)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(s.config.Driver, "get", err)
	}
	return run, nil
}

// Prune deletes runs that started before cutoff along with their failures.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	ms := cutoff.UnixMilli()
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM failures WHERE run_id IN (SELECT id FROM runs WHERE started_at < ?)`, ms); err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, ms)
	if err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}
	return count, nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError(s.config.Driver, "ping", err)
	}
	return nil
}

// Close releases resources held by the store.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError(s.config.Driver, "close", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run               Run
		started, finished int64
	)
	if err := row.Scan(&run.ID, &started, &finished, &run.Files, &run.Failures, &run.Warnings); err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(started)
	run.FinishedAt = time.UnixMilli(finished)
	return &run, nil
}
