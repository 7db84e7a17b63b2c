package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"courtmap/dashboard/pkg/dataset"
)

const (
	// DriverCGO selects github.com/mattn/go-sqlite3.
	DriverCGO = "sqlite3"
	// DriverPure selects modernc.org/sqlite, which builds without cgo.
	DriverPure = "sqlite"
)

// SQLiteConfig contains configuration for the SQLite snapshot store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is the database/sql driver name: "sqlite3" or "sqlite".
	// Default: "sqlite3"
	Driver string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// Keep is the number of newest snapshots retained after each save.
	// Default: 10
	Keep int
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/snapshots.db",
		Driver:       DriverCGO,
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
		Keep:         10,
	}
}

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (and if needed creates) the snapshot database.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Path == "" {
		return nil, NewStorageError("sqlite", "open", errors.New("db path cannot be empty"))
	}
	if config.Driver == "" {
		config.Driver = DriverCGO
	}
	if config.Driver != DriverCGO && config.Driver != DriverPure {
		return nil, NewStorageError("sqlite", "open", fmt.Errorf("unknown driver %q", config.Driver))
	}
	if config.MaxOpenConns <= 0 {
		config.MaxOpenConns = 4
	}
	if config.Keep <= 0 {
		config.Keep = 10
	}

	logger := slog.Default().With("component", "teams.store.sqlite")

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("snapshot store initialized",
		"path", config.Path,
		"driver", config.Driver,
		"wal_mode", config.WALMode,
		"keep", config.Keep,
	)

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Save inserts snap and prunes snapshots beyond the retention count.
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = time.Now()
	}

	columns, err := json.Marshal(snap.Columns)
	if err != nil {
		return NewStorageError("sqlite", "marshal", err)
	}
	records := []byte("[]")
	if len(snap.Records) > 0 {
		if records, err = json.Marshal(snap.Records); err != nil {
			return NewStorageError("sqlite", "marshal", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertSnapshot,
		snap.ID, snap.Source, snap.LoadedAt.UnixNano(), len(snap.Records), string(columns), string(records),
	); err != nil {
		return NewStorageError("sqlite", "save", err)
	}

	res, err := tx.ExecContext(ctx, pruneSnapshots, s.config.Keep)
	if err != nil {
		return NewStorageError("sqlite", "prune", err)
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "commit", err)
	}

	pruned, _ := res.RowsAffected()
	s.logger.Debug("snapshot saved",
		"snapshot_id", snap.ID,
		"source", snap.Source,
		"rows", len(snap.Records),
		"pruned", pruned,
	)
	return nil
}

// Latest returns the newest snapshot.
func (s *SQLiteStore) Latest(ctx context.Context) (*Snapshot, error) {
	var (
		snap     Snapshot
		loadedAt int64
		columns  string
		records  string
	)

	err := s.db.QueryRowContext(ctx, selectLatest).Scan(&snap.ID, &snap.Source, &loadedAt, &columns, &records)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "latest", err)
	}

	snap.LoadedAt = time.Unix(0, loadedAt)
	if err := json.Unmarshal([]byte(columns), &snap.Columns); err != nil {
		return nil, NewStorageError("sqlite", "unmarshal", err)
	}
	var ds dataset.Dataset
	if err := json.Unmarshal([]byte(records), &ds); err != nil {
		return nil, NewStorageError("sqlite", "unmarshal", err)
	}
	snap.Records = ds

	return &snap, nil
}

// Count returns the number of retained snapshots.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countSnapshots).Scan(&n); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return n, nil
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
