package store

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the snapshot database schema.
const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    -- Unix nanoseconds; both drivers round-trip integers identically
    loaded_at INTEGER NOT NULL,
    row_count INTEGER NOT NULL,
    columns TEXT NOT NULL,
    records TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_loaded_at ON snapshots(loaded_at);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertSnapshot = `
INSERT INTO snapshots (id, source, loaded_at, row_count, columns, records)
VALUES (?, ?, ?, ?, ?, ?);
`

const selectLatest = `
SELECT id, source, loaded_at, columns, records
FROM snapshots
ORDER BY loaded_at DESC, rowid DESC
LIMIT 1;
`

const pruneSnapshots = `
DELETE FROM snapshots
WHERE id NOT IN (
    SELECT id FROM snapshots ORDER BY loaded_at DESC, rowid DESC LIMIT ?
);
`

const countSnapshots = `SELECT COUNT(*) FROM snapshots;`
