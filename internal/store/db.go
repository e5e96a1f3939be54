// Package store reads and writes databases in the Orchestrator's SQLite
// schema. It backs the offline --db mode and `trustview export`.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"trustview/internal/logging"
)

// DefaultListLimit matches the Orchestrator's /intents page size.
const DefaultListLimit = 50

const schema = `
CREATE TABLE IF NOT EXISTS intents (
	id TEXT PRIMARY KEY,
	status TEXT,
	created_at INTEGER,
	message TEXT,
	raw_intent TEXT
);
CREATE TABLE IF NOT EXISTS intent_steps (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	intent_id TEXT,
	step_index INTEGER,
	action TEXT,
	tx_hash TEXT,
	status TEXT,
	error_msg TEXT,
	FOREIGN KEY(intent_id) REFERENCES intents(id)
);
CREATE INDEX IF NOT EXISTS idx_intent_steps_intent ON intent_steps(intent_id, step_index);
`

// DB is a handle on an Orchestrator database.
type DB struct {
	db       *sql.DB
	path     string
	readOnly bool
	limit    int
}

// ErrNoDatabase is returned by OpenReadOnly when the file does not exist.
var ErrNoDatabase = errors.New("database file does not exist")

// OpenReadOnly opens an existing Orchestrator database without creating
// or migrating anything.
func OpenReadOnly(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, path)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	return open(path, "file:"+filepath.ToSlash(path)+"?mode=ro", true)
}

// Create opens path for writing, creating the file and schema if needed.
func Create(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	d, err := open(path, path, false)
	if err != nil {
		return nil, err
	}
	if _, err := d.db.Exec(schema); err != nil {
		d.db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return d, nil
}

func open(path, dsn string, readOnly bool) (*DB, error) {
	timer := logging.StartTimer(logging.CategoryStore, "open "+path)
	defer timer.Stop()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.Get(logging.CategoryStore).Debug("Failed to set sqlite busy_timeout: %v", err)
	}

	logging.Store("Opened %s (read-only=%v)", path, readOnly)
	return &DB{db: db, path: path, readOnly: readOnly, limit: DefaultListLimit}, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// SetListLimit changes how many intents ListIntents returns.
func (d *DB) SetListLimit(n int) {
	if n > 0 {
		d.limit = n
	}
}

// Close releases the connection.
func (d *DB) Close() error {
	return d.db.Close()
}
