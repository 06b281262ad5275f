package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection holding the subnet catalog.
type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the catalog database under dataDir.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sherpa.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// sqlite tolerates few writers; keep the pool small
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	database := &DB{DB: db}
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database initialized", "path", dbPath)
	return database, nil
}

// NewMemoryDB opens an in-memory database. Used by tests.
func NewMemoryDB() (*DB, error) {
	db, err := sql.Open("sqlite3", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// a second connection would see a different empty database
	db.SetMaxOpenConns(1)

	database := &DB{DB: db}
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}

// migrate creates the necessary tables
func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS subnets (
			netuid INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			service_research REAL,
			intelligence_resource REAL,
			quality REAL,
			quadrant TEXT,
			notes TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			netuid INTEGER NOT NULL,
			answers TEXT NOT NULL, -- JSON map question ID -> answer
			ratings TEXT,          -- JSON map criterion ID -> rating, absent if quality was skipped
			results TEXT NOT NULL, -- JSON axis results
			quality REAL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (netuid) REFERENCES subnets(netuid)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_evaluations_netuid ON evaluations(netuid, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_subnets_quality ON subnets(quality DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

// GetPoolStats returns connection pool statistics.
func (db *DB) GetPoolStats() map[string]interface{} {
	stats := db.Stats()
	return map[string]interface{}{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration_ms": stats.WaitDuration.Milliseconds(),
	}
}
