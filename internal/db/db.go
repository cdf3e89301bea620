// Package db owns the SQLite connection, the authoritative schema, the
// migration runner, and the catalog seeders.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

var dbInitialized bool

// HomeDir returns the qsrs dot-directory, honouring the QSRS_HOME override.
func HomeDir() (string, error) {
	if dir := os.Getenv("QSRS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".qsrs"), nil
}

// GetDB returns the database connection, initializing schema and seed data on
// first use.
func GetDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dir, "qsrs.db")
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if !dbInitialized {
		dbInitialized = true
		if err := InitSchema(); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return db, nil
}

// Close closes the database connection.
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// GetDBPath returns the path to the database file.
func GetDBPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "qsrs.db"), nil
}

// InitSchema creates missing tables and applies pending migrations.
func InitSchema() error {
	if db == nil {
		return fmt.Errorf("database not open")
	}
	if _, err := db.Exec(GetSchemaSQL()); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Backup writes a flushed copy of the store to path. VACUUM INTO checkpoints
// any write-ahead log first, so the copy is a consistent point-in-time image.
// Restore is atomic file replacement of the live database.
func Backup(database *sql.DB, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("backup target %s already exists", path)
	}
	if _, err := database.Exec("VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}
	return nil
}
