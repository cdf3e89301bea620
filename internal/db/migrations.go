package db

import (
	"database/sql"
	"fmt"
)

// Migration represents one schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the ordered list of all migrations. Fresh installs get the
// final shape from SchemaSQL; migrations exist for databases created before
// a change landed.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_custom_threshold_columns",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_srs_start_date",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_plan_start_page",
		Up:      migrationV3,
	},
}

// RunMigrations applies every pending migration in version order.
func RunMigrations(database *sql.DB) error {
	if _, err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := database.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.Version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.Version, err)
		}
		if applied > 0 {
			continue
		}

		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		if _, err := database.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// addColumnIfMissing tolerates re-runs against databases that already carry
// the column from SchemaSQL.
func addColumnIfMissing(database *sql.DB, table, column, definition string) error {
	rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = database.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

func migrationV1(database *sql.DB) error {
	for _, col := range []string{
		"custom_daily_threshold",
		"custom_weekly_threshold",
		"custom_fortnightly_threshold",
		"custom_monthly_threshold",
	} {
		if err := addColumnIfMissing(database, "hafizs_items", col, "INTEGER"); err != nil {
			return err
		}
	}
	return nil
}

func migrationV2(database *sql.DB) error {
	return addColumnIfMissing(database, "hafizs_items", "srs_start_date", "TEXT")
}

func migrationV3(database *sql.DB) error {
	return addColumnIfMissing(database, "plans", "start_page", "INTEGER NOT NULL DEFAULT 2")
}
