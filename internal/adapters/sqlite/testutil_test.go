package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/qsrs/internal/adapters/sqlite"
	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/db"
	"github.com/example/qsrs/internal/ports/secondary"
)

// setupTestDB opens an in-memory database built from the authoritative schema
// and seeds a small catalog: one surah, ten pages, one item per page, plus the
// mode registry.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Every pooled connection would get its own in-memory database.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := conn.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	if _, err := conn.Exec("INSERT INTO surahs (id, name) VALUES (1, 'Al-Fatihah')"); err != nil {
		t.Fatalf("failed to seed surahs: %v", err)
	}

	for _, m := range mode.All() {
		if _, err := conn.Exec(
			"INSERT INTO modes (code, name, icon) VALUES (?, ?, ?)",
			string(m.Code), m.Name, m.Icon,
		); err != nil {
			t.Fatalf("failed to seed modes: %v", err)
		}
	}

	for page := 1; page <= 10; page++ {
		if _, err := conn.Exec(
			"INSERT INTO pages (id, page_number, juz_number) VALUES (?, ?, 1)", page, page,
		); err != nil {
			t.Fatalf("failed to seed pages: %v", err)
		}
		if _, err := conn.Exec(
			"INSERT INTO items (page_id, surah_id, part_number, active) VALUES (?, 1, 1, 1)", page,
		); err != nil {
			t.Fatalf("failed to seed items: %v", err)
		}
	}

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

// createTestHafiz inserts a hafiz with an initialised clock and returns its id.
func createTestHafiz(t *testing.T, conn *sql.DB, name, currentDate string) int64 {
	t.Helper()

	repo := sqlite.NewHafizRepository(conn)
	hafiz := &secondary.HafizRecord{Name: name, DailyCapacity: 20, CurrentDate: currentDate}
	if err := repo.Create(context.Background(), hafiz); err != nil {
		t.Fatalf("failed to create test hafiz: %v", err)
	}
	return hafiz.ID
}
