package app_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/qsrs/internal/adapters/sqlite"
	"github.com/example/qsrs/internal/app"
	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/db"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

// engine bundles every service over one in-memory store. Service tests run
// against the real SQLite adapters so scheduling scenarios exercise the same
// SQL the binary does.
type engine struct {
	conn     *sql.DB
	repos    secondary.Repositories
	hafizs   *app.HafizService
	revs     *app.RevisionService
	queues   *app.QueueService
	profiles *app.ProfileService
	schedule *app.ScheduleService
	stats    *app.StatsService
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
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
		if _, err := conn.Exec("INSERT INTO modes (code, name) VALUES (?, ?)", string(m.Code), m.Name); err != nil {
			t.Fatalf("failed to seed modes: %v", err)
		}
	}
	for page := 1; page <= 5; page++ {
		if _, err := conn.Exec("INSERT INTO pages (id, page_number, juz_number) VALUES (?, ?, 1)", page, page); err != nil {
			t.Fatalf("failed to seed pages: %v", err)
		}
		if _, err := conn.Exec("INSERT INTO items (page_id, surah_id, part_number, active) VALUES (?, 1, 1, 1)", page); err != nil {
			t.Fatalf("failed to seed items: %v", err)
		}
	}

	t.Cleanup(func() { conn.Close() })

	repos := sqlite.NewRepositories(conn)
	uow := sqlite.NewUnitOfWork(conn)

	return &engine{
		conn:     conn,
		repos:    repos,
		hafizs:   app.NewHafizService(repos, uow),
		revs:     app.NewRevisionService(repos, uow),
		queues:   app.NewQueueService(repos),
		profiles: app.NewProfileService(repos),
		schedule: app.NewScheduleService(uow),
		stats:    app.NewStatsService(repos, uow),
	}
}

// newHafiz creates a hafiz through the service (state rows + first plan) and
// pins its clock to the given date.
func (e *engine) newHafiz(t *testing.T, currentDate string) int64 {
	t.Helper()

	hafiz, err := e.hafizs.CreateHafiz(context.Background(), primary.CreateHafizRequest{Name: "Test"})
	if err != nil {
		t.Fatalf("CreateHafiz failed: %v", err)
	}
	if err := e.hafizs.UpdateHafiz(context.Background(), primary.UpdateHafizRequest{
		HafizID:     hafiz.ID,
		CurrentDate: currentDate,
	}); err != nil {
		t.Fatalf("UpdateHafiz failed: %v", err)
	}
	return hafiz.ID
}

// setItemState writes a state row directly for scenario setup.
func (e *engine) setItemState(t *testing.T, hafizID, itemID int64, mutate func(*secondary.HafizItemRecord)) {
	t.Helper()

	ctx := context.Background()
	row, err := e.repos.HafizItems.Get(ctx, hafizID, itemID)
	if err != nil {
		t.Fatalf("failed to load state row: %v", err)
	}
	mutate(row)
	if err := e.repos.HafizItems.Update(ctx, row); err != nil {
		t.Fatalf("failed to update state row: %v", err)
	}
}

// getItemState reads a state row for assertions.
func (e *engine) getItemState(t *testing.T, hafizID, itemID int64) *secondary.HafizItemRecord {
	t.Helper()

	row, err := e.repos.HafizItems.Get(context.Background(), hafizID, itemID)
	if err != nil {
		t.Fatalf("failed to load state row: %v", err)
	}
	return row
}

// memorize puts an item straight into Full Cycle with no schedule.
func (e *engine) memorize(t *testing.T, hafizID, itemID int64) {
	t.Helper()
	e.setItemState(t, hafizID, itemID, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = mode.FullCycle
	})
}
