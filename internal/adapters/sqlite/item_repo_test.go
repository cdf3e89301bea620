package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/qsrs/internal/adapters/sqlite"
)

func TestItemRepository_GetByID(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewItemRepository(conn)
	ctx := context.Background()

	item, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if item.PageNumber != 1 {
		t.Errorf("expected page 1, got %d", item.PageNumber)
	}
	if item.SurahName != "Al-Fatihah" {
		t.Errorf("expected surah Al-Fatihah, got %s", item.SurahName)
	}
	if item.JuzNumber != 1 {
		t.Errorf("expected juz 1, got %d", item.JuzNumber)
	}
}

func TestItemRepository_GetByID_NotFound(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewItemRepository(conn)

	if _, err := repo.GetByID(context.Background(), 999); err == nil {
		t.Error("expected error for non-existent item")
	}
}

func TestItemRepository_ListActive_SkipsInactive(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewItemRepository(conn)
	ctx := context.Background()

	if _, err := conn.Exec("UPDATE items SET active = 0 WHERE id = 5"); err != nil {
		t.Fatalf("failed to deactivate item: %v", err)
	}

	items, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(items) != 9 {
		t.Errorf("expected 9 active items, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == 5 {
			t.Error("inactive item returned by ListActive")
		}
	}
}

func TestItemRepository_ItemsOnPage(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewItemRepository(conn)
	ctx := context.Background()

	// Split page 3 into two parts.
	if _, err := conn.Exec("INSERT INTO items (page_id, surah_id, part_number, active) VALUES (3, 1, 2, 1)"); err != nil {
		t.Fatalf("failed to insert split part: %v", err)
	}

	items, err := repo.ItemsOnPage(ctx, 3)
	if err != nil {
		t.Fatalf("ItemsOnPage failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 parts on page 3, got %d", len(items))
	}
	if items[0].PartNumber != 1 || items[1].PartNumber != 2 {
		t.Errorf("expected parts in order, got %d then %d", items[0].PartNumber, items[1].PartNumber)
	}
}

func TestItemRepository_NextActiveAfter(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewItemRepository(conn)
	ctx := context.Background()

	if _, err := conn.Exec("UPDATE items SET active = 0 WHERE id = 4"); err != nil {
		t.Fatalf("failed to deactivate item: %v", err)
	}

	next, err := repo.NextActiveAfter(ctx, 3)
	if err != nil {
		t.Fatalf("NextActiveAfter failed: %v", err)
	}
	if next == nil || next.ID != 5 {
		t.Fatalf("expected item 5 (skipping inactive 4), got %+v", next)
	}

	last, err := repo.NextActiveAfter(ctx, 10)
	if err != nil {
		t.Fatalf("NextActiveAfter failed: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil past the last item, got %+v", last)
	}
}

func TestItemRepository_CountPageParts(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewItemRepository(conn)
	ctx := context.Background()

	if _, err := conn.Exec("INSERT INTO items (page_id, surah_id, part_number, active) VALUES (2, 1, 2, 1)"); err != nil {
		t.Fatalf("failed to insert split part: %v", err)
	}

	count, err := repo.CountPageParts(ctx, 2)
	if err != nil {
		t.Fatalf("CountPageParts failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 parts, got %d", count)
	}

	count, err = repo.CountPageParts(ctx, 1)
	if err != nil {
		t.Fatalf("CountPageParts failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 part, got %d", count)
	}
}
