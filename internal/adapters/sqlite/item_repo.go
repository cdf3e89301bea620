package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/qsrs/internal/ports/secondary"
)

const itemColumns = `i.id, i.page_id, i.surah_id, i.part_number, i.active, i.description, i.start_text,
	p.page_number, p.juz_number, s.name
	FROM items i
	JOIN pages p ON p.id = i.page_id
	JOIN surahs s ON s.id = i.surah_id`

// ItemRepository implements secondary.ItemRepository with SQLite.
type ItemRepository struct {
	db DBTX
}

// NewItemRepository creates a new SQLite item repository.
func NewItemRepository(db DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

func scanItem(scan func(dest ...any) error) (*secondary.ItemRecord, error) {
	var desc, startText sql.NullString

	record := &secondary.ItemRecord{}
	err := scan(
		&record.ID, &record.PageID, &record.SurahID, &record.PartNumber, &record.Active,
		&desc, &startText, &record.PageNumber, &record.JuzNumber, &record.SurahName,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.StartText = startText.String

	return record, nil
}

// GetByID retrieves one catalog item with its page/surah/juz context.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*secondary.ItemRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+itemColumns+" WHERE i.id = ?", id)

	record, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return record, nil
}

// ListActive retrieves every active item in id order.
func (r *ItemRepository) ListActive(ctx context.Context) ([]*secondary.ItemRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+itemColumns+" WHERE i.active = 1 ORDER BY i.id")
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*secondary.ItemRecord
	for rows.Next() {
		record, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, record)
	}

	return items, rows.Err()
}

// ItemsOnPage retrieves the active items of one mushaf page in part order.
func (r *ItemRepository) ItemsOnPage(ctx context.Context, pageNumber int) ([]*secondary.ItemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" WHERE p.page_number = ? AND i.active = 1 ORDER BY i.part_number",
		pageNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list page items: %w", err)
	}
	defer rows.Close()

	var items []*secondary.ItemRecord
	for rows.Next() {
		record, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, record)
	}

	return items, rows.Err()
}

// NextActiveAfter retrieves the first active item with a larger id, or nil
// when id is the last.
func (r *ItemRepository) NextActiveAfter(ctx context.Context, id int64) (*secondary.ItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" WHERE i.id > ? AND i.active = 1 ORDER BY i.id LIMIT 1",
		id,
	)

	record, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next item: %w", err)
	}

	return record, nil
}

// CountPageParts returns how many active items share a page.
func (r *ItemRepository) CountPageParts(ctx context.Context, pageID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM items WHERE page_id = ? AND active = 1",
		pageID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count page parts: %w", err)
	}

	return count, nil
}

// Ensure ItemRepository implements the interface
var _ secondary.ItemRepository = (*ItemRepository)(nil)
