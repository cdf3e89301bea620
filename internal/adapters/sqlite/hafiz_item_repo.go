package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/secondary"
)

const hafizItemColumns = `id, hafiz_id, item_id, page_number, mode_code, memorized,
	last_review, next_review, last_interval, next_interval,
	good_streak, bad_streak, good_count, bad_count, score, count,
	custom_daily_threshold, custom_weekly_threshold, custom_fortnightly_threshold, custom_monthly_threshold,
	srs_start_date`

// HafizItemRepository implements secondary.HafizItemRepository with SQLite.
type HafizItemRepository struct {
	db DBTX
}

// NewHafizItemRepository creates a new SQLite hafiz-item state repository.
func NewHafizItemRepository(db DBTX) *HafizItemRepository {
	return &HafizItemRepository{db: db}
}

func scanHafizItem(scan func(dest ...any) error) (*secondary.HafizItemRecord, error) {
	var (
		modeCode               sql.NullString
		lastReview, nextReview sql.NullString
		lastInt, nextInt       sql.NullInt64
		daily, weekly          sql.NullInt64
		fortnightly, monthly   sql.NullInt64
		srsStart               sql.NullString
	)

	record := &secondary.HafizItemRecord{}
	err := scan(
		&record.ID, &record.HafizID, &record.ItemID, &record.PageNumber, &modeCode, &record.Memorized,
		&lastReview, &nextReview, &lastInt, &nextInt,
		&record.GoodStreak, &record.BadStreak, &record.GoodCount, &record.BadCount, &record.Score, &record.Count,
		&daily, &weekly, &fortnightly, &monthly,
		&srsStart,
	)
	if err != nil {
		return nil, err
	}

	record.Mode = mode.Code(modeCode.String)
	record.LastReview = lastReview.String
	record.NextReview = nextReview.String
	record.LastInterval = intPtr(lastInt)
	record.NextInterval = intPtr(nextInt)
	record.CustomDailyThreshold = intPtr(daily)
	record.CustomWeeklyThreshold = intPtr(weekly)
	record.CustomFortnightlyThreshold = intPtr(fortnightly)
	record.CustomMonthlyThreshold = intPtr(monthly)
	record.SRSStartDate = srsStart.String

	return record, nil
}

// Create persists a new state row and fills in its generated ID.
func (r *HafizItemRepository) Create(ctx context.Context, row *secondary.HafizItemRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO hafizs_items (hafiz_id, item_id, page_number, mode_code, memorized,
			last_review, next_review, last_interval, next_interval,
			good_streak, bad_streak, good_count, bad_count, score, count,
			custom_daily_threshold, custom_weekly_threshold, custom_fortnightly_threshold, custom_monthly_threshold,
			srs_start_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.HafizID, row.ItemID, row.PageNumber, nullString(string(row.Mode)), row.Memorized,
		nullString(row.LastReview), nullString(row.NextReview), nullInt(row.LastInterval), nullInt(row.NextInterval),
		row.GoodStreak, row.BadStreak, row.GoodCount, row.BadCount, row.Score, row.Count,
		nullInt(row.CustomDailyThreshold), nullInt(row.CustomWeeklyThreshold),
		nullInt(row.CustomFortnightlyThreshold), nullInt(row.CustomMonthlyThreshold),
		nullString(row.SRSStartDate),
	)
	if err != nil {
		return fmt.Errorf("failed to create hafiz item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read hafiz item id: %w", err)
	}
	row.ID = id

	return nil
}

// Get retrieves the state row for one (hafiz, item) pair.
func (r *HafizItemRepository) Get(ctx context.Context, hafizID, itemID int64) (*secondary.HafizItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+hafizItemColumns+" FROM hafizs_items WHERE hafiz_id = ? AND item_id = ?",
		hafizID, itemID,
	)

	record, err := scanHafizItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("hafiz %d has no state for item %d", hafizID, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hafiz item: %w", err)
	}

	return record, nil
}

// ListByHafiz retrieves all state rows of a hafiz in item order.
func (r *HafizItemRepository) ListByHafiz(ctx context.Context, hafizID int64) ([]*secondary.HafizItemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+hafizItemColumns+" FROM hafizs_items WHERE hafiz_id = ? ORDER BY item_id",
		hafizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list hafiz items: %w", err)
	}
	defer rows.Close()

	var records []*secondary.HafizItemRecord
	for rows.Next() {
		record, err := scanHafizItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hafiz item: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Update updates an existing state row in full.
func (r *HafizItemRepository) Update(ctx context.Context, row *secondary.HafizItemRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE hafizs_items SET mode_code = ?, memorized = ?,
			last_review = ?, next_review = ?, last_interval = ?, next_interval = ?,
			good_streak = ?, bad_streak = ?, good_count = ?, bad_count = ?, score = ?, count = ?,
			custom_daily_threshold = ?, custom_weekly_threshold = ?,
			custom_fortnightly_threshold = ?, custom_monthly_threshold = ?,
			srs_start_date = ?
		 WHERE id = ?`,
		nullString(string(row.Mode)), row.Memorized,
		nullString(row.LastReview), nullString(row.NextReview), nullInt(row.LastInterval), nullInt(row.NextInterval),
		row.GoodStreak, row.BadStreak, row.GoodCount, row.BadCount, row.Score, row.Count,
		nullInt(row.CustomDailyThreshold), nullInt(row.CustomWeeklyThreshold),
		nullInt(row.CustomFortnightlyThreshold), nullInt(row.CustomMonthlyThreshold),
		nullString(row.SRSStartDate),
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hafiz item: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("hafiz item %d not found", row.ID)
	}

	return nil
}

// MissingItemIDs returns ids of active catalog items with no state row for
// the hafiz yet.
func (r *HafizItemRepository) MissingItemIDs(ctx context.Context, hafizID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.id FROM items i
		 WHERE i.active = 1
		   AND NOT EXISTS (SELECT 1 FROM hafizs_items hi WHERE hi.hafiz_id = ? AND hi.item_id = i.id)
		 ORDER BY i.id`,
		hafizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find missing items: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan item id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Ensure HafizItemRepository implements the interface
var _ secondary.HafizItemRepository = (*HafizItemRepository)(nil)
