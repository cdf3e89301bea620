package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/secondary"
)

const revisionColumns = "id, hafiz_id, item_id, mode_code, revision_date, rating, plan_id, next_interval"

// RevisionRepository implements secondary.RevisionRepository with SQLite.
type RevisionRepository struct {
	db DBTX
}

// NewRevisionRepository creates a new SQLite revision repository.
func NewRevisionRepository(db DBTX) *RevisionRepository {
	return &RevisionRepository{db: db}
}

func scanRevision(scan func(dest ...any) error) (*secondary.RevisionRecord, error) {
	var (
		modeCode     string
		planID       sql.NullInt64
		nextInterval sql.NullInt64
	)

	record := &secondary.RevisionRecord{}
	err := scan(
		&record.ID, &record.HafizID, &record.ItemID, &modeCode,
		&record.Date, &record.Rating, &planID, &nextInterval,
	)
	if err != nil {
		return nil, err
	}

	record.Mode = mode.Code(modeCode)
	record.PlanID = int64Ptr(planID)
	record.NextInterval = intPtr(nextInterval)

	return record, nil
}

// Create appends a revision and fills in its generated ID. The store's
// uniqueness constraint on (hafiz, item, date, mode) surfaces here as an
// error; callers pre-check with Exists for a friendlier message.
func (r *RevisionRepository) Create(ctx context.Context, rev *secondary.RevisionRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO revisions (hafiz_id, item_id, mode_code, revision_date, rating, plan_id, next_interval)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rev.HafizID, rev.ItemID, string(rev.Mode), rev.Date, rev.Rating,
		nullInt64(rev.PlanID), nullInt(rev.NextInterval),
	)
	if err != nil {
		return fmt.Errorf("failed to create revision: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read revision id: %w", err)
	}
	rev.ID = id

	return nil
}

// GetByID retrieves a revision by its ID.
func (r *RevisionRepository) GetByID(ctx context.Context, id int64) (*secondary.RevisionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+revisionColumns+" FROM revisions WHERE id = ?", id)

	record, err := scanRevision(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("revision %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get revision: %w", err)
	}

	return record, nil
}

// Update updates a revision's rating, date, or interval snapshot.
func (r *RevisionRepository) Update(ctx context.Context, rev *secondary.RevisionRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE revisions SET mode_code = ?, revision_date = ?, rating = ?, plan_id = ?, next_interval = ?
		 WHERE id = ?`,
		string(rev.Mode), rev.Date, rev.Rating, nullInt64(rev.PlanID), nullInt(rev.NextInterval),
		rev.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update revision: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("revision %d not found", rev.ID)
	}

	return nil
}

// Delete removes a revision from the log.
func (r *RevisionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM revisions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete revision: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("revision %d not found", id)
	}

	return nil
}

// ListByItem retrieves an item's log in revision_date ascending order.
func (r *RevisionRepository) ListByItem(ctx context.Context, hafizID, itemID int64) ([]*secondary.RevisionRecord, error) {
	return r.list(ctx,
		"SELECT "+revisionColumns+" FROM revisions WHERE hafiz_id = ? AND item_id = ? ORDER BY revision_date, id",
		hafizID, itemID,
	)
}

// ListByDate retrieves all of a hafiz's revisions for one date.
func (r *RevisionRepository) ListByDate(ctx context.Context, hafizID int64, date string) ([]*secondary.RevisionRecord, error) {
	return r.list(ctx,
		"SELECT "+revisionColumns+" FROM revisions WHERE hafiz_id = ? AND revision_date = ? ORDER BY item_id, id",
		hafizID, date,
	)
}

// ListByRange retrieves revisions with from <= revision_date <= to.
func (r *RevisionRepository) ListByRange(ctx context.Context, hafizID int64, from, to string) ([]*secondary.RevisionRecord, error) {
	return r.list(ctx,
		"SELECT "+revisionColumns+" FROM revisions WHERE hafiz_id = ? AND revision_date >= ? AND revision_date <= ? ORDER BY revision_date, item_id, id",
		hafizID, from, to,
	)
}

func (r *RevisionRepository) list(ctx context.Context, query string, args ...any) ([]*secondary.RevisionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*secondary.RevisionRecord
	for rows.Next() {
		record, err := scanRevision(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		revisions = append(revisions, record)
	}

	return revisions, rows.Err()
}

// CountByItemMode counts an item's revisions in one mode.
func (r *RevisionRepository) CountByItemMode(ctx context.Context, hafizID, itemID int64, c mode.Code) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM revisions WHERE hafiz_id = ? AND item_id = ? AND mode_code = ?",
		hafizID, itemID, string(c),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count revisions: %w", err)
	}

	return count, nil
}

// Exists reports whether a revision already exists for the
// (hafiz, item, date, mode) key.
func (r *RevisionRepository) Exists(ctx context.Context, hafizID, itemID int64, date string, c mode.Code) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM revisions WHERE hafiz_id = ? AND item_id = ? AND revision_date = ? AND mode_code = ?",
		hafizID, itemID, date, string(c),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check revision: %w", err)
	}

	return count > 0, nil
}

// ItemIDsInPlan returns the distinct item ids with a Full Cycle revision
// recorded against a plan.
func (r *RevisionRepository) ItemIDsInPlan(ctx context.Context, hafizID, planID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT item_id FROM revisions WHERE hafiz_id = ? AND plan_id = ? ORDER BY item_id",
		hafizID, planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan items: %w", err)
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

// Ensure RevisionRepository implements the interface
var _ secondary.RevisionRepository = (*RevisionRepository)(nil)
