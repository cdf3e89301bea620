package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/qsrs/internal/ports/secondary"
)

// HafizRepository implements secondary.HafizRepository with SQLite.
type HafizRepository struct {
	db DBTX
}

// NewHafizRepository creates a new SQLite hafiz repository.
func NewHafizRepository(db DBTX) *HafizRepository {
	return &HafizRepository{db: db}
}

// Create persists a new hafiz and fills in its generated ID.
func (r *HafizRepository) Create(ctx context.Context, hafiz *secondary.HafizRecord) error {
	if hafiz.Name == "" {
		return fmt.Errorf("hafiz name must not be empty")
	}

	var userID sql.NullInt64
	if hafiz.UserID > 0 {
		userID = sql.NullInt64{Int64: hafiz.UserID, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO hafizs (user_id, name, daily_capacity, "current_date") VALUES (?, ?, ?, ?)`,
		userID, hafiz.Name, hafiz.DailyCapacity, nullString(hafiz.CurrentDate),
	)
	if err != nil {
		return fmt.Errorf("failed to create hafiz: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read hafiz id: %w", err)
	}
	hafiz.ID = id

	return nil
}

// GetByID retrieves a hafiz by its ID.
func (r *HafizRepository) GetByID(ctx context.Context, id int64) (*secondary.HafizRecord, error) {
	var (
		userID      sql.NullInt64
		currentDate sql.NullString
	)

	record := &secondary.HafizRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, daily_capacity, "current_date" FROM hafizs WHERE id = ?`,
		id,
	).Scan(&record.ID, &userID, &record.Name, &record.DailyCapacity, &currentDate)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("hafiz %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hafiz: %w", err)
	}

	record.UserID = userID.Int64
	record.CurrentDate = currentDate.String

	return record, nil
}

// List retrieves hafizs, optionally filtered by owning user.
func (r *HafizRepository) List(ctx context.Context, userID int64) ([]*secondary.HafizRecord, error) {
	query := `SELECT id, user_id, name, daily_capacity, "current_date" FROM hafizs`
	args := []any{}

	if userID > 0 {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hafizs: %w", err)
	}
	defer rows.Close()

	var hafizs []*secondary.HafizRecord
	for rows.Next() {
		var (
			owner       sql.NullInt64
			currentDate sql.NullString
		)

		record := &secondary.HafizRecord{}
		if err := rows.Scan(&record.ID, &owner, &record.Name, &record.DailyCapacity, &currentDate); err != nil {
			return nil, fmt.Errorf("failed to scan hafiz: %w", err)
		}

		record.UserID = owner.Int64
		record.CurrentDate = currentDate.String

		hafizs = append(hafizs, record)
	}

	return hafizs, rows.Err()
}

// Update updates an existing hafiz.
func (r *HafizRepository) Update(ctx context.Context, hafiz *secondary.HafizRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE hafizs SET name = ?, daily_capacity = ?, "current_date" = ? WHERE id = ?`,
		hafiz.Name, hafiz.DailyCapacity, nullString(hafiz.CurrentDate), hafiz.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hafiz: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("hafiz %d not found", hafiz.ID)
	}

	return nil
}

// Delete removes a hafiz; state rows, plans, and revisions cascade.
func (r *HafizRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM hafizs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete hafiz: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("hafiz %d not found", id)
	}

	return nil
}

// SetCurrentDate writes the hafiz's logical clock.
func (r *HafizRepository) SetCurrentDate(ctx context.Context, id int64, date string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE hafizs SET "current_date" = ? WHERE id = ?`,
		nullString(date), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set current date: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("hafiz %d not found", id)
	}

	return nil
}

// Ensure HafizRepository implements the interface
var _ secondary.HafizRepository = (*HafizRepository)(nil)
