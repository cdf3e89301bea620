package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/qsrs/internal/ports/secondary"
)

// PlanRepository implements secondary.PlanRepository with SQLite.
type PlanRepository struct {
	db DBTX
}

// NewPlanRepository creates a new SQLite plan repository.
func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create opens a new plan and fills in its generated ID.
func (r *PlanRepository) Create(ctx context.Context, plan *secondary.PlanRecord) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO plans (hafiz_id, start_page, completed) VALUES (?, ?, ?)",
		plan.HafizID, plan.StartPage, plan.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read plan id: %w", err)
	}
	plan.ID = id

	return nil
}

// GetByID retrieves a plan by its ID.
func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*secondary.PlanRecord, error) {
	record := &secondary.PlanRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, hafiz_id, start_page, completed FROM plans WHERE id = ?",
		id,
	).Scan(&record.ID, &record.HafizID, &record.StartPage, &record.Completed)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return record, nil
}

// GetOpen retrieves the hafiz's open plan, or nil when none is open.
func (r *PlanRepository) GetOpen(ctx context.Context, hafizID int64) (*secondary.PlanRecord, error) {
	record := &secondary.PlanRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, hafiz_id, start_page, completed FROM plans WHERE hafiz_id = ? AND completed = 0 ORDER BY id DESC LIMIT 1",
		hafizID,
	).Scan(&record.ID, &record.HafizID, &record.StartPage, &record.Completed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open plan: %w", err)
	}

	return record, nil
}

// Close marks a plan completed.
func (r *PlanRepository) Close(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE plans SET completed = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to close plan: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("plan %d not found", id)
	}

	return nil
}

// List retrieves all plans of a hafiz, newest first.
func (r *PlanRepository) List(ctx context.Context, hafizID int64) ([]*secondary.PlanRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, hafiz_id, start_page, completed FROM plans WHERE hafiz_id = ? ORDER BY id DESC",
		hafizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []*secondary.PlanRecord
	for rows.Next() {
		record := &secondary.PlanRecord{}
		if err := rows.Scan(&record.ID, &record.HafizID, &record.StartPage, &record.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, record)
	}

	return plans, rows.Err()
}

// Ensure PlanRepository implements the interface
var _ secondary.PlanRepository = (*PlanRepository)(nil)
