package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/qsrs/internal/ports/secondary"
)

// UnitOfWork implements secondary.UnitOfWork over a SQLite connection.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a unit of work bound to the given connection.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Within runs fn against repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (u *UnitOfWork) Within(ctx context.Context, fn func(secondary.Repositories) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var _ secondary.UnitOfWork = (*UnitOfWork)(nil)
