package app

import (
	"context"
	"fmt"

	"github.com/example/qsrs/internal/core/dates"
	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

// RevisionService implements primary.RevisionService.
type RevisionService struct {
	repos secondary.Repositories
	uow   secondary.UnitOfWork
}

// NewRevisionService creates a new revision service.
func NewRevisionService(repos secondary.Repositories, uow secondary.UnitOfWork) *RevisionService {
	return &RevisionService{repos: repos, uow: uow}
}

// resolveDate picks the explicit date or falls back to the hafiz clock.
func resolveDate(hafiz *secondary.HafizRecord, date string) (string, error) {
	if date != "" {
		if !dates.IsValid(date) {
			return "", Invariant("invalid date %q", date)
		}
		return date, nil
	}
	if hafiz.CurrentDate == "" {
		return "", Invariant("hafiz %d has no current date set", hafiz.ID)
	}
	return hafiz.CurrentDate, nil
}

// Rate appends one graded review and re-projects the item's stats.
func (s *RevisionService) Rate(ctx context.Context, req primary.RateRequest) (*primary.Revision, error) {
	if err := mode.Validate(req.Mode); err != nil {
		return nil, Invariant("%v", err)
	}
	if err := mode.ValidateRating(req.Rating); err != nil {
		return nil, Invariant("%v", err)
	}

	hafiz, err := s.repos.Hafizs.GetByID(ctx, req.HafizID)
	if err != nil {
		return nil, NotFound("hafiz %d not found", req.HafizID)
	}
	date, err := resolveDate(hafiz, req.Date)
	if err != nil {
		return nil, err
	}

	var record *secondary.RevisionRecord
	err = s.uow.Within(ctx, func(repos secondary.Repositories) error {
		rec, err := s.appendRevision(ctx, repos, req.HafizID, req.ItemID, req.Mode, date, req.Rating)
		if err != nil {
			return err
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toRevision(record), nil
}

// appendRevision runs the guarded append inside a transaction: memorized
// guard, uniqueness check, plan linkage for Full Cycle, then re-projection.
func (s *RevisionService) appendRevision(ctx context.Context, repos secondary.Repositories,
	hafizID, itemID int64, c mode.Code, date string, rating mode.Rating) (*secondary.RevisionRecord, error) {

	row, err := repos.HafizItems.Get(ctx, hafizID, itemID)
	if err != nil {
		return nil, NotFound("hafiz %d has no state for item %d", hafizID, itemID)
	}

	if !row.Memorized && c != mode.NewMemorization {
		return nil, Invariant("item %d is not memorized; only %s reviews are allowed", itemID, mode.NewMemorization)
	}

	exists, err := repos.Revisions.Exists(ctx, hafizID, itemID, date, c)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Invariant("item %d already has a %s revision on %s", itemID, c, date)
	}

	record := &secondary.RevisionRecord{
		HafizID: hafizID,
		ItemID:  itemID,
		Mode:    c,
		Date:    date,
		Rating:  rating,
	}

	if c == mode.FullCycle {
		plan, err := repos.Plans.GetOpen(ctx, hafizID)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			record.PlanID = &plan.ID
		}
	}

	if err := repos.Revisions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record revision: %w", err)
	}

	if err := projectItem(ctx, repos, row); err != nil {
		return nil, err
	}

	return record, nil
}

// BulkRate grades a run of items with a shared mode, date, and rating. Items
// that already carry a revision for the key are skipped.
func (s *RevisionService) BulkRate(ctx context.Context, req primary.BulkRateRequest) (int, error) {
	if err := mode.Validate(req.Mode); err != nil {
		return 0, Invariant("%v", err)
	}
	if err := mode.ValidateRating(req.Rating); err != nil {
		return 0, Invariant("%v", err)
	}

	hafiz, err := s.repos.Hafizs.GetByID(ctx, req.HafizID)
	if err != nil {
		return 0, NotFound("hafiz %d not found", req.HafizID)
	}
	date, err := resolveDate(hafiz, req.Date)
	if err != nil {
		return 0, err
	}

	// Retried on lock contention; the count restarts with the transaction.
	added := 0
	err = withRetry(func() error {
		added = 0
		return s.uow.Within(ctx, func(repos secondary.Repositories) error {
			for _, itemID := range req.ItemIDs {
				exists, err := repos.Revisions.Exists(ctx, req.HafizID, itemID, date, req.Mode)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if _, err := s.appendRevision(ctx, repos, req.HafizID, itemID, req.Mode, date, req.Rating); err != nil {
					return err
				}
				added++
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	return added, nil
}

// RatePage grades every active item of a mushaf page with a shared mode,
// date, and rating. Items that already carry a revision for the key are
// skipped.
func (s *RevisionService) RatePage(ctx context.Context, req primary.RatePageRequest) (int, error) {
	items, err := s.repos.Items.ItemsOnPage(ctx, req.PageNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to load page items: %w", err)
	}
	if len(items) == 0 {
		return 0, NotFound("page %d has no active items", req.PageNumber)
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	return s.BulkRate(ctx, primary.BulkRateRequest{
		HafizID: req.HafizID,
		ItemIDs: itemIDs,
		Mode:    req.Mode,
		Date:    req.Date,
		Rating:  req.Rating,
	})
}

// EditRating changes a revision's rating and re-projects the item.
func (s *RevisionService) EditRating(ctx context.Context, revisionID int64, rating mode.Rating) (*primary.Revision, error) {
	if err := mode.ValidateRating(rating); err != nil {
		return nil, Invariant("%v", err)
	}

	var record *secondary.RevisionRecord
	err := s.uow.Within(ctx, func(repos secondary.Repositories) error {
		rec, err := repos.Revisions.GetByID(ctx, revisionID)
		if err != nil {
			return NotFound("revision %d not found", revisionID)
		}
		rec.Rating = rating
		if err := repos.Revisions.Update(ctx, rec); err != nil {
			return err
		}
		record = rec
		return reprojectByIDs(ctx, repos, rec.HafizID, []int64{rec.ItemID})
	})
	if err != nil {
		return nil, err
	}

	return toRevision(record), nil
}

// ChangeDate moves a revision to another date and re-projects the item. The
// move must not collide with an existing (item, date, mode) revision.
func (s *RevisionService) ChangeDate(ctx context.Context, revisionID int64, date string) (*primary.Revision, error) {
	if !dates.IsValid(date) {
		return nil, Invariant("invalid date %q", date)
	}

	var record *secondary.RevisionRecord
	err := s.uow.Within(ctx, func(repos secondary.Repositories) error {
		rec, err := repos.Revisions.GetByID(ctx, revisionID)
		if err != nil {
			return NotFound("revision %d not found", revisionID)
		}
		if rec.Date == date {
			record = rec
			return nil
		}

		exists, err := repos.Revisions.Exists(ctx, rec.HafizID, rec.ItemID, date, rec.Mode)
		if err != nil {
			return err
		}
		if exists {
			return Invariant("item %d already has a %s revision on %s", rec.ItemID, rec.Mode, date)
		}

		rec.Date = date
		if err := repos.Revisions.Update(ctx, rec); err != nil {
			return err
		}
		record = rec
		return reprojectByIDs(ctx, repos, rec.HafizID, []int64{rec.ItemID})
	})
	if err != nil {
		return nil, err
	}

	return toRevision(record), nil
}

// DeleteRevision removes a revision and re-projects the item.
func (s *RevisionService) DeleteRevision(ctx context.Context, revisionID int64) error {
	return s.uow.Within(ctx, func(repos secondary.Repositories) error {
		rec, err := repos.Revisions.GetByID(ctx, revisionID)
		if err != nil {
			return NotFound("revision %d not found", revisionID)
		}
		if err := repos.Revisions.Delete(ctx, revisionID); err != nil {
			return err
		}
		return reprojectByIDs(ctx, repos, rec.HafizID, []int64{rec.ItemID})
	})
}

// ListByItem returns an item's log in date ascending order.
func (s *RevisionService) ListByItem(ctx context.Context, hafizID, itemID int64) ([]*primary.Revision, error) {
	records, err := s.repos.Revisions.ListByItem(ctx, hafizID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}

	revisions := make([]*primary.Revision, len(records))
	for i, record := range records {
		revisions[i] = toRevision(record)
	}
	return revisions, nil
}

func toRevision(record *secondary.RevisionRecord) *primary.Revision {
	rev := &primary.Revision{
		ID:      record.ID,
		HafizID: record.HafizID,
		ItemID:  record.ItemID,
		Mode:    record.Mode,
		Date:    record.Date,
		Rating:  record.Rating,
	}
	if record.PlanID != nil {
		rev.PlanID = *record.PlanID
	}
	if record.NextInterval != nil {
		rev.NextInterval = *record.NextInterval
	}
	return rev
}

// Ensure RevisionService implements the interface
var _ primary.RevisionService = (*RevisionService)(nil)
