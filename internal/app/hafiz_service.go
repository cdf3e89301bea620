package app

import (
	"context"
	"fmt"

	"github.com/example/qsrs/internal/core/dates"
	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

const defaultDailyCapacity = 20

// firstPlanStartPage skips Al-Fatihah, which every hafiz knows.
const firstPlanStartPage = 2

// HafizService implements primary.HafizService.
type HafizService struct {
	repos secondary.Repositories
	uow   secondary.UnitOfWork
}

// NewHafizService creates a new hafiz service.
func NewHafizService(repos secondary.Repositories, uow secondary.UnitOfWork) *HafizService {
	return &HafizService{repos: repos, uow: uow}
}

// CreateHafiz creates the hafiz, one state row per active catalog item, and
// the first Full Cycle plan, all in one transaction.
func (s *HafizService) CreateHafiz(ctx context.Context, req primary.CreateHafizRequest) (*primary.Hafiz, error) {
	if req.Name == "" {
		return nil, Invariant("hafiz name must not be empty")
	}

	capacity := req.DailyCapacity
	if capacity <= 0 {
		capacity = defaultDailyCapacity
	}

	record := &secondary.HafizRecord{
		UserID:        req.UserID,
		Name:          req.Name,
		DailyCapacity: capacity,
		CurrentDate:   dates.Today(),
	}

	err := s.uow.Within(ctx, func(repos secondary.Repositories) error {
		if err := repos.Hafizs.Create(ctx, record); err != nil {
			return err
		}

		items, err := repos.Items.ListActive(ctx)
		if err != nil {
			return err
		}
		for _, item := range items {
			row := newStateRow(record.ID, item)
			if err := repos.HafizItems.Create(ctx, row); err != nil {
				return err
			}
		}

		plan := &secondary.PlanRecord{HafizID: record.ID, StartPage: firstPlanStartPage}
		return repos.Plans.Create(ctx, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create hafiz: %w", err)
	}

	return toHafiz(record), nil
}

// newStateRow is the canonical fresh state: not memorized, Full Cycle mode,
// no scheduling fields. Unmemorized items surface through the NM queue
// regardless of mode.
func newStateRow(hafizID int64, item *secondary.ItemRecord) *secondary.HafizItemRecord {
	return &secondary.HafizItemRecord{
		HafizID:    hafizID,
		ItemID:     item.ID,
		PageNumber: item.PageNumber,
		Mode:       mode.FullCycle,
	}
}

// GetHafiz retrieves a hafiz by ID.
func (s *HafizService) GetHafiz(ctx context.Context, hafizID int64) (*primary.Hafiz, error) {
	record, err := s.repos.Hafizs.GetByID(ctx, hafizID)
	if err != nil {
		return nil, NotFound("hafiz %d not found", hafizID)
	}
	return toHafiz(record), nil
}

// ListHafizs lists hafizs, optionally scoped to a user.
func (s *HafizService) ListHafizs(ctx context.Context, userID int64) ([]*primary.Hafiz, error) {
	records, err := s.repos.Hafizs.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hafizs: %w", err)
	}

	hafizs := make([]*primary.Hafiz, len(records))
	for i, record := range records {
		hafizs[i] = toHafiz(record)
	}
	return hafizs, nil
}

// UpdateHafiz updates name, capacity, or clock. Zero values keep the current
// setting.
func (s *HafizService) UpdateHafiz(ctx context.Context, req primary.UpdateHafizRequest) error {
	record, err := s.repos.Hafizs.GetByID(ctx, req.HafizID)
	if err != nil {
		return NotFound("hafiz %d not found", req.HafizID)
	}

	if req.Name != "" {
		record.Name = req.Name
	}
	if req.DailyCapacity > 0 {
		record.DailyCapacity = req.DailyCapacity
	}
	if req.CurrentDate != "" {
		if !dates.IsValid(req.CurrentDate) {
			return Invariant("invalid date %q", req.CurrentDate)
		}
		record.CurrentDate = req.CurrentDate
	}

	return withRetry(func() error {
		return s.repos.Hafizs.Update(ctx, record)
	})
}

// DeleteHafiz removes a hafiz; state rows, plans, and revisions cascade.
func (s *HafizService) DeleteHafiz(ctx context.Context, hafizID int64) error {
	if err := s.repos.Hafizs.Delete(ctx, hafizID); err != nil {
		return NotFound("hafiz %d not found", hafizID)
	}
	return nil
}

// PopulateItems tops up state rows for catalog items added after the hafiz
// was created. Returns the number of rows added.
func (s *HafizService) PopulateItems(ctx context.Context, hafizID int64) (int, error) {
	if _, err := s.repos.Hafizs.GetByID(ctx, hafizID); err != nil {
		return 0, NotFound("hafiz %d not found", hafizID)
	}

	added := 0
	err := s.uow.Within(ctx, func(repos secondary.Repositories) error {
		missing, err := repos.HafizItems.MissingItemIDs(ctx, hafizID)
		if err != nil {
			return err
		}
		for _, itemID := range missing {
			item, err := repos.Items.GetByID(ctx, itemID)
			if err != nil {
				return err
			}
			if err := repos.HafizItems.Create(ctx, newStateRow(hafizID, item)); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to populate items: %w", err)
	}

	return added, nil
}

func toHafiz(record *secondary.HafizRecord) *primary.Hafiz {
	return &primary.Hafiz{
		ID:            record.ID,
		UserID:        record.UserID,
		Name:          record.Name,
		DailyCapacity: record.DailyCapacity,
		CurrentDate:   record.CurrentDate,
	}
}

// Ensure HafizService implements the interface
var _ primary.HafizService = (*HafizService)(nil)
