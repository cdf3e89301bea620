package app

import (
	"context"
	"fmt"

	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/core/queue"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

// QueueService implements primary.QueueService.
type QueueService struct {
	repos secondary.Repositories
}

// NewQueueService creates a new queue service.
func NewQueueService(repos secondary.Repositories) *QueueService {
	return &QueueService{repos: repos}
}

// dayView is everything the predicates need for one hafiz and date, loaded
// once per request.
type dayView struct {
	date    string
	rows    []*secondary.HafizItemRecord
	catalog map[int64]*secondary.ItemRecord

	reviewedToday map[int64]map[mode.Code]bool
	nmToday       map[int64]bool
	inOpenPlan    map[int64]bool
}

func (s *QueueService) loadDayView(ctx context.Context, hafizID int64, date string) (*dayView, error) {
	hafiz, err := s.repos.Hafizs.GetByID(ctx, hafizID)
	if err != nil {
		return nil, NotFound("hafiz %d not found", hafizID)
	}
	resolved, err := resolveDate(hafiz, date)
	if err != nil {
		return nil, err
	}

	rows, err := s.repos.HafizItems.ListByHafiz(ctx, hafizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load state rows: %w", err)
	}

	items, err := s.repos.Items.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	catalog := make(map[int64]*secondary.ItemRecord, len(items))
	for _, item := range items {
		catalog[item.ID] = item
	}

	todays, err := s.repos.Revisions.ListByDate(ctx, hafizID, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's revisions: %w", err)
	}
	reviewedToday := make(map[int64]map[mode.Code]bool)
	nmToday := make(map[int64]bool)
	for _, rev := range todays {
		if reviewedToday[rev.ItemID] == nil {
			reviewedToday[rev.ItemID] = make(map[mode.Code]bool)
		}
		reviewedToday[rev.ItemID][rev.Mode] = true
		if rev.Mode == mode.NewMemorization {
			nmToday[rev.ItemID] = true
		}
	}

	inOpenPlan := make(map[int64]bool)
	plan, err := s.repos.Plans.GetOpen(ctx, hafizID)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		ids, err := s.repos.Revisions.ItemIDsInPlan(ctx, hafizID, plan.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			inOpenPlan[id] = true
		}
	}

	return &dayView{
		date:          resolved,
		rows:          rows,
		catalog:       catalog,
		reviewedToday: reviewedToday,
		nmToday:       nmToday,
		inOpenPlan:    inOpenPlan,
	}, nil
}

// snapshot assembles the predicate input for one row against one queue mode.
func (v *dayView) snapshot(row *secondary.HafizItemRecord, c mode.Code) queue.Snapshot {
	item, active := v.catalog[row.ItemID]
	return queue.Snapshot{
		Mode:                row.Mode,
		Memorized:           row.Memorized,
		Active:              active && item.Active,
		NextReview:          row.NextReview,
		LastReview:          row.LastReview,
		ReviewedTodayInMode: v.reviewedToday[row.ItemID][c],
		NewlyMemorizedToday: v.nmToday[row.ItemID],
		ReviewedInOpenPlan:  v.inOpenPlan[row.ItemID],
	}
}

func (v *dayView) queueFor(c mode.Code) []*primary.QueueItem {
	pred := queue.ForMode(c)

	var out []*primary.QueueItem
	for _, row := range v.rows {
		snap := v.snapshot(row, c)
		if !pred(snap, v.date) {
			continue
		}
		item := v.catalog[row.ItemID]
		qi := &primary.QueueItem{
			ItemID:        row.ItemID,
			PageNumber:    row.PageNumber,
			Mode:          row.Mode,
			Status:        mode.DeriveStatus(row.Memorized, row.Mode),
			NextReview:    row.NextReview,
			LastReview:    row.LastReview,
			GoodStreak:    row.GoodStreak,
			BadStreak:     row.BadStreak,
			ReviewedToday: snap.ReviewedTodayInMode,
		}
		if item != nil {
			qi.PartNumber = item.PartNumber
			qi.SurahName = item.SurahName
			qi.JuzNumber = item.JuzNumber
			qi.StartText = item.StartText
		}
		if row.NextInterval != nil {
			qi.NextInterval = *row.NextInterval
		}
		out = append(out, qi)
	}
	return out
}

// ItemsForMode returns the items in a mode's daily queue.
func (s *QueueService) ItemsForMode(ctx context.Context, hafizID int64, c mode.Code, date string) ([]*primary.QueueItem, error) {
	if err := mode.Validate(c); err != nil {
		return nil, Invariant("%v", err)
	}

	view, err := s.loadDayView(ctx, hafizID, date)
	if err != nil {
		return nil, err
	}
	return view.queueFor(c), nil
}

// Queues returns every mode's queue for the day in registry order.
func (s *QueueService) Queues(ctx context.Context, hafizID int64, date string) ([]*primary.ModeQueue, error) {
	view, err := s.loadDayView(ctx, hafizID, date)
	if err != nil {
		return nil, err
	}

	var queues []*primary.ModeQueue
	for _, m := range mode.All() {
		queues = append(queues, &primary.ModeQueue{
			Mode:  m,
			Items: view.queueFor(m.Code),
		})
	}
	return queues, nil
}

// Ensure QueueService implements the interface
var _ primary.QueueService = (*QueueService)(nil)
