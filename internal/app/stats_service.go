package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

// StatsService implements primary.StatsService.
type StatsService struct {
	repos secondary.Repositories
	uow   secondary.UnitOfWork
}

// NewStatsService creates a new stats service.
func NewStatsService(repos secondary.Repositories, uow secondary.UnitOfWork) *StatsService {
	return &StatsService{repos: repos, uow: uow}
}

// Populate rebuilds the materialized stat columns from the revision log for
// one item, or for every item of the hafiz when itemID is 0.
func (s *StatsService) Populate(ctx context.Context, hafizID, itemID int64) error {
	if _, err := s.repos.Hafizs.GetByID(ctx, hafizID); err != nil {
		return NotFound("hafiz %d not found", hafizID)
	}

	return s.uow.Within(ctx, func(repos secondary.Repositories) error {
		if itemID > 0 {
			return reprojectByIDs(ctx, repos, hafizID, []int64{itemID})
		}

		rows, err := repos.HafizItems.ListByHafiz(ctx, hafizID)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := projectItem(ctx, repos, row); err != nil {
				return err
			}
		}
		return nil
	})
}

// pageFractions maps item id to its share of a page: 1 for a whole page,
// 1/parts for a split page.
func (s *StatsService) pageFractions(ctx context.Context) (map[int64]float64, error) {
	items, err := s.repos.Items.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	partsPerPage := make(map[int64]int)
	for _, item := range items {
		partsPerPage[item.PageID]++
	}

	fractions := make(map[int64]float64, len(items))
	for _, item := range items {
		fractions[item.ID] = 1.0 / float64(partsPerPage[item.PageID])
	}
	return fractions, nil
}

// StatusCounts buckets the hafiz's items by derived status, counting split
// pages as their page fraction.
func (s *StatsService) StatusCounts(ctx context.Context, hafizID int64) ([]*primary.StatusCount, error) {
	if _, err := s.repos.Hafizs.GetByID(ctx, hafizID); err != nil {
		return nil, NotFound("hafiz %d not found", hafizID)
	}

	rows, err := s.repos.HafizItems.ListByHafiz(ctx, hafizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load state rows: %w", err)
	}
	fractions, err := s.pageFractions(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[mode.Status]*primary.StatusCount)
	for _, status := range mode.Statuses() {
		buckets[status] = &primary.StatusCount{Status: status}
	}

	for _, row := range rows {
		status := mode.DeriveStatus(row.Memorized, row.Mode)
		bucket := buckets[status]
		bucket.Items++
		bucket.Pages += fractions[row.ItemID]
	}

	out := make([]*primary.StatusCount, 0, len(buckets))
	for _, status := range mode.Statuses() {
		out = append(out, buckets[status])
	}
	return out, nil
}

// DatewiseSummary summarises revisions per day over an inclusive date range.
func (s *StatsService) DatewiseSummary(ctx context.Context, hafizID int64, from, to string) ([]*primary.DaySummary, error) {
	if _, err := s.repos.Hafizs.GetByID(ctx, hafizID); err != nil {
		return nil, NotFound("hafiz %d not found", hafizID)
	}

	revisions, err := s.repos.Revisions.ListByRange(ctx, hafizID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load revisions: %w", err)
	}
	fractions, err := s.pageFractions(ctx)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*primary.DaySummary)
	for _, rev := range revisions {
		day := byDate[rev.Date]
		if day == nil {
			day = &primary.DaySummary{Date: rev.Date, ByMode: make(map[mode.Code]int)}
			byDate[rev.Date] = day
		}
		day.Revisions++
		day.Pages += fractions[rev.ItemID]
		day.ByMode[rev.Mode]++
		switch rev.Rating {
		case mode.Good:
			day.Good++
		case mode.Ok:
			day.Ok++
		case mode.Bad:
			day.Bad++
		}
	}

	out := make([]*primary.DaySummary, 0, len(byDate))
	for _, day := range byDate {
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out, nil
}

// Ensure StatsService implements the interface
var _ primary.StatsService = (*StatsService)(nil)
