package app

import (
	"context"
	"fmt"

	"github.com/example/qsrs/internal/core/dates"
	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/core/srs"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

// ProfileService implements primary.ProfileService.
type ProfileService struct {
	repos secondary.Repositories
}

// NewProfileService creates a new profile service.
func NewProfileService(repos secondary.Repositories) *ProfileService {
	return &ProfileService{repos: repos}
}

func (s *ProfileService) getRow(ctx context.Context, hafizID, itemID int64) (*secondary.HafizItemRecord, *secondary.HafizRecord, error) {
	hafiz, err := s.repos.Hafizs.GetByID(ctx, hafizID)
	if err != nil {
		return nil, nil, NotFound("hafiz %d not found", hafizID)
	}
	row, err := s.repos.HafizItems.Get(ctx, hafizID, itemID)
	if err != nil {
		return nil, nil, NotFound("hafiz %d has no state for item %d", hafizID, itemID)
	}
	return row, hafiz, nil
}

// clearScheduling drops interval and due-date fields; streaks stay since they
// are log-derived.
func clearScheduling(row *secondary.HafizItemRecord) {
	row.LastInterval = nil
	row.NextInterval = nil
	row.NextReview = ""
	row.SRSStartDate = ""
}

// SetStatus moves an item to a status bucket with coherent scheduling fields.
func (s *ProfileService) SetStatus(ctx context.Context, req primary.SetStatusRequest) error {
	if !mode.ValidStatus(req.Status) {
		return Invariant("unknown status %q", req.Status)
	}

	row, hafiz, err := s.getRow(ctx, req.HafizID, req.ItemID)
	if err != nil {
		return err
	}

	switch req.Status {
	case mode.StatusNotMemorized:
		row.Memorized = false
		row.Mode = mode.FullCycle
		clearScheduling(row)
	case mode.StatusLearning:
		row.Memorized = false
		row.Mode = mode.NewMemorization
		clearScheduling(row)
	case mode.StatusReps:
		enterMode(row, mode.DailyReps, hafiz.CurrentDate)
	case mode.StatusSolid:
		row.Memorized = true
		row.Mode = mode.FullCycle
		clearScheduling(row)
	case mode.StatusStruggling:
		enterMode(row, mode.SRS, hafiz.CurrentDate)
	}

	return withRetry(func() error {
		return s.repos.HafizItems.Update(ctx, row)
	})
}

// enterMode writes the canonical entry state for a target mode. Rep modes
// start at their base interval; SRS starts at the Ok entry interval.
func enterMode(row *secondary.HafizItemRecord, target mode.Code, currentDate string) {
	switch {
	case mode.IsRepMode(target):
		cfg, _ := mode.RepConfigFor(target)
		row.Memorized = true
		row.Mode = target
		row.LastInterval = nil
		interval := cfg.BaseInterval
		row.NextInterval = &interval
		row.NextReview = dates.AddDays(currentDate, interval)
		row.SRSStartDate = ""
	case target == mode.SRS:
		row.Memorized = true
		row.Mode = mode.SRS
		row.LastInterval = nil
		interval, _ := srs.StartInterval(mode.Ok)
		row.NextInterval = &interval
		row.NextReview = dates.AddDays(currentDate, interval)
		row.SRSStartDate = currentDate
	case target == mode.FullCycle:
		row.Memorized = true
		row.Mode = mode.FullCycle
		clearScheduling(row)
	case target == mode.NewMemorization:
		row.Memorized = false
		row.Mode = mode.NewMemorization
		clearScheduling(row)
	}
}

// ChangeMode moves an item directly into a target mode.
func (s *ProfileService) ChangeMode(ctx context.Context, hafizID, itemID int64, target mode.Code) error {
	if err := mode.Validate(target); err != nil {
		return Invariant("%v", err)
	}

	row, hafiz, err := s.getRow(ctx, hafizID, itemID)
	if err != nil {
		return err
	}

	enterMode(row, target, hafiz.CurrentDate)

	return withRetry(func() error {
		return s.repos.HafizItems.Update(ctx, row)
	})
}

// Graduate manually advances a rep-mode item to the next link of the chain.
func (s *ProfileService) Graduate(ctx context.Context, hafizID, itemID int64) error {
	row, hafiz, err := s.getRow(ctx, hafizID, itemID)
	if err != nil {
		return err
	}

	cfg, ok := mode.RepConfigFor(row.Mode)
	if !ok {
		return Invariant("item %d is in %s, not a rep mode", itemID, row.Mode)
	}

	if cfg.Next == mode.FullCycle {
		row.Memorized = true
		row.Mode = mode.FullCycle
		clearScheduling(row)
	} else {
		enterMode(row, cfg.Next, hafiz.CurrentDate)
	}

	return withRetry(func() error {
		return s.repos.HafizItems.Update(ctx, row)
	})
}

// ConfigureThresholds stores per-item graduation threshold overrides for rep
// modes. A zero threshold clears the override.
func (s *ProfileService) ConfigureThresholds(ctx context.Context, req primary.ConfigureThresholdsRequest) error {
	for c, threshold := range req.Thresholds {
		if !mode.IsRepMode(c) {
			return Invariant("%s is not a rep mode", c)
		}
		if threshold < 0 {
			return Invariant("threshold for %s must not be negative", c)
		}
	}

	row, _, err := s.getRow(ctx, req.HafizID, req.ItemID)
	if err != nil {
		return err
	}

	for c, threshold := range req.Thresholds {
		row.SetCustomThreshold(c, threshold)
	}

	return withRetry(func() error {
		return s.repos.HafizItems.Update(ctx, row)
	})
}

// GetItem returns one item's state with catalog context.
func (s *ProfileService) GetItem(ctx context.Context, hafizID, itemID int64) (*primary.HafizItem, error) {
	row, _, err := s.getRow(ctx, hafizID, itemID)
	if err != nil {
		return nil, err
	}

	out := &primary.HafizItem{
		ItemID:       row.ItemID,
		PageNumber:   row.PageNumber,
		Mode:         row.Mode,
		Status:       mode.DeriveStatus(row.Memorized, row.Mode),
		Memorized:    row.Memorized,
		LastReview:   row.LastReview,
		NextReview:   row.NextReview,
		GoodStreak:   row.GoodStreak,
		BadStreak:    row.BadStreak,
		GoodCount:    row.GoodCount,
		BadCount:     row.BadCount,
		Score:        row.Score,
		Count:        row.Count,
		SRSStartDate: row.SRSStartDate,
	}
	if row.LastInterval != nil {
		out.LastInterval = *row.LastInterval
	}
	if row.NextInterval != nil {
		out.NextInterval = *row.NextInterval
	}

	if item, err := s.repos.Items.GetByID(ctx, itemID); err == nil {
		out.PartNumber = item.PartNumber
		out.SurahName = item.SurahName
		out.JuzNumber = item.JuzNumber
		if parts, err := s.repos.Items.CountPageParts(ctx, item.PageID); err == nil {
			out.PageParts = parts
		}
	}

	return out, nil
}

// NextMemorized walks the catalog forward from afterItemID to the first
// active item the hafiz has memorized.
func (s *ProfileService) NextMemorized(ctx context.Context, hafizID, afterItemID int64) (*primary.HafizItem, error) {
	if _, err := s.repos.Hafizs.GetByID(ctx, hafizID); err != nil {
		return nil, NotFound("hafiz %d not found", hafizID)
	}

	id := afterItemID
	for {
		item, err := s.repos.Items.NextActiveAfter(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to walk catalog: %w", err)
		}
		if item == nil {
			return nil, NotFound("no memorized item after item %d", afterItemID)
		}
		id = item.ID

		row, err := s.repos.HafizItems.Get(ctx, hafizID, item.ID)
		if err != nil {
			continue // item has no state row yet
		}
		if row.Memorized {
			return s.GetItem(ctx, hafizID, item.ID)
		}
	}
}

// Ensure ProfileService implements the interface
var _ primary.ProfileService = (*ProfileService)(nil)
