package app

import (
	"context"
	"fmt"

	"github.com/example/qsrs/internal/core/streaks"
	"github.com/example/qsrs/internal/ports/secondary"
)

// projectItem rebuilds a state row's materialized stat columns from the
// item's full revision log and persists the row. Every mutation of the log
// goes through this so the stored streaks can never drift from the log.
func projectItem(ctx context.Context, repos secondary.Repositories, row *secondary.HafizItemRecord) error {
	revisions, err := repos.Revisions.ListByItem(ctx, row.HafizID, row.ItemID)
	if err != nil {
		return fmt.Errorf("failed to load item log: %w", err)
	}

	log := make([]streaks.Entry, len(revisions))
	for i, rev := range revisions {
		log[i] = streaks.Entry{Date: rev.Date, Rating: rev.Rating}
	}

	summary := streaks.Project(log)
	row.GoodStreak = summary.GoodStreak
	row.BadStreak = summary.BadStreak
	row.GoodCount = summary.GoodCount
	row.BadCount = summary.BadCount
	row.Score = summary.Score
	row.Count = summary.Count
	row.LastReview = summary.LastReview

	return repos.HafizItems.Update(ctx, row)
}

// reprojectByIDs re-projects a set of items after a batch mutation.
func reprojectByIDs(ctx context.Context, repos secondary.Repositories, hafizID int64, itemIDs []int64) error {
	for _, itemID := range itemIDs {
		row, err := repos.HafizItems.Get(ctx, hafizID, itemID)
		if err != nil {
			return err
		}
		if err := projectItem(ctx, repos, row); err != nil {
			return err
		}
	}
	return nil
}
