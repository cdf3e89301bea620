package primary

import (
	"context"

	"github.com/example/qsrs/internal/core/mode"
)

// StatsService is the primary port for log-derived projections.
type StatsService interface {
	// Populate rebuilds the materialized stat columns from the revision log
	// for one item (itemID > 0) or for every item of the hafiz.
	Populate(ctx context.Context, hafizID, itemID int64) error

	// StatusCounts buckets the hafiz's items by derived status.
	StatusCounts(ctx context.Context, hafizID int64) ([]*StatusCount, error)

	// DatewiseSummary summarises revisions per day over a date range.
	DatewiseSummary(ctx context.Context, hafizID int64, from, to string) ([]*DaySummary, error)
}

// StatusCount is one derived-status bucket.
type StatusCount struct {
	Status mode.Status
	Items  int
	Pages  float64 // split-page items count as their page fraction
}

// DaySummary aggregates one day's revisions.
type DaySummary struct {
	Date      string
	Revisions int
	Pages     float64
	Good      int
	Ok        int
	Bad       int
	ByMode    map[mode.Code]int
}
