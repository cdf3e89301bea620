package primary

import (
	"context"

	"github.com/example/qsrs/internal/core/mode"
)

// RevisionService is the primary port for the graded review log.
type RevisionService interface {
	// Rate appends one graded review. At most one revision may exist per
	// (hafiz, item, date, mode); a duplicate is an invariant violation.
	Rate(ctx context.Context, req RateRequest) (*Revision, error)

	// BulkRate appends one graded review per item with a shared mode, date,
	// and rating. Items that already have a revision for the key are
	// skipped; the count of appended revisions is returned.
	BulkRate(ctx context.Context, req BulkRateRequest) (int, error)

	// RatePage grades every active item of a mushaf page in one go, with
	// BulkRate's skip semantics.
	RatePage(ctx context.Context, req RatePageRequest) (int, error)

	// EditRating changes a revision's rating and re-projects the item.
	EditRating(ctx context.Context, revisionID int64, rating mode.Rating) (*Revision, error)

	// ChangeDate moves a revision to another date and re-projects the item.
	ChangeDate(ctx context.Context, revisionID int64, date string) (*Revision, error)

	// DeleteRevision removes a revision and re-projects the item.
	DeleteRevision(ctx context.Context, revisionID int64) error

	// ListByItem returns an item's log in date ascending order.
	ListByItem(ctx context.Context, hafizID, itemID int64) ([]*Revision, error)
}

// RateRequest contains parameters for grading one review.
type RateRequest struct {
	HafizID int64
	ItemID  int64
	Mode    mode.Code
	Date    string // "" uses the hafiz clock
	Rating  mode.Rating
}

// BulkRateRequest grades a run of items in one go.
type BulkRateRequest struct {
	HafizID int64
	ItemIDs []int64
	Mode    mode.Code
	Date    string // "" uses the hafiz clock
	Rating  mode.Rating
}

// RatePageRequest grades every active item of one page.
type RatePageRequest struct {
	HafizID    int64
	PageNumber int
	Mode       mode.Code
	Date       string // "" uses the hafiz clock
	Rating     mode.Rating
}

// Revision represents a graded review at the port boundary.
type Revision struct {
	ID           int64
	HafizID      int64
	ItemID       int64
	Mode         mode.Code
	Date         string
	Rating       mode.Rating
	PlanID       int64 // 0 when not tied to a plan
	NextInterval int   // 0 when no SR snapshot was taken
}
