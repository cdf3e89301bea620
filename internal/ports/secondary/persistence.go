// Package secondary defines the secondary ports (driven adapters) for the
// engine: the repository interfaces through which the application reaches the
// store. Every query is scoped by hafiz id; cross-hafiz leakage is a
// correctness bug.
package secondary

import (
	"context"

	"github.com/example/qsrs/internal/core/mode"
)

// HafizRepository is the secondary port for hafiz persistence.
type HafizRepository interface {
	// Create persists a new hafiz and fills in its generated ID.
	Create(ctx context.Context, hafiz *HafizRecord) error

	// GetByID retrieves a hafiz by its ID.
	GetByID(ctx context.Context, id int64) (*HafizRecord, error)

	// List retrieves hafizs, optionally filtered by owning user (0 = all).
	List(ctx context.Context, userID int64) ([]*HafizRecord, error)

	// Update updates an existing hafiz.
	Update(ctx context.Context, hafiz *HafizRecord) error

	// Delete removes a hafiz; related rows cascade.
	Delete(ctx context.Context, id int64) error

	// SetCurrentDate writes the hafiz's logical clock.
	SetCurrentDate(ctx context.Context, id int64, date string) error
}

// HafizRecord represents a hafiz as stored in persistence.
type HafizRecord struct {
	ID            int64
	UserID        int64
	Name          string
	DailyCapacity int
	CurrentDate   string // "" until the clock is first initialised
}

// ItemRepository is the read-only secondary port for the Qur'an catalog.
// Items are seeded once; results are stable for the process lifetime.
type ItemRepository interface {
	// GetByID retrieves one catalog item with its page/surah/juz context.
	GetByID(ctx context.Context, id int64) (*ItemRecord, error)

	// ListActive retrieves every active item in id order.
	ListActive(ctx context.Context) ([]*ItemRecord, error)

	// ItemsOnPage retrieves the active items of one mushaf page.
	ItemsOnPage(ctx context.Context, pageNumber int) ([]*ItemRecord, error)

	// NextActiveAfter retrieves the first active item with a larger id, or
	// nil when id is the last.
	NextActiveAfter(ctx context.Context, id int64) (*ItemRecord, error)

	// CountPageParts returns how many active items share a page.
	CountPageParts(ctx context.Context, pageID int64) (int, error)
}

// ItemRecord represents a catalog item joined with its page and surah.
type ItemRecord struct {
	ID          int64
	PageID      int64
	SurahID     int64
	PartNumber  int
	Active      bool
	Description string
	StartText   string
	PageNumber  int
	JuzNumber   int
	SurahName   string
}

// HafizItemRepository is the secondary port for per-(hafiz, item) state rows.
type HafizItemRepository interface {
	// Create persists a new state row and fills in its generated ID.
	Create(ctx context.Context, row *HafizItemRecord) error

	// Get retrieves the state row for one (hafiz, item) pair.
	Get(ctx context.Context, hafizID, itemID int64) (*HafizItemRecord, error)

	// ListByHafiz retrieves all state rows of a hafiz in item order.
	ListByHafiz(ctx context.Context, hafizID int64) ([]*HafizItemRecord, error)

	// Update updates an existing state row.
	Update(ctx context.Context, row *HafizItemRecord) error

	// MissingItemIDs returns ids of active catalog items that have no state
	// row for the hafiz yet.
	MissingItemIDs(ctx context.Context, hafizID int64) ([]int64, error)
}

// HafizItemRecord represents one hafiz-item state row.
type HafizItemRecord struct {
	ID         int64
	HafizID    int64
	ItemID     int64
	PageNumber int

	Mode      mode.Code // "" when the row carries no mode
	Memorized bool

	LastReview   string
	NextReview   string
	LastInterval *int
	NextInterval *int

	GoodStreak int
	BadStreak  int
	GoodCount  int
	BadCount   int
	Score      int
	Count      int

	CustomDailyThreshold       *int
	CustomWeeklyThreshold      *int
	CustomFortnightlyThreshold *int
	CustomMonthlyThreshold     *int

	SRSStartDate string
}

// CustomThresholdFor returns the per-item override for a rep mode, or 0 when
// the default applies.
func (r *HafizItemRecord) CustomThresholdFor(c mode.Code) int {
	var p *int
	switch c {
	case mode.DailyReps:
		p = r.CustomDailyThreshold
	case mode.WeeklyReps:
		p = r.CustomWeeklyThreshold
	case mode.FortnightlyReps:
		p = r.CustomFortnightlyThreshold
	case mode.MonthlyReps:
		p = r.CustomMonthlyThreshold
	}
	if p == nil {
		return 0
	}
	return *p
}

// SetCustomThreshold stores a per-item override for a rep mode. A zero value
// clears the override.
func (r *HafizItemRecord) SetCustomThreshold(c mode.Code, threshold int) {
	var p **int
	switch c {
	case mode.DailyReps:
		p = &r.CustomDailyThreshold
	case mode.WeeklyReps:
		p = &r.CustomWeeklyThreshold
	case mode.FortnightlyReps:
		p = &r.CustomFortnightlyThreshold
	case mode.MonthlyReps:
		p = &r.CustomMonthlyThreshold
	default:
		return
	}
	if threshold <= 0 {
		*p = nil
		return
	}
	v := threshold
	*p = &v
}

// RevisionRepository is the secondary port for the append-only revision log.
type RevisionRepository interface {
	// Create appends a revision and fills in its generated ID.
	Create(ctx context.Context, rev *RevisionRecord) error

	// GetByID retrieves a revision by its ID.
	GetByID(ctx context.Context, id int64) (*RevisionRecord, error)

	// Update updates a revision's rating, date, or interval snapshot.
	Update(ctx context.Context, rev *RevisionRecord) error

	// Delete removes a revision from the log.
	Delete(ctx context.Context, id int64) error

	// ListByItem retrieves an item's log in revision_date ascending order.
	ListByItem(ctx context.Context, hafizID, itemID int64) ([]*RevisionRecord, error)

	// ListByDate retrieves all of a hafiz's revisions for one date.
	ListByDate(ctx context.Context, hafizID int64, date string) ([]*RevisionRecord, error)

	// ListByRange retrieves revisions with from <= revision_date <= to.
	ListByRange(ctx context.Context, hafizID int64, from, to string) ([]*RevisionRecord, error)

	// CountByItemMode counts an item's revisions in one mode.
	CountByItemMode(ctx context.Context, hafizID, itemID int64, c mode.Code) (int, error)

	// Exists reports whether a revision already exists for the
	// (hafiz, item, date, mode) key.
	Exists(ctx context.Context, hafizID, itemID int64, date string, c mode.Code) (bool, error)

	// ItemIDsInPlan returns the distinct item ids with a Full Cycle revision
	// recorded against a plan.
	ItemIDsInPlan(ctx context.Context, hafizID, planID int64) ([]int64, error)
}

// RevisionRecord represents one graded review.
type RevisionRecord struct {
	ID      int64
	HafizID int64
	ItemID  int64
	Mode    mode.Code
	Date    string
	Rating  mode.Rating
	PlanID  *int64
	// NextInterval snapshots the SR interval chosen at close-date. It lives
	// on the log row for history replay; the on-item copy stays
	// authoritative during scheduling.
	NextInterval *int
}

// PlanRepository is the secondary port for Full Cycle plan windows.
type PlanRepository interface {
	// Create opens a new plan and fills in its generated ID.
	Create(ctx context.Context, plan *PlanRecord) error

	// GetByID retrieves a plan by its ID.
	GetByID(ctx context.Context, id int64) (*PlanRecord, error)

	// GetOpen retrieves the hafiz's open plan, or nil when none is open.
	GetOpen(ctx context.Context, hafizID int64) (*PlanRecord, error)

	// Close marks a plan completed.
	Close(ctx context.Context, id int64) error

	// List retrieves all plans of a hafiz, newest first.
	List(ctx context.Context, hafizID int64) ([]*PlanRecord, error)
}

// PlanRecord represents a Full Cycle plan window.
type PlanRecord struct {
	ID        int64
	HafizID   int64
	StartPage int
	Completed bool
}

// Repositories bundles the repository set so a unit of work can hand out
// transactional instances.
type Repositories struct {
	Hafizs     HafizRepository
	Items      ItemRepository
	HafizItems HafizItemRepository
	Revisions  RevisionRepository
	Plans      PlanRepository
}

// UnitOfWork runs a function against repositories bound to one store
// transaction. Close-date and every multi-row mutation go through it so a
// partial failure can never leave streaks out of sync with the log.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(Repositories) error) error
}
