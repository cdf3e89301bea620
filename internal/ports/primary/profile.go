package primary

import (
	"context"

	"github.com/example/qsrs/internal/core/mode"
)

// ProfileService is the primary port for explicit item state changes from the
// profile surface. These are the only sanctioned ways to jump an item between
// status buckets outside the schedulers.
type ProfileService interface {
	// SetStatus moves an item to a status bucket, setting memorized, mode,
	// and scheduling fields coherently.
	SetStatus(ctx context.Context, req SetStatusRequest) error

	// ConfigureThresholds stores per-item graduation threshold overrides for
	// rep modes. A zero threshold clears the override.
	ConfigureThresholds(ctx context.Context, req ConfigureThresholdsRequest) error

	// ChangeMode moves an item directly into a target mode with coherent
	// scheduling fields.
	ChangeMode(ctx context.Context, hafizID, itemID int64, target mode.Code) error

	// Graduate manually advances a rep-mode item to the next link of the
	// chain, regardless of its review count.
	Graduate(ctx context.Context, hafizID, itemID int64) error

	// GetItem returns one item's state with catalog context.
	GetItem(ctx context.Context, hafizID, itemID int64) (*HafizItem, error)

	// NextMemorized returns the first active memorized item after the given
	// item id, for sequential revision entry. afterItemID 0 starts from the
	// beginning.
	NextMemorized(ctx context.Context, hafizID, afterItemID int64) (*HafizItem, error)
}

// SetStatusRequest contains parameters for a status jump.
type SetStatusRequest struct {
	HafizID int64
	ItemID  int64
	Status  mode.Status
}

// ConfigureThresholdsRequest carries per-mode threshold overrides.
type ConfigureThresholdsRequest struct {
	HafizID    int64
	ItemID     int64
	Thresholds map[mode.Code]int
}

// HafizItem represents one hafiz-item state row at the port boundary.
type HafizItem struct {
	ItemID       int64
	PageNumber   int
	PartNumber   int
	PageParts    int // active items sharing the page; 1 for a whole page
	SurahName    string
	JuzNumber    int
	Mode         mode.Code
	Status       mode.Status
	Memorized    bool
	LastReview   string
	NextReview   string
	LastInterval int
	NextInterval int
	GoodStreak   int
	BadStreak    int
	GoodCount    int
	BadCount     int
	Score        int
	Count        int
	SRSStartDate string
}
