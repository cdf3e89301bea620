package primary

import (
	"context"

	"github.com/example/qsrs/internal/core/mode"
)

// QueueService is the primary port for "what is due today" queries.
type QueueService interface {
	// ItemsForMode returns the items in a mode's daily queue for a hafiz.
	// An empty date uses the hafiz clock.
	ItemsForMode(ctx context.Context, hafizID int64, c mode.Code, date string) ([]*QueueItem, error)

	// Queues returns every mode's queue for the day in registry order.
	Queues(ctx context.Context, hafizID int64, date string) ([]*ModeQueue, error)
}

// ModeQueue is one mode's daily queue.
type ModeQueue struct {
	Mode  mode.Mode
	Items []*QueueItem
}

// QueueItem is a due item with enough catalog context to render.
type QueueItem struct {
	ItemID        int64
	PageNumber    int
	PartNumber    int
	SurahName     string
	JuzNumber     int
	StartText     string
	Mode          mode.Code
	Status        mode.Status
	NextReview    string
	LastReview    string
	NextInterval  int
	GoodStreak    int
	BadStreak     int
	ReviewedToday bool
}
