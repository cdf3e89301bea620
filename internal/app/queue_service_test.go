package app_test

import (
	"context"
	"testing"

	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

func queueItemIDs(items []*primary.QueueItem) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ItemID
	}
	return ids
}

func containsID(items []*primary.QueueItem, id int64) bool {
	for _, item := range items {
		if item.ItemID == id {
			return true
		}
	}
	return false
}

func TestQueueService_NewMemorizationQueue(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	e.memorize(t, hafizID, 2)

	items, err := e.queues.ItemsForMode(ctx, hafizID, mode.NewMemorization, "")
	if err != nil {
		t.Fatalf("ItemsForMode failed: %v", err)
	}
	// 5 catalog items, one memorized.
	if len(items) != 4 {
		t.Fatalf("expected 4 unmemorized items, got %d: %v", len(items), queueItemIDs(items))
	}
	if containsID(items, 2) {
		t.Error("memorized item surfaced in the NM queue")
	}
}

func TestQueueService_DailyQueue_ExcludesNewlyMemorizedToday(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	// Item 2 memorized this morning and moved into DR by an earlier close;
	// item 3 already in DR and due.
	interval := 1
	e.setItemState(t, hafizID, 2, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = mode.DailyReps
		row.NextInterval = &interval
		row.NextReview = "2024-01-15"
	})
	e.setItemState(t, hafizID, 3, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = mode.DailyReps
		row.NextInterval = &interval
		row.NextReview = "2024-01-15"
	})
	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.NewMemorization, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	items, err := e.queues.ItemsForMode(ctx, hafizID, mode.DailyReps, "")
	if err != nil {
		t.Fatalf("ItemsForMode failed: %v", err)
	}
	if containsID(items, 2) {
		t.Error("item memorized today surfaced in tonight's Daily queue")
	}
	if !containsID(items, 3) {
		t.Error("due Daily item missing from the queue")
	}
}

func TestQueueService_WeeklyQueue_DueAndReviewedToday(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	interval := 7
	// Item 2 due today, item 3 due later, item 4 overdue, item 5 reviewed today.
	for itemID, next := range map[int64]string{2: "2024-01-15", 3: "2024-01-20", 4: "2024-01-10", 5: "2024-01-22"} {
		id, n := itemID, next
		e.setItemState(t, hafizID, id, func(row *secondary.HafizItemRecord) {
			row.Memorized = true
			row.Mode = mode.WeeklyReps
			row.NextInterval = &interval
			row.NextReview = n
		})
	}
	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 5, Mode: mode.WeeklyReps, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	items, err := e.queues.ItemsForMode(ctx, hafizID, mode.WeeklyReps, "")
	if err != nil {
		t.Fatalf("ItemsForMode failed: %v", err)
	}

	if !containsID(items, 2) || !containsID(items, 4) {
		t.Errorf("due and overdue items missing: %v", queueItemIDs(items))
	}
	if containsID(items, 3) {
		t.Error("not-yet-due item surfaced in the Weekly queue")
	}
	if !containsID(items, 5) {
		t.Error("reviewed-today item should stay visible")
	}
	for _, item := range items {
		if item.ItemID == 5 && !item.ReviewedToday {
			t.Error("expected reviewed-today flag on item 5")
		}
	}
}

func TestQueueService_EmptyNextReviewCountsAsDue(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	e.setItemState(t, hafizID, 2, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = mode.SRS
		row.NextReview = ""
	})

	items, err := e.queues.ItemsForMode(ctx, hafizID, mode.SRS, "")
	if err != nil {
		t.Fatalf("ItemsForMode failed: %v", err)
	}
	if !containsID(items, 2) {
		t.Error("item with no next_review should count as due")
	}
}

func TestQueueService_FullCycleQueue_PlanCoverage(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	e.memorize(t, hafizID, 2)
	e.memorize(t, hafizID, 3)

	// Item 2 covered in the open plan yesterday.
	plan, _ := e.repos.Plans.GetOpen(ctx, hafizID)
	rev := &secondary.RevisionRecord{HafizID: hafizID, ItemID: 2, Mode: mode.FullCycle, Date: "2024-01-14", Rating: mode.Good, PlanID: &plan.ID}
	if err := e.repos.Revisions.Create(ctx, rev); err != nil {
		t.Fatalf("failed to seed revision: %v", err)
	}

	items, err := e.queues.ItemsForMode(ctx, hafizID, mode.FullCycle, "")
	if err != nil {
		t.Fatalf("ItemsForMode failed: %v", err)
	}
	if containsID(items, 2) {
		t.Error("plan-covered item surfaced in the FC queue")
	}
	if !containsID(items, 3) {
		t.Error("uncovered FC item missing from the queue")
	}

	// Covered today stays visible.
	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 3, Mode: mode.FullCycle, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	items, _ = e.queues.ItemsForMode(ctx, hafizID, mode.FullCycle, "")
	if !containsID(items, 3) {
		t.Error("item reviewed today should stay visible in the FC queue")
	}
}

func TestQueueService_Queues_RegistryOrder(t *testing.T) {
	e := newEngine(t)

	hafizID := e.newHafiz(t, "2024-01-15")

	queues, err := e.queues.Queues(context.Background(), hafizID, "")
	if err != nil {
		t.Fatalf("Queues failed: %v", err)
	}
	if len(queues) != len(mode.All()) {
		t.Fatalf("expected a queue per mode, got %d", len(queues))
	}
	for i, m := range mode.All() {
		if queues[i].Mode.Code != m.Code {
			t.Errorf("queue %d: expected %s, got %s", i, m.Code, queues[i].Mode.Code)
		}
	}
}
