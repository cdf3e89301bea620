package app_test

import (
	"context"
	"testing"

	"github.com/example/qsrs/internal/app"
	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

func TestCloseDate_NewMemorizationEntersDailyReps(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.NewMemorization, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	result, err := e.schedule.CloseDate(ctx, hafizID, "")
	if err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}
	if result.ClosedDate != "2024-01-15" || result.NewCurrentDate != "2024-01-16" {
		t.Errorf("expected 2024-01-15 -> 2024-01-16, got %s -> %s", result.ClosedDate, result.NewCurrentDate)
	}
	if result.RevisionsApplied != 1 {
		t.Errorf("expected 1 revision applied, got %d", result.RevisionsApplied)
	}

	row := e.getItemState(t, hafizID, 2)
	if !row.Memorized {
		t.Error("expected item memorized after NM close")
	}
	if row.Mode != mode.DailyReps {
		t.Errorf("expected DR, got %s", row.Mode)
	}
	if row.NextInterval == nil || *row.NextInterval != 1 {
		t.Errorf("expected next interval 1, got %v", row.NextInterval)
	}
	if row.NextReview != "2024-01-16" {
		t.Errorf("expected next review 2024-01-16, got %s", row.NextReview)
	}

	hafiz, _ := e.hafizs.GetHafiz(ctx, hafizID)
	if hafiz.CurrentDate != "2024-01-16" {
		t.Errorf("expected clock 2024-01-16, got %s", hafiz.CurrentDate)
	}
}

// seedRepHistory puts an item in a rep mode with a given number of historical
// revisions on consecutive prior days.
func seedRepHistory(t *testing.T, e *engine, hafizID, itemID int64, c mode.Code, priorReviews int) {
	t.Helper()
	ctx := context.Background()

	interval := 1
	e.setItemState(t, hafizID, itemID, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = c
		row.NextInterval = &interval
		row.NextReview = "2024-01-15"
	})
	for i := 0; i < priorReviews; i++ {
		date := "2024-01-" + []string{"08", "09", "10", "11", "12", "13", "14"}[i]
		rev := &secondary.RevisionRecord{HafizID: hafizID, ItemID: itemID, Mode: c, Date: date, Rating: mode.Good}
		if err := e.repos.Revisions.Create(ctx, rev); err != nil {
			t.Fatalf("failed to seed revision: %v", err)
		}
	}
}

func TestCloseDate_RepBelowThresholdStaysInMode(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	seedRepHistory(t, e, hafizID, 2, mode.DailyReps, 3)

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.DailyReps, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.schedule.CloseDate(ctx, hafizID, ""); err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}

	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.DailyReps {
		t.Errorf("expected item to stay in DR below threshold, got %s", row.Mode)
	}
	if row.NextReview != "2024-01-16" {
		t.Errorf("expected next review 2024-01-16, got %s", row.NextReview)
	}
}

func TestCloseDate_RepGraduatesAtThreshold(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	// 6 prior + today's review = 7 = default threshold.
	seedRepHistory(t, e, hafizID, 2, mode.DailyReps, 6)

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.DailyReps, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.schedule.CloseDate(ctx, hafizID, ""); err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}

	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.WeeklyReps {
		t.Errorf("expected graduation to WR, got %s", row.Mode)
	}
	if row.NextInterval == nil || *row.NextInterval != 7 {
		t.Errorf("expected next interval 7, got %v", row.NextInterval)
	}
	if row.NextReview != "2024-01-22" {
		t.Errorf("expected next review 2024-01-22, got %s", row.NextReview)
	}
}

func TestCloseDate_RepCustomThreshold(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	seedRepHistory(t, e, hafizID, 2, mode.DailyReps, 2)
	e.setItemState(t, hafizID, 2, func(row *secondary.HafizItemRecord) {
		row.SetCustomThreshold(mode.DailyReps, 3)
	})

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.DailyReps, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.schedule.CloseDate(ctx, hafizID, ""); err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}

	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.WeeklyReps {
		t.Errorf("expected graduation at custom threshold 3, got %s", row.Mode)
	}
}

func TestCloseDate_MonthlyGraduatesToFullCycle(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	seedRepHistory(t, e, hafizID, 2, mode.MonthlyReps, 6)

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.MonthlyReps, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.schedule.CloseDate(ctx, hafizID, ""); err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}

	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.FullCycle {
		t.Errorf("expected graduation to FC, got %s", row.Mode)
	}
	if !row.Memorized {
		t.Error("expected memorized after the chain completes")
	}
	if row.NextInterval != nil || row.NextReview != "" {
		t.Errorf("expected cleared schedule, got interval=%v next=%s", row.NextInterval, row.NextReview)
	}
}

func TestCloseDate_SRSLateOkPenalised(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	// Planned interval 7, last reviewed 25 days ago. Ok discounts the actual
	// to 12; the ladder triplet around 12 puts Ok on the 11 rung.
	planned := 7
	e.setItemState(t, hafizID, 2, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = mode.SRS
		row.NextInterval = &planned
		row.NextReview = "2023-12-28"
		row.SRSStartDate = "2023-12-21"
	})
	prior := &secondary.RevisionRecord{HafizID: hafizID, ItemID: 2, Mode: mode.SRS, Date: "2023-12-21", Rating: mode.Good}
	if err := e.repos.Revisions.Create(ctx, prior); err != nil {
		t.Fatalf("failed to seed revision: %v", err)
	}

	rev, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.SRS, Rating: mode.Ok})
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.schedule.CloseDate(ctx, hafizID, ""); err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}

	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.SRS {
		t.Fatalf("expected item to stay in SR, got %s", row.Mode)
	}
	if row.NextInterval == nil || *row.NextInterval != 11 {
		t.Errorf("expected next interval 11, got %v", row.NextInterval)
	}
	if row.LastInterval == nil || *row.LastInterval != 7 {
		t.Errorf("expected last interval 7, got %v", row.LastInterval)
	}
	if row.NextReview != "2024-01-26" {
		t.Errorf("expected next review 2024-01-26, got %s", row.NextReview)
	}

	// The chosen interval is snapshotted on the log row.
	stored, err := e.repos.Revisions.GetByID(ctx, rev.ID)
	if err != nil {
		t.Fatalf("failed to load revision: %v", err)
	}
	if stored.NextInterval == nil || *stored.NextInterval != 11 {
		t.Errorf("expected snapshot interval 11, got %v", stored.NextInterval)
	}
}

// The actual elapsed interval is measured from the latest revision before the
// closing date; an older entry further back in the log must not stretch it.
func TestCloseDate_SRSActualUsesLatestPriorReview(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	planned := 29
	e.setItemState(t, hafizID, 2, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = mode.SRS
		row.NextInterval = &planned
		row.NextReview = "2024-01-15"
		row.SRSStartDate = "2023-11-01"
	})
	for _, prior := range []*secondary.RevisionRecord{
		{HafizID: hafizID, ItemID: 2, Mode: mode.FullCycle, Date: "2023-09-17", Rating: mode.Good}, // 120 days back
		{HafizID: hafizID, ItemID: 2, Mode: mode.SRS, Date: "2023-12-17", Rating: mode.Good},       // 29 days back
	} {
		if err := e.repos.Revisions.Create(ctx, prior); err != nil {
			t.Fatalf("failed to seed revision: %v", err)
		}
	}

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.SRS, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.schedule.CloseDate(ctx, hafizID, ""); err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}

	// actual = 29, not 120: effective stays 29 and Good moves one rung right.
	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.SRS {
		t.Fatalf("expected item to stay in SR, got %s", row.Mode)
	}
	if row.NextInterval == nil || *row.NextInterval != 31 {
		t.Errorf("expected next interval 31, got %v", row.NextInterval)
	}
	if row.NextReview != "2024-02-15" {
		t.Errorf("expected next review 2024-02-15, got %s", row.NextReview)
	}
}

// A Full Cycle review of an item that is in SRS restarts the planned interval
// from the closing date and records the elapsed interval.
func TestCloseDate_FullCycleReviewPushesSRSSchedule(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	interval := 7
	e.setItemState(t, hafizID, 2, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = mode.SRS
		row.NextInterval = &interval
		row.NextReview = "2024-01-10"
		row.SRSStartDate = "2024-01-03"
	})
	prior := &secondary.RevisionRecord{HafizID: hafizID, ItemID: 2, Mode: mode.SRS, Date: "2024-01-05", Rating: mode.Good}
	if err := e.repos.Revisions.Create(ctx, prior); err != nil {
		t.Fatalf("failed to seed revision: %v", err)
	}

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.FullCycle, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.schedule.CloseDate(ctx, hafizID, ""); err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}

	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.SRS {
		t.Fatalf("expected item to stay in SR, got %s", row.Mode)
	}
	if row.NextInterval == nil || *row.NextInterval != 7 {
		t.Errorf("expected planned interval unchanged at 7, got %v", row.NextInterval)
	}
	if row.NextReview != "2024-01-22" {
		t.Errorf("expected next review pushed to 2024-01-22, got %s", row.NextReview)
	}
	if row.LastInterval == nil || *row.LastInterval != 10 {
		t.Errorf("expected last interval 10, got %v", row.LastInterval)
	}
}

func TestCloseDate_SRSGraduatesPastCap(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	planned := 97
	e.setItemState(t, hafizID, 2, func(row *secondary.HafizItemRecord) {
		row.Memorized = true
		row.Mode = mode.SRS
		row.NextInterval = &planned
		row.NextReview = "2024-01-15"
		row.SRSStartDate = "2023-10-01"
	})
	prior := &secondary.RevisionRecord{HafizID: hafizID, ItemID: 2, Mode: mode.SRS, Date: "2023-10-10", Rating: mode.Good}
	if err := e.repos.Revisions.Create(ctx, prior); err != nil {
		t.Fatalf("failed to seed revision: %v", err)
	}

	rev, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.SRS, Rating: mode.Good})
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.schedule.CloseDate(ctx, hafizID, ""); err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}

	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.FullCycle {
		t.Errorf("expected graduation back to FC, got %s", row.Mode)
	}
	if !row.Memorized {
		t.Error("expected item to stay memorized")
	}
	if row.NextInterval != nil || row.NextReview != "" || row.SRSStartDate != "" {
		t.Errorf("expected cleared schedule, got interval=%v next=%s start=%s", row.NextInterval, row.NextReview, row.SRSStartDate)
	}
	// Graduation keeps the elapsed interval on the row and the over-cap
	// interval on the log row.
	if row.LastInterval == nil || *row.LastInterval != 97 {
		t.Errorf("expected last interval 97, got %v", row.LastInterval)
	}
	stored, err := e.repos.Revisions.GetByID(ctx, rev.ID)
	if err != nil {
		t.Fatalf("failed to load revision: %v", err)
	}
	if stored.NextInterval == nil || *stored.NextInterval != 101 {
		t.Errorf("expected snapshot interval 101, got %v", stored.NextInterval)
	}
}

func TestCloseDate_FullCycleOkEntersSRS(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	e.memorize(t, hafizID, 2)
	e.memorize(t, hafizID, 3)

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.FullCycle, Rating: mode.Ok}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 3, Mode: mode.FullCycle, Rating: mode.Bad}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	result, err := e.schedule.CloseDate(ctx, hafizID, "")
	if err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}
	if result.SRSEntries != 2 {
		t.Errorf("expected 2 SRS entries, got %d", result.SRSEntries)
	}

	okRow := e.getItemState(t, hafizID, 2)
	if okRow.Mode != mode.SRS || okRow.NextInterval == nil || *okRow.NextInterval != 10 {
		t.Errorf("expected Ok entry at interval 10, got mode=%s interval=%v", okRow.Mode, okRow.NextInterval)
	}
	if okRow.NextReview != "2024-01-25" {
		t.Errorf("expected next review 2024-01-25, got %s", okRow.NextReview)
	}
	if okRow.SRSStartDate != "2024-01-15" {
		t.Errorf("expected SRS start 2024-01-15, got %s", okRow.SRSStartDate)
	}

	badRow := e.getItemState(t, hafizID, 3)
	if badRow.Mode != mode.SRS || badRow.NextInterval == nil || *badRow.NextInterval != 3 {
		t.Errorf("expected Bad entry at interval 3, got mode=%s interval=%v", badRow.Mode, badRow.NextInterval)
	}
}

func TestCloseDate_FullCycleGoodStays(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	e.memorize(t, hafizID, 2)

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.FullCycle, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	result, err := e.schedule.CloseDate(ctx, hafizID, "")
	if err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}
	if result.SRSEntries != 0 {
		t.Errorf("expected no SRS entries, got %d", result.SRSEntries)
	}

	row := e.getItemState(t, hafizID, 2)
	if row.Mode != mode.FullCycle {
		t.Errorf("expected item to stay in FC, got %s", row.Mode)
	}
}

func TestCloseDate_PlanRollsWhenAllCovered(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	e.memorize(t, hafizID, 2)
	e.memorize(t, hafizID, 3)

	oldPlan, _ := e.repos.Plans.GetOpen(ctx, hafizID)

	// Item 2 covered yesterday, item 3 today.
	prior := &secondary.RevisionRecord{HafizID: hafizID, ItemID: 2, Mode: mode.FullCycle, Date: "2024-01-14", Rating: mode.Good, PlanID: &oldPlan.ID}
	if err := e.repos.Revisions.Create(ctx, prior); err != nil {
		t.Fatalf("failed to seed revision: %v", err)
	}
	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 3, Mode: mode.FullCycle, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	result, err := e.schedule.CloseDate(ctx, hafizID, "")
	if err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}
	if !result.PlanCompleted {
		t.Fatal("expected plan completion")
	}
	if result.NewPlanID == 0 || result.NewPlanID == oldPlan.ID {
		t.Errorf("expected a fresh plan, got %d", result.NewPlanID)
	}

	closed, _ := e.repos.Plans.GetByID(ctx, oldPlan.ID)
	if !closed.Completed {
		t.Error("expected old plan marked completed")
	}
	open, _ := e.repos.Plans.GetOpen(ctx, hafizID)
	if open == nil || open.ID != result.NewPlanID {
		t.Errorf("expected new plan open, got %+v", open)
	}
	if open.StartPage != 2 {
		t.Errorf("expected new plan start page 2, got %d", open.StartPage)
	}
}

func TestCloseDate_PlanStaysOpenWithUncoveredItems(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")
	e.memorize(t, hafizID, 2)
	e.memorize(t, hafizID, 3)

	if _, err := e.revs.Rate(ctx, primary.RateRequest{HafizID: hafizID, ItemID: 2, Mode: mode.FullCycle, Rating: mode.Good}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	result, err := e.schedule.CloseDate(ctx, hafizID, "")
	if err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}
	if result.PlanCompleted {
		t.Error("expected plan to stay open with item 3 uncovered")
	}
}

func TestCloseDate_SkipToDate(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	result, err := e.schedule.CloseDate(ctx, hafizID, "2024-01-20")
	if err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}
	if result.NewCurrentDate != "2024-01-20" {
		t.Errorf("expected clock jump to 2024-01-20, got %s", result.NewCurrentDate)
	}

	hafiz, _ := e.hafizs.GetHafiz(ctx, hafizID)
	if hafiz.CurrentDate != "2024-01-20" {
		t.Errorf("expected stored clock 2024-01-20, got %s", hafiz.CurrentDate)
	}
}

func TestCloseDate_SkipToPastRejected(t *testing.T) {
	e := newEngine(t)

	hafizID := e.newHafiz(t, "2024-01-15")

	_, err := e.schedule.CloseDate(context.Background(), hafizID, "2024-01-15")
	if !app.IsInvariant(err) {
		t.Fatalf("expected invariant error for non-future skip, got %v", err)
	}
}

func TestCloseDate_EmptyDayJustAdvancesClock(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	hafizID := e.newHafiz(t, "2024-01-15")

	result, err := e.schedule.CloseDate(ctx, hafizID, "")
	if err != nil {
		t.Fatalf("CloseDate failed: %v", err)
	}
	if result.RevisionsApplied != 0 {
		t.Errorf("expected no revisions applied, got %d", result.RevisionsApplied)
	}
	if result.NewCurrentDate != "2024-01-16" {
		t.Errorf("expected clock 2024-01-16, got %s", result.NewCurrentDate)
	}
}
