package app

import (
	"context"
	"fmt"

	"github.com/example/qsrs/internal/core/dates"
	"github.com/example/qsrs/internal/core/fixedreps"
	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/core/srs"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/ports/secondary"
)

// closeOrder is the dispatch order at close-date. Full Cycle runs first so
// the SRS entry sweep sees final ratings; New Memorization runs before the
// rep modes so a page memorized and drilled on the same day lands in Daily
// Reps exactly once.
var closeOrder = []mode.Code{
	mode.FullCycle,
	mode.NewMemorization,
	mode.DailyReps,
	mode.WeeklyReps,
	mode.FortnightlyReps,
	mode.MonthlyReps,
	mode.SRS,
}

// ScheduleService implements primary.ScheduleService: the close-date
// roll-forward that turns the day's graded reviews into new schedules.
type ScheduleService struct {
	uow secondary.UnitOfWork
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(uow secondary.UnitOfWork) *ScheduleService {
	return &ScheduleService{uow: uow}
}

// CloseDate runs the whole daily roll-forward in one transaction: apply the
// day's revisions per mode, sweep struggling Full Cycle items into SRS, roll
// the plan when every Full Cycle item has been covered, and advance the
// clock.
func (s *ScheduleService) CloseDate(ctx context.Context, hafizID int64, skipToDate string) (*primary.CloseDateResult, error) {
	var result *primary.CloseDateResult

	run := func(repos secondary.Repositories) error {
		hafiz, err := repos.Hafizs.GetByID(ctx, hafizID)
		if err != nil {
			return NotFound("hafiz %d not found", hafizID)
		}
		if hafiz.CurrentDate == "" {
			return Invariant("hafiz %d has no current date set", hafizID)
		}
		day := hafiz.CurrentDate

		newDate := dates.AddDays(day, 1)
		if skipToDate != "" {
			if !dates.IsValid(skipToDate) {
				return Invariant("invalid skip date %q", skipToDate)
			}
			if dates.DayDiff(day, skipToDate) < 1 {
				return Invariant("skip date %s must be after current date %s", skipToDate, day)
			}
			newDate = skipToDate
		}

		res := &primary.CloseDateResult{ClosedDate: day, NewCurrentDate: newDate}

		todays, err := repos.Revisions.ListByDate(ctx, hafizID, day)
		if err != nil {
			return fmt.Errorf("failed to load today's revisions: %w", err)
		}

		byMode := make(map[mode.Code][]*secondary.RevisionRecord)
		touched := make(map[int64]bool)
		for _, rev := range todays {
			byMode[rev.Mode] = append(byMode[rev.Mode], rev)
			touched[rev.ItemID] = true
		}

		for _, c := range closeOrder {
			for _, rev := range byMode[c] {
				if err := s.dispatch(ctx, repos, rev, day); err != nil {
					return err
				}
				res.RevisionsApplied++
			}
		}

		entries, err := s.srsEntrySweep(ctx, repos, byMode[mode.FullCycle], day)
		if err != nil {
			return err
		}
		res.SRSEntries = entries

		// Stats are re-projected once per touched item, after all state
		// changes, so a multi-mode day still yields one coherent projection.
		for itemID := range touched {
			row, err := repos.HafizItems.Get(ctx, hafizID, itemID)
			if err != nil {
				return err
			}
			if err := projectItem(ctx, repos, row); err != nil {
				return err
			}
		}

		completed, newPlanID, err := s.rollPlan(ctx, repos, hafizID)
		if err != nil {
			return err
		}
		res.PlanCompleted = completed
		res.NewPlanID = newPlanID

		if err := repos.Hafizs.SetCurrentDate(ctx, hafizID, newDate); err != nil {
			return err
		}

		result = res
		return nil
	}

	// Retried on lock contention; the failed transaction rolled back, so a
	// rerun starts clean.
	err := withRetry(func() error {
		return s.uow.Within(ctx, run)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// dispatch applies one revision's scheduling consequence to the item's state
// row. Full Cycle revisions only refresh interval bookkeeping here; the entry
// sweep handles their Ok/Bad ratings.
func (s *ScheduleService) dispatch(ctx context.Context, repos secondary.Repositories, rev *secondary.RevisionRecord, day string) error {
	row, err := repos.HafizItems.Get(ctx, rev.HafizID, rev.ItemID)
	if err != nil {
		return err
	}

	switch {
	case rev.Mode == mode.NewMemorization:
		enterMode(row, mode.DailyReps, day)

	case mode.IsRepMode(rev.Mode):
		if row.Mode != rev.Mode {
			// The item moved modes after the review was recorded; the review
			// still counts in the log but schedules nothing.
			return nil
		}
		count, err := repos.Revisions.CountByItemMode(ctx, rev.HafizID, rev.ItemID, rev.Mode)
		if err != nil {
			return err
		}
		result, err := fixedreps.Advance(fixedreps.Review{
			Mode:            rev.Mode,
			ReviewCount:     count,
			CustomThreshold: row.CustomThresholdFor(rev.Mode),
			CurrentDate:     day,
		})
		if err != nil {
			return err
		}
		row.LastInterval = row.NextInterval
		row.Mode = result.Mode
		if result.Memorized {
			row.Memorized = true
		}
		if result.NextInterval > 0 {
			interval := result.NextInterval
			row.NextInterval = &interval
		} else {
			row.NextInterval = nil
		}
		row.NextReview = result.NextReview

	case rev.Mode == mode.SRS:
		if row.Mode != mode.SRS {
			return nil
		}
		if err := s.advanceSRS(ctx, repos, rev, row, day); err != nil {
			return err
		}

	case rev.Mode == mode.FullCycle:
		// A Full Cycle review resets the elapsed-interval marker, and for an
		// item currently in SRS it restarts the planned interval from today.
		log, err := repos.Revisions.ListByItem(ctx, rev.HafizID, rev.ItemID)
		if err != nil {
			return err
		}
		if last := latestPriorDate(log, day); last != "" {
			elapsed := dates.DayDiff(last, day)
			row.LastInterval = &elapsed
		}
		if row.Mode == mode.SRS && row.NextInterval != nil {
			row.NextReview = dates.AddDays(day, *row.NextInterval)
		}
	}

	return repos.HafizItems.Update(ctx, row)
}

// latestPriorDate returns the date of the most recent log entry strictly
// before day, or "" when the log holds nothing earlier. ISO dates compare
// correctly as strings.
func latestPriorDate(log []*secondary.RevisionRecord, day string) string {
	last := ""
	for _, entry := range log {
		if entry.Date < day && entry.Date > last {
			last = entry.Date
		}
	}
	return last
}

// advanceSRS walks the prime ladder. The actual elapsed interval comes from
// the log (latest revision strictly before today), not from last_review,
// which a same-day projection may already have bumped to today.
func (s *ScheduleService) advanceSRS(ctx context.Context, repos secondary.Repositories,
	rev *secondary.RevisionRecord, row *secondary.HafizItemRecord, day string) error {

	planned := 0
	if row.NextInterval != nil {
		planned = *row.NextInterval
	}

	log, err := repos.Revisions.ListByItem(ctx, rev.HafizID, rev.ItemID)
	if err != nil {
		return err
	}
	last := latestPriorDate(log, day)
	actual := dates.DayDiff(last, day)

	next := srs.NextInterval(planned, actual, rev.Rating)

	if srs.Graduates(next) {
		row.Mode = mode.FullCycle
		row.Memorized = true
		clearScheduling(row)
		if last != "" {
			elapsed := dates.DayDiff(last, day)
			row.LastInterval = &elapsed
		}
		// The over-cap interval still goes on the log row for history replay.
		rev.NextInterval = &next
		return repos.Revisions.Update(ctx, rev)
	}

	row.LastInterval = row.NextInterval
	interval := next
	row.NextInterval = &interval
	row.NextReview = dates.AddDays(day, next)

	// Snapshot the chosen interval on the log row for history replay.
	rev.NextInterval = &interval
	return repos.Revisions.Update(ctx, rev)
}

// srsEntrySweep moves Full Cycle items rated Ok or Bad today into SRS,
// unless a later state change already took them out of Full Cycle.
func (s *ScheduleService) srsEntrySweep(ctx context.Context, repos secondary.Repositories,
	fcRevs []*secondary.RevisionRecord, day string) (int, error) {

	entries := 0
	for _, rev := range fcRevs {
		interval, ok := srs.StartInterval(rev.Rating)
		if !ok {
			continue
		}

		row, err := repos.HafizItems.Get(ctx, rev.HafizID, rev.ItemID)
		if err != nil {
			return 0, err
		}
		if !row.Memorized || row.Mode != mode.FullCycle {
			continue
		}

		row.Mode = mode.SRS
		row.LastInterval = nil
		iv := interval
		row.NextInterval = &iv
		row.NextReview = dates.AddDays(day, interval)
		row.SRSStartDate = day

		if err := repos.HafizItems.Update(ctx, row); err != nil {
			return 0, err
		}
		entries++
	}
	return entries, nil
}

// rollPlan closes the open plan once every (memorized, Full Cycle) item has a
// Full Cycle revision inside it, then opens the next plan.
func (s *ScheduleService) rollPlan(ctx context.Context, repos secondary.Repositories, hafizID int64) (bool, int64, error) {
	plan, err := repos.Plans.GetOpen(ctx, hafizID)
	if err != nil {
		return false, 0, err
	}
	if plan == nil {
		return false, 0, nil
	}

	covered := make(map[int64]bool)
	ids, err := repos.Revisions.ItemIDsInPlan(ctx, hafizID, plan.ID)
	if err != nil {
		return false, 0, err
	}
	for _, id := range ids {
		covered[id] = true
	}

	rows, err := repos.HafizItems.ListByHafiz(ctx, hafizID)
	if err != nil {
		return false, 0, err
	}

	remaining := 0
	total := 0
	for _, row := range rows {
		if !row.Memorized || row.Mode != mode.FullCycle {
			continue
		}
		total++
		if !covered[row.ItemID] {
			remaining++
		}
	}

	if total == 0 || remaining > 0 {
		return false, 0, nil
	}

	if err := repos.Plans.Close(ctx, plan.ID); err != nil {
		return false, 0, err
	}
	next := &secondary.PlanRecord{HafizID: hafizID, StartPage: firstPlanStartPage}
	if err := repos.Plans.Create(ctx, next); err != nil {
		return false, 0, err
	}

	return true, next.ID, nil
}

// Ensure ScheduleService implements the interface
var _ primary.ScheduleService = (*ScheduleService)(nil)
