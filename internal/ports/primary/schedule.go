package primary

import "context"

// ScheduleService is the primary port for the daily close-date roll-forward.
type ScheduleService interface {
	// CloseDate applies today's revisions to the schedulers, runs the SRS
	// entry sweep, rolls the plan when finished, and advances the hafiz
	// clock. skipToDate, when beyond tomorrow, moves the clock there with no
	// scheduling for the skipped days.
	CloseDate(ctx context.Context, hafizID int64, skipToDate string) (*CloseDateResult, error)
}

// CloseDateResult summarises one close-date run.
type CloseDateResult struct {
	ClosedDate       string
	NewCurrentDate   string
	RevisionsApplied int
	SRSEntries       int
	PlanCompleted    bool
	NewPlanID        int64 // 0 when no plan was opened
}
