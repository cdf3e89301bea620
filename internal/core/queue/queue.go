// Package queue contains the pure predicates that decide which items belong
// in a mode's "due today" set. Predicates are produced by a factory that
// composes four boolean sub-predicates: mode match, review due, reviewed
// today in the mode, and the memorized guard.
package queue

import (
	"github.com/example/qsrs/internal/core/dates"
	"github.com/example/qsrs/internal/core/mode"
)

// Snapshot is a read-only view of one hafiz-item row plus the log-derived
// facts a predicate needs. Callers assemble snapshots; predicates never touch
// the store.
type Snapshot struct {
	Mode       mode.Code
	Memorized  bool
	Active     bool
	NextReview string
	LastReview string

	// ReviewedTodayInMode is true when a revision exists for this item today
	// in the queue's own mode. Already-reviewed items stay visible so the day
	// view can show completed rows.
	ReviewedTodayInMode bool

	// NewlyMemorizedToday is true when an NM revision exists for this item
	// today. Keeps a page memorized this morning out of tonight's Daily queue.
	NewlyMemorizedToday bool

	// ReviewedInOpenPlan is true when an FC revision for this item exists
	// inside the currently open plan.
	ReviewedInOpenPlan bool
}

// Predicate answers "does this item belong in today's queue for this mode?".
type Predicate func(s Snapshot, currentDate string) bool

// dueToday treats an empty next_review as due.
func dueToday(s Snapshot, currentDate string) bool {
	return dates.DayDiff(s.NextReview, currentDate) >= 0
}

func inMode(c mode.Code) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.Mode == c }
}

// repPredicate is the shared shape of the WR/FR/MR/SR queues: in this mode,
// and either due or already reviewed today.
func repPredicate(c mode.Code) Predicate {
	match := inMode(c)
	return func(s Snapshot, currentDate string) bool {
		return match(s) && (dueToday(s, currentDate) || s.ReviewedTodayInMode)
	}
}

// ForMode returns the inclusion predicate for a mode's daily queue.
func ForMode(c mode.Code) Predicate {
	switch c {
	case mode.DailyReps:
		base := repPredicate(mode.DailyReps)
		return func(s Snapshot, currentDate string) bool {
			return base(s, currentDate) && !s.NewlyMemorizedToday
		}
	case mode.WeeklyReps, mode.FortnightlyReps, mode.MonthlyReps, mode.SRS:
		return repPredicate(c)
	case mode.FullCycle:
		return func(s Snapshot, currentDate string) bool {
			return s.Memorized && s.Mode == mode.FullCycle &&
				(!s.ReviewedInOpenPlan || s.ReviewedTodayInMode)
		}
	case mode.NewMemorization:
		return func(s Snapshot, currentDate string) bool {
			return !s.Memorized && s.Active
		}
	}
	return func(Snapshot, string) bool { return false }
}
