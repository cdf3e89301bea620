// Package streaks projects an item's ordered revision log into its
// materialized stat columns. The stored columns are a view; this projection
// is the source of truth and can always rebuild them.
package streaks

import "github.com/example/qsrs/internal/core/mode"

// Entry is one graded review in revision_date ascending order.
type Entry struct {
	Date   string
	Rating mode.Rating
}

// Summary is the projection of a full item log.
type Summary struct {
	GoodStreak int
	BadStreak  int
	GoodCount  int
	BadCount   int
	Score      int
	Count      int
	LastReview string
}

// Project scans the log forward: Good extends the good streak and resets the
// bad streak, Bad does the opposite, Ok resets both. LastReview is the final
// date seen.
func Project(log []Entry) Summary {
	var s Summary
	for _, e := range log {
		switch e.Rating {
		case mode.Good:
			s.GoodCount++
			s.GoodStreak++
			s.BadStreak = 0
		case mode.Bad:
			s.BadCount++
			s.BadStreak++
			s.GoodStreak = 0
		default:
			s.GoodStreak = 0
			s.BadStreak = 0
		}
		s.Score += int(e.Rating)
		s.Count++
		s.LastReview = e.Date
	}
	return s
}
