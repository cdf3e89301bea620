// Package srs implements the variable-interval spaced repetition scheduler.
//
// Items enter SRS from Full Cycle when a revision is rated Ok or Bad. The
// interval progression walks a fixed ascending prime ladder; the rating moves
// the item one step left (Bad), keeps it in place (Ok), or one step right
// (Good). An item graduates back to Full Cycle once its next interval would
// exceed the graduation cap.
package srs

import (
	"math"

	"github.com/example/qsrs/internal/core/mode"
)

// Ladder is the prime interval sequence for SRS progression.
var Ladder = []int{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97, 101,
}

// GraduationCap is the interval beyond which an item leaves SRS.
const GraduationCap = 99

// startIntervals maps the Full Cycle rating that triggered SRS entry to the
// starting interval.
var startIntervals = map[mode.Rating]int{
	mode.Bad: 3,
	mode.Ok:  10,
}

// ratingMultipliers discount the actual elapsed interval: a struggling review
// earns only partial credit for the time waited.
var ratingMultipliers = map[mode.Rating]float64{
	mode.Good: 1.0,
	mode.Ok:   0.5,
	mode.Bad:  0.35,
}

// StartInterval returns the SRS entry interval for the Full Cycle rating that
// triggered entry. Good ratings never trigger entry.
func StartInterval(r mode.Rating) (int, bool) {
	iv, ok := startIntervals[r]
	return iv, ok
}

// searchLE returns the index of the largest ladder value <= target, or -1
// when target is below the ladder floor.
func searchLE(list []int, target int) int {
	lo, hi := 0, len(list)-1
	found := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if list[mid] <= target {
			found = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return found
}

// Triplet returns the [left, self, right] ladder values around target.
// Self is the largest ladder value <= target, clamped to the first rung when
// target is below the floor; left and right clamp at the ladder ends.
func Triplet(target int) [3]int {
	i := searchLE(Ladder, target)
	if i < 0 {
		i = 0
	}
	left := Ladder[i]
	if i > 0 {
		left = Ladder[i-1]
	}
	right := Ladder[i]
	if i < len(Ladder)-1 {
		right = Ladder[i+1]
	}
	return [3]int{left, Ladder[i], right}
}

// PenalizedActual discounts the actual elapsed interval by the rating
// multiplier, rounded to the nearest day with exact halves going to the even
// day. Replaying a stored log must land on the same ladder rungs it did when
// the revisions were first closed, so the rounding rule is part of the
// schedule format.
func PenalizedActual(actual int, r mode.Rating) int {
	return int(math.RoundToEven(float64(actual) * ratingMultipliers[r]))
}

// NextInterval computes the next SRS interval. The effective current interval
// is the larger of the planned interval and the penalised actual interval;
// the rating then picks the left, middle, or right rung of the ladder triplet
// around it.
func NextInterval(planned, actual int, r mode.Rating) int {
	effective := planned
	if adjusted := PenalizedActual(actual, r); adjusted > effective {
		effective = adjusted
	}
	t := Triplet(effective)
	return t[int(r)+1]
}

// Graduates reports whether an interval pushes the item out of SRS.
func Graduates(next int) bool {
	return next > GraduationCap
}
