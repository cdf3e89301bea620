// Package mode defines the scheduling mode registry: the seven fixed mode
// codes, the fixed-reps configuration chain, review ratings, and the status
// labels derived from an item's mode and memorized flag.
package mode

import "fmt"

// Code is a wire-stable 2-letter mode code.
type Code string

const (
	NewMemorization Code = "NM"
	DailyReps       Code = "DR"
	WeeklyReps      Code = "WR"
	FortnightlyReps Code = "FR"
	MonthlyReps     Code = "MR"
	FullCycle       Code = "FC"
	SRS             Code = "SR"
)

// Mode is a registry entry.
type Mode struct {
	Code Code
	Name string
	Icon string
}

// registry holds the seven fixed modes in scheduling order.
var registry = []Mode{
	{NewMemorization, "New Memorization", "🌱"},
	{DailyReps, "Daily Reps", "📅"},
	{WeeklyReps, "Weekly Reps", "🗓️"},
	{FortnightlyReps, "Fortnightly Reps", "🌗"},
	{MonthlyReps, "Monthly Reps", "🌖"},
	{FullCycle, "Full Cycle", "🔄"},
	{SRS, "SRS", "🔁"},
}

// All returns every mode in stable order.
func All() []Mode {
	out := make([]Mode, len(registry))
	copy(out, registry)
	return out
}

// Get looks up a mode by code.
func Get(c Code) (Mode, bool) {
	for _, m := range registry {
		if m.Code == c {
			return m, true
		}
	}
	return Mode{}, false
}

// Valid reports whether c is a known mode code.
func Valid(c Code) bool {
	_, ok := Get(c)
	return ok
}

// Validate returns an error for unknown mode codes. Unknown codes are
// programmer errors, not user input problems.
func Validate(c Code) error {
	if !Valid(c) {
		return fmt.Errorf("unknown mode code %q", c)
	}
	return nil
}

// RepConfig describes one link of the fixed-reps graduation chain.
type RepConfig struct {
	BaseInterval     int
	DefaultThreshold int
	Next             Code
}

// repConfigs is the Daily -> Weekly -> Fortnightly -> Monthly -> Full Cycle
// chain. Thresholds are review counts, not ratings.
var repConfigs = map[Code]RepConfig{
	DailyReps:       {BaseInterval: 1, DefaultThreshold: 7, Next: WeeklyReps},
	WeeklyReps:      {BaseInterval: 7, DefaultThreshold: 7, Next: FortnightlyReps},
	FortnightlyReps: {BaseInterval: 14, DefaultThreshold: 7, Next: MonthlyReps},
	MonthlyReps:     {BaseInterval: 30, DefaultThreshold: 7, Next: FullCycle},
}

// RepConfigFor returns the rep chain entry for c, if c is a rep mode.
func RepConfigFor(c Code) (RepConfig, bool) {
	cfg, ok := repConfigs[c]
	return cfg, ok
}

// IsRepMode reports whether c is one of the fixed-interval rep modes.
func IsRepMode(c Code) bool {
	_, ok := repConfigs[c]
	return ok
}

// Rating is a graded review outcome.
type Rating int

const (
	Bad  Rating = -1
	Ok   Rating = 0
	Good Rating = 1
)

// ValidRating reports whether r is one of the three ternary ratings.
func ValidRating(r Rating) bool {
	return r == Bad || r == Ok || r == Good
}

// ValidateRating returns an error for non-ternary ratings.
func ValidateRating(r Rating) error {
	if !ValidRating(r) {
		return fmt.Errorf("invalid rating %d (must be -1, 0 or 1)", int(r))
	}
	return nil
}

func (r Rating) String() string {
	switch r {
	case Good:
		return "Good"
	case Ok:
		return "Ok"
	case Bad:
		return "Bad"
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// Status is the display bucket derived from memorized + mode.
type Status string

const (
	StatusNotMemorized Status = "NOT_MEMORIZED"
	StatusLearning     Status = "LEARNING"
	StatusReps         Status = "REPS"
	StatusSolid        Status = "SOLID"
	StatusStruggling   Status = "STRUGGLING"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{
		StatusNotMemorized,
		StatusLearning,
		StatusReps,
		StatusSolid,
		StatusStruggling,
	}
}

// ValidStatus reports whether s is a known status label.
func ValidStatus(s Status) bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// DeriveStatus maps an item's state to its display bucket.
func DeriveStatus(memorized bool, c Code) Status {
	if !memorized {
		if c == NewMemorization {
			return StatusLearning
		}
		return StatusNotMemorized
	}
	switch {
	case IsRepMode(c):
		return StatusReps
	case c == SRS:
		return StatusStruggling
	default:
		return StatusSolid
	}
}

// Label returns the human-readable form of a status.
func (s Status) Label() string {
	switch s {
	case StatusNotMemorized:
		return "Not Memorized"
	case StatusLearning:
		return "Learning"
	case StatusReps:
		return "Reps"
	case StatusSolid:
		return "Solid"
	case StatusStruggling:
		return "Struggling"
	}
	return string(s)
}
