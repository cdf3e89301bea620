// Package fixedreps implements the fixed-interval rep scheduler: the
// Daily -> Weekly -> Fortnightly -> Monthly -> Full Cycle graduation chain.
// Progression is driven purely by review counts against a threshold; ratings
// never affect it.
package fixedreps

import (
	"fmt"

	"github.com/example/qsrs/internal/core/dates"
	"github.com/example/qsrs/internal/core/mode"
)

// Review captures everything needed to advance a rep-mode item at close-date.
type Review struct {
	Mode            mode.Code
	ReviewCount     int    // historical revisions of this item in Mode, including today's
	CustomThreshold int    // per-item override; 0 means use the mode default
	CurrentDate     string // the hafiz clock at close-date
}

// Result is the state mutation a rep review produces.
type Result struct {
	Mode         mode.Code
	Graduated    bool
	Memorized    bool   // true only when graduating into Full Cycle
	NextInterval int    // 0 when cleared (Full Cycle)
	NextReview   string // "" when cleared
}

// EffectiveThreshold resolves the graduation threshold for a review.
func EffectiveThreshold(c mode.Code, custom int) (int, error) {
	cfg, ok := mode.RepConfigFor(c)
	if !ok {
		return 0, fmt.Errorf("%s is not a rep mode", c)
	}
	if custom > 0 {
		return custom, nil
	}
	return cfg.DefaultThreshold, nil
}

// Advance applies one graded review to a rep-mode item. Below the threshold
// the item stays in its mode and is rescheduled at the mode's base interval;
// at or above it the item graduates to the next link of the chain.
func Advance(r Review) (Result, error) {
	cfg, ok := mode.RepConfigFor(r.Mode)
	if !ok {
		return Result{}, fmt.Errorf("%s is not a rep mode", r.Mode)
	}

	threshold, err := EffectiveThreshold(r.Mode, r.CustomThreshold)
	if err != nil {
		return Result{}, err
	}

	if r.ReviewCount < threshold {
		return Result{
			Mode:         r.Mode,
			NextInterval: cfg.BaseInterval,
			NextReview:   dates.AddDays(r.CurrentDate, cfg.BaseInterval),
		}, nil
	}

	if cfg.Next == mode.FullCycle {
		return Result{
			Mode:      mode.FullCycle,
			Graduated: true,
			Memorized: true,
		}, nil
	}

	nextCfg, _ := mode.RepConfigFor(cfg.Next)
	return Result{
		Mode:         cfg.Next,
		Graduated:    true,
		NextInterval: nextCfg.BaseInterval,
		NextReview:   dates.AddDays(r.CurrentDate, nextCfg.BaseInterval),
	}, nil
}
