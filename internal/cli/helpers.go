// Package cli contains the cobra command surface over the primary ports.
package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/config"
	"github.com/example/qsrs/internal/core/mode"
)

// addHafizFlag registers the shared --hafiz override.
func addHafizFlag(cmd *cobra.Command) {
	cmd.Flags().Int64("hafiz", 0, "hafiz ID (defaults to the active hafiz)")
}

// resolveHafizID picks the --hafiz flag or falls back to the configured
// active hafiz.
func resolveHafizID(cmd *cobra.Command) (int64, error) {
	if id, _ := cmd.Flags().GetInt64("hafiz"); id > 0 {
		return id, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}
	if cfg.ActiveHafizID == 0 {
		return 0, fmt.Errorf("no active hafiz set - run 'qsrs hafiz use <id>' or pass --hafiz")
	}
	return cfg.ActiveHafizID, nil
}

// parseRating accepts good/ok/bad (any case) or the raw -1/0/1 values.
func parseRating(s string) (mode.Rating, error) {
	switch strings.ToLower(s) {
	case "good", "1":
		return mode.Good, nil
	case "ok", "0":
		return mode.Ok, nil
	case "bad", "-1":
		return mode.Bad, nil
	}
	return 0, fmt.Errorf("invalid rating %q (want good, ok, or bad)", s)
}

// ratingLabel renders a rating with color.
func ratingLabel(r mode.Rating) string {
	switch r {
	case mode.Good:
		return color.GreenString("Good")
	case mode.Bad:
		return color.RedString("Bad")
	}
	return color.YellowString("Ok")
}

// statusLabel renders a derived status with color.
func statusLabel(s mode.Status) string {
	switch s {
	case mode.StatusSolid:
		return color.GreenString(s.Label())
	case mode.StatusStruggling:
		return color.RedString(s.Label())
	case mode.StatusReps:
		return color.CyanString(s.Label())
	case mode.StatusLearning:
		return color.YellowString(s.Label())
	}
	return s.Label()
}

// itemLabel is the short "page 12.2 (Al-Kahf)" form used across listings.
func itemLabel(pageNumber, partNumber int, surahName string) string {
	page := fmt.Sprintf("page %d", pageNumber)
	if partNumber > 1 {
		page = fmt.Sprintf("%s.%d", page, partNumber)
	}
	if surahName == "" {
		return page
	}
	return fmt.Sprintf("%s (%s)", page, surahName)
}
