//go:build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// One-off backfill for srs_start_date. Rows that entered SRS before the
// column existed have mode SR but a NULL start date; derive it from the
// earliest SR revision in the log.
//
// Run with: go run scripts/backfill_srs_start.go [-dry-run]

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview backfill without executing")
	flag.Parse()

	home := os.Getenv("QSRS_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
			os.Exit(1)
		}
		home = filepath.Join(userHome, ".qsrs")
	}
	dbPath := filepath.Join(home, "qsrs.db")

	database, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	rows, err := database.Query(`
		SELECT hi.id, hi.hafiz_id, hi.item_id
		FROM hafizs_items hi
		WHERE hi.mode_code = 'SR' AND hi.srs_start_date IS NULL`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying rows: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	type target struct {
		id, hafizID, itemID int64
	}
	var targets []target
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.id, &t.hafizID, &t.itemID); err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning row: %v\n", err)
			os.Exit(1)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error iterating rows: %v\n", err)
		os.Exit(1)
	}

	if len(targets) == 0 {
		fmt.Println("Nothing to backfill")
		return
	}

	updated, unresolved := 0, 0
	for _, t := range targets {
		var start sql.NullString
		err := database.QueryRow(`
			SELECT MIN(revision_date) FROM revisions
			WHERE hafiz_id = ? AND item_id = ? AND mode_code = 'SR'`,
			t.hafizID, t.itemID).Scan(&start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error looking up first SR revision: %v\n", err)
			os.Exit(1)
		}
		if !start.Valid {
			// In SR with no SR revisions yet: entry happened at the last
			// close before the log starts. Leave it for the next close.
			unresolved++
			continue
		}

		if *dryRun {
			fmt.Printf("[dry-run] would set srs_start_date=%s on row %d (hafiz %d, item %d)\n",
				start.String, t.id, t.hafizID, t.itemID)
			updated++
			continue
		}

		if _, err := database.Exec(
			`UPDATE hafizs_items SET srs_start_date = ? WHERE id = ?`,
			start.String, t.id); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating row %d: %v\n", t.id, err)
			os.Exit(1)
		}
		updated++
	}

	fmt.Printf("Backfilled %d rows (%d left unresolved)\n", updated, unresolved)
}
